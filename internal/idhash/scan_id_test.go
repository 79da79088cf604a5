package idhash

import "testing"

func TestScanID(t *testing.T) {
	a := ScanID(1704067200, 7, []string{"pump_fun", "moonshot"})
	b := ScanID(1704067200, 7, []string{"moonshot", "pump_fun"})

	if len(a) != 32 {
		t.Errorf("expected 32 hex chars, got %d", len(a))
	}
	if a != b {
		t.Errorf("platform order must not change the id: %s vs %s", a, b)
	}

	tests := []struct {
		name      string
		startedAt int64
		days      int
		platforms []string
	}{
		{"different start", 1704067201, 7, []string{"pump_fun", "moonshot"}},
		{"different window", 1704067200, 8, []string{"pump_fun", "moonshot"}},
		{"different platforms", 1704067200, 7, []string{"pump_fun"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScanID(tt.startedAt, tt.days, tt.platforms); got == a {
				t.Errorf("expected a different id, got %s", got)
			}
		})
	}
}

func TestScanID_DoesNotMutateInput(t *testing.T) {
	platforms := []string{"raydium_launchlab", "moonshot"}
	ScanID(1, 1, platforms)
	if platforms[0] != "raydium_launchlab" {
		t.Error("input slice was reordered")
	}
}
