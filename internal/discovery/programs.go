package discovery

import (
	"fmt"
	"sort"
	"strings"
)

// Launchpad program IDs.
const (
	// PumpFun is the pump.fun bonding curve program ID.
	PumpFun = "6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P"
	// RaydiumLaunchLab is the Raydium LaunchLab program ID.
	RaydiumLaunchLab = "LanMV9sAd7wArD4vJFi2qDdfnVhFxYSUg6eADduJ3uj"
	// Moonshot is the Moonshot launchpad program ID.
	Moonshot = "MoonCVVNZFSYkqNXP6bxHLPL6QQJiMagDL3qcqUQTrG"
	// RaydiumAMMV4 is the Raydium AMM v4 program ID (pool creation).
	RaydiumAMMV4 = "675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8"
)

// Platform ties a launchpad tag to the program whose signatures are scanned.
type Platform struct {
	Name      string
	ProgramID string
}

// Platforms maps platform tags to their programs.
var Platforms = map[string]Platform{
	"pump_fun":          {Name: "pump_fun", ProgramID: PumpFun},
	"raydium_launchlab": {Name: "raydium_launchlab", ProgramID: RaydiumLaunchLab},
	"moonshot":          {Name: "moonshot", ProgramID: Moonshot},
	"raydium_amm":       {Name: "raydium_amm", ProgramID: RaydiumAMMV4},
}

// ResolvePlatforms parses a comma-separated list of platform tags.
// Duplicates are dropped; the result is sorted by name.
func ResolvePlatforms(list string) ([]Platform, error) {
	seen := make(map[string]bool)
	var out []Platform
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(strings.ToLower(name))
		if name == "" || seen[name] {
			continue
		}
		p, ok := Platforms[name]
		if !ok {
			return nil, fmt.Errorf("unknown platform %q", name)
		}
		seen[name] = true
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no platforms in %q", list)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
