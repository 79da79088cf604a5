// Package idhash derives deterministic identifiers.
package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// ScanID computes a deterministic scan_id using SHA256.
// Formula: SHA256(started_at|days_back|sorted,platforms)
// Returns the first 16 bytes hex-encoded (32 characters).
func ScanID(startedAt int64, daysBack int, platforms []string) string {
	sorted := make([]string, len(platforms))
	copy(sorted, platforms)
	sort.Strings(sorted)

	data := fmt.Sprintf("%d|%d|%s", startedAt, daysBack, strings.Join(sorted, ","))

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:16])
}
