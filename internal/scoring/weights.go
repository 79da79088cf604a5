package scoring

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed weights.yaml
var defaultWeightsYAML []byte

// ErrInvalidWeights is returned by Validate.
var ErrInvalidWeights = errors.New("invalid scoring weights")

// Weights is the full scoring weight surface, grouped as in weights.yaml.
type Weights struct {
	Historical     HistoricalWeights     `yaml:"historical"`
	LaunchPatterns LaunchPatternWeights  `yaml:"launch_patterns"`
	Behavioral     BehavioralWeights     `yaml:"behavioral"`
	RecentActivity RecentActivityWeights `yaml:"recent_activity"`
}

// HistoricalWeights weight a wallet's past launch outcomes.
type HistoricalWeights struct {
	SuccessRate   float64 `yaml:"success_rate"`
	TotalEarnings float64 `yaml:"total_earnings"`
	RugRate       float64 `yaml:"rug_rate"`
}

// LaunchPatternWeights weight when and how fast a wallet launches.
type LaunchPatternWeights struct {
	TimeConsistency    float64 `yaml:"time_consistency"`
	VelocityPattern    float64 `yaml:"velocity_pattern"`
	PlatformPreference float64 `yaml:"platform_preference"`
}

// BehavioralWeights weight seeding and holding behaviour.
type BehavioralWeights struct {
	SeedAmountPattern  float64 `yaml:"seed_amount_pattern"`
	HoldVsDump         float64 `yaml:"hold_vs_dump"`
	NetworkConnections float64 `yaml:"network_connections"`
}

// RecentActivityWeights weight activity in the last week.
type RecentActivityWeights struct {
	Momentum  float64 `yaml:"momentum"`
	Last7Days float64 `yaml:"last_7_days"`
}

// DefaultWeights returns the built-in weights.
func DefaultWeights() Weights {
	var w Weights
	if err := yaml.Unmarshal(defaultWeightsYAML, &w); err != nil {
		panic(fmt.Sprintf("load weights.yaml: %v", err))
	}
	return w
}

// LoadWeights reads a YAML weights file. Keys missing from the file keep
// their default value.
func LoadWeights(path string) (Weights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Weights{}, fmt.Errorf("read weights: %w", err)
	}
	return ParseWeights(data)
}

// ParseWeights decodes YAML weights over the defaults and validates them.
func ParseWeights(data []byte) (Weights, error) {
	w := DefaultWeights()
	if err := yaml.Unmarshal(data, &w); err != nil {
		return Weights{}, fmt.Errorf("parse weights: %w", err)
	}
	if err := w.Validate(); err != nil {
		return Weights{}, err
	}
	return w, nil
}

// Validate rejects negative weights and a zero sum of the weights that
// feed the composite score.
func (w Weights) Validate() error {
	all := []struct {
		name  string
		value float64
	}{
		{"historical.success_rate", w.Historical.SuccessRate},
		{"historical.total_earnings", w.Historical.TotalEarnings},
		{"historical.rug_rate", w.Historical.RugRate},
		{"launch_patterns.time_consistency", w.LaunchPatterns.TimeConsistency},
		{"launch_patterns.velocity_pattern", w.LaunchPatterns.VelocityPattern},
		{"launch_patterns.platform_preference", w.LaunchPatterns.PlatformPreference},
		{"behavioral.seed_amount_pattern", w.Behavioral.SeedAmountPattern},
		{"behavioral.hold_vs_dump", w.Behavioral.HoldVsDump},
		{"behavioral.network_connections", w.Behavioral.NetworkConnections},
		{"recent_activity.momentum", w.RecentActivity.Momentum},
		{"recent_activity.last_7_days", w.RecentActivity.Last7Days},
	}
	for _, wt := range all {
		if wt.value < 0 {
			return fmt.Errorf("%w: %s is negative (%v)", ErrInvalidWeights, wt.name, wt.value)
		}
	}
	if w.compositeSum() == 0 {
		return fmt.Errorf("%w: success_rate, total_earnings, rug_rate and time_consistency sum to 0", ErrInvalidWeights)
	}
	return nil
}

func (w Weights) compositeSum() float64 {
	return w.Historical.SuccessRate + w.Historical.TotalEarnings + w.Historical.RugRate + w.LaunchPatterns.TimeConsistency
}
