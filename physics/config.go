package physics

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the tuning constants for the drag simulation. All values have
// working defaults; a TOML tuning file can override any subset of them.
type Config struct {
	// FollowStrength is the fraction of the dragged node's per-frame
	// displacement transferred to each connected node's velocity.
	FollowStrength float64 `toml:"follow_strength"`

	// SpringConstant converts the error between a connected node's current and
	// grab-time distance to the dragged node into a restoring force.
	SpringConstant float64 `toml:"spring_constant"`

	// IdealDistance is the separation below which two connected nodes start
	// repelling each other.
	IdealDistance float64 `toml:"ideal_distance"`

	// RepulsionStrength scales the inverse-square repulsion between connected
	// nodes closer than IdealDistance.
	RepulsionStrength float64 `toml:"repulsion_strength"`

	// DragDamping is the per-frame velocity multiplier while a drag is active.
	DragDamping float64 `toml:"drag_damping"`

	// DecayFactor is the per-frame velocity multiplier after release.
	DecayFactor float64 `toml:"decay_factor"`

	// SettleThreshold is the per-axis velocity magnitude below which a node
	// counts as at rest.
	SettleThreshold float64 `toml:"settle_threshold"`

	// FrameIntervalMS is the display frame interval in milliseconds.
	FrameIntervalMS int `toml:"frame_interval_ms"`
}

// DefaultConfig returns the standard tuning constants.
func DefaultConfig() Config {
	return Config{
		FollowStrength:    0.3,
		SpringConstant:    0.1,
		IdealDistance:     100,
		RepulsionStrength: 50,
		DragDamping:       0.85,
		DecayFactor:       0.88,
		SettleThreshold:   0.1,
		FrameIntervalMS:   16,
	}
}

// FrameInterval returns the display frame interval as a duration.
func (c Config) FrameInterval() time.Duration {
	if c.FrameIntervalMS <= 0 {
		return 16 * time.Millisecond
	}
	return time.Duration(c.FrameIntervalMS) * time.Millisecond
}

// Validate reports the first nonsensical tuning value, if any.
func (c Config) Validate() error {
	switch {
	case c.FollowStrength < 0:
		return fmt.Errorf("follow_strength must not be negative, got %v", c.FollowStrength)
	case c.DragDamping <= 0 || c.DragDamping > 1:
		return fmt.Errorf("drag_damping must be in (0, 1], got %v", c.DragDamping)
	case c.DecayFactor <= 0 || c.DecayFactor >= 1:
		return fmt.Errorf("decay_factor must be in (0, 1), got %v", c.DecayFactor)
	case c.SettleThreshold <= 0:
		return fmt.Errorf("settle_threshold must be positive, got %v", c.SettleThreshold)
	case c.IdealDistance < 0:
		return fmt.Errorf("ideal_distance must not be negative, got %v", c.IdealDistance)
	}
	return nil
}

// LoadConfig reads a TOML tuning file and overlays it on the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading physics config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing physics config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid physics config %s: %w", path, err)
	}
	return cfg, nil
}
