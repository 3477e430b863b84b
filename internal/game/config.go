package game

import (
	"time"

	"github.com/samdwyer/warpwalk/internal/world"
)

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible NPC targets.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	// Start is the area the player begins in.
	Start world.AreaKey

	// NpcTick is the target cadence of the NPC ticker.
	NpcTick time.Duration

	// StepJitter bounds the random delay between NPC step emissions
	// within one tick.
	StepJitter time.Duration

	// MaxTargetAttempts caps the random draws for an Empty NPC target.
	MaxTargetAttempts int
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		NpcTick:           1500 * time.Millisecond,
		StepJitter:        250 * time.Millisecond,
		MaxTargetAttempts: 10,
	}
}
