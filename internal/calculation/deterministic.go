package calculation

import (
	"math/rand/v2"
	"time"
)

// nowFunc returns the current time (override in tests for determinism).
var nowFunc = time.Now

// SetNowFunc overrides the time provider (use only in tests).
func SetNowFunc(f func() time.Time) { nowFunc = f }

// seedFunc returns a pseudo-random seed (override for deterministic Monte Carlo tests).
var seedFunc = func() int64 { return time.Now().UnixNano() }

// SetSeedFunc overrides the seed provider (use only in tests).
func SetSeedFunc(f func() int64) { seedFunc = f }

// resolveSeed returns seed, or a fresh one from seedFunc when seed is zero.
func resolveSeed(seed int64) int64 {
	if seed == 0 {
		return seedFunc()
	}
	return seed
}

// NewTrialRand returns the random stream of one trial. Streams for different
// trials of the same seed are independent, so results do not depend on the
// order in which workers pick trials up.
func NewTrialRand(seed int64, trial int) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(trial)))
}
