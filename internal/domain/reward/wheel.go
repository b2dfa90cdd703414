// Package reward provides the outcome source used by the demo host: a wheel
// that lands on a bomb with a configured probability.
package reward

import (
	"math/rand"

	"github.com/younwookim/spinner/internal/infrastructure/config"
)

// Wheel picks spin outcomes from a seeded RNG so sessions can be replayed
type Wheel struct {
	boomChance  float64
	rng         *rand.Rand
	seed        int64
	subscribers []subscriber
	nextID      int
	picks       int
	booms       int
}

type subscriber struct {
	id int
	fn func(isBoom bool)
}

// NewWheel creates a wheel with the given seed
func NewWheel(cfg config.RewardConfig, seed int64) *Wheel {
	return &Wheel{
		boomChance: cfg.BoomChance,
		rng:        rand.New(rand.NewSource(seed)),
		seed:       seed,
	}
}

// SubscribeOutcome registers fn for every pick
func (w *Wheel) SubscribeOutcome(fn func(isBoom bool)) (unsubscribe func()) {
	w.nextID++
	id := w.nextID
	w.subscribers = append(w.subscribers, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range w.subscribers {
			if s.id == id {
				w.subscribers = append(w.subscribers[:i:i], w.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Pick decides the next outcome and notifies subscribers
func (w *Wheel) Pick() bool {
	isBoom := w.rng.Float64() < w.boomChance
	w.picks++
	if isBoom {
		w.booms++
	}
	for _, s := range w.subscribers {
		s.fn(isBoom)
	}
	return isBoom
}

// Seed returns the seed the wheel was created with
func (w *Wheel) Seed() int64 {
	return w.seed
}

// Picks returns how many outcomes have been picked
func (w *Wheel) Picks() int {
	return w.picks
}

// Booms returns how many picks landed on a bomb
func (w *Wheel) Booms() int {
	return w.booms
}
