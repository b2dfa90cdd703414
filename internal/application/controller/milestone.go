package controller

import (
	"github.com/younwookim/spinner/internal/application/event"
	"github.com/younwookim/spinner/internal/infrastructure/config"
)

// Milestone picks the event announced when Start is entered with count successful spins.
// A zero count announces nothing.
func Milestone(count int, m config.MilestonesConfig) (event.Type, bool) {
	silver := count%m.SilverEvery == 0
	super := count%m.SuperEvery == 0

	switch {
	case count != 0 && super:
		return event.SuperSpinReached, true
	case count != 0 && silver:
		return event.SilverSpinReached, true
	case !silver && !super:
		return event.BronzeSpin, true
	default:
		return "", false
	}
}
