package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks value ranges that the game loop depends on
func (c *GameConfig) Validate() error {
	var errs []error

	if c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0 {
		errs = append(errs, fmt.Errorf("display size %dx%d must be positive", c.Display.ScreenWidth, c.Display.ScreenHeight))
	}
	if c.Display.Framerate <= 0 {
		errs = append(errs, fmt.Errorf("display framerate %d must be positive", c.Display.Framerate))
	}

	timings := []struct {
		name  string
		value int64
	}{
		{"spin", int64(c.Timing.Spin)},
		{"decision", int64(c.Timing.Decision)},
		{"reward", int64(c.Timing.Reward)},
		{"gameOver", int64(c.Timing.GameOver)},
	}
	for _, tm := range timings {
		if tm.value <= 0 {
			errs = append(errs, fmt.Errorf("timing %s must be positive", tm.name))
		}
	}

	if c.Milestones.SilverEvery <= 0 {
		errs = append(errs, fmt.Errorf("milestones silverEvery %d must be positive", c.Milestones.SilverEvery))
	}
	if c.Milestones.SuperEvery <= 0 {
		errs = append(errs, fmt.Errorf("milestones superEvery %d must be positive", c.Milestones.SuperEvery))
	}
	if c.Reward.BoomChance < 0 || c.Reward.BoomChance > 1 {
		errs = append(errs, fmt.Errorf("reward boomChance %v must be within [0,1]", c.Reward.BoomChance))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
