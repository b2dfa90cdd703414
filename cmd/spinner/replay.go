package main

import (
	"errors"

	"github.com/younwookim/spinner/internal/application/controller"
	"github.com/younwookim/spinner/internal/application/event"
	"github.com/younwookim/spinner/internal/application/replay"
	"github.com/younwookim/spinner/internal/application/scene/spinning"
	"github.com/younwookim/spinner/internal/application/state"
	"github.com/younwookim/spinner/internal/infrastructure/config"
	"github.com/younwookim/spinner/internal/infrastructure/metrics"
	"go.uber.org/zap"
)

// ReplaySummary is the outcome of a headless replay
type ReplaySummary struct {
	Frames          int
	State           state.GameState
	SuccessfulSpins int
	Picks           int
	Booms           int
	Events          map[event.Type]int
}

// runReplay plays recorded input through the spinning scene without a window
func runReplay(cfg *config.GameConfig, data *replay.ReplayData, log *zap.Logger, m *metrics.Metrics) (ReplaySummary, error) {
	summary := ReplaySummary{Events: make(map[event.Type]int)}
	if err := data.CheckRules(replay.RulesFor(cfg)); err != nil {
		return summary, err
	}
	counter := event.ListenerFunc(func(e event.Event) {
		summary.Events[e.Type]++
	})

	opts := []spinning.Option{spinning.WithSeed(data.Seed), spinning.WithListener(counter)}
	if m != nil {
		opts = append(opts, spinning.WithMetrics(m))
	}

	replayer := replay.NewReplayer(*data)
	s := spinning.New(cfg, controller.NewRegistry(log), spinning.ReplayInput{Replayer: replayer}, log, opts...)
	s.OnEnter()
	defer s.OnExit()

	ctrl := s.Controller()
	if ctrl == nil {
		return summary, errors.New("replay scene has no controller")
	}

	dt := 1.0 / float64(cfg.Display.Framerate)
	for !replayer.Done() {
		if _, err := s.Update(dt); err != nil {
			return summary, err
		}
		summary.Frames++
	}

	summary.State = ctrl.CurrentState()
	summary.SuccessfulSpins = ctrl.SuccessfulSpins()
	summary.Picks = s.Wheel().Picks()
	summary.Booms = s.Wheel().Booms()
	return summary, nil
}
