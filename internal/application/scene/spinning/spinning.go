// Package spinning provides the spin-the-wheel scene that hosts the game controller.
package spinning

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/younwookim/spinner/internal/application/controller"
	"github.com/younwookim/spinner/internal/application/event"
	"github.com/younwookim/spinner/internal/application/replay"
	"github.com/younwookim/spinner/internal/application/scene"
	"github.com/younwookim/spinner/internal/application/state"
	"github.com/younwookim/spinner/internal/domain/reward"
	"github.com/younwookim/spinner/internal/infrastructure/config"
	"github.com/younwookim/spinner/internal/infrastructure/metrics"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
)

// bannerSeconds is how long a milestone banner stays on screen
const bannerSeconds = 1.5

var stateColors = map[state.GameState]color.RGBA{
	state.StateStart:    colornames.Steelblue,
	state.StateSpin:     colornames.Goldenrod,
	state.StateDecision: colornames.Darkorange,
	state.StateReward:   colornames.Seagreen,
	state.StateGameOver: colornames.Firebrick,
}

var bannerText = map[event.Type]string{
	event.BronzeSpin:        "BRONZE SPIN",
	event.SilverSpinReached: "SILVER SPIN!",
	event.SuperSpinReached:  "SUPER SPIN!!",
}

// Option configures a Spinning scene
type Option func(*Spinning)

// WithSeed fixes the reward wheel seed
func WithSeed(seed int64) Option {
	return func(s *Spinning) { s.seed = seed }
}

// WithRecording records every frame's input and saves it to path on exit
func WithRecording(path string) Option {
	return func(s *Spinning) { s.recordPath = path }
}

// WithMetrics counts controller events into m
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Spinning) { s.metrics = m }
}

// WithListener subscribes l to every controller event, starting with the first Start
func WithListener(l event.Listener) Option {
	return func(s *Spinning) { s.listeners = append(s.listeners, l) }
}

// Spinning is the main gameplay scene
type Spinning struct {
	config    *config.GameConfig
	registry  *controller.Registry
	input     Input
	log       *zap.Logger
	metrics   *metrics.Metrics
	listeners []event.Listener

	events *event.Dispatcher
	wheel  *reward.Wheel
	ctrl   *controller.Controller

	seed       int64
	recorder   *replay.Recorder
	recordPath string

	banner      string
	bannerTimer float64

	unsubscribes []func()
}

// New creates a new Spinning scene. The controller is created on OnEnter.
func New(cfg *config.GameConfig, registry *controller.Registry, input Input, log *zap.Logger, opts ...Option) *Spinning {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Spinning{
		config:   cfg,
		registry: registry,
		input:    input,
		log:      log.Named("spinning"),
		seed:     cfg.Reward.Seed,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.seed == 0 {
		s.seed = time.Now().UnixNano()
	}
	return s
}

// OnEnter creates the controller, registers it and enters Start (implements scene.Scene)
func (s *Spinning) OnEnter() {
	s.events = event.NewDispatcher()
	s.wheel = reward.NewWheel(s.config.Reward, s.seed)
	ctrl := controller.New(s.config, s.events, s.wheel, s.log)

	if err := s.registry.Register(ctrl); err != nil {
		s.log.Error("scene disabled", zap.Error(err))
		return
	}
	s.ctrl = ctrl

	s.unsubscribes = append(s.unsubscribes, s.events.SubscribeAll(event.ListenerFunc(s.onEvent)))
	for _, l := range s.listeners {
		s.unsubscribes = append(s.unsubscribes, s.events.SubscribeAll(l))
	}
	if s.metrics != nil {
		s.unsubscribes = append(s.unsubscribes, s.metrics.Track(s.events, ctrl.SuccessfulSpins))
	}

	if s.recordPath != "" {
		s.recorder = replay.NewRecorder(s.seed, replay.RulesFor(s.config))
		s.log.Info("recording enabled", zap.String("path", s.recordPath), zap.Int64("seed", s.seed))
	}

	ctrl.Enable()
	ctrl.TransitionTo(state.StateStart)
}

// OnExit tears the controller down and saves the recording (implements scene.Scene)
func (s *Spinning) OnExit() {
	for _, unsubscribe := range s.unsubscribes {
		unsubscribe()
	}
	s.unsubscribes = nil

	if s.ctrl != nil {
		s.ctrl.Destroy()
		s.registry.Release(s.ctrl)
	}
	s.saveRecording()
}

// Update proceeds the game state (implements scene.Scene)
func (s *Spinning) Update(dt float64) (scene.Scene, error) {
	if s.ctrl == nil {
		return nil, nil
	}

	spin := s.input.SpinPressed()
	if s.recorder != nil {
		s.recorder.RecordFrame(spin)
	}

	// The wheel decides while it spins, well before Decision times out
	if spin && s.ctrl.RequestSpin() {
		s.wheel.Pick()
	}

	s.ctrl.Tick(time.Duration(math.Round(dt * float64(time.Second))))

	if s.bannerTimer > 0 {
		s.bannerTimer -= dt
		if s.bannerTimer <= 0 {
			s.banner = ""
		}
	}

	return nil, nil // nil = stay on this scene
}

func (s *Spinning) onEvent(e event.Event) {
	s.log.Debug("event", zap.String("type", string(e.Type)), zap.Int("successfulSpins", s.ctrl.SuccessfulSpins()))
	if text, ok := bannerText[e.Type]; ok {
		s.banner = text
		s.bannerTimer = bannerSeconds
	}
	if e.Type == event.RewardDecided && s.ctrl.CurrentState() == state.StateGameOver {
		s.banner = "BOOM! GAME OVER"
		s.bannerTimer = bannerSeconds
	}
}

// saveRecording saves the current recording to file
func (s *Spinning) saveRecording() {
	if s.recorder == nil {
		return
	}
	s.recorder.Stop()

	filename := s.recordPath
	if filename == "" {
		filename = replay.GenerateFilename()
	}

	if err := s.recorder.Save(filename); err != nil {
		s.log.Error("failed to save recording", zap.Error(err))
	} else {
		s.log.Info("recording saved", zap.String("path", filename), zap.Int("frames", s.recorder.FrameCount()))
	}
}

// Draw renders the wheel status
func (s *Spinning) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)
	if s.ctrl == nil {
		ebitenutil.DebugPrintAt(screen, "another game controller is active", 8, 8)
		return
	}

	st := s.ctrl.CurrentState()
	w := float64(s.config.Display.ScreenWidth)
	h := float64(s.config.Display.ScreenHeight)
	ebitenutil.DrawRect(screen, w/2-40, h/2-40, 80, 80, stateColors[st])

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("STATE: %s", st), 8, 8)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("SPINS: %d", s.ctrl.SuccessfulSpins()), 8, 24)
	if remaining, ok := s.ctrl.Pending(); ok {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("NEXT IN: %.1fs", remaining.Seconds()), 8, 40)
	}
	if st == state.StateStart {
		ebitenutil.DebugPrintAt(screen, "SPACE / CLICK TO SPIN", 8, int(h)-24)
	}
	if s.banner != "" {
		ebitenutil.DebugPrintAt(screen, s.banner, int(w/2)-len(s.banner)*3, int(h/2)+48)
	}
}

// Controller returns the scene's controller, or nil if registration failed
func (s *Spinning) Controller() *controller.Controller {
	return s.ctrl
}

// Events returns the dispatcher listeners can subscribe to
func (s *Spinning) Events() *event.Dispatcher {
	return s.events
}

// Wheel returns the reward wheel
func (s *Spinning) Wheel() *reward.Wheel {
	return s.wheel
}

// Banner returns the milestone text currently shown
func (s *Spinning) Banner() string {
	return s.banner
}

// Seed returns the wheel seed
func (s *Spinning) Seed() int64 {
	return s.seed
}
