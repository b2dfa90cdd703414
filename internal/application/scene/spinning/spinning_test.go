package spinning

import (
	"path/filepath"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/spinner/internal/application/controller"
	"github.com/younwookim/spinner/internal/application/event"
	"github.com/younwookim/spinner/internal/application/replay"
	"github.com/younwookim/spinner/internal/application/state"
	"github.com/younwookim/spinner/internal/infrastructure/config"
	"github.com/younwookim/spinner/internal/infrastructure/metrics"
)

// step is the frame time used by these tests; default timings are whole multiples of it
const step = 0.5

// scriptedInput presses spin on the listed frames
type scriptedInput struct {
	frame int
	press map[int]bool
}

func pressOn(frames ...int) *scriptedInput {
	in := &scriptedInput{press: make(map[int]bool)}
	for _, f := range frames {
		in.press[f] = true
	}
	return in
}

func (in *scriptedInput) SpinPressed() bool {
	p := in.press[in.frame]
	in.frame++
	return p
}

// createTestConfig creates a config whose wheel always or never booms
func createTestConfig(boomChance float64) *config.GameConfig {
	cfg := config.Default()
	cfg.Reward.BoomChance = boomChance
	return cfg
}

func run(t *testing.T, s *Spinning, frames int) {
	t.Helper()
	for i := 0; i < frames; i++ {
		next, err := s.Update(step)
		require.NoError(t, err)
		require.Nil(t, next)
	}
}

func TestOnEnter_StartsController(t *testing.T) {
	reg := controller.NewRegistry(nil)
	s := New(createTestConfig(0), reg, pressOn(), nil, WithSeed(1))

	s.OnEnter()

	require.NotNil(t, s.Controller())
	assert.Same(t, s.Controller(), reg.Active())
	assert.Equal(t, state.StateStart, s.Controller().CurrentState())
	assert.Equal(t, 0, s.Controller().SuccessfulSpins())
	assert.Empty(t, s.Banner(), "counter 0 shows no milestone")
	assert.Equal(t, int64(1), s.Seed())
}

func TestSpin_FullRoundWithoutBoom(t *testing.T) {
	s := New(createTestConfig(0), controller.NewRegistry(nil), pressOn(0), nil, WithSeed(1))
	s.OnEnter()
	ctrl := s.Controller()

	run(t, s, 1)
	assert.Equal(t, state.StateSpin, ctrl.CurrentState())
	assert.Equal(t, 1, s.Wheel().Picks(), "wheel picks when the spin starts")

	run(t, s, 5) // 3s
	assert.Equal(t, state.StateDecision, ctrl.CurrentState())

	run(t, s, 2) // 4s
	assert.Equal(t, state.StateReward, ctrl.CurrentState())
	assert.Equal(t, 1, ctrl.SuccessfulSpins())

	run(t, s, 2) // 5s
	assert.Equal(t, state.StateStart, ctrl.CurrentState())
	assert.Equal(t, "BRONZE SPIN", s.Banner())

	run(t, s, 3) // banner expires after 1.5s
	assert.Empty(t, s.Banner())
}

func TestSpin_BoomEndsRun(t *testing.T) {
	s := New(createTestConfig(1), controller.NewRegistry(nil), pressOn(0), nil, WithSeed(1))
	s.OnEnter()
	ctrl := s.Controller()

	run(t, s, 8)
	assert.Equal(t, state.StateGameOver, ctrl.CurrentState())
	assert.Equal(t, 0, ctrl.SuccessfulSpins())
	assert.Equal(t, "BOOM! GAME OVER", s.Banner())

	run(t, s, 2)
	assert.Equal(t, state.StateStart, ctrl.CurrentState())
}

func TestSpin_PressIgnoredOutsideStart(t *testing.T) {
	s := New(createTestConfig(0), controller.NewRegistry(nil), pressOn(0, 1, 2, 3), nil, WithSeed(1))
	s.OnEnter()

	run(t, s, 4)

	assert.Equal(t, state.StateSpin, s.Controller().CurrentState())
	assert.Equal(t, 1, s.Wheel().Picks())
}

func TestSilverBannerAfterFiveSpins(t *testing.T) {
	// one round is 10 frames: press, 5 spin, 2 decision, 2 reward
	s := New(createTestConfig(0), controller.NewRegistry(nil), pressOn(0, 10, 20, 30, 40), nil, WithSeed(1))
	s.OnEnter()

	run(t, s, 50)

	assert.Equal(t, state.StateStart, s.Controller().CurrentState())
	assert.Equal(t, 5, s.Controller().SuccessfulSpins())
	assert.Equal(t, "SILVER SPIN!", s.Banner())
}

func TestDuplicateSceneIsDisabled(t *testing.T) {
	reg := controller.NewRegistry(nil)
	first := New(createTestConfig(0), reg, pressOn(), nil, WithSeed(1))
	second := New(createTestConfig(0), reg, pressOn(0), nil, WithSeed(2))

	first.OnEnter()
	second.OnEnter()

	assert.Nil(t, second.Controller())
	assert.Same(t, first.Controller(), reg.Active())

	run(t, second, 3)
	assert.Equal(t, state.StateStart, first.Controller().CurrentState(), "duplicate input drives nothing")

	second.Draw(ebiten.NewImage(320, 240))
	second.OnExit()
	assert.Same(t, first.Controller(), reg.Active(), "duplicate teardown leaves the original registered")
}

func TestOnExit_DestroysAndReleases(t *testing.T) {
	reg := controller.NewRegistry(nil)
	s := New(createTestConfig(0), reg, pressOn(0), nil, WithSeed(1))
	s.OnEnter()
	ctrl := s.Controller()
	run(t, s, 1)

	s.OnExit()

	assert.True(t, ctrl.Destroyed())
	assert.Nil(t, reg.Active())
	_, ok := ctrl.Pending()
	assert.False(t, ok, "pending spin dropped on teardown")

	s.Events().Dispatch(event.Event{Type: event.SilverSpinReached})
	assert.Empty(t, s.Banner(), "scene listener unsubscribed")
}

func TestRecording_SavedOnExit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := New(createTestConfig(0.5), controller.NewRegistry(nil), pressOn(0, 10), nil, WithSeed(77), WithRecording(path))
	s.OnEnter()
	run(t, s, 12)
	s.OnExit()

	data, err := replay.LoadReplay(path)
	require.NoError(t, err)
	assert.Equal(t, int64(77), data.Seed)
	assert.Equal(t, replay.RulesFor(createTestConfig(0.5)), data.Rules)
	require.Len(t, data.Frames, 12)
	assert.True(t, data.Frames[0].S)
	assert.True(t, data.Frames[10].S)
	assert.False(t, data.Frames[5].S)
}

func TestReplayInput_ReproducesSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	live := New(createTestConfig(0.5), controller.NewRegistry(nil), pressOn(0, 10, 20, 30, 40, 50), nil,
		WithSeed(2024), WithRecording(path))
	live.OnEnter()
	run(t, live, 60)
	wantState := live.Controller().CurrentState()
	wantSpins := live.Controller().SuccessfulSpins()
	wantBooms := live.Wheel().Booms()
	live.OnExit()

	data, err := replay.LoadReplay(path)
	require.NoError(t, err)

	replayed := New(createTestConfig(0.5), controller.NewRegistry(nil),
		ReplayInput{Replayer: replay.NewReplayer(*data)}, nil, WithSeed(data.Seed))
	replayed.OnEnter()
	run(t, replayed, len(data.Frames))

	assert.Equal(t, wantState, replayed.Controller().CurrentState())
	assert.Equal(t, wantSpins, replayed.Controller().SuccessfulSpins())
	assert.Equal(t, wantBooms, replayed.Wheel().Booms())
}

func TestMetrics_CountEvents(t *testing.T) {
	m, err := metrics.New(prometheus.NewRegistry())
	require.NoError(t, err)

	s := New(createTestConfig(0), controller.NewRegistry(nil), pressOn(0), nil, WithSeed(1), WithMetrics(m))
	s.OnEnter()
	run(t, s, 10)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Events(event.SpinComplete)), "initial Start plus return to Start")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Events(event.SuccessfulSpin)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Events(event.BronzeSpin)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SuccessfulSpins()))
}

func TestDraw_AllStates(t *testing.T) {
	s := New(createTestConfig(0), controller.NewRegistry(nil), pressOn(), nil, WithSeed(1))
	s.OnEnter()
	img := ebiten.NewImage(320, 240)

	for _, st := range state.All {
		s.Controller().TransitionTo(st)
		assert.NotPanics(t, func() { s.Draw(img) }, "state %s", st)
	}
}
