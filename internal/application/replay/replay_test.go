package replay

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/spinner/internal/infrastructure/config"
)

func TestReplayer_GetInput(t *testing.T) {
	data := CreateTestReplayData(3, 1)
	replayer := NewReplayer(data)

	spin, ok := replayer.GetInput()
	require.True(t, ok)
	assert.False(t, spin)

	spin, ok = replayer.GetInput()
	require.True(t, ok)
	assert.True(t, spin)

	spin, ok = replayer.GetInput()
	require.True(t, ok)
	assert.False(t, spin)
	assert.True(t, replayer.Done())

	// End of frames
	_, ok = replayer.GetInput()
	assert.False(t, ok)
}

func TestReplayer_CurrentFrame(t *testing.T) {
	replayer := NewReplayer(CreateTestReplayData(5))

	assert.Equal(t, 0, replayer.CurrentFrame())

	replayer.GetInput()
	assert.Equal(t, 1, replayer.CurrentFrame())

	replayer.GetInput()
	replayer.GetInput()
	assert.Equal(t, 3, replayer.CurrentFrame())
	assert.Equal(t, 5, replayer.TotalFrames())
}

func TestReplayer_Reset(t *testing.T) {
	replayer := NewReplayer(CreateTestReplayData(2, 0))

	replayer.GetInput()
	replayer.GetInput()
	_, ok := replayer.GetInput()
	assert.False(t, ok)

	replayer.Reset()
	assert.Equal(t, 0, replayer.CurrentFrame())

	spin, ok := replayer.GetInput()
	assert.True(t, ok)
	assert.True(t, spin)
}

func TestCreateTestReplayData(t *testing.T) {
	data := CreateTestReplayData(60, 10, 20, 99)

	assert.Equal(t, Version, data.Version)
	assert.Equal(t, int64(12345), data.Seed)
	assert.Equal(t, 60, len(data.Frames))

	for i, frame := range data.Frames {
		assert.Equal(t, i, frame.F, "Frame number mismatch at index %d", i)
		assert.Equal(t, i == 10 || i == 20, frame.S, "frame %d", i)
	}
}

func TestRecorder_RecordAndStop(t *testing.T) {
	r := NewRecorder(99, RulesFor(config.Default()))
	assert.True(t, r.IsRecording())

	r.RecordFrame(false)
	r.RecordFrame(true)
	r.Stop()
	r.RecordFrame(true)

	assert.False(t, r.IsRecording())
	assert.Equal(t, 2, r.FrameCount())
	data := r.Data()
	assert.Equal(t, int64(99), data.Seed)
	assert.Equal(t, []FrameInput{{F: 0}, {F: 1, S: true}}, data.Frames)
}

func TestRecorder_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	cfg := config.Default()
	cfg.Display.Framerate = 30
	cfg.Reward.BoomChance = 0.25
	r := NewRecorder(7, RulesFor(cfg))
	for i := 0; i < 10; i++ {
		r.RecordFrame(i == 4)
	}
	require.NoError(t, r.Save(path))

	loaded, err := LoadReplay(path)
	require.NoError(t, err)
	assert.Equal(t, int64(7), loaded.Seed)
	assert.Equal(t, RulesFor(cfg), loaded.Rules)
	assert.NoError(t, loaded.CheckRules(RulesFor(cfg)))
	assert.Len(t, loaded.Frames, 10)
	assert.True(t, loaded.Frames[4].S)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"seed"`)
	assert.Contains(t, string(raw), "\n  ", "saved indented")
}

func TestRecorder_SaveEmpty(t *testing.T) {
	err := NewRecorder(1, RulesFor(config.Default())).Save(filepath.Join(t.TempDir(), "empty.json"))
	assert.ErrorIs(t, err, ErrNoFrames)
}

func TestLoadReplay_Errors(t *testing.T) {
	_, err := LoadReplay(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))
	_, err = LoadReplay(bad)
	assert.Error(t, err)

	old := filepath.Join(t.TempDir(), "old.json")
	require.NoError(t, os.WriteFile(old, []byte(`{"version":"0.1","frames":[]}`), 0o644))
	_, err = LoadReplay(old)
	assert.ErrorContains(t, err, "unsupported replay version")
}

func TestCheckRules(t *testing.T) {
	data := CreateTestReplayData(5)
	require.NoError(t, data.CheckRules(RulesFor(config.Default())))

	tests := []struct {
		name   string
		modify func(cfg *config.GameConfig)
	}{
		{"framerate", func(cfg *config.GameConfig) { cfg.Display.Framerate = 30 }},
		{"spin delay", func(cfg *config.GameConfig) { cfg.Timing.Spin = 2 * time.Second }},
		{"game over delay", func(cfg *config.GameConfig) { cfg.Timing.GameOver = 500 * time.Millisecond }},
		{"silver milestone", func(cfg *config.GameConfig) { cfg.Milestones.SilverEvery = 3 }},
		{"boom chance", func(cfg *config.GameConfig) { cfg.Reward.BoomChance = 0.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.modify(cfg)
			assert.ErrorIs(t, data.CheckRules(RulesFor(cfg)), ErrRulesMismatch)
		})
	}
}

func TestCheckRules_IgnoresPresentation(t *testing.T) {
	data := CreateTestReplayData(5)
	cfg := config.Default()
	cfg.Display.Title = "Other"
	cfg.Display.Scale = 3
	cfg.Log.Level = "error"
	cfg.Reward.Seed = 42
	assert.NoError(t, data.CheckRules(RulesFor(cfg)))
}
