package replay

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/younwookim/spinner/internal/infrastructure/config"
)

// ErrRulesMismatch is returned when a recording is replayed under different game rules
var ErrRulesMismatch = errors.New("replay rules mismatch")

// Replayer handles input playback from recorded data
type Replayer struct {
	data  ReplayData
	frame int
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{data: data}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	if err := json.NewDecoder(file).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	if data.Version != Version {
		return nil, fmt.Errorf("unsupported replay version %q", data.Version)
	}

	return &data, nil
}

// CheckRules fails when rules differ from the ones the session was recorded with
func (d *ReplayData) CheckRules(rules Rules) error {
	if d.Rules != rules {
		return fmt.Errorf("%w: recorded %+v, configured %+v", ErrRulesMismatch, d.Rules, rules)
	}
	return nil
}

// GetInput returns whether spin was pressed on the current frame and advances.
// ok is false once every frame has been played.
func (r *Replayer) GetInput() (spin bool, ok bool) {
	if r.frame >= len(r.data.Frames) {
		return false, false
	}
	fi := r.data.Frames[r.frame]
	r.frame++
	return fi.S, true
}

// Done reports whether every frame has been played
func (r *Replayer) Done() bool {
	return r.frame >= len(r.data.Frames)
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Seed returns the seed used for the replay
func (r *Replayer) Seed() int64 {
	return r.data.Seed
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
}

// CreateTestReplayData creates replay data for testing under the default rules.
// Spin is pressed on every frame listed in spinFrames.
func CreateTestReplayData(frames int, spinFrames ...int) ReplayData {
	data := ReplayData{
		Version:   Version,
		Seed:      12345,
		Rules:     RulesFor(config.Default()),
		StartTime: time.Now().Format(time.RFC3339),
		Frames:    make([]FrameInput, frames),
	}
	for i := 0; i < frames; i++ {
		data.Frames[i] = FrameInput{F: i}
	}
	for _, f := range spinFrames {
		if f >= 0 && f < frames {
			data.Frames[f].S = true
		}
	}
	return data
}
