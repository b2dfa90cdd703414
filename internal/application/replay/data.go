package replay

import (
	"time"

	"github.com/younwookim/spinner/internal/infrastructure/config"
)

// FrameInput records input state for a single frame
type FrameInput struct {
	F int  `json:"f"`           // Frame number
	S bool `json:"s,omitempty"` // Spin pressed
}

// Rules is the part of the game config a replay depends on.
// The same frames replayed under different rules give a different session.
type Rules struct {
	Framerate   int           `json:"framerate"`
	Spin        time.Duration `json:"spin"`
	Decision    time.Duration `json:"decision"`
	Reward      time.Duration `json:"reward"`
	GameOver    time.Duration `json:"gameOver"`
	SilverEvery int           `json:"silverEvery"`
	SuperEvery  int           `json:"superEvery"`
	BoomChance  float64       `json:"boomChance"`
}

// RulesFor extracts the replay-relevant settings from cfg
func RulesFor(cfg *config.GameConfig) Rules {
	return Rules{
		Framerate:   cfg.Display.Framerate,
		Spin:        cfg.Timing.Spin,
		Decision:    cfg.Timing.Decision,
		Reward:      cfg.Timing.Reward,
		GameOver:    cfg.Timing.GameOver,
		SilverEvery: cfg.Milestones.SilverEvery,
		SuperEvery:  cfg.Milestones.SuperEvery,
		BoomChance:  cfg.Reward.BoomChance,
	}
}

// ReplayData contains all data needed to replay a game session
type ReplayData struct {
	Version   string       `json:"version"`
	Seed      int64        `json:"seed"` // Reward wheel seed
	Rules     Rules        `json:"rules"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}

// Version is written into every recording
const Version = "1.1"
