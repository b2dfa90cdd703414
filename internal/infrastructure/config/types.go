package config

import "time"

// GameConfig is the root config for game.yaml
type GameConfig struct {
	Display    DisplayConfig    `yaml:"display"`
	Timing     TimingConfig     `yaml:"timing"`
	Milestones MilestonesConfig `yaml:"milestones"`
	Reward     RewardConfig     `yaml:"reward"`
	Log        LogConfig        `yaml:"log"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screenWidth"`
	ScreenHeight int    `yaml:"screenHeight"`
	Scale        int    `yaml:"scale"`
	Framerate    int    `yaml:"framerate"`
	Title        string `yaml:"title"`
}

// TimingConfig holds how long each timed state lasts before auto-advancing
type TimingConfig struct {
	Spin     time.Duration `yaml:"spin"`
	Decision time.Duration `yaml:"decision"`
	Reward   time.Duration `yaml:"reward"`
	GameOver time.Duration `yaml:"gameOver"`
}

// MilestonesConfig holds the successful-spin moduli checked on every Start
type MilestonesConfig struct {
	SilverEvery int `yaml:"silverEvery"`
	SuperEvery  int `yaml:"superEvery"`
}

type RewardConfig struct {
	BoomChance float64 `yaml:"boomChance"` // Probability in [0,1] that a spin lands on a bomb
	Seed       int64   `yaml:"seed"`       // 0 = seed from the clock
}

type LogConfig struct {
	Level string `yaml:"level"`
	Dir   string `yaml:"dir"`
	File  bool   `yaml:"file"` // Also write rotating log files under Dir
}

// Default returns the configuration used when game.yaml omits a value
func Default() *GameConfig {
	return &GameConfig{
		Display: DisplayConfig{
			ScreenWidth:  320,
			ScreenHeight: 240,
			Scale:        2,
			Framerate:    60,
			Title:        "Spinner",
		},
		Timing: TimingConfig{
			Spin:     3 * time.Second,
			Decision: time.Second,
			Reward:   time.Second,
			GameOver: time.Second,
		},
		Milestones: MilestonesConfig{
			SilverEvery: 5,
			SuperEvery:  30,
		},
		Reward: RewardConfig{
			BoomChance: 0.1,
		},
		Log: LogConfig{
			Level: "info",
			Dir:   "logs",
		},
	}
}
