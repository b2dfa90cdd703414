package state

import "errors"

// ErrInvalidState is wrapped by every failure caused by a GameState outside the enumerated values.
var ErrInvalidState = errors.New("invalid game state")

// GameState represents the current phase of a spin round
type GameState int

const (
	StateStart GameState = iota
	StateSpin
	StateDecision
	StateReward
	StateGameOver
)

// All lists every valid state in declaration order
var All = []GameState{StateStart, StateSpin, StateDecision, StateReward, StateGameOver}

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StateStart:
		return "Start"
	case StateSpin:
		return "Spin"
	case StateDecision:
		return "Decision"
	case StateReward:
		return "Reward"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Valid reports whether s is one of the enumerated states
func (s GameState) Valid() bool {
	return s >= StateStart && s <= StateGameOver
}
