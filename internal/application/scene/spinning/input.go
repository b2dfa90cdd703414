package spinning

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/younwookim/spinner/internal/application/replay"
)

// Input reports the player's spin request for the current frame
type Input interface {
	SpinPressed() bool
}

// KeyboardInput reads Space, Enter or a left click
type KeyboardInput struct{}

// SpinPressed implements Input
func (KeyboardInput) SpinPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}

// ReplayInput feeds recorded frames back into the scene
type ReplayInput struct {
	Replayer *replay.Replayer
}

// SpinPressed implements Input. Frames past the end of the recording press nothing.
func (r ReplayInput) SpinPressed() bool {
	spin, _ := r.Replayer.GetInput()
	return spin
}
