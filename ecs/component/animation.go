package component

import "github.com/hajimehoshi/ebiten/v2"

// Pose names the player texture family selected each frame.
type Pose string

const (
	PoseIdle  Pose = "idle"
	PoseJump  Pose = "jump"
	PoseFall  Pose = "fall"
	PoseWalk  Pose = "walk"
	PoseClimb Pose = "climb"
)

// Animation holds the frames for every pose and the one currently shown.
type Animation struct {
	Clips   map[Pose][]*ebiten.Image
	Current Pose
	Frame   int
}

var AnimationComponent = NewComponent[Animation]()
