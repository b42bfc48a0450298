package component

// Input stores per-frame input state. AimX and AimY are in world pixels.
type Input struct {
	Left        bool
	Right       bool
	Up          bool
	Down        bool
	JumpPressed bool
	Fire        bool
	AimX        float64
	AimY        float64
}

var InputComponent = NewComponent[Input]()
