package component

// Camera is the scrolling viewport. X and Y are the world position of the
// top-left corner of the screen.
type Camera struct {
	X      float64
	Y      float64
	Width  float64
	Height float64

	MarginLeft   float64
	MarginRight  float64
	MarginTop    float64
	MarginBottom float64
}

var CameraComponent = NewComponent[Camera]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()
