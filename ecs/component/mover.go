package component

// Mover drives moving platforms and moving spikes. Change is in pixels per
// frame; a nil boundary leaves that side unbounded.
type Mover struct {
	ChangeX float64
	ChangeY float64

	BoundaryLeft   *float64
	BoundaryRight  *float64
	BoundaryTop    *float64
	BoundaryBottom *float64

	// Script names a tengo file under prefabs/scripts that replaces the
	// boundary bounce.
	Script string
}

var MoverComponent = NewComponent[Mover]()
