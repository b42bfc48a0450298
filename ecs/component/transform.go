package component

// Transform places an entity in world pixels. X and Y are the centre of the
// entity, matching where Chipmunk keeps body positions.
type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()

// Area is the trigger box used by overlap checks, centred on the Transform.
type Area struct {
	Width  float64
	Height float64
}

var AreaComponent = NewComponent[Area]()
