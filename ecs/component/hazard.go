package component

// Hazard restarts the level when the player overlaps it.
type Hazard struct {
	Sound string
}

var HazardComponent = NewComponent[Hazard]()
