package component

// LevelProgress is the per-level run state shown by the HUD. It is rebuilt on
// every level load, so counters start from zero.
type LevelProgress struct {
	Index          int
	Name           string
	Score          int
	Stars          int
	StarsRemaining int
	Frames         int
	Width          float64
	Height         float64
	LastLevel      bool
}

var LevelProgressComponent = NewComponent[LevelProgress]()

// Persistent entities survive level reloads.
type Persistent struct{}

var PersistentComponent = NewComponent[Persistent]()
