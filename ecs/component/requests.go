package component

// ReloadRequest asks the level flow to rebuild the current level.
type ReloadRequest struct {
	Reason string
}

var ReloadRequestComponent = NewComponent[ReloadRequest]()

// LevelChangeRequest asks the level flow to load TargetLevel (1-based).
type LevelChangeRequest struct {
	TargetLevel int
}

var LevelChangeRequestComponent = NewComponent[LevelChangeRequest]()

// GameComplete is left in the world once the run is won.
type GameComplete struct {
	Score int
}

var GameCompleteComponent = NewComponent[GameComplete]()
