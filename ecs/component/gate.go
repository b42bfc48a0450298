package component

// Key opens the Lock with the same Pair once carried into it.
type Key struct {
	Pair    int
	Grabbed bool
}

var KeyComponent = NewComponent[Key]()

type Lock struct {
	Pair int
}

var LockComponent = NewComponent[Lock]()

// Exit advances the run once every star in the level has been collected.
// A prize exit ends the game instead of loading the next level.
type Exit struct {
	Prize bool
}

var ExitComponent = NewComponent[Exit]()

type Ladder struct{}

var LadderComponent = NewComponent[Ladder]()
