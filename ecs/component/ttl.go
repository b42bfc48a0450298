package component

// TTL is the number of frames left before the entity is destroyed.
type TTL struct {
	Frames int
}

var TTLComponent = NewComponent[TTL]()
