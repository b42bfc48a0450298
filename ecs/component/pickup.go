package component

type PickupKind string

const (
	PickupCoin PickupKind = "coin"
	PickupStar PickupKind = "star"
)

// Pickup is collected on overlap with the player.
type Pickup struct {
	Kind  PickupKind
	Sound string
}

var PickupComponent = NewComponent[Pickup]()
