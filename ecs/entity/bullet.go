package entity

import (
	"fmt"

	"github.com/milk9111/rakesh/ecs"
)

// NewBulletAt builds a bullet centred on (x, y) and rotated to angle. Its
// prefab carries a one-step force along the local X axis, so the rotation is
// also the launch direction.
func NewBulletAt(w *ecs.World, x, y, angle float64) (ecs.Entity, error) {
	bullet, err := BuildEntity(w, "bullet.yaml")
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, bullet, x, y, angle); err != nil {
		return 0, fmt.Errorf("bullet: override transform: %w", err)
	}
	return bullet, nil
}
