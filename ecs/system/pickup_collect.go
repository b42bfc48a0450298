package system

import (
	"github.com/milk9111/rakesh/ecs"
	"github.com/milk9111/rakesh/ecs/component"
)

// PickupCollectSystem removes coins and stars the player touches and credits
// them to the level progress.
type PickupCollectSystem struct{}

func NewPickupCollectSystem() *PickupCollectSystem {
	return &PickupCollectSystem{}
}

func (s *PickupCollectSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	_, rect, ok := playerRect(w)
	if !ok {
		return
	}
	_, progress, _ := levelProgress(w)

	for _, e := range touching(w, component.PickupComponent.Kind(), rect) {
		pickup, ok := ecs.Get(w, e, component.PickupComponent.Kind())
		if !ok {
			continue
		}
		if progress != nil {
			switch pickup.Kind {
			case component.PickupCoin:
				progress.Score++
			case component.PickupStar:
				progress.Stars++
				if progress.StarsRemaining > 0 {
					progress.StarsRemaining--
				}
			}
		}
		playSound(w, pickup.Sound)
		w.DestroyEntity(e)
	}
}
