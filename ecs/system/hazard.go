package system

import (
	"github.com/charmbracelet/log"
	"github.com/milk9111/rakesh/ecs"
	"github.com/milk9111/rakesh/ecs/component"
)

// HazardSystem restarts the level when the player touches spikes, bombs or
// lava.
type HazardSystem struct{}

func NewHazardSystem() *HazardSystem {
	return &HazardSystem{}
}

func (s *HazardSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	if ecs.Count(w, component.ReloadRequestComponent.Kind()) > 0 {
		return
	}
	_, rect, ok := playerRect(w)
	if !ok {
		return
	}

	hits := touching(w, component.HazardComponent.Kind(), rect)
	if len(hits) == 0 {
		return
	}
	hazard, ok := ecs.Get(w, hits[0], component.HazardComponent.Kind())
	if !ok {
		return
	}
	playSound(w, hazard.Sound)
	log.Debug("hazard hit", "entity", hits[0], "sound", hazard.Sound)

	req := w.CreateEntity()
	_ = ecs.Add(w, req, component.ReloadRequestComponent.Kind(), &component.ReloadRequest{Reason: hazard.Sound})
}
