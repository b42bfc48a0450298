package system

import (
	"github.com/milk9111/rakesh/ecs"
	"github.com/milk9111/rakesh/ecs/component"
)

// ExitSystem advances to the next level once every star is collected and the
// player reaches an exit. A prize, or the exit of the last level, wins the
// game.
type ExitSystem struct{}

func NewExitSystem() *ExitSystem {
	return &ExitSystem{}
}

func (s *ExitSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	if ecs.Count(w, component.LevelChangeRequestComponent.Kind()) > 0 ||
		ecs.Count(w, component.GameCompleteComponent.Kind()) > 0 ||
		ecs.Count(w, component.ReloadRequestComponent.Kind()) > 0 {
		return
	}
	if starsLeft(w) {
		return
	}
	_, rect, ok := playerRect(w)
	if !ok {
		return
	}
	hits := touching(w, component.ExitComponent.Kind(), rect)
	if len(hits) == 0 {
		return
	}
	exit, ok := ecs.Get(w, hits[0], component.ExitComponent.Kind())
	if !ok {
		return
	}

	_, progress, _ := levelProgress(w)
	req := w.CreateEntity()
	if exit.Prize || progress == nil || progress.LastLevel {
		score := 0
		if progress != nil {
			score = progress.Score
		}
		playSound(w, "congrats")
		_ = ecs.Add(w, req, component.GameCompleteComponent.Kind(), &component.GameComplete{Score: score})
		return
	}
	_ = ecs.Add(w, req, component.LevelChangeRequestComponent.Kind(), &component.LevelChangeRequest{TargetLevel: progress.Index + 1})
}

// starsLeft reports whether any star is still uncollected. The progress
// counter is authoritative; worlds without one fall back to the pickups.
func starsLeft(w *ecs.World) bool {
	if _, progress, ok := levelProgress(w); ok {
		return progress.StarsRemaining > 0
	}
	left := false
	ecs.ForEach(w, component.PickupComponent.Kind(), func(_ ecs.Entity, p *component.Pickup) {
		if p.Kind == component.PickupStar {
			left = true
		}
	})
	return left
}
