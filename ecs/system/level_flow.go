package system

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/milk9111/rakesh/ecs"
	"github.com/milk9111/rakesh/ecs/component"
	"github.com/milk9111/rakesh/ecs/entity"
	"github.com/milk9111/rakesh/levels"
)

// LevelLoader builds level index (1-based) into an emptied world.
type LevelLoader func(w *ecs.World, index int) error

// LoadEmbeddedLevel is the LevelLoader for the levels shipped in the binary.
func LoadEmbeddedLevel(w *ecs.World, index int) error {
	lvl, err := levels.LoadLevel(index)
	if err != nil {
		return err
	}
	return entity.LoadLevelToWorld(w, lvl, index)
}

// LevelFlowSystem services reload, level change and completion requests.
// Every rebuild starts from a world holding only Persistent entities and a
// fresh physics space.
type LevelFlowSystem struct {
	physics *PhysicsSystem
	load    LevelLoader
	current int

	// OnLevelComplete runs with the finished level's progress before the
	// next level loads, and for the final level before OnGameComplete.
	OnLevelComplete func(component.LevelProgress)
	OnGameComplete  func(score int)
	// OnLoadError runs when a requested level cannot be built.
	OnLoadError func(error)
}

func NewLevelFlowSystem(physics *PhysicsSystem, load LevelLoader) *LevelFlowSystem {
	if load == nil {
		load = LoadEmbeddedLevel
	}
	return &LevelFlowSystem{physics: physics, load: load}
}

// Current is the 1-based index of the loaded level, or 0 before the first load.
func (s *LevelFlowSystem) Current() int {
	return s.current
}

// Load replaces whatever level is in w with level index.
func (s *LevelFlowSystem) Load(w *ecs.World, index int) error {
	if w == nil {
		return fmt.Errorf("level flow: nil world")
	}
	pruneLevel(w)
	if s.physics != nil {
		s.physics.Reset()
	}
	if err := s.load(w, index); err != nil {
		pruneLevel(w)
		return fmt.Errorf("level flow: load level %d: %w", index, err)
	}
	s.current = index
	log.Info("level loaded", "level", index)
	return nil
}

func (s *LevelFlowSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	if e, ok := ecs.First(w, component.GameCompleteComponent.Kind()); ok {
		done, _ := ecs.Get(w, e, component.GameCompleteComponent.Kind())
		score := done.Score
		s.completeLevel(w)
		w.DestroyEntity(e)
		log.Info("game complete", "score", score)
		if s.OnGameComplete != nil {
			s.OnGameComplete(score)
		}
		return
	}

	if e, ok := ecs.First(w, component.LevelChangeRequestComponent.Kind()); ok {
		req, _ := ecs.Get(w, e, component.LevelChangeRequestComponent.Kind())
		target := req.TargetLevel
		s.completeLevel(w)
		s.loadOrReport(w, target)
		return
	}

	if e, ok := ecs.First(w, component.ReloadRequestComponent.Kind()); ok {
		req, _ := ecs.Get(w, e, component.ReloadRequestComponent.Kind())
		log.Debug("reloading level", "level", s.current, "reason", req.Reason)
		s.loadOrReport(w, s.current)
	}
}

func (s *LevelFlowSystem) completeLevel(w *ecs.World) {
	_, progress, ok := levelProgress(w)
	if !ok || s.OnLevelComplete == nil {
		return
	}
	s.OnLevelComplete(*progress)
}

func (s *LevelFlowSystem) loadOrReport(w *ecs.World, index int) {
	if err := s.Load(w, index); err != nil {
		log.Error("level change failed", "level", index, "err", err)
		if s.OnLoadError != nil {
			s.OnLoadError(err)
		}
	}
}

// pruneLevel destroys every entity not marked Persistent.
func pruneLevel(w *ecs.World) {
	for _, e := range ecs.Entities(w) {
		if ecs.Has(w, e, component.PersistentComponent.Kind()) {
			continue
		}
		w.DestroyEntity(e)
	}
}
