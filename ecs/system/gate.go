package system

import (
	"github.com/milk9111/rakesh/ecs"
	"github.com/milk9111/rakesh/ecs/component"
)

// KeyLockSystem lets the player carry keys. A key is held for as long as it
// overlaps the player, and it opens the lock of the same pair on contact.
type KeyLockSystem struct{}

func NewKeyLockSystem() *KeyLockSystem {
	return &KeyLockSystem{}
}

func (s *KeyLockSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	player, rect, ok := playerRect(w)
	if !ok {
		return
	}
	pt, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}

	held := make(map[ecs.Entity]bool)
	for _, e := range touching(w, component.KeyComponent.Kind(), rect) {
		held[e] = true
	}

	ecs.ForEach2(w, component.KeyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, key *component.Key, t *component.Transform) {
		if !held[e] {
			key.Grabbed = false
			return
		}
		if !key.Grabbed {
			playSound(w, "key")
		}
		key.Grabbed = true
		t.X, t.Y = pt.X, pt.Y
	})

	s.unlock(w)
}

// unlock opens a lock when a key of its pair touches any of its tiles. A lock
// spans several tiles and every tile of the pair is removed with the key.
func (s *KeyLockSystem) unlock(w *ecs.World) {
	opened := make(map[int]bool)
	ecs.ForEach(w, component.KeyComponent.Kind(), func(keyEntity ecs.Entity, key *component.Key) {
		keyRect, ok := areaRect(w, keyEntity)
		if !ok {
			return
		}
		for _, lockEntity := range touching(w, component.LockComponent.Kind(), keyRect) {
			lock, ok := ecs.Get(w, lockEntity, component.LockComponent.Kind())
			if !ok || lock.Pair != key.Pair {
				continue
			}
			opened[key.Pair] = true
			w.DestroyEntity(keyEntity)
			playSound(w, "unlock")
			return
		}
	})
	if len(opened) == 0 {
		return
	}

	ecs.ForEach(w, component.LockComponent.Kind(), func(e ecs.Entity, lock *component.Lock) {
		if opened[lock.Pair] {
			w.DestroyEntity(e)
		}
	})
}
