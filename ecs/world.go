package ecs

import (
	"sort"

	"github.com/milk9111/rakesh/ecs/component"
)

// World owns entity lifetimes and one sparse set per component kind.
type World struct {
	generations []generation
	alive       []bool
	free        []entityID
	count       int

	stores map[component.ComponentID]store
}

func NewWorld() *World {
	return &World{
		// slot 0 is reserved so the zero Entity is never alive
		generations: []generation{0},
		alive:       []bool{false},
		stores:      make(map[component.ComponentID]store),
	}
}

func CreateEntity(w *World) Entity {
	return w.CreateEntity()
}

func DestroyEntity(w *World, e Entity) bool {
	return w.DestroyEntity(e)
}

func IsAlive(w *World, e Entity) bool {
	return w.IsAlive(e)
}

// Entities returns every live entity in id order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.count)
	for id := 1; id < len(w.alive); id++ {
		if w.alive[id] {
			out = append(out, makeEntity(entityID(id), w.generations[id]))
		}
	}
	return out
}

func (w *World) CreateEntity() Entity {
	if n := len(w.free); n > 0 {
		id := w.free[n-1]
		w.free = w.free[:n-1]
		w.alive[id] = true
		w.count++
		return makeEntity(id, w.generations[id])
	}
	id := entityID(len(w.generations))
	w.generations = append(w.generations, 0)
	w.alive = append(w.alive, true)
	w.count++
	return makeEntity(id, 0)
}

// DestroyEntity removes every component of e and recycles its slot.
func (w *World) DestroyEntity(e Entity) bool {
	if !w.IsAlive(e) {
		return false
	}
	id := e.id()
	for _, s := range w.stores {
		s.remove(id)
	}
	w.alive[id] = false
	w.generations[id]++
	w.free = append(w.free, id)
	w.count--
	return true
}

func (w *World) IsAlive(e Entity) bool {
	if w == nil || !e.Valid() {
		return false
	}
	id := e.id()
	if int(id) >= len(w.alive) {
		return false
	}
	return w.alive[id] && w.generations[id] == e.generation()
}

// Len reports the number of live entities.
func (w *World) Len() int {
	if w == nil {
		return 0
	}
	return w.count
}

// Query returns live entities that carry every listed component kind, ordered
// by entity id.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	stores := make([]store, 0, len(kinds))
	for _, k := range kinds {
		s, ok := w.stores[k.ID()]
		if !ok {
			return nil
		}
		stores = append(stores, s)
	}
	sort.Slice(stores, func(i, j int) bool { return stores[i].len() < stores[j].len() })

	var out []Entity
	for _, id := range stores[0].ids() {
		match := true
		for _, s := range stores[1:] {
			if !s.has(id) {
				match = false
				break
			}
		}
		if match && w.alive[id] {
			out = append(out, makeEntity(id, w.generations[id]))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id() < out[j].id() })
	return out
}

func (w *World) entityFor(id entityID) (Entity, bool) {
	if int(id) >= len(w.alive) || !w.alive[id] {
		return 0, false
	}
	return makeEntity(id, w.generations[id]), true
}

func storeFor[T any](w *World, kind component.ComponentKind[T], create bool) *sparseSet[T] {
	if w == nil || !kind.Valid() {
		return nil
	}
	if s, ok := w.stores[kind.ID()]; ok {
		typed, _ := s.(*sparseSet[T])
		return typed
	}
	if !create {
		return nil
	}
	s := newSparseSet[T]()
	w.stores[kind.ID()] = s
	return s
}
