package ecs

import "time"

type System interface {
	Update(w *World)
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(w *World)

func (f SystemFunc) Update(w *World) { f(w) }

// Scheduler runs systems in registration order and keeps the last frame's
// per-system timings for the debug overlay.
type Scheduler struct {
	systems []System
	timings []time.Duration
	profile bool
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
	s.timings = append(s.timings, 0)
}

// SetProfiling toggles per-system timing.
func (s *Scheduler) SetProfiling(on bool) {
	s.profile = on
}

func (s *Scheduler) Update(w *World) {
	for i, system := range s.systems {
		if !s.profile {
			system.Update(w)
			continue
		}
		start := time.Now()
		system.Update(w)
		s.timings[i] = time.Since(start)
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}

// Timings returns the durations recorded during the last profiled Update.
func (s *Scheduler) Timings() []time.Duration {
	return append([]time.Duration(nil), s.timings...)
}
