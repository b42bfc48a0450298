package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/rakesh/ecs"
	"github.com/milk9111/rakesh/ecs/component"
	"github.com/milk9111/rakesh/storage"
)

func TestCountFrame(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	if err := ecs.Add(w, e, component.LevelProgressComponent.Kind(), &component.LevelProgress{Index: 1}); err != nil {
		t.Fatalf("add progress: %v", err)
	}

	for i := 0; i < 3; i++ {
		countFrame(w)
	}

	p, _ := ecs.Get(w, e, component.LevelProgressComponent.Kind())
	if p.Frames != 3 {
		t.Fatalf("frames = %d, want 3", p.Frames)
	}
}

func TestRecordRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	g := &Game{opts: Options{Store: store}}
	g.recordRun(component.LevelProgress{Index: 2, Score: 7, Stars: 1, Frames: 600})

	runs, err := store.TopRuns(2, 10)
	if err != nil {
		t.Fatalf("top runs: %v", err)
	}
	if len(runs) != 1 || runs[0].Score != 7 || runs[0].Frames != 600 {
		t.Fatalf("runs = %+v, want one run scoring 7", runs)
	}
}

func TestRecordRunWithoutStore(t *testing.T) {
	g := &Game{}
	g.recordRun(component.LevelProgress{Index: 1, Score: 3})
}

func TestPlayTime(t *testing.T) {
	tests := []struct {
		frames int
		want   time.Duration
	}{
		{0, 0},
		{60, time.Second},
		{90, 1500 * time.Millisecond},
		{1, 20 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := playTime(tt.frames); got != tt.want {
			t.Errorf("playTime(%d) = %v, want %v", tt.frames, got, tt.want)
		}
	}
}
