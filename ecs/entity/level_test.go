package entity

import (
	"sort"
	"testing"

	"github.com/milk9111/rakesh/ecs"
	"github.com/milk9111/rakesh/ecs/component"
	"github.com/milk9111/rakesh/levels"
)

// testLevelDoc is 6x14 tiles, two rows taller than the screen. The floor is
// an L of platforms that merges into two boxes, with a two-tile lock above it.
const testLevelDoc = `{"name":"builder","rows":[
	"......",
	"......",
	"......",
	"......",
	"......",
	"......",
	"......",
	"......",
	"......",
	"......",
	".I1a..",
	"@..a.E",
	"^BL###",
	"######"]}`

type bodyBox struct {
	x, y, w, h float64
}

func mustParseTestLevel(t *testing.T) *levels.Level {
	t.Helper()
	lvl, err := levels.Parse([]byte(testLevelDoc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return lvl
}

func TestLoadLevelToWorld(t *testing.T) {
	cases := []struct {
		name     string
		index    int
		wantLast bool
	}{
		{"first level", 1, false},
		{"last level", levels.Count(), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			if err := LoadLevelToWorld(w, mustParseTestLevel(t), tc.index); err != nil {
				t.Fatalf("load: %v", err)
			}

			var merged []bodyBox
			var lockWalls, items int
			ecs.ForEach(w, component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, b *component.PhysicsBody) {
				tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
				switch {
				case ecs.Has(w, e, component.PlayerTagComponent.Kind()):
				case ecs.Has(w, e, component.LockComponent.Kind()):
					if b.Kind != component.BodyStatic || b.Category != component.CategoryWall || b.Width != 64 || b.Height != 64 {
						t.Fatalf("lock body = %+v, want a static 64x64 wall", b)
					}
					lockWalls++
				case b.Kind == component.BodyDynamic:
					if b.Category != component.CategoryItem || b.Mass != 1 {
						t.Fatalf("item body = %+v, want a dynamic item of mass 1", b)
					}
					items++
				default:
					if b.Kind != component.BodyStatic || b.Category != component.CategoryWall {
						t.Fatalf("collider = %+v, want a static wall", b)
					}
					merged = append(merged, bodyBox{tr.X, tr.Y, b.Width, b.Height})
				}
			})

			sort.Slice(merged, func(i, j int) bool { return merged[i].x < merged[j].x })
			wantMerged := []bodyBox{
				{x: 96, y: 864, w: 192, h: 64},
				{x: 288, y: 832, w: 192, h: 128},
			}
			if len(merged) != len(wantMerged) {
				t.Fatalf("merged colliders = %+v, want %+v", merged, wantMerged)
			}
			for i := range wantMerged {
				if merged[i] != wantMerged[i] {
					t.Fatalf("collider %d = %+v, want %+v", i, merged[i], wantMerged[i])
				}
			}
			if lockWalls != 2 {
				t.Fatalf("lock walls = %d, want one per lock tile", lockWalls)
			}
			if items != 1 {
				t.Fatalf("dynamic items = %d, want 1", items)
			}

			wantTriggers := map[float64]float64{
				32:  44, // spikes, inset 10
				96:  52, // bombs, inset 6
				160: 56, // lava, inset 4
			}
			hazards := 0
			ecs.ForEach(w, component.HazardComponent.Kind(), func(e ecs.Entity, _ *component.Hazard) {
				hazards++
				if ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
					t.Fatal("hazards must be triggers without a body")
				}
				tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
				area, ok := ecs.Get(w, e, component.AreaComponent.Kind())
				if !ok {
					t.Fatal("hazard has no trigger area")
				}
				want, ok := wantTriggers[tr.X]
				if !ok || area.Width != want || area.Height != want {
					t.Fatalf("hazard at x=%v area = %vx%v, want %v square", tr.X, area.Width, area.Height, want)
				}
			})
			if hazards != 3 {
				t.Fatalf("hazards = %d, want 3", hazards)
			}

			player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
			if !ok {
				t.Fatal("no player spawned")
			}
			if tr, _ := ecs.Get(w, player, component.TransformComponent.Kind()); tr.X != 32 || tr.Y != 736 {
				t.Fatalf("player at (%v,%v), want (32,736)", tr.X, tr.Y)
			}

			camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
			if !ok {
				t.Fatal("no camera")
			}
			if cam, _ := ecs.Get(w, camEntity, component.CameraComponent.Kind()); cam.X != 0 || cam.Y != 128 {
				t.Fatalf("camera at (%v,%v), want the bottom screen (0,128)", cam.X, cam.Y)
			}

			progressEntity, ok := ecs.First(w, component.LevelProgressComponent.Kind())
			if !ok {
				t.Fatal("no progress entity")
			}
			progress, _ := ecs.Get(w, progressEntity, component.LevelProgressComponent.Kind())
			if progress.Index != tc.index || progress.LastLevel != tc.wantLast {
				t.Fatalf("progress = %+v, want index %d last %v", progress, tc.index, tc.wantLast)
			}
			if progress.Width != 384 || progress.Height != 896 {
				t.Fatalf("level size = %vx%v, want 384x896", progress.Width, progress.Height)
			}
		})
	}
}

func TestLoadDecorativeLevelIsSpritesOnly(t *testing.T) {
	lvl, err := levels.Parse([]byte(`{"name":"backdrop","decorative":true,"rows":["b^b","###"]}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	w := ecs.NewWorld()
	if err := LoadLevelToWorld(w, lvl, 0); err != nil {
		t.Fatalf("load: %v", err)
	}
	if n := ecs.Count(w, component.SpriteComponent.Kind()); n != 6 {
		t.Fatalf("sprites = %d, want one per tile", n)
	}
	for name, n := range map[string]int{
		"bodies":   ecs.Count(w, component.PhysicsBodyComponent.Kind()),
		"hazards":  ecs.Count(w, component.HazardComponent.Kind()),
		"players":  ecs.Count(w, component.PlayerTagComponent.Kind()),
		"cameras":  ecs.Count(w, component.CameraComponent.Kind()),
		"progress": ecs.Count(w, component.LevelProgressComponent.Kind()),
	} {
		if n != 0 {
			t.Fatalf("decorative level built %d %s", n, name)
		}
	}
}
