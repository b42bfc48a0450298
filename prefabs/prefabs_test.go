package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedSpecsDecode(t *testing.T) {
	for _, name := range []string{"player.yaml", "camera.yaml", "bullet.yaml", "sfx.yaml"} {
		t.Run(name, func(t *testing.T) {
			spec, err := LoadEntityBuildSpec(name)
			if err != nil {
				t.Fatal(err)
			}
			if len(spec.Components) == 0 {
				t.Fatalf("%s has no components", name)
			}
		})
	}
}

func TestPlayerSpecTunables(t *testing.T) {
	spec, err := LoadEntityBuildSpec("player.yaml")
	if err != nil {
		t.Fatal(err)
	}
	p, err := DecodeComponentSpec[PlayerComponentSpec](spec.Components["player"])
	if err != nil {
		t.Fatal(err)
	}
	if p.JumpImpulse != 1800 || p.MoveForce != 8000 || p.MoveForceAir != 1200 {
		t.Fatalf("unexpected player tunables %+v", p)
	}
	body, err := DecodeComponentSpec[PhysicsBodyComponentSpec](spec.Components["physics_body"])
	if err != nil {
		t.Fatal(err)
	}
	if body.Mass != 2 || !body.FixedRotation {
		t.Fatalf("unexpected player body %+v", body)
	}
}

func TestBulletSpecExpires(t *testing.T) {
	spec, err := LoadEntityBuildSpec("bullet.yaml")
	if err != nil {
		t.Fatal(err)
	}
	ttl, err := DecodeComponentSpec[TTLComponentSpec](spec.Components["ttl"])
	if err != nil {
		t.Fatal(err)
	}
	if ttl.Frames != 300 {
		t.Fatalf("bullet ttl = %d frames, want 300", ttl.Frames)
	}
}

func TestBodyDynamicsNilMeansInherit(t *testing.T) {
	raw := map[string]any{"damping": 0.4}
	spec, err := DecodeComponentSpec[BodyDynamicsComponentSpec](raw)
	if err != nil {
		t.Fatal(err)
	}
	if spec.GravityY != nil {
		t.Fatalf("gravity should be unset, got %v", *spec.GravityY)
	}
	if spec.Damping == nil || *spec.Damping != 0.4 {
		t.Fatalf("damping = %v", spec.Damping)
	}
}

func TestWorldAndTileSpecs(t *testing.T) {
	world, err := LoadWorldSpec()
	if err != nil {
		t.Fatal(err)
	}
	if world.Gravity != 1600 || world.Iterations != 20 {
		t.Fatalf("world spec = %+v", world)
	}

	tiles, err := LoadTilesSpec()
	if err != nil {
		t.Fatal(err)
	}
	for _, kind := range []string{"platforms", "barrier", "lock"} {
		if !tiles.Tiles[kind].Solid {
			t.Fatalf("%s should be solid", kind)
		}
	}
	if !tiles.Tiles["items"].Dynamic {
		t.Fatal("items should be dynamic")
	}
	if tiles.Tiles["platforms"].RenderLayer <= tiles.Tiles["lava"].RenderLayer {
		t.Fatal("platforms should draw above lava")
	}

	movers, err := LoadMoversSpec()
	if err != nil {
		t.Fatal(err)
	}
	if movers.MovingSpikes.Sound != "spike" {
		t.Fatalf("moving spikes sound = %q", movers.MovingSpikes.Sound)
	}
}

func TestDefaultWorldSpec(t *testing.T) {
	s := DefaultWorldSpec()
	if s.Gravity != 1600 || s.Damping != 1 || s.BulletCleanupPadding != 100 {
		t.Fatalf("defaults = %+v", s)
	}
}

func TestCleanScriptPath(t *testing.T) {
	tests := map[string]string{
		"bob.tengo":                 "scripts/bob.tengo",
		"bob":                       "scripts/bob.tengo",
		"scripts/bob.tengo":         "scripts/bob.tengo",
		"prefabs/scripts/bob.tengo": "scripts/bob.tengo",
	}
	for in, want := range tests {
		if got := cleanScriptPath(in); got != want {
			t.Fatalf("cleanScriptPath(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := LoadScript("bob"); err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
}

func TestDiskOverride(t *testing.T) {
	dir := t.TempDir()
	old := DiskDir
	DiskDir = dir
	t.Cleanup(func() { DiskDir = old })

	if err := os.WriteFile(filepath.Join(dir, "world.yaml"), []byte("gravity: 900\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	spec, err := LoadWorldSpec()
	if err != nil {
		t.Fatal(err)
	}
	if spec.Gravity != 900 {
		t.Fatalf("expected disk override, got gravity %v", spec.Gravity)
	}
	if spec.Iterations != 20 {
		t.Fatalf("unset fields should take defaults, got %d", spec.Iterations)
	}
}

func TestWatcherReportsSpecEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir, filepath.Join(dir, "missing"))
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(dir, "player.yaml")
	if err := os.WriteFile(target, []byte("name: p\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-w.Events:
		if filepath.Base(name) != "player.yaml" {
			t.Fatalf("unexpected event for %s", name)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for watcher event")
	}
}

func TestWatcherNeedsADirectory(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected an error when no directory exists")
	}
}
