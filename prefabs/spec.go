package prefabs

import (
	"fmt"

	"github.com/milk9111/rakesh/common"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// WorldSpec configures the physics space and the viewport.
type WorldSpec struct {
	Gravity    float64 `yaml:"gravity"`
	Damping    float64 `yaml:"damping"`
	Iterations int     `yaml:"iterations"`
	// BulletCleanupPadding is how far below the level bullets may fall
	// before they are removed.
	BulletCleanupPadding float64 `yaml:"bullet_cleanup_padding"`
}

// LoadWorldSpec reads world.yaml, filling unset fields with defaults.
func LoadWorldSpec() (WorldSpec, error) {
	spec, err := LoadSpec[WorldSpec]("world.yaml")
	if err != nil {
		return DefaultWorldSpec(), err
	}
	spec.applyDefaults()
	return spec, nil
}

func DefaultWorldSpec() WorldSpec {
	var s WorldSpec
	s.applyDefaults()
	return s
}

func (s *WorldSpec) applyDefaults() {
	if s.Gravity == 0 {
		s.Gravity = common.Gravity
	}
	if s.Damping <= 0 {
		s.Damping = common.DefaultDamping
	}
	if s.Iterations <= 0 {
		s.Iterations = common.Iterations
	}
	if s.BulletCleanupPadding <= 0 {
		s.BulletCleanupPadding = common.BulletCleanupPadding
	}
}

// TileSpec describes how one tile kind is turned into entities.
type TileSpec struct {
	RenderLayer int     `yaml:"render_layer"`
	Solid       bool    `yaml:"solid"`
	Dynamic     bool    `yaml:"dynamic"`
	Category    string  `yaml:"category"`
	Friction    float64 `yaml:"friction"`
	Elasticity  float64 `yaml:"elasticity"`
	Mass        float64 `yaml:"mass"`
	// Inset shrinks the trigger box on every side, in pixels.
	Inset float64 `yaml:"inset"`
	Sound string  `yaml:"sound"`
}

type TilesSpec struct {
	Tiles map[string]TileSpec `yaml:"tiles"`
}

func LoadTilesSpec() (TilesSpec, error) {
	return LoadSpec[TilesSpec]("tiles.yaml")
}

// MoverSpec holds the defaults for level-placed moving entities.
type MoverSpec struct {
	RenderLayer int     `yaml:"render_layer"`
	Friction    float64 `yaml:"friction"`
	Sound       string  `yaml:"sound"`
}

type MoversSpec struct {
	MovingPlatform MoverSpec `yaml:"moving_platform"`
	MovingSpikes   MoverSpec `yaml:"moving_spikes"`
}

func LoadMoversSpec() (MoversSpec, error) {
	return LoadSpec[MoversSpec]("movers.yaml")
}
