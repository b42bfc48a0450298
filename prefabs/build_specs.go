package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type PlayerComponentSpec struct {
	MoveForce      float64 `yaml:"move_force"`
	MoveForceAir   float64 `yaml:"move_force_air"`
	LadderForce    float64 `yaml:"ladder_force"`
	JumpImpulse    float64 `yaml:"jump_impulse"`
	MovingFriction float64 `yaml:"moving_friction"`
	IdleFriction   float64 `yaml:"idle_friction"`
	Damping        float64 `yaml:"damping"`
	LadderDamping  float64 `yaml:"ladder_damping"`
	MaxSpeedX      float64 `yaml:"max_speed_x"`
	MaxSpeedY      float64 `yaml:"max_speed_y"`
	DeadZone       float64 `yaml:"dead_zone"`
	StrideDistance float64 `yaml:"stride_distance"`
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

// SpriteComponentSpec names a generated image from the assets package.
type SpriteComponentSpec struct {
	Image      string  `yaml:"image"`
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	OriginX    float64 `yaml:"origin_x"`
	OriginY    float64 `yaml:"origin_y"`
	FacingLeft bool    `yaml:"facing_left"`
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

type AnimationComponentSpec struct {
	Set     string `yaml:"set"`
	Current string `yaml:"current"`
}

type CameraComponentSpec struct {
	MarginLeft   float64 `yaml:"margin_left"`
	MarginRight  float64 `yaml:"margin_right"`
	MarginTop    float64 `yaml:"margin_top"`
	MarginBottom float64 `yaml:"margin_bottom"`
}

type PhysicsBodyComponentSpec struct {
	Kind          string  `yaml:"kind"`
	Category      string  `yaml:"category"`
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Mass          float64 `yaml:"mass"`
	Friction      float64 `yaml:"friction"`
	Elasticity    float64 `yaml:"elasticity"`
	FixedRotation bool    `yaml:"fixed_rotation"`
}

// BodyDynamicsComponentSpec leaves a field nil to inherit the space value.
type BodyDynamicsComponentSpec struct {
	GravityX  *float64 `yaml:"gravity_x"`
	GravityY  *float64 `yaml:"gravity_y"`
	Damping   *float64 `yaml:"damping"`
	MaxSpeedX float64  `yaml:"max_speed_x"`
	MaxSpeedY float64  `yaml:"max_speed_y"`
}

type PendingForceComponentSpec struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Local bool    `yaml:"local"`
}

type AudioClipSpec struct {
	Name   string  `yaml:"name"`
	Sound  string  `yaml:"sound"`
	Volume float64 `yaml:"volume"`
}

type AudioComponentSpec struct {
	Clips []AudioClipSpec `yaml:"clips"`
}

type TTLComponentSpec struct {
	Frames int `yaml:"frames"`
}

type AreaComponentSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}
