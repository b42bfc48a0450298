package common

const (
	TileSize = 64

	ScreenTilesX = 22
	ScreenTilesY = 12
	BaseWidth    = TileSize * ScreenTilesX
	BaseHeight   = TileSize * ScreenTilesY

	TPS       = 60
	FixedStep = 1.0 / TPS

	Title = "The Legend of Rakesh"
)

// Physics defaults. prefabs/world.yaml and prefabs/player.yaml override them.
const (
	Gravity        = 1600.0
	DefaultDamping = 1.0
	Iterations     = 20

	PlayerMass           = 2.0
	PlayerFriction       = 1.0
	PlayerDamping        = 0.4
	PlayerMaxSpeedX      = 450.0
	PlayerMaxSpeedY      = 1600.0
	PlayerMoveForce      = 8000.0
	PlayerMoveForceAir   = 1200.0
	PlayerJumpImpulse    = 1800.0
	PlayerLadderDamping  = 0.0001
	WallFriction         = 0.7
	DynamicItemFriction  = 0.6
	DeadZone             = 0.1
	StrideDistance       = 20.0
	BulletCleanupPadding = 100.0
)

// Viewport margins in pixels from each screen edge.
const (
	MarginLeft   = 200.0
	MarginRight  = 200.0
	MarginBottom = 150.0
	MarginTop    = 100.0
)
