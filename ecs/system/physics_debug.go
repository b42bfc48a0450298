package system

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rakesh/common"
	"github.com/milk9111/rakesh/ecs"
	"github.com/milk9111/rakesh/ecs/component"
)

const (
	debugCircleSegments = 16
	debugLineWidth      = 1
)

// debugShapeColors tints shapes by collision category.
var debugShapeColors = map[component.Category]color.NRGBA{
	component.CategoryWall:     {R: 0x40, G: 0xe0, B: 0x40, A: 0xe0},
	component.CategoryItem:     {R: 0xe0, G: 0x80, B: 0x30, A: 0xe0},
	component.CategoryPlatform: {R: 0x40, G: 0xa0, B: 0xff, A: 0xe0},
	component.CategoryPlayer:   {R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	component.CategoryBullet:   {R: 0xff, G: 0x40, B: 0x40, A: 0xff},
}

var (
	debugDefaultColor = color.NRGBA{R: 0xa0, G: 0xa0, B: 0xa0, A: 0xc0}
	debugSensorColor  = color.NRGBA{R: 0xff, G: 0xd8, B: 0x33, A: 0xff}
)

// DrawPhysicsDebug outlines every shape in space, offset by the camera.
func DrawPhysicsDebug(space *cp.Space, w *ecs.World, screen *ebiten.Image) {
	if space == nil || w == nil || screen == nil {
		return
	}
	camX, camY := cameraOffset(w)
	categories := map[*cp.Shape]component.Category{}
	ecs.ForEach(w, component.PhysicsBodyComponent.Kind(), func(_ ecs.Entity, b *component.PhysicsBody) {
		if b.Shape != nil {
			categories[b.Shape] = b.Category
		}
	})
	cp.DrawSpace(space, &physicsDebugDrawer{screen: screen, camX: camX, camY: camY, categories: categories})
}

// DrawPlayerStateDebug prints the player's contact and ladder state.
func DrawPlayerStateDebug(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	pc, ok := ecs.Get(w, player, component.PlayerCollisionComponent.Kind())
	if !ok {
		return
	}
	onLadder := false
	if st, ok := ecs.Get(w, player, component.PlayerStateComponent.Kind()); ok {
		onLadder = st.OnLadder
	}
	pose := component.PoseIdle
	if anim, ok := ecs.Get(w, player, component.AnimationComponent.Kind()); ok {
		pose = anim.Current
	}
	text := fmt.Sprintf("Pose: %s\nGrounded: %v\nOn ladder: %v\ndx: %.2f dy: %.2f", pose, pc.Grounded, onLadder, pc.DX, pc.DY)
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}

// physicsDebugDrawer implements cp.Drawer. Shapes are stroked in the fill
// color chosen by ShapeColor.
type physicsDebugDrawer struct {
	screen     *ebiten.Image
	camX, camY float64
	categories map[*cp.Shape]component.Category
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, _, fill cp.FColor, _ interface{}) {
	d.circle(pos, radius, fill)
	d.stroke(pos, pos.Add(cp.ForAngle(angle).Mult(radius)), fill)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, _ interface{}) {
	d.stroke(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, _, fill cp.FColor, _ interface{}) {
	d.stroke(a, b, fill)
	d.circle(a, radius, fill)
	d.circle(b, radius, fill)
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, _ float64, _, fill cp.FColor, _ interface{}) {
	d.loop(verts[:min(count, len(verts))], fill)
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, _ interface{}) {
	half := math.Max(size, 2) / 2
	d.stroke(cp.Vector{X: pos.X - half, Y: pos.Y}, cp.Vector{X: pos.X + half, Y: pos.Y}, fill)
	d.stroke(cp.Vector{X: pos.X, Y: pos.Y - half}, cp.Vector{X: pos.X, Y: pos.Y + half}, fill)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES | cp.DRAW_COLLISION_POINTS
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return toFColor(debugDefaultColor)
}

func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, _ interface{}) cp.FColor {
	if shape == nil {
		return toFColor(debugDefaultColor)
	}
	if shape.Sensor() {
		return toFColor(debugSensorColor)
	}
	if category, ok := d.categories[shape]; ok {
		if c, ok := debugShapeColors[category]; ok {
			return toFColor(c)
		}
	}
	return toFColor(debugDefaultColor)
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return toFColor(debugDefaultColor)
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) stroke(a, b cp.Vector, c cp.FColor) {
	vector.StrokeLine(d.screen,
		float32(a.X-d.camX), float32(a.Y-d.camY),
		float32(b.X-d.camX), float32(b.Y-d.camY),
		debugLineWidth, toNRGBA(c), false)
}

func (d *physicsDebugDrawer) loop(verts []cp.Vector, c cp.FColor) {
	for i := range verts {
		d.stroke(verts[i], verts[(i+1)%len(verts)], c)
	}
}

func (d *physicsDebugDrawer) circle(center cp.Vector, radius float64, c cp.FColor) {
	if radius <= 0 {
		return
	}
	points := make([]cp.Vector, debugCircleSegments)
	for i := range points {
		points[i] = center.Add(cp.ForAngle(2 * math.Pi * float64(i) / debugCircleSegments).Mult(radius))
	}
	d.loop(points, c)
}

func toFColor(c color.NRGBA) cp.FColor {
	return cp.FColor{R: float32(c.R) / 255, G: float32(c.G) / 255, B: float32(c.B) / 255, A: float32(c.A) / 255}
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(common.Clamp(float64(c.R), 0, 1) * 255),
		G: uint8(common.Clamp(float64(c.G), 0, 1) * 255),
		B: uint8(common.Clamp(float64(c.B), 0, 1) * 255),
		A: uint8(common.Clamp(float64(c.A), 0, 1) * 255),
	}
}
