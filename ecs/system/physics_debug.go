package system

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/controller2d/controller"
	"github.com/milk9111/controller2d/ecs"
	"github.com/milk9111/controller2d/ecs/component"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
)

// Camera maps world units (y up) to screen pixels (y down).
type Camera struct {
	X, Y   float64
	Zoom   float64
	Width  float64
	Height float64
}

// Follow centers the camera on the first player.
func (c *Camera) Follow(w *ecs.World) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	if t, ok := ecs.Get(w, player, component.TransformComponent.Kind()); ok {
		c.X, c.Y = t.X, t.Y
	}
}

// DrawPhysicsDebug draws every shape in space, and the player's ground probe.
func DrawPhysicsDebug(space *cp.Space, w *ecs.World, cam Camera, screen *ebiten.Image) {
	if space == nil || w == nil || screen == nil {
		return
	}
	if cam.Zoom <= 0 {
		cam.Zoom = 1
	}
	drawer := &physicsDebugDrawer{screen: screen, cam: cam}
	cp.DrawSpace(space, drawer)
	drawer.drawProbe(w)
}

// DrawPlayerStateDebug prints the player's controller state.
func DrawPlayerStateDebug(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	cc, ok := ecs.Get(w, player, component.CharacterControllerComponent.Kind())
	if !ok || cc.Controller == nil {
		return
	}
	st := cc.Controller.State()
	cfg := cc.Controller.Config()
	text := fmt.Sprintf("Phase: %s\nDirection: %.2f\nSpeed: %.2f  Jump height: %.2f\nProbe: %s %.2f", st.Phase(), st.MovementDirection, cfg.Speed, cfg.JumpHeight, cfg.ProbeShape, cfg.ProbeSize)
	ebitenutil.DebugPrintAt(screen, text, 10, 24)
}

type physicsDebugDrawer struct {
	screen *ebiten.Image
	cam    Camera
}

func (d *physicsDebugDrawer) drawProbe(w *ecs.World) {
	ecs.ForEach2(w, component.CharacterControllerComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, cc *component.CharacterController, pb *component.PhysicsBody) {
		if cc.Controller == nil || pb.Body == nil {
			return
		}
		q := controller.GroundQuery(cc.Controller.Config(), controller.Feet(pb.Body))
		col := cp.FColor{R: 1, G: 0.3, B: 0.3, A: 0.9}
		if cc.Controller.IsGrounded() {
			col = cp.FColor{R: 0.3, G: 0.6, B: 1, A: 0.9}
		}
		c := cp.Vector{X: q.Center.X(), Y: q.Center.Y()}
		switch q.Shape {
		case controller.ProbeBox:
			hw, hh := q.Size.X()/2, q.Size.Y()/2
			d.drawPolygon([]cp.Vector{
				{X: c.X - hw, Y: c.Y - hh},
				{X: c.X + hw, Y: c.Y - hh},
				{X: c.X + hw, Y: c.Y + hh},
				{X: c.X - hw, Y: c.Y + hh},
			}, col)
		case controller.ProbeCircle:
			d.drawCircle(c, q.Radius(), col)
		}
	})
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	d.drawCircle(pos, radius, outline)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, outline)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
	if radius > 0 {
		d.drawCircle(a, radius, outline)
		d.drawCircle(b, radius, outline)
	}
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], outline)
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	half := size / 2 / d.cam.Zoom
	left := cp.Vector{X: pos.X - half, Y: pos.Y}
	right := cp.Vector{X: pos.X + half, Y: pos.Y}
	up := cp.Vector{X: pos.X, Y: pos.Y - half}
	down := cp.Vector{X: pos.X, Y: pos.Y + half}
	d.drawLine(left, right, fill)
	d.drawLine(up, down, fill)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, color cp.FColor) {
	x1, y1 := d.toScreen(a)
	x2, y2 := d.toScreen(b)
	vector.StrokeLine(d.screen, x1, y1, x2, y2, 1, toNRGBA(color), false)
}

func (d *physicsDebugDrawer) drawPolygon(verts []cp.Vector, color cp.FColor) {
	if len(verts) == 0 {
		return
	}
	for i := 0; i < len(verts); i++ {
		a := verts[i]
		b := verts[(i+1)%len(verts)]
		d.drawLine(a, b, color)
	}
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, color cp.FColor) {
	if radius <= 0 {
		return
	}
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, color)
}

func (d *physicsDebugDrawer) toScreen(v cp.Vector) (float32, float32) {
	return d.cam.ToScreen(v.X, v.Y)
}

// ToScreen converts a world position to screen pixels.
func (c Camera) ToScreen(x, y float64) (float32, float32) {
	sx := (x-c.X)*c.Zoom + c.Width/2
	sy := c.Height/2 - (y-c.Y)*c.Zoom
	return float32(sx), float32(sy)
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
