// Package physics двигает сущности по сетке блоков.
package physics

import (
	"math"

	"github.com/annel0/voxelworld/internal/geom"
	"github.com/annel0/voxelworld/internal/logging"
	"github.com/annel0/voxelworld/internal/vec"
	"github.com/annel0/voxelworld/internal/world/entity"
)

// Константы движения
const (
	Gravity        = -0.08
	AirDragXZ      = 0.91
	AirDragY       = 0.98
	GroundFriction = 0.7
)

// required компоненты, без которых сущность не двигается
var required = entity.Components(
	entity.Acceleration,
	entity.BoundingBox,
	entity.Position,
	entity.Velocity,
)

// MotionSystem применяет ускорение, гравитацию, столкновения и затухание
type MotionSystem struct {
	colliders []geom.AABB
	logger    *logging.Logger
}

// NewMotionSystem создаёт систему движения
func NewMotionSystem() *MotionSystem {
	return &MotionSystem{logger: logging.GetPhysicsLogger()}
}

// Process выполняет один шаг для всех подходящих сущностей.
// Без подшагов: на очень больших скоростях возможен проход сквозь блоки.
func (m *MotionSystem) Process(src BlockSource, entities []*entity.Entity) {
	for _, e := range entities {
		if !e.HasAll(required) {
			continue
		}
		m.step(src, e)
	}
}

func (m *MotionSystem) step(src BlockSource, e *entity.Entity) {
	a := e.Acceleration
	v := e.Velocity.AddXYZ(a.X, a.Y+Gravity, a.Z)
	orig := v

	m.colliders = CollectColliders(src, e.BoundingBox.Expand(v.X, v.Y, v.Z), m.colliders[:0])
	moveX, moveY, moveZ, box := ResolveMove(e.BoundingBox, m.colliders, v.X, v.Y, v.Z)

	e.SetOnGround(orig.Y != moveY && orig.Y < 0)

	if orig.X != moveX {
		v.X = 0
	}
	if orig.Y != moveY {
		v.Y = 0
	}
	if orig.Z != moveZ {
		v.Z = 0
	}

	e.Position = e.Position.AddXYZ(moveX, moveY, moveZ)
	if e.Type != nil {
		e.RefreshBoundingBox()
	} else {
		e.BoundingBox = entity.BoxAt(e.Position,
			box.MaxX-box.MinX, box.MaxY-box.MinY, box.MaxZ-box.MinZ)
	}

	v = v.MulXYZ(AirDragXZ, AirDragY, AirDragXZ)
	if e.OnGround() {
		v = v.MulXYZ(GroundFriction, 1, GroundFriction)
	}
	e.Velocity = v

	if m.logger.Enabled(logging.TRACE) {
		m.logger.Trace("сущность %s: pos=(%.3f, %.3f, %.3f) onGround=%t",
			e.ID, e.Position.X, e.Position.Y, e.Position.Z, e.OnGround())
	}
}

// MoveRelative переводит ввод (x вбок, z вперед) в ускорение в мировых осях
// с учетом поворота yaw в градусах. Слишком малый ввод дает нулевое смещение.
func MoveRelative(x, y, z, yawDegrees, speed float64) vec.Vec3Float {
	dst := x*x + z*z
	var moveX, moveZ float64
	if dst >= 0.01 {
		k := speed / math.Sqrt(dst)
		kx := k * x
		kz := k * z

		yaw := yawDegrees * math.Pi / 180
		sin := math.Sin(yaw)
		cos := math.Cos(yaw)

		moveX = kx*cos + kz*sin
		moveZ = kz*cos - kx*sin
	}
	return vec.Vec3Float{X: moveX, Y: y, Z: moveZ}
}
