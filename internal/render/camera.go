package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/annel0/voxelworld/internal/vec"
	"github.com/annel0/voxelworld/internal/world/entity"
)

var cameraComponents = entity.Components(entity.Position, entity.Rotation)

// Camera следует за сущностью и интерполирует позицию между тиками
type Camera struct {
	prevPosition vec.Vec3Float
	position     vec.Vec3Float
	lerpPosition vec.Vec3Float
	rotation     vec.Vec2Float
	eyeOffset    vec.Vec3Float
}

// MoveToEntity ставит камеру в глаза сущности
func (c *Camera) MoveToEntity(e *entity.Entity) {
	if !e.HasAll(cameraComponents) {
		return
	}
	if e.Has(entity.EyeHeight) {
		c.eyeOffset = vec.Vec3Float{Y: e.EyeHeight}
		c.position = e.Position.Add(c.eyeOffset)
	} else {
		c.eyeOffset = vec.Zero3
		c.position = e.Position
	}
	c.rotation = e.Rotation
}

// PreUpdate запоминает позицию начала тика
func (c *Camera) PreUpdate() {
	c.prevPosition = c.position
}

// UpdateLerp интерполирует позицию внутри тика
func (c *Camera) UpdateLerp(partialTick float64) {
	c.lerpPosition = c.prevPosition.Lerp(c.position, partialTick)
}

// ViewMatrix матрица вида
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(float32(-c.eyeOffset.X), 0, float32(-c.eyeOffset.Z)).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(float32(-c.rotation.X)))).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(float32(-c.rotation.Y)))).
		Mul4(mgl32.Translate3D(float32(-c.lerpPosition.X), float32(-c.lerpPosition.Y), float32(-c.lerpPosition.Z)))
}

func (c *Camera) Position() vec.Vec3Float     { return c.position }
func (c *Camera) PrevPosition() vec.Vec3Float { return c.prevPosition }
func (c *Camera) LerpPosition() vec.Vec3Float { return c.lerpPosition }
func (c *Camera) Rotation() vec.Vec2Float     { return c.rotation }
