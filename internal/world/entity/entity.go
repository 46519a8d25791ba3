package entity

import (
	"github.com/google/uuid"

	"github.com/annel0/voxelworld/internal/geom"
	"github.com/annel0/voxelworld/internal/vec"
)

// Entity сущность мира. Данные компонентов хранятся в полях,
// а маска components говорит, какие из них у сущности есть.
type Entity struct {
	ID   uuid.UUID
	Type *Type

	components ComponentSet

	Position     vec.Vec3Float
	Velocity     vec.Vec3Float
	Acceleration vec.Vec3Float
	// Rotation X - pitch, Y - yaw, в градусах
	Rotation    vec.Vec2Float
	BoundingBox geom.AABB
	EyeHeight   float64
}

// New создает сущность и запускает инициализатор типа
func New(id uuid.UUID, t *Type, pos vec.Vec3Float) *Entity {
	e := &Entity{ID: id, Type: t}
	if t != nil && t.Init != nil {
		t.Init(e, pos)
	}
	return e
}

// Components возвращает маску компонентов
func (e *Entity) Components() ComponentSet {
	return e.components
}

// Has проверяет наличие компонента
func (e *Entity) Has(k ComponentKind) bool {
	return e.components.Has(k)
}

// HasAll проверяет наличие всех компонентов маски
func (e *Entity) HasAll(s ComponentSet) bool {
	return e.components.HasAll(s)
}

// Add добавляет компонент со значением по умолчанию
func (e *Entity) Add(k ComponentKind) {
	if e.components.Has(k) {
		return
	}
	e.components = e.components.With(k)
	switch k {
	case Position:
		e.Position = vec.Zero3
	case Velocity:
		e.Velocity = vec.Zero3
	case Acceleration:
		e.Acceleration = vec.Zero3
	case Rotation:
		e.Rotation = vec.Vec2Float{}
	case BoundingBox:
		e.BoundingBox = geom.Empty
	case EyeHeight:
		e.EyeHeight = 0.5
	}
}

// Remove убирает компонент
func (e *Entity) Remove(k ComponentKind) {
	e.components = e.components.Without(k)
}

// SetOnGround выставляет или снимает маркер OnGround
func (e *Entity) SetOnGround(v bool) {
	if v {
		e.components = e.components.With(OnGround)
	} else {
		e.components = e.components.Without(OnGround)
	}
}

// OnGround сообщает, стоит ли сущность на земле
func (e *Entity) OnGround() bool {
	return e.components.Has(OnGround)
}

// EyePosition возвращает позицию глаз
func (e *Entity) EyePosition() vec.Vec3Float {
	return e.Position.AddXYZ(0, e.EyeHeight, 0)
}

// BoxAt строит бокс сущности: по X и Z по центру, по Y от ног вверх
func BoxAt(pos vec.Vec3Float, width, height, depth float64) geom.AABB {
	hw := width * 0.5
	hd := depth * 0.5
	return geom.NewAABB(
		pos.X-hw, pos.Y, pos.Z-hd,
		pos.X+hw, pos.Y+height, pos.Z+hd,
	)
}

// RefreshBoundingBox пересчитывает бокс из позиции и размеров типа
func (e *Entity) RefreshBoundingBox() {
	if e.Type == nil {
		return
	}
	e.BoundingBox = BoxAt(e.Position, e.Type.Width, e.Type.Height, e.Type.Depth)
}
