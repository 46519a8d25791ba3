package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/annel0/voxelworld/internal/geom"
	"github.com/annel0/voxelworld/internal/vec"
)

func TestComponentSet(t *testing.T) {
	s := Components(Position, Velocity)
	assert.True(t, s.Has(Position))
	assert.False(t, s.Has(OnGround))
	assert.True(t, s.HasAll(Components(Velocity)))
	assert.False(t, s.HasAll(Components(Velocity, Acceleration)))
	assert.False(t, s.Without(Position).Has(Position))
}

func TestBoxAt(t *testing.T) {
	b := BoxAt(vec.Vec3Float{X: 1, Y: 2, Z: 3}, 0.6, 1.8, 0.6)
	assert.InDelta(t, 0.7, b.MinX, 1e-9)
	assert.InDelta(t, 2.0, b.MinY, 1e-9)
	assert.InDelta(t, 2.7, b.MinZ, 1e-9)
	assert.InDelta(t, 1.3, b.MaxX, 1e-9)
	assert.InDelta(t, 3.8, b.MaxY, 1e-9)
	assert.InDelta(t, 3.3, b.MaxZ, 1e-9)
}

func TestPlayerInitializer(t *testing.T) {
	pos := vec.Vec3Float{X: 0.5, Y: 10, Z: 0.5}
	e := New(uuid.New(), Player, pos)

	assert.True(t, e.HasAll(Components(Position, Velocity, Acceleration, Rotation, BoundingBox, EyeHeight)))
	assert.False(t, e.OnGround(), "новая сущность не на земле")
	assert.Equal(t, pos, e.Position)
	assert.Equal(t, BoxAt(pos, PlayerWidth, PlayerHeight, PlayerWidth), e.BoundingBox)
	assert.InDelta(t, 10+PlayerEyeHeight, e.EyePosition().Y, 1e-9)
}

func TestAddKeepsExistingValue(t *testing.T) {
	e := &Entity{}
	e.Add(BoundingBox)
	e.BoundingBox = geom.FullCube
	e.Add(BoundingBox)
	assert.Equal(t, geom.FullCube, e.BoundingBox)

	e.SetOnGround(true)
	assert.True(t, e.OnGround())
	e.SetOnGround(false)
	assert.False(t, e.OnGround())
}

func TestRegisterDuplicateType(t *testing.T) {
	_, err := Register(&Type{ID: PlayerTypeID, Name: "dup"})
	assert.Error(t, err)

	got, ok := Get(PlayerTypeID)
	assert.True(t, ok)
	assert.Same(t, Player, got)
}
