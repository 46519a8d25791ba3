package physics

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/voxelworld/internal/geom"
	"github.com/annel0/voxelworld/internal/vec"
	"github.com/annel0/voxelworld/internal/world/block"
	"github.com/annel0/voxelworld/internal/world/entity"
)

var solid = block.NewBlockType(100, "test_solid", block.Settings{})

// flatWorld твердые блоки ниже floorY; с unload ни один чанк не загружен
type flatWorld struct {
	floorY  int
	walls   map[[3]int]bool
	ensured int
	unload  bool
}

func (w *flatWorld) GetBlockType(x, y, z int) *block.BlockType {
	if y < w.floorY || w.walls[[3]int{x, y, z}] {
		return solid
	}
	return block.Air
}

func (w *flatWorld) IsBlockLoaded(x, y, z int) bool { return !w.unload }

func (w *flatWorld) EnsureBlockLoaded(x, y, z int) { w.ensured++ }

func newPlayer(x, y, z float64) *entity.Entity {
	return entity.New(uuid.New(), entity.Player, vec.Vec3Float{X: x, Y: y, Z: z})
}

func TestFallingEntitySettlesOnGround(t *testing.T) {
	w := &flatWorld{floorY: 9}
	e := newPlayer(0.5, 20, 0.5)
	m := NewMotionSystem()

	for i := 0; i < 200; i++ {
		m.Process(w, []*entity.Entity{e})
	}

	assert.InDelta(t, 9.0, e.Position.Y, 1e-9, "сущность должна стоять на верхней грани блока")
	assert.True(t, e.OnGround())
	assert.Equal(t, 0.0, e.Velocity.Y, "вертикальная скорость обнуляется при касании")
	assert.Equal(t, entity.BoxAt(e.Position, entity.PlayerWidth, entity.PlayerHeight, entity.PlayerWidth), e.BoundingBox)
}

func TestFirstTickAppliesGravityAndDrag(t *testing.T) {
	w := &flatWorld{floorY: -100}
	e := newPlayer(0, 50, 0)
	NewMotionSystem().Process(w, []*entity.Entity{e})

	assert.InDelta(t, 50+Gravity, e.Position.Y, 1e-12)
	assert.InDelta(t, Gravity*AirDragY, e.Velocity.Y, 1e-12)
	assert.False(t, e.OnGround())
}

func TestWallStopsHorizontalMovement(t *testing.T) {
	w := &flatWorld{floorY: 0, walls: map[[3]int]bool{}}
	for y := 0; y < 4; y++ {
		w.walls[[3]int{2, y, 0}] = true
	}
	// Половина ширины 0.25 точно представима, позиция у стены получается без погрешности
	narrow := &entity.Type{Name: "narrow", Width: 0.5, Height: 1.8, Depth: 0.5}
	e := entity.New(uuid.New(), narrow, vec.Vec3Float{X: 0.5, Z: 0.5})
	for _, k := range []entity.ComponentKind{entity.Acceleration, entity.BoundingBox, entity.Position, entity.Velocity} {
		e.Add(k)
	}
	e.Position = vec.Vec3Float{X: 0.5, Z: 0.5}
	e.RefreshBoundingBox()
	m := NewMotionSystem()

	for i := 0; i < 40; i++ {
		e.Acceleration = vec.Vec3Float{X: 0.1}
		m.Process(w, []*entity.Entity{e})
	}

	assert.Equal(t, 1.75, e.Position.X, "игрок упирается в стену")
	assert.Equal(t, 0.0, e.Velocity.X)
}

func TestUnloadedCellsForceChunkCreation(t *testing.T) {
	w := &flatWorld{floorY: 10, unload: true}
	e := newPlayer(0.5, 10, 0.5)
	NewMotionSystem().Process(w, []*entity.Entity{e})

	assert.Positive(t, w.ensured, "незагруженные клетки должны запросить создание чанка")
	assert.Equal(t, 10.0, e.Position.Y, "пол в только что созданном чанке держит сущность")
	assert.True(t, e.OnGround())
	assert.Equal(t, 0.0, e.Velocity.Y)
}

func TestEntityWithoutComponentsIsSkipped(t *testing.T) {
	e := &entity.Entity{}
	e.Add(entity.Position)
	NewMotionSystem().Process(&flatWorld{}, []*entity.Entity{e})
	assert.Equal(t, vec.Zero3, e.Position)
}

func TestCollectColliders(t *testing.T) {
	w := &flatWorld{floorY: 1}
	boxes := CollectColliders(w, geom.AABB{MinX: 0, MinY: 0.5, MinZ: 0, MaxX: 0.5, MaxY: 1.5, MaxZ: 0.5}, nil)
	// x,z в [0,2), y в [0,3): твердый только слой y=0
	require.Len(t, boxes, 4)
	for _, b := range boxes {
		assert.Equal(t, 0.0, b.MinY)
		assert.Equal(t, 1.0, b.MaxY)
	}
}

func TestMoveRelative(t *testing.T) {
	t.Run("вперед без поворота", func(t *testing.T) {
		m := MoveRelative(0, 0, -1, 0, 0.1)
		assert.InDelta(t, 0, m.X, 1e-12)
		assert.InDelta(t, -0.1, m.Z, 1e-12)
	})
	t.Run("поворот на 90 градусов", func(t *testing.T) {
		m := MoveRelative(0, 0, -1, 90, 0.1)
		assert.InDelta(t, -0.1, m.X, 1e-12)
		assert.InDelta(t, 0, m.Z, 1e-12)
	})
	t.Run("диагональ нормализуется", func(t *testing.T) {
		m := MoveRelative(1, 0, 1, 0, 0.1)
		assert.InDelta(t, 0.1, vec.Vec3Float{X: m.X, Z: m.Z}.Length(), 1e-12)
	})
	t.Run("малый ввод игнорируется, y сохраняется", func(t *testing.T) {
		m := MoveRelative(0.05, 0.3, 0, 0, 0.1)
		assert.Equal(t, vec.Vec3Float{Y: 0.3}, m)
	})
}
