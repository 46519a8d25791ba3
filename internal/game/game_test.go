package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/voxelworld/internal/geom"
	"github.com/annel0/voxelworld/internal/render"
	"github.com/annel0/voxelworld/internal/world"
	"github.com/annel0/voxelworld/internal/world/block"
	"github.com/annel0/voxelworld/internal/world/block/implementations"
)

const tickStep = 50 * time.Millisecond

type testGame struct {
	*Game
	input *StaticInput
	gpu   *render.RecordingGPU
	now   time.Time
}

func newTestGame(t *testing.T) *testGame {
	t.Helper()
	w := world.New(world.LayeredGenerator{})
	gpu := render.NewRecordingGPU()
	wr, err := render.NewWorldRenderer(w, gpu, render.Options{Radius: 1, Workers: 2})
	require.NoError(t, err)

	start := time.Unix(0, 0)
	input := NewStaticInput(854, 480)
	g := New(w, wr, gpu, input, Options{TPS: 20}, start)
	t.Cleanup(func() { _ = g.Close() })
	return &testGame{Game: g, input: input, gpu: gpu, now: start}
}

// step выполняет кадр длиной ровно в один тик
func (tg *testGame) step(n int) {
	for i := 0; i < n; i++ {
		tg.now = tg.now.Add(tickStep)
		tg.Frame(tg.now)
	}
}

func (tg *testGame) settle(t *testing.T) {
	t.Helper()
	tg.step(40)
	require.True(t, tg.Player().OnGround(), "игрок должен стоять на траве")
	require.InDelta(t, 9.0, tg.Player().Position.Y, 1e-9)
}

func TestPlayerFallsAndLooksAtGrass(t *testing.T) {
	tg := newTestGame(t)
	tg.Player().Rotation.X = -90
	tg.settle(t)

	hit := tg.HitResult()
	require.False(t, hit.Missed)
	assert.Equal(t, [3]int{0, 8, 0}, [3]int{hit.X, hit.Y, hit.Z})
	assert.Equal(t, geom.Up, hit.Face)
	assert.Equal(t, uint64(40), tg.Frames())
	assert.Equal(t, uint64(40), tg.Ticks())
}

func TestBreakBlockUnderPlayer(t *testing.T) {
	tg := newTestGame(t)
	tg.Player().Rotation.X = -90
	tg.settle(t)

	tg.input.State.Break = true
	tg.step(1)
	tg.input.State.Break = false

	assert.Same(t, block.Air, tg.World().GetBlockType(0, 8, 0))
}

func TestPlaceBlockOnStruckFace(t *testing.T) {
	tg := newTestGame(t)
	tg.Player().Rotation.X = -90
	tg.settle(t)

	tg.input.State.Place = true
	tg.step(1)
	tg.input.State.Place = false

	assert.Same(t, implementations.Stone, tg.World().GetBlockType(0, 9, 0), "блок ставится над гранью UP")
}

func TestPlaceCooldown(t *testing.T) {
	tg := newTestGame(t)
	tg.Player().Rotation.X = -90
	tg.settle(t)

	tg.input.State.Place = true
	tg.input.State.HotbarSlot = 1
	tg.step(1)
	assert.Same(t, implementations.Dirt, tg.World().GetBlockType(0, 9, 0))

	// Следующий тик в пределах перезарядки ничего не ставит
	tg.World().SetBlockType(0, 9, 0, block.Air)
	tg.step(1)
	assert.Same(t, block.Air, tg.World().GetBlockType(0, 9, 0))
	assert.Same(t, block.Air, tg.World().GetBlockType(0, 10, 0))
}

func TestWalkForward(t *testing.T) {
	tg := newTestGame(t)
	tg.settle(t)

	tg.input.State.Forward = true
	tg.step(10)
	assert.Less(t, tg.Player().Position.Z, 0.5, "при yaw 0 вперед это -Z")
	assert.InDelta(t, 0.5, tg.Player().Position.X, 1e-9)
}

func TestJump(t *testing.T) {
	tg := newTestGame(t)
	tg.settle(t)

	tg.input.State.Jump = true
	tg.step(1)
	tg.input.State.Jump = false
	assert.Greater(t, tg.Player().Position.Y, 9.0)
	assert.False(t, tg.Player().OnGround())
}

func TestRotateClampsAndWraps(t *testing.T) {
	tg := newTestGame(t)
	tg.Rotate(-120, -30)
	assert.Equal(t, -90.0, tg.Player().Rotation.X)
	assert.Equal(t, 330.0, tg.Player().Rotation.Y)

	tg.input.State.CursorDX = -100
	tg.step(1)
	assert.InDelta(t, 345.0, tg.Player().Rotation.Y, 1e-9, "курсор влево поворачивает по yaw")
}
