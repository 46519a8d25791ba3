package mesh

import (
	"context"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/voxelworld/internal/geom"
	"github.com/annel0/voxelworld/internal/render/vertex"
	"github.com/annel0/voxelworld/internal/world"
	"github.com/annel0/voxelworld/internal/world/block"
	"github.com/annel0/voxelworld/internal/world/block/implementations"
)

// fakeSource мир вне чанка: либо весь воздух, либо весь незагружен
type fakeSource struct {
	loaded bool
	solid  bool
}

func (s fakeSource) GetBlockType(x, y, z int) *block.BlockType {
	if s.solid {
		return implementations.Stone
	}
	return block.Air
}

func (s fakeSource) IsBlockLoaded(x, y, z int) bool { return s.loaded }

func newTestCompiler(t *testing.T) *Compiler {
	t.Helper()
	atlas, err := NewBlockAtlas(implementations.Bootstrap())
	require.NoError(t, err)
	return NewCompiler(NewBlockRenderer(atlas), vertex.NewDefaultPool(64, 96))
}

func readVertexPos(data []byte, stride, i int) (float32, float32, float32) {
	off := i * stride
	f := func(o int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(data[off+o:])) }
	return f(0), f(4), f(8)
}

func TestIsolatedBlockEmitsSixQuads(t *testing.T) {
	c := newTestCompiler(t)
	ch := world.NewChunk(world.ChunkPos{X: 1, Y: 0, Z: -1})
	ch.SetBlockType(3, 4, 5, implementations.Stone)

	data, err := c.Compile(context.Background(), ch.Snapshot(), fakeSource{loaded: true}, 7)
	require.NoError(t, err)

	assert.Equal(t, 36, data.IndexCount)
	assert.Len(t, data.VertexData, 24*vertex.PositionColorTex.Stride())
	assert.Len(t, data.IndexData, 36*4)
	assert.Equal(t, uint64(7), data.Version)
	assert.Equal(t, ch.Pos, data.Pos)
	assert.True(t, data.ShouldReallocateVertexData, "первая компиляция свежего буфера")

	// Вершины в мировых координатах
	stride := data.Layout.Stride()
	for i := 0; i < 24; i++ {
		x, y, z := readVertexPos(data.VertexData, stride, i)
		assert.Contains(t, []float32{35, 36}, x)
		assert.Contains(t, []float32{4, 5}, y)
		assert.Contains(t, []float32{-27, -26}, z)
	}

	// Индексы второй грани смещены на 4
	second := make([]uint32, 6)
	for i := range second {
		second[i] = binary.LittleEndian.Uint32(data.IndexData[(6+i)*4:])
	}
	assert.Equal(t, []uint32{4, 5, 6, 6, 7, 4}, second)
	assert.Equal(t, uint64(0), c.Pool().Stats().Discarded)
}

func TestEnclosedBlockEmitsNothing(t *testing.T) {
	c := newTestCompiler(t)
	ch := world.NewChunk(world.ChunkPos{})
	for x := 4; x <= 6; x++ {
		for y := 4; y <= 6; y++ {
			for z := 4; z <= 6; z++ {
				ch.SetBlockType(x, y, z, implementations.Stone)
			}
		}
	}

	data, err := c.Compile(context.Background(), ch.Snapshot(), fakeSource{loaded: true}, 1)
	require.NoError(t, err)
	// 3x3x3 куб: только внешние грани, 6 сторон по 9 квадов
	assert.Equal(t, 6*9*6, data.IndexCount)
}

func TestEmptyChunkCompilesToNothing(t *testing.T) {
	c := newTestCompiler(t)
	data, err := c.Compile(context.Background(), world.NewChunk(world.ChunkPos{}).Snapshot(), fakeSource{loaded: true}, 1)
	require.NoError(t, err)
	assert.True(t, data.Empty())
	assert.Empty(t, data.VertexData)
}

func TestUnloadedNeighbourSuppressesBorderFace(t *testing.T) {
	c := newTestCompiler(t)
	ch := world.NewChunk(world.ChunkPos{})
	ch.SetBlockType(0, 10, 10, implementations.Stone)

	data, err := c.Compile(context.Background(), ch.Snapshot(), fakeSource{loaded: false}, 1)
	require.NoError(t, err)
	assert.Equal(t, 5*6, data.IndexCount, "грань WEST смотрит в незагруженный чанк")

	data, err = c.Compile(context.Background(), ch.Snapshot(), fakeSource{loaded: true, solid: true}, 2)
	require.NoError(t, err)
	assert.Equal(t, 5*6, data.IndexCount, "сосед за границей твердый")

	data, err = c.Compile(context.Background(), ch.Snapshot(), fakeSource{loaded: true}, 3)
	require.NoError(t, err)
	assert.Equal(t, 6*6, data.IndexCount)
}

func TestCompileCancelled(t *testing.T) {
	c := newTestCompiler(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	data, err := c.Compile(ctx, world.NewChunk(world.ChunkPos{}).Snapshot(), fakeSource{}, 1)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, data)

	st := c.Pool().Stats()
	assert.Equal(t, 1, st.Idle, "буфер возвращается в пул при отмене")
	assert.Equal(t, uint64(0), st.Discarded)
}

// stealingSource при первом обращении отменяет компиляцию и перехватывает
// ее буфер, так что возврат буфера в пул завершается ошибкой
type stealingSource struct {
	pool   *vertex.Pool
	cancel context.CancelFunc
	done   bool
}

func (s *stealingSource) GetBlockType(x, y, z int) *block.BlockType { return block.Air }

func (s *stealingSource) IsBlockLoaded(x, y, z int) bool {
	if !s.done {
		s.done = true
		s.pool.Acquire()
		s.cancel()
	}
	return true
}

func TestCompileCancelledReportsReleaseError(t *testing.T) {
	shared := vertex.NewBuilder(vertex.PositionColorTex, 64, 96)
	pool := vertex.NewPool(func() *vertex.Builder { return shared })
	atlas, err := NewBlockAtlas(implementations.Bootstrap())
	require.NoError(t, err)
	c := NewCompiler(NewBlockRenderer(atlas), pool)

	ch := world.NewChunk(world.ChunkPos{})
	ch.SetBlockType(0, 0, 0, implementations.Stone)
	ch.SetBlockType(world.ChunkSize-1, world.ChunkSize-1, world.ChunkSize-1, implementations.Stone)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	data, err := c.Compile(ctx, ch.Snapshot(), &stealingSource{pool: pool, cancel: cancel}, 1)
	assert.Nil(t, data)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, vertex.ErrNotOwned)
}

func TestCompilePanicDiscardsBuffer(t *testing.T) {
	c := NewCompiler(nil, vertex.NewDefaultPool(8, 8))
	ch := world.NewChunk(world.ChunkPos{})
	ch.SetBlockType(1, 1, 1, implementations.Stone)

	data, err := c.Compile(context.Background(), ch.Snapshot(), fakeSource{loaded: true}, 1)
	assert.Error(t, err)
	assert.Nil(t, data)
	assert.Equal(t, uint64(1), c.Pool().Stats().Discarded)
}

func TestRenderFaceUpVertexOrder(t *testing.T) {
	atlas := NewGridAtlas(2, 2)
	require.NoError(t, atlas.Add(implementations.Stone.Texture))
	r := NewBlockRenderer(atlas)
	b := vertex.NewBuilder(vertex.PositionColorTex, 8, 8)

	require.True(t, r.RenderFace(b, implementations.Stone, 1, 2, 3, geom.Up))
	assert.Equal(t, 4, b.VertexCount())

	data := b.VertexBytes()
	stride := vertex.PositionColorTex.Stride()
	want := [][3]float32{{1, 3, 3}, {1, 3, 4}, {2, 3, 4}, {2, 3, 3}}
	for i, w := range want {
		x, y, z := readVertexPos(data, stride, i)
		assert.Equal(t, w, [3]float32{x, y, z}, "вершина %d", i)
	}
}

func TestRenderFaceWithoutTexture(t *testing.T) {
	r := NewBlockRenderer(NewGridAtlas(1, 1))
	b := vertex.NewBuilder(vertex.PositionColorTex, 8, 8)
	assert.False(t, r.RenderFace(b, implementations.Stone, 0, 0, 0, geom.Up))
	assert.Equal(t, 0, b.VertexCount())
}
