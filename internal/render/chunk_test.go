package render

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/voxelworld/internal/render/mesh"
	"github.com/annel0/voxelworld/internal/render/vertex"
	"github.com/annel0/voxelworld/internal/world"
)

func vertexData(version uint64, vertices, indices int, realloc bool) *mesh.ChunkVertexData {
	return &mesh.ChunkVertexData{
		Layout:                     vertex.PositionColorTex,
		IndexCount:                 indices,
		VertexData:                 make([]byte, vertices*vertex.PositionColorTex.Stride()),
		IndexData:                  make([]byte, indices*4),
		ShouldReallocateVertexData: realloc,
		ShouldReallocateIndexData:  realloc,
		Version:                    version,
	}
}

func TestRenderChunkLatestVersionWins(t *testing.T) {
	c := newRenderChunk(world.ChunkPos{})
	require.True(t, c.IsDirty(), "новый чанк грязный")

	ctx1, v1 := c.beginCompile(context.Background())
	assert.False(t, c.IsDirty())
	ctx2, v2 := c.beginCompile(context.Background())
	assert.Greater(t, v2, v1)

	assert.ErrorIs(t, ctx1.Err(), context.Canceled, "новая версия отменяет предыдущую")
	assert.NoError(t, ctx2.Err())

	assert.False(t, c.offer(vertexData(v1, 4, 6, true)), "устаревший результат отбрасывается")
	assert.True(t, c.offer(vertexData(v2, 4, 6, true)))
	assert.False(t, c.offer(vertexData(v2, 8, 12, true)), "повтор той же версии не заменяет результат")

	data := c.take()
	require.NotNil(t, data)
	assert.Equal(t, 6, data.IndexCount)
	assert.Nil(t, c.take())
}

func TestRenderChunkCompileFailedRemarksDirty(t *testing.T) {
	c := newRenderChunk(world.ChunkPos{})
	_, v1 := c.beginCompile(context.Background())
	_, _ = c.beginCompile(context.Background())

	c.compileFailed(v1)
	assert.False(t, c.IsDirty(), "ошибка старой версии не трогает чанк")

	c.compileFailed(c.Version())
	assert.True(t, c.IsDirty())
}

func TestRenderChunkUploadReallocation(t *testing.T) {
	gpu := NewRecordingGPU()
	c := newRenderChunk(world.ChunkPos{})

	_, v := c.beginCompile(context.Background())
	require.True(t, c.offer(vertexData(v, 8, 12, false)))
	require.True(t, c.upload(gpu))
	st := gpu.Stats()
	assert.Equal(t, 2, st.BufferData, "пустые буферы выделяются даже без флага")

	_, v = c.beginCompile(context.Background())
	require.True(t, c.offer(vertexData(v, 4, 6, false)))
	require.True(t, c.upload(gpu))
	st = gpu.Stats()
	assert.Equal(t, 2, st.BufferData)
	assert.Equal(t, 2, st.BufferSubData)

	_, v = c.beginCompile(context.Background())
	require.True(t, c.offer(vertexData(v, 16, 24, false)))
	require.True(t, c.upload(gpu))
	st = gpu.Stats()
	assert.Equal(t, 4, st.BufferData, "данные больше буфера")
	assert.Equal(t, 0, st.Overflows)

	size, ok := gpu.BufferSize(c.vbo)
	require.True(t, ok)
	assert.Equal(t, 16*vertex.PositionColorTex.Stride(), size)

	assert.False(t, c.upload(gpu), "нечего загружать")

	rc := NewRenderContext(gpu, 1, 1)
	assert.True(t, c.draw(rc))
	assert.Equal(t, 24, gpu.Stats().DrawnIndices)

	c.release(gpu)
	assert.Equal(t, 0, gpu.Stats().LiveBuffers)
	assert.False(t, c.draw(rc))
}
