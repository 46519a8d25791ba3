package render

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/annel0/voxelworld/internal/render/mesh"
	"github.com/annel0/voxelworld/internal/render/vertex"
	"github.com/annel0/voxelworld/internal/vec"
	"github.com/annel0/voxelworld/internal/world"
)

// RenderChunk клиентское состояние чанка: флаг грязности, версия
// последней отправленной компиляции, ожидающий загрузки результат и буферы GPU.
type RenderChunk struct {
	Pos world.ChunkPos

	dirty   atomic.Bool
	version atomic.Uint64

	mu      sync.Mutex
	cancel  context.CancelFunc
	pending *mesh.ChunkVertexData

	// Только поток отрисовки
	vbo, ibo   BufferID
	vboSize    int
	iboSize    int
	indexCount int
	layout     *vertex.Layout
}

func newRenderChunk(pos world.ChunkPos) *RenderChunk {
	c := &RenderChunk{Pos: pos}
	c.dirty.Store(true)
	return c
}

// MarkDirty требует перекомпиляции
func (c *RenderChunk) MarkDirty() {
	c.dirty.Store(true)
}

// IsDirty сообщает, нужна ли перекомпиляция
func (c *RenderChunk) IsDirty() bool {
	return c.dirty.Load()
}

// Version номер последней отправленной компиляции
func (c *RenderChunk) Version() uint64 {
	return c.version.Load()
}

// IndexCount число индексов в загруженной геометрии
func (c *RenderChunk) IndexCount() int {
	return c.indexCount
}

// beginCompile отменяет предыдущую компиляцию и выдает новую версию
func (c *RenderChunk) beginCompile(parent context.Context) (context.Context, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	c.cancel = cancel
	c.dirty.Store(false)
	return ctx, c.version.Add(1)
}

// offer принимает результат, только если он текущей версии и новее ожидающего
func (c *RenderChunk) offer(data *mesh.ChunkVertexData) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if data.Version != c.version.Load() {
		return false
	}
	if c.pending != nil && c.pending.Version >= data.Version {
		return false
	}
	c.pending = data
	return true
}

// compileFailed возвращает чанк в грязные, если ошибка у текущей версии
func (c *RenderChunk) compileFailed(version uint64) {
	if c.version.Load() == version {
		c.dirty.Store(true)
	}
}

func (c *RenderChunk) take() *mesh.ChunkVertexData {
	c.mu.Lock()
	defer c.mu.Unlock()
	data := c.pending
	c.pending = nil
	return data
}

// upload забирает последний результат и грузит его на GPU.
// Буфер перевыделяется по флагу компилятора или если данные не помещаются.
func (c *RenderChunk) upload(gpu GPU) bool {
	data := c.take()
	if data == nil {
		return false
	}
	if c.vbo == 0 {
		c.vbo = gpu.GenBuffer()
		c.ibo = gpu.GenBuffer()
	}

	if data.ShouldReallocateVertexData || len(data.VertexData) > c.vboSize {
		gpu.BufferData(ArrayBuffer, c.vbo, data.VertexData)
		c.vboSize = len(data.VertexData)
	} else if len(data.VertexData) > 0 {
		gpu.BufferSubData(ArrayBuffer, c.vbo, 0, data.VertexData)
	}
	if data.ShouldReallocateIndexData || len(data.IndexData) > c.iboSize {
		gpu.BufferData(ElementArrayBuffer, c.ibo, data.IndexData)
		c.iboSize = len(data.IndexData)
	} else if len(data.IndexData) > 0 {
		gpu.BufferSubData(ElementArrayBuffer, c.ibo, 0, data.IndexData)
	}

	c.indexCount = data.IndexCount
	c.layout = data.Layout
	return true
}

func (c *RenderChunk) draw(rc *RenderContext) bool {
	if c.vbo == 0 || c.indexCount == 0 {
		return false
	}
	rc.GPU.DrawElements(Triangles, rc.MVP(), c.layout, c.vbo, c.ibo, c.indexCount)
	return true
}

// release отменяет компиляцию и освобождает буферы GPU
func (c *RenderChunk) release(gpu GPU) {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.pending = nil
	c.mu.Unlock()

	if c.vbo != 0 {
		gpu.DeleteBuffer(c.vbo)
		gpu.DeleteBuffer(c.ibo)
		c.vbo, c.ibo = 0, 0
	}
	c.vboSize, c.iboSize, c.indexCount = 0, 0, 0
}

func (c *RenderChunk) center() vec.Vec3Float {
	half := float64(world.ChunkSize) / 2
	return vec.Vec3Float{
		X: float64(c.Pos.X*world.ChunkSize) + half,
		Y: float64(c.Pos.Y*world.ChunkSize) + half,
		Z: float64(c.Pos.Z*world.ChunkSize) + half,
	}
}

// yDistance расстояние по вертикали от центра чанка до точки
func (c *RenderChunk) yDistance(p vec.Vec3Float) float64 {
	d := c.center().Y - p.Y
	if d < 0 {
		return -d
	}
	return d
}

// xzDistanceSquared квадрат горизонтального расстояния до точки
func (c *RenderChunk) xzDistanceSquared(p vec.Vec3Float) float64 {
	ctr := c.center()
	dx := ctr.X - p.X
	dz := ctr.Z - p.Z
	return dx*dx + dz*dz
}
