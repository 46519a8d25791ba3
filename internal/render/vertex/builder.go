package vertex

import (
	"encoding/binary"
	"math"

	"github.com/annel0/voxelworld/internal/logging"
)

// Емкости по умолчанию
const (
	DefaultVertexCapacity = 30000
	DefaultIndexCapacity  = 45000
)

// Builder растущий буфер вершин и индексов.
// Один Builder используется одной горутиной за раз.
type Builder struct {
	layout *Layout

	vertices []byte
	indices  []uint32

	maxVertices int
	maxIndices  int

	vertexCount     int
	indexCount      int
	prevVertexCount int
	prevIndexCount  int

	reallocVertex bool
	reallocIndex  bool
	used          bool

	posOff, colorOff, uvOff int

	x, y, z    float32
	r, g, b, a uint8
	u, v       float32

	logger *logging.Logger
}

// NewBuilder создает буфер для layout с начальными емкостями
func NewBuilder(layout *Layout, vertexCapacity, indexCapacity int) *Builder {
	if vertexCapacity <= 0 {
		vertexCapacity = DefaultVertexCapacity
	}
	if indexCapacity <= 0 {
		indexCapacity = DefaultIndexCapacity
	}
	return &Builder{
		layout:        layout,
		vertices:      make([]byte, vertexCapacity*layout.Stride()),
		indices:       make([]uint32, indexCapacity),
		maxVertices:   vertexCapacity,
		maxIndices:    indexCapacity,
		reallocVertex: true,
		reallocIndex:  true,
		posOff:        layout.Offset(AttrPosition),
		colorOff:      layout.Offset(AttrColor),
		uvOff:         layout.Offset(AttrUV),
		r:             0xff,
		g:             0xff,
		b:             0xff,
		a:             0xff,
		logger:        logging.GetMeshLogger(),
	}
}

// Layout возвращает формат вершин
func (b *Builder) Layout() *Layout {
	return b.layout
}

// Reset начинает новую компиляцию. Флаги перевыделения сбрасываются,
// кроме первой компиляции свежего буфера.
func (b *Builder) Reset() {
	b.prevVertexCount = b.vertexCount
	b.prevIndexCount = b.indexCount
	b.vertexCount = 0
	b.indexCount = 0
	if b.used {
		b.reallocVertex = false
		b.reallocIndex = false
	}
	b.used = true
}

// Position задает позицию текущей вершины
func (b *Builder) Position(x, y, z float32) *Builder {
	b.x, b.y, b.z = x, y, z
	return b
}

// Color задает цвет RGBA текущей вершины
func (b *Builder) Color(r, g, bl, a uint8) *Builder {
	b.r, b.g, b.b, b.a = r, g, bl, a
	return b
}

// ColorF задает цвет компонентами от 0 до 1
func (b *Builder) ColorF(r, g, bl, a float32) *Builder {
	return b.Color(colorToByte(r), colorToByte(g), colorToByte(bl), colorToByte(a))
}

func colorToByte(c float32) uint8 {
	if c <= 0 {
		return 0
	}
	if c >= 1 {
		return 0xff
	}
	return uint8(c * 255)
}

// TexCoord задает текстурные координаты текущей вершины
func (b *Builder) TexCoord(u, v float32) *Builder {
	b.u, b.v = u, v
	return b
}

// Emit записывает текущую вершину
func (b *Builder) Emit() {
	if b.vertexCount+1 > b.maxVertices {
		b.logger.Debug("превышена емкость вершин %d, расширяем", b.maxVertices)
		b.maxVertices = max(b.maxVertices*3/2, b.vertexCount+1)
		grown := make([]byte, b.maxVertices*b.layout.Stride())
		copy(grown, b.vertices[:b.vertexCount*b.layout.Stride()])
		b.vertices = grown
		b.reallocVertex = true
	}

	base := b.vertexCount * b.layout.Stride()
	if b.posOff >= 0 {
		p := b.vertices[base+b.posOff:]
		binary.LittleEndian.PutUint32(p[0:], math.Float32bits(b.x))
		binary.LittleEndian.PutUint32(p[4:], math.Float32bits(b.y))
		binary.LittleEndian.PutUint32(p[8:], math.Float32bits(b.z))
	}
	if b.colorOff >= 0 {
		c := b.vertices[base+b.colorOff:]
		c[0], c[1], c[2], c[3] = b.r, b.g, b.b, b.a
	}
	if b.uvOff >= 0 {
		t := b.vertices[base+b.uvOff:]
		binary.LittleEndian.PutUint32(t[0:], math.Float32bits(b.u))
		binary.LittleEndian.PutUint32(t[4:], math.Float32bits(b.v))
	}

	b.vertexCount++
	if b.vertexCount > b.prevVertexCount {
		b.reallocVertex = true
	}
}

// IndicesWithOffset добавляет индексы, прибавляя offset
func (b *Builder) IndicesWithOffset(offset int, indices ...uint32) *Builder {
	if b.indexCount+len(indices) > b.maxIndices {
		b.logger.Debug("превышена емкость индексов: %d + %d > %d, расширяем", b.indexCount, len(indices), b.maxIndices)
		for b.indexCount+len(indices) > b.maxIndices {
			b.maxIndices = max(b.maxIndices*3/2, b.maxIndices+1)
		}
		grown := make([]uint32, b.maxIndices)
		copy(grown, b.indices[:b.indexCount])
		b.indices = grown
		b.reallocIndex = true
	}
	for i, idx := range indices {
		b.indices[b.indexCount+i] = idx + uint32(offset)
	}
	b.indexCount += len(indices)
	if b.indexCount > b.prevIndexCount {
		b.reallocIndex = true
	}
	return b
}

// Indices добавляет индексы относительно текущего числа вершин
func (b *Builder) Indices(indices ...uint32) *Builder {
	return b.IndicesWithOffset(b.vertexCount, indices...)
}

// VertexCount число записанных вершин
func (b *Builder) VertexCount() int {
	return b.vertexCount
}

// IndexCount число записанных индексов
func (b *Builder) IndexCount() int {
	return b.indexCount
}

// VertexCapacity текущая емкость вершин
func (b *Builder) VertexCapacity() int {
	return b.maxVertices
}

// IndexCapacity текущая емкость индексов
func (b *Builder) IndexCapacity() int {
	return b.maxIndices
}

// ShouldReallocateVertexData сообщает, что данные не помещаются в прежнее GPU-хранилище
func (b *Builder) ShouldReallocateVertexData() bool {
	return b.reallocVertex
}

// ShouldReallocateIndexData то же для индексов
func (b *Builder) ShouldReallocateIndexData() bool {
	return b.reallocIndex
}

// VertexBytes возвращает копию записанных вершин точного размера
func (b *Builder) VertexBytes() []byte {
	out := make([]byte, b.vertexCount*b.layout.Stride())
	copy(out, b.vertices)
	return out
}

// IndexBytes возвращает копию индексов в little-endian uint32
func (b *Builder) IndexBytes() []byte {
	out := make([]byte, b.indexCount*4)
	for i := 0; i < b.indexCount; i++ {
		binary.LittleEndian.PutUint32(out[i*4:], b.indices[i])
	}
	return out
}
