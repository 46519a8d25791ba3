package mesh

import (
	"github.com/annel0/voxelworld/internal/render/vertex"
	"github.com/annel0/voxelworld/internal/world"
)

// ChunkVertexData неизменяемый результат компиляции чанка.
// Байты вершин и индексов принадлежат только этому значению.
type ChunkVertexData struct {
	Layout     *vertex.Layout
	IndexCount int
	VertexData []byte
	IndexData  []byte

	ShouldReallocateVertexData bool
	ShouldReallocateIndexData  bool

	Pos     world.ChunkPos
	Version uint64
}

// Empty сообщает, что в чанке нечего рисовать
func (d *ChunkVertexData) Empty() bool {
	return d.IndexCount == 0
}
