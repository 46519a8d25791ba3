package mesh

import (
	"github.com/annel0/voxelworld/internal/geom"
	"github.com/annel0/voxelworld/internal/render/vertex"
	"github.com/annel0/voxelworld/internal/world/block"
)

// quadIndices два треугольника на грань
var quadIndices = []uint32{0, 1, 2, 2, 3, 0}

// BlockRenderer пишет грани кубических блоков в буфер
type BlockRenderer struct {
	atlas Atlas
}

// NewBlockRenderer создает рендерер блоков
func NewBlockRenderer(atlas Atlas) *BlockRenderer {
	return &BlockRenderer{atlas: atlas}
}

// RenderFace добавляет одну грань блока t в мировой позиции (x, y, z).
// Возвращает false, если у блока нет текстуры в атласе.
func (r *BlockRenderer) RenderFace(b *vertex.Builder, t *block.BlockType, x, y, z int, dir geom.Direction) bool {
	region, ok := r.atlas.Region(t.Texture)
	if !ok {
		return false
	}

	fx, fy, fz := float32(x), float32(y), float32(z)
	tx, ty, tz := fx+1, fy+1, fz+1
	u0, v0, u1, v1 := region.U0, region.V0, region.U1, region.V1

	b.Indices(quadIndices...)
	b.Color(0xff, 0xff, 0xff, 0xff)

	// Порядок вершин задает лицевую сторону (против часовой снаружи)
	switch dir {
	case geom.West:
		b.Position(fx, ty, fz).TexCoord(u0, v0).Emit()
		b.Position(fx, fy, fz).TexCoord(u0, v1).Emit()
		b.Position(fx, fy, tz).TexCoord(u1, v1).Emit()
		b.Position(fx, ty, tz).TexCoord(u1, v0).Emit()
	case geom.East:
		b.Position(tx, ty, tz).TexCoord(u0, v0).Emit()
		b.Position(tx, fy, tz).TexCoord(u0, v1).Emit()
		b.Position(tx, fy, fz).TexCoord(u1, v1).Emit()
		b.Position(tx, ty, fz).TexCoord(u1, v0).Emit()
	case geom.Down:
		b.Position(fx, fy, tz).TexCoord(u0, v0).Emit()
		b.Position(fx, fy, fz).TexCoord(u0, v1).Emit()
		b.Position(tx, fy, fz).TexCoord(u1, v1).Emit()
		b.Position(tx, fy, tz).TexCoord(u1, v0).Emit()
	case geom.Up:
		b.Position(fx, ty, fz).TexCoord(u0, v0).Emit()
		b.Position(fx, ty, tz).TexCoord(u0, v1).Emit()
		b.Position(tx, ty, tz).TexCoord(u1, v1).Emit()
		b.Position(tx, ty, fz).TexCoord(u1, v0).Emit()
	case geom.North:
		b.Position(tx, ty, fz).TexCoord(u0, v0).Emit()
		b.Position(tx, fy, fz).TexCoord(u0, v1).Emit()
		b.Position(fx, fy, fz).TexCoord(u1, v1).Emit()
		b.Position(fx, ty, fz).TexCoord(u1, v0).Emit()
	case geom.South:
		b.Position(fx, ty, tz).TexCoord(u0, v0).Emit()
		b.Position(fx, fy, tz).TexCoord(u0, v1).Emit()
		b.Position(tx, fy, tz).TexCoord(u1, v1).Emit()
		b.Position(tx, ty, tz).TexCoord(u1, v0).Emit()
	}
	return true
}
