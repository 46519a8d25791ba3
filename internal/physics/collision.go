package physics

import (
	"math"

	"github.com/annel0/voxelworld/internal/geom"
	"github.com/annel0/voxelworld/internal/world/block"
)

// BlockSource мир с точки зрения физики
type BlockSource interface {
	GetBlockType(x, y, z int) *block.BlockType
	IsBlockLoaded(x, y, z int) bool
	// EnsureBlockLoaded синхронно создает чанк, содержащий блок
	EnsureBlockLoaded(x, y, z int)
}

// CollectColliders собирает боксы столкновений твердых блоков в области range.
// Клетки от floor(min) до ceil(max+1) не включительно. Незагруженный чанк
// создается синхронно, и его клетка учитывается в том же тике.
func CollectColliders(src BlockSource, area geom.AABB, dst []geom.AABB) []geom.AABB {
	x0 := int(math.Floor(area.MinX))
	y0 := int(math.Floor(area.MinY))
	z0 := int(math.Floor(area.MinZ))
	x1 := int(math.Ceil(area.MaxX + 1))
	y1 := int(math.Ceil(area.MaxY + 1))
	z1 := int(math.Ceil(area.MaxZ + 1))

	for x := x0; x < x1; x++ {
		for y := y0; y < y1; y++ {
			for z := z0; z < z1; z++ {
				if !src.IsBlockLoaded(x, y, z) {
					src.EnsureBlockLoaded(x, y, z)
				}
				t := src.GetBlockType(x, y, z)
				if t.Air {
					continue
				}
				dst = append(dst, t.CollisionShape().Move(float64(x), float64(y), float64(z)))
			}
		}
	}
	return dst
}

// ResolveMove ограничивает перемещение бокса по очереди по Y, X и Z.
// Возвращает итоговое перемещение и сдвинутый бокс.
func ResolveMove(box geom.AABB, colliders []geom.AABB, moveX, moveY, moveZ float64) (float64, float64, float64, geom.AABB) {
	for _, c := range colliders {
		moveY = c.ClipYCollide(box, moveY)
	}
	box = box.Move(0, moveY, 0)

	for _, c := range colliders {
		moveX = c.ClipXCollide(box, moveX)
	}
	box = box.Move(moveX, 0, 0)

	for _, c := range colliders {
		moveZ = c.ClipZCollide(box, moveZ)
	}
	box = box.Move(0, 0, moveZ)

	return moveX, moveY, moveZ, box
}
