package render

import (
	"math"

	"github.com/annel0/voxelworld/internal/geom"
	"github.com/annel0/voxelworld/internal/render/vertex"
	"github.com/annel0/voxelworld/internal/world/block"
	"github.com/annel0/voxelworld/internal/world/entity"
)

// HitResult результат выбора блока лучом из центра экрана
type HitResult struct {
	Missed    bool
	BlockType *block.BlockType
	X, Y, Z   int
	Face      geom.Direction
}

// Miss промах
var Miss = HitResult{Missed: true, Face: geom.South}

// SelectBlock ищет ближайший блок на луче через центр экрана.
// Кандидаты берутся из куба радиуса PickRadius вокруг бокса зрителя
// с отсечением по горизонтальному расстоянию.
func (w *WorldRenderer) SelectBlock(rc *RenderContext, viewer *entity.Entity) HitResult {
	w.ray.Set(rc.ProjectionView())
	origin := w.ray.Origin()
	dir := w.ray.Dir(0.5, 0.5)
	ox, oy, oz := origin.X, origin.Y, origin.Z

	radius := w.opts.PickRadius
	radiusSq := radius * radius
	area := viewer.BoundingBox.Grow(radius, radius, radius)
	x0, y0, z0 := int(math.Floor(area.MinX)), int(math.Floor(area.MinY)), int(math.Floor(area.MinZ))
	x1, y1, z1 := int(math.Ceil(area.MaxX)), int(math.Ceil(area.MaxY)), int(math.Ceil(area.MaxZ))

	hit := Miss
	nearest := math.Inf(1)
	for x := x0; x <= x1; x++ {
		vx := float64(x) + 0.5 - ox
		for y := y0; y <= y1; y++ {
			for z := z0; z <= z1; z++ {
				vz := float64(z) + 0.5 - oz
				if vx*vx+vz*vz > radiusSq {
					continue
				}
				if !w.world.IsBlockLoaded(x, y, z) {
					continue
				}
				t := w.world.GetBlockType(x, y, z)
				if t.Air {
					continue
				}
				box := t.OutlineShape().Move(float64(x), float64(y), float64(z))
				near, _, ok := geom.IntersectRayAABB(ox, oy, oz, dir.X, dir.Y, dir.Z, box)
				if !ok || near < 0 || near >= nearest {
					continue
				}
				nearest = near
				hit = HitResult{
					BlockType: t,
					X:         x, Y: y, Z: z,
					Face: geom.DetectFace(ox, oy, oz, dir.X, dir.Y, dir.Z, box),
				}
			}
		}
	}
	return hit
}

// outlineMesh рамка вокруг выбранного блока
type outlineMesh struct {
	builder  *vertex.Builder
	vbo, ibo BufferID
}

const outlineOffset = 0.005

var outlineIndices = []uint32{
	0, 1, 0, 2, 1, 3, 2, 3,
	4, 5, 4, 6, 5, 7, 6, 7,
	0, 4, 2, 6,
	1, 5, 3, 7,
}

func newOutlineMesh() *outlineMesh {
	return &outlineMesh{builder: vertex.NewBuilder(vertex.PositionColor, 8, len(outlineIndices))}
}

// RenderOutline рисует рамку выбранного блока линиями
func (w *WorldRenderer) RenderOutline(rc *RenderContext, hit HitResult) bool {
	if hit.Missed {
		return false
	}
	box := hit.BlockType.OutlineShape().Move(float64(hit.X), float64(hit.Y), float64(hit.Z))
	minX, minY, minZ := float32(box.MinX-outlineOffset), float32(box.MinY-outlineOffset), float32(box.MinZ-outlineOffset)
	maxX, maxY, maxZ := float32(box.MaxX+outlineOffset), float32(box.MaxY+outlineOffset), float32(box.MaxZ+outlineOffset)

	o := w.outline
	b := o.builder
	b.Reset()
	b.Indices(outlineIndices...)
	b.Color(0, 0, 0, 0xff)
	b.Position(minX, minY, minZ).Emit()
	b.Position(minX, minY, maxZ).Emit()
	b.Position(minX, maxY, minZ).Emit()
	b.Position(minX, maxY, maxZ).Emit()
	b.Position(maxX, minY, minZ).Emit()
	b.Position(maxX, minY, maxZ).Emit()
	b.Position(maxX, maxY, minZ).Emit()
	b.Position(maxX, maxY, maxZ).Emit()

	if o.vbo == 0 {
		o.vbo = rc.GPU.GenBuffer()
		o.ibo = rc.GPU.GenBuffer()
	}
	rc.GPU.BufferData(ArrayBuffer, o.vbo, b.VertexBytes())
	rc.GPU.BufferData(ElementArrayBuffer, o.ibo, b.IndexBytes())
	rc.GPU.DrawElements(Lines, rc.MVP(), b.Layout(), o.vbo, o.ibo, b.IndexCount())
	return true
}

func (o *outlineMesh) release(gpu GPU) {
	if o.vbo != 0 {
		gpu.DeleteBuffer(o.vbo)
		gpu.DeleteBuffer(o.ibo)
		o.vbo, o.ibo = 0, 0
	}
}
