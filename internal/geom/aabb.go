// Package geom содержит геометрические примитивы мира: AABB, направления,
// пересечения лучей и отсечение по пирамиде видимости.
package geom

import "math"

// AABB ось-ориентированный прямоугольный параллелепипед.
// Всегда нормализован: Min <= Max по каждой оси.
type AABB struct {
	MinX, MinY, MinZ float64
	MaxX, MaxY, MaxZ float64
}

var (
	// Empty пустой бокс (у воздуха)
	Empty = AABB{}
	// FullCube единичный куб блока
	FullCube = AABB{MaxX: 1, MaxY: 1, MaxZ: 1}
)

// NewAABB создает бокс, меняя местами границы при необходимости
func NewAABB(minX, minY, minZ, maxX, maxY, maxZ float64) AABB {
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	if minZ > maxZ {
		minZ, maxZ = maxZ, minZ
	}
	return AABB{minX, minY, minZ, maxX, maxY, maxZ}
}

// IsEmpty сообщает, что бокс имеет нулевой объем
func (b AABB) IsEmpty() bool {
	return b.MinX == b.MaxX || b.MinY == b.MaxY || b.MinZ == b.MaxZ
}

// Move сдвигает бокс
func (b AABB) Move(x, y, z float64) AABB {
	return AABB{
		b.MinX + x, b.MinY + y, b.MinZ + z,
		b.MaxX + x, b.MaxY + y, b.MaxZ + z,
	}
}

// Expand растягивает бокс в сторону движения
func (b AABB) Expand(x, y, z float64) AABB {
	r := b
	if x < 0 {
		r.MinX += x
	} else {
		r.MaxX += x
	}
	if y < 0 {
		r.MinY += y
	} else {
		r.MaxY += y
	}
	if z < 0 {
		r.MinZ += z
	} else {
		r.MaxZ += z
	}
	return r
}

// Grow расширяет бокс во все стороны
func (b AABB) Grow(x, y, z float64) AABB {
	return NewAABB(
		b.MinX-x, b.MinY-y, b.MinZ-z,
		b.MaxX+x, b.MaxY+y, b.MaxZ+z,
	)
}

// Intersects проверяет строгое пересечение двух боксов
func (b AABB) Intersects(o AABB) bool {
	return b.MaxX > o.MinX && b.MinX < o.MaxX &&
		b.MaxY > o.MinY && b.MinY < o.MaxY &&
		b.MaxZ > o.MinZ && b.MinZ < o.MaxZ
}

// ClipXCollide ограничивает перемещение moving по X так, чтобы он не вошел в b.
// Ограничение действует, только если боксы перекрываются по Y и Z.
func (b AABB) ClipXCollide(moving AABB, movement float64) float64 {
	if moving.MaxY <= b.MinY || moving.MinY >= b.MaxY ||
		moving.MaxZ <= b.MinZ || moving.MinZ >= b.MaxZ {
		return movement
	}
	return clip(movement, moving.MinX, moving.MaxX, b.MinX, b.MaxX)
}

// ClipYCollide ограничивает перемещение moving по Y
func (b AABB) ClipYCollide(moving AABB, movement float64) float64 {
	if moving.MaxX <= b.MinX || moving.MinX >= b.MaxX ||
		moving.MaxZ <= b.MinZ || moving.MinZ >= b.MaxZ {
		return movement
	}
	return clip(movement, moving.MinY, moving.MaxY, b.MinY, b.MaxY)
}

// ClipZCollide ограничивает перемещение moving по Z
func (b AABB) ClipZCollide(moving AABB, movement float64) float64 {
	if moving.MaxX <= b.MinX || moving.MinX >= b.MaxX ||
		moving.MaxY <= b.MinY || moving.MinY >= b.MaxY {
		return movement
	}
	return clip(movement, moving.MinZ, moving.MaxZ, b.MinZ, b.MaxZ)
}

func clip(movement, movingMin, movingMax, min, max float64) float64 {
	result := movement
	if movement > 0 && movingMax <= min {
		result = math.Min(result, min-movingMax)
	}
	if movement < 0 && movingMin >= max {
		result = math.Max(result, max-movingMin)
	}
	return result
}
