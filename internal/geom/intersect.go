package geom

import "math"

// IntersectRayAABB пересекает луч с боксом методом слэбов.
// Возвращает параметры входа и выхода; ok только если near < far и far >= 0.
func IntersectRayAABB(ox, oy, oz, dx, dy, dz float64, b AABB) (near, far float64, ok bool) {
	invX, invY, invZ := 1/dx, 1/dy, 1/dz

	var tyMin, tyMax, tzMin, tzMax float64
	if invX >= 0 {
		near = (b.MinX - ox) * invX
		far = (b.MaxX - ox) * invX
	} else {
		near = (b.MaxX - ox) * invX
		far = (b.MinX - ox) * invX
	}
	if invY >= 0 {
		tyMin = (b.MinY - oy) * invY
		tyMax = (b.MaxY - oy) * invY
	} else {
		tyMin = (b.MaxY - oy) * invY
		tyMax = (b.MinY - oy) * invY
	}
	if near > tyMax || tyMin > far {
		return 0, 0, false
	}
	if invZ >= 0 {
		tzMin = (b.MinZ - oz) * invZ
		tzMax = (b.MaxZ - oz) * invZ
	} else {
		tzMin = (b.MaxZ - oz) * invZ
		tzMax = (b.MinZ - oz) * invZ
	}
	if near > tzMax || tzMin > far {
		return 0, 0, false
	}

	if tyMin > near || math.IsNaN(near) {
		near = tyMin
	}
	if tyMax < far || math.IsNaN(far) {
		far = tyMax
	}
	if tzMin > near {
		near = tzMin
	}
	if tzMax < far {
		far = tzMax
	}

	if near < far && far >= 0 {
		return near, far, true
	}
	return 0, 0, false
}

// IntersectRayTriangleFront пересекает луч только с лицевой стороной
// треугольника (v0, v1, v2 против часовой стрелки). Возвращает t или -1.
func IntersectRayTriangleFront(ox, oy, oz, dx, dy, dz float64,
	v0x, v0y, v0z, v1x, v1y, v1z, v2x, v2y, v2z, epsilon float64) float64 {
	e1x, e1y, e1z := v1x-v0x, v1y-v0y, v1z-v0z
	e2x, e2y, e2z := v2x-v0x, v2y-v0y, v2z-v0z

	px := dy*e2z - dz*e2y
	py := dz*e2x - dx*e2z
	pz := dx*e2y - dy*e2x
	det := e1x*px + e1y*py + e1z*pz
	if det <= epsilon {
		return -1
	}

	tx, ty, tz := ox-v0x, oy-v0y, oz-v0z
	u := tx*px + ty*py + tz*pz
	if u < 0 || u > det {
		return -1
	}

	qx := ty*e1z - tz*e1y
	qy := tz*e1x - tx*e1z
	qz := tx*e1y - ty*e1x
	v := dx*qx + dy*qy + dz*qz
	if v < 0 || u+v > det {
		return -1
	}

	return (e2x*qx + e2y*qy + e2z*qz) / det
}

// faceEpsilon порог вырожденности при определении грани
const faceEpsilon = 0.001

// RayFace возвращает t пересечения луча с гранью dir бокса b или -1.
// Каждая грань состоит из двух треугольников, обращенных наружу.
func RayFace(dir Direction, ox, oy, oz, dx, dy, dz float64, b AABB) float64 {
	x0, y0, z0 := b.MinX, b.MinY, b.MinZ
	x1, y1, z1 := b.MaxX, b.MaxY, b.MaxZ

	tri := func(ax, ay, az, bx, by, bz, cx, cy, cz float64) float64 {
		return IntersectRayTriangleFront(ox, oy, oz, dx, dy, dz,
			ax, ay, az, bx, by, bz, cx, cy, cz, faceEpsilon)
	}

	switch dir {
	case West:
		return math.Max(
			tri(x0, y1, z0, x0, y0, z0, x0, y0, z1),
			tri(x0, y0, z1, x0, y1, z1, x0, y1, z0))
	case East:
		return math.Max(
			tri(x1, y1, z1, x1, y0, z1, x1, y0, z0),
			tri(x1, y0, z0, x1, y1, z0, x1, y1, z1))
	case Down:
		return math.Max(
			tri(x0, y0, z1, x0, y0, z0, x1, y0, z0),
			tri(x1, y0, z0, x1, y0, z1, x0, y0, z1))
	case Up:
		return math.Max(
			tri(x0, y1, z0, x0, y1, z1, x1, y1, z1),
			tri(x1, y1, z1, x1, y1, z0, x0, y1, z0))
	case North:
		return math.Max(
			tri(x1, y1, z0, x1, y0, z0, x0, y0, z0),
			tri(x0, y0, z0, x0, y1, z0, x1, y1, z0))
	case South:
		return math.Max(
			tri(x0, y1, z1, x0, y0, z1, x1, y0, z1),
			tri(x1, y0, z1, x1, y1, z1, x0, y1, z1))
	}
	return -1
}

// DetectFace выбирает грань, в которую попадает луч: наибольшее t среди
// лицевых треугольников. Если ни одна грань не подходит, возвращается South.
func DetectFace(ox, oy, oz, dx, dy, dz float64, b AABB) Direction {
	t := -1.0
	face := South
	for _, dir := range Directions {
		if v := RayFace(dir, ox, oy, oz, dx, dy, dz, b); v > t {
			t = v
			face = dir
		}
	}
	return face
}
