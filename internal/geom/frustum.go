package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/annel0/voxelworld/internal/vec"
)

// plane плоскость a*x + b*y + c*z + d >= 0 для точек внутри
type plane struct {
	a, b, c, d float64
}

func (p plane) normalized() plane {
	l := math.Sqrt(p.a*p.a + p.b*p.b + p.c*p.c)
	if l == 0 {
		return p
	}
	return plane{p.a / l, p.b / l, p.c / l, p.d / l}
}

// at возвращает элемент матрицы по (столбец, строка)
func at(m mgl32.Mat4, col, row int) float64 {
	return float64(m[col*4+row])
}

// Frustum пирамида видимости, извлеченная из матрицы projection*view
type Frustum struct {
	planes [6]plane
}

// NewFrustum строит пирамиду видимости по матрице projection*view
func NewFrustum(m mgl32.Mat4) Frustum {
	var f Frustum
	f.Set(m)
	return f
}

// Set пересчитывает плоскости: строка 3 плюс/минус строки 0, 1, 2
func (f *Frustum) Set(m mgl32.Mat4) {
	row := func(r int) [4]float64 {
		return [4]float64{at(m, 0, r), at(m, 1, r), at(m, 2, r), at(m, 3, r)}
	}
	w := row(3)
	for i := 0; i < 3; i++ {
		r := row(i)
		f.planes[i*2] = plane{w[0] + r[0], w[1] + r[1], w[2] + r[2], w[3] + r[3]}.normalized()
		f.planes[i*2+1] = plane{w[0] - r[0], w[1] - r[1], w[2] - r[2], w[3] - r[3]}.normalized()
	}
}

// TestAABB проверяет, пересекает ли бокс пирамиду видимости (или лежит внутри).
// Для каждой плоскости проверяется самая "положительная" вершина бокса.
func (f *Frustum) TestAABB(minX, minY, minZ, maxX, maxY, maxZ float64) bool {
	for _, p := range f.planes {
		x, y, z := maxX, maxY, maxZ
		if p.a < 0 {
			x = minX
		}
		if p.b < 0 {
			y = minY
		}
		if p.c < 0 {
			z = minZ
		}
		if p.a*x+p.b*y+p.c*z < -p.d {
			return false
		}
	}
	return true
}

// TestBox то же, что TestAABB, для AABB
func (f *Frustum) TestBox(b AABB) bool {
	return f.TestAABB(b.MinX, b.MinY, b.MinZ, b.MaxX, b.MaxY, b.MaxZ)
}

// FrustumRay строит лучи через экран без обращения матрицы.
// Направления угловых лучей получаются пересечением боковых плоскостей,
// начало луча пересечением трех плоскостей в точке глаза.
type FrustumRay struct {
	nxny, pxny, nxpy, pxpy [3]float64
	origin                 vec.Vec3Float
}

// NewFrustumRay создает построитель лучей по матрице projection*view
func NewFrustumRay(m mgl32.Mat4) FrustumRay {
	var r FrustumRay
	r.Set(m)
	return r
}

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func dot(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Set пересчитывает угловые лучи и точку начала
func (r *FrustumRay) Set(m mgl32.Mat4) {
	nx := [3]float64{at(m, 0, 3) + at(m, 0, 0), at(m, 1, 3) + at(m, 1, 0), at(m, 2, 3) + at(m, 2, 0)}
	px := [3]float64{at(m, 0, 3) - at(m, 0, 0), at(m, 1, 3) - at(m, 1, 0), at(m, 2, 3) - at(m, 2, 0)}
	ny := [3]float64{at(m, 0, 3) + at(m, 0, 1), at(m, 1, 3) + at(m, 1, 1), at(m, 2, 3) + at(m, 2, 1)}
	py := [3]float64{at(m, 0, 3) - at(m, 0, 1), at(m, 1, 3) - at(m, 1, 1), at(m, 2, 3) - at(m, 2, 1)}
	d1 := at(m, 3, 3) + at(m, 3, 0)
	d2 := at(m, 3, 3) - at(m, 3, 0)
	d3 := at(m, 3, 3) - at(m, 3, 1)

	r.nxny = cross(ny, nx)
	r.pxny = cross(px, ny)
	r.nxpy = cross(nx, py)
	r.pxpy = cross(py, px)

	pxnx := cross(px, nx)
	invDot := 1 / dot(nx, r.pxpy)
	r.origin = vec.Vec3Float{
		X: (-r.pxpy[0]*d1 - r.nxpy[0]*d2 - pxnx[0]*d3) * invDot,
		Y: (-r.pxpy[1]*d1 - r.nxpy[1]*d2 - pxnx[1]*d3) * invDot,
		Z: (-r.pxpy[2]*d1 - r.nxpy[2]*d2 - pxnx[2]*d3) * invDot,
	}
}

// Origin возвращает точку начала лучей (позицию глаза)
func (r *FrustumRay) Origin() vec.Vec3Float {
	return r.origin
}

// Dir возвращает нормализованное направление луча через точку экрана
// (x, y) в диапазоне [0,1], где (0,0) левый нижний угол.
func (r *FrustumRay) Dir(x, y float64) vec.Vec3Float {
	var y1, y2 [3]float64
	for i := 0; i < 3; i++ {
		y1[i] = r.nxny[i] + (r.nxpy[i]-r.nxny[i])*y
		y2[i] = r.pxny[i] + (r.pxpy[i]-r.pxny[i])*y
	}
	d := vec.Vec3Float{
		X: y1[0] + (y2[0]-y1[0])*x,
		Y: y1[1] + (y2[1]-y1[1])*x,
		Z: y1[2] + (y2[2]-y1[2])*x,
	}
	l := d.Length()
	if l == 0 {
		return d
	}
	return d.Mul(1 / l)
}
