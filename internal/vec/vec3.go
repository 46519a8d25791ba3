package vec

import "math"

// Vec3 представляет трехмерный вектор с целочисленными координатами (позиция блока)
type Vec3 struct {
	X int
	Y int
	Z int
}

// Vec3Float представляет трехмерный вектор с плавающими координатами
type Vec3Float struct {
	X float64
	Y float64
	Z float64
}

// Zero3 нулевой вектор
var Zero3 = Vec3Float{}

// ToFloat преобразует Vec3 в Vec3Float
func (v Vec3) ToFloat() Vec3Float {
	return Vec3Float{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}

// DistanceSquared возвращает квадрат расстояния до другого вектора
func (v Vec3) DistanceSquared(other Vec3) int {
	dx := v.X - other.X
	dy := v.Y - other.Y
	dz := v.Z - other.Z
	return dx*dx + dy*dy + dz*dz
}

// Equals проверяет равенство векторов
func (v Vec3) Equals(other Vec3) bool {
	return v.X == other.X && v.Y == other.Y && v.Z == other.Z
}

// Add складывает два вектора
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Floor возвращает позицию блока, содержащего точку
func (v Vec3Float) Floor() Vec3 {
	return Vec3{
		X: int(math.Floor(v.X)),
		Y: int(math.Floor(v.Y)),
		Z: int(math.Floor(v.Z)),
	}
}

// Add складывает два вектора
func (v Vec3Float) Add(other Vec3Float) Vec3Float {
	return Vec3Float{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// AddXYZ прибавляет покомпонентно
func (v Vec3Float) AddXYZ(x, y, z float64) Vec3Float {
	return Vec3Float{X: v.X + x, Y: v.Y + y, Z: v.Z + z}
}

// Sub вычитает вектор
func (v Vec3Float) Sub(other Vec3Float) Vec3Float {
	return Vec3Float{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// Mul умножает вектор на скаляр
func (v Vec3Float) Mul(scalar float64) Vec3Float {
	return Vec3Float{X: v.X * scalar, Y: v.Y * scalar, Z: v.Z * scalar}
}

// MulXYZ умножает покомпонентно (используется для затухания скорости)
func (v Vec3Float) MulXYZ(x, y, z float64) Vec3Float {
	return Vec3Float{X: v.X * x, Y: v.Y * y, Z: v.Z * z}
}

// Lerp линейно интерполирует между v и other
func (v Vec3Float) Lerp(other Vec3Float, t float64) Vec3Float {
	return Vec3Float{
		X: v.X + (other.X-v.X)*t,
		Y: v.Y + (other.Y-v.Y)*t,
		Z: v.Z + (other.Z-v.Z)*t,
	}
}

// Length возвращает длину вектора
func (v Vec3Float) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// DistanceSquared возвращает квадрат расстояния до другой точки
func (v Vec3Float) DistanceSquared(other Vec3Float) float64 {
	dx := v.X - other.X
	dy := v.Y - other.Y
	dz := v.Z - other.Z
	return dx*dx + dy*dy + dz*dz
}
