package geom

// Direction одна из шести сторон куба
type Direction uint8

const (
	West  Direction = iota // -X
	East                   // +X
	Down                   // -Y
	Up                     // +Y
	North                  // -Z
	South                  // +Z
)

// Directions все направления в порядке обхода компилятора и выбора грани
var Directions = [...]Direction{West, East, Down, Up, North, South}

var directionAxes = [...][3]int{
	West:  {-1, 0, 0},
	East:  {1, 0, 0},
	Down:  {0, -1, 0},
	Up:    {0, 1, 0},
	North: {0, 0, -1},
	South: {0, 0, 1},
}

// Axis возвращает единичное смещение к соседу
func (d Direction) Axis() (x, y, z int) {
	a := directionAxes[d]
	return a[0], a[1], a[2]
}

// AxisX смещение по X
func (d Direction) AxisX() int { return directionAxes[d][0] }

// AxisY смещение по Y
func (d Direction) AxisY() int { return directionAxes[d][1] }

// AxisZ смещение по Z
func (d Direction) AxisZ() int { return directionAxes[d][2] }

// Opposite возвращает противоположную сторону
func (d Direction) Opposite() Direction {
	return d ^ 1
}

func (d Direction) String() string {
	switch d {
	case West:
		return "WEST"
	case East:
		return "EAST"
	case Down:
		return "DOWN"
	case Up:
		return "UP"
	case North:
		return "NORTH"
	case South:
		return "SOUTH"
	}
	return "UNKNOWN"
}
