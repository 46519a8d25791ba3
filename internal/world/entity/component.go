package entity

// ComponentKind вид компонента сущности
type ComponentKind uint8

const (
	Position ComponentKind = iota
	Velocity
	Acceleration
	Rotation
	BoundingBox
	EyeHeight
	OnGround

	componentKindCount
)

func (k ComponentKind) String() string {
	switch k {
	case Position:
		return "position"
	case Velocity:
		return "velocity"
	case Acceleration:
		return "acceleration"
	case Rotation:
		return "rotation"
	case BoundingBox:
		return "bounding_box"
	case EyeHeight:
		return "eye_height"
	case OnGround:
		return "on_ground"
	}
	return "unknown"
}

// ComponentSet битовая маска присутствующих компонентов
type ComponentSet uint32

// Components собирает маску из перечня видов
func Components(kinds ...ComponentKind) ComponentSet {
	var s ComponentSet
	for _, k := range kinds {
		s |= 1 << k
	}
	return s
}

// Has проверяет наличие одного вида
func (s ComponentSet) Has(k ComponentKind) bool {
	return s&(1<<k) != 0
}

// HasAll проверяет, что все биты other присутствуют
func (s ComponentSet) HasAll(other ComponentSet) bool {
	return s&other == other
}

// With возвращает маску с добавленным видом
func (s ComponentSet) With(k ComponentKind) ComponentSet {
	return s | 1<<k
}

// Without возвращает маску без вида
func (s ComponentSet) Without(k ComponentKind) ComponentSet {
	return s &^ (1 << k)
}
