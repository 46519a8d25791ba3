// Package vertex описывает формат вершин и буферы, в которые
// компилятор чанков пишет геометрию.
package vertex

import "strings"

// DataType тип компоненты атрибута
type DataType uint8

const (
	Float32 DataType = iota
	Uint8
)

// Size размер компоненты в байтах
func (t DataType) Size() int {
	switch t {
	case Uint8:
		return 1
	default:
		return 4
	}
}

// Attribute атрибут вершины
type Attribute struct {
	Name       string
	Components int
	Type       DataType
	Normalized bool
}

// Size размер атрибута в байтах
func (a Attribute) Size() int {
	return a.Components * a.Type.Size()
}

// Layout формат вершины: список атрибутов в порядке размещения
type Layout struct {
	Attributes []Attribute
	stride     int
}

// Имена атрибутов
const (
	AttrPosition = "Position"
	AttrColor    = "Color"
	AttrUV       = "UV"
)

var (
	position = Attribute{Name: AttrPosition, Components: 3, Type: Float32}
	color    = Attribute{Name: AttrColor, Components: 4, Type: Uint8, Normalized: true}
	uv       = Attribute{Name: AttrUV, Components: 2, Type: Float32}

	// PositionColorTex позиция, цвет RGBA8 и текстурные координаты, 24 байта
	PositionColorTex = NewLayout(position, color, uv)
	// PositionColor позиция и цвет, 16 байт
	PositionColor = NewLayout(position, color)
)

// NewLayout создает формат из атрибутов
func NewLayout(attrs ...Attribute) *Layout {
	l := &Layout{Attributes: attrs}
	for _, a := range attrs {
		l.stride += a.Size()
	}
	return l
}

// Stride размер вершины в байтах
func (l *Layout) Stride() int {
	return l.stride
}

// Offset смещение атрибута в вершине или -1, если его нет
func (l *Layout) Offset(name string) int {
	off := 0
	for _, a := range l.Attributes {
		if a.Name == name {
			return off
		}
		off += a.Size()
	}
	return -1
}

// Has проверяет наличие атрибута
func (l *Layout) Has(name string) bool {
	return l.Offset(name) >= 0
}

func (l *Layout) String() string {
	names := make([]string, len(l.Attributes))
	for i, a := range l.Attributes {
		names[i] = a.Name
	}
	return strings.Join(names, "_")
}
