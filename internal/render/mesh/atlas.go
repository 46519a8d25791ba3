// Package mesh превращает снимок чанка в готовые для GPU буферы.
package mesh

import (
	"fmt"

	"github.com/annel0/voxelworld/internal/world/block"
)

// Region область текстуры в атласе, нормализованные координаты
type Region struct {
	U0, V0, U1, V1 float32
}

// Atlas источник текстурных областей. Упаковка атласа вне этого пакета.
type Atlas interface {
	Region(id block.Identifier) (Region, bool)
}

// GridAtlas атлас из одинаковых квадратных ячеек, заполняемых по строкам
type GridAtlas struct {
	columns, rows int
	cells         map[block.Identifier]int
}

// NewGridAtlas создает атлас columns x rows ячеек
func NewGridAtlas(columns, rows int) *GridAtlas {
	return &GridAtlas{
		columns: columns,
		rows:    rows,
		cells:   make(map[block.Identifier]int),
	}
}

// Add занимает следующую свободную ячейку под текстуру
func (a *GridAtlas) Add(id block.Identifier) error {
	if _, exists := a.cells[id]; exists {
		return nil
	}
	if len(a.cells) >= a.columns*a.rows {
		return fmt.Errorf("atlas %dx%d is full, cannot add %s", a.columns, a.rows, id)
	}
	a.cells[id] = len(a.cells)
	return nil
}

// Region возвращает область текстуры
func (a *GridAtlas) Region(id block.Identifier) (Region, bool) {
	cell, ok := a.cells[id]
	if !ok {
		return Region{}, false
	}
	cw := 1 / float32(a.columns)
	ch := 1 / float32(a.rows)
	col := float32(cell % a.columns)
	row := float32(cell / a.columns)
	return Region{
		U0: col * cw, V0: row * ch,
		U1: (col + 1) * cw, V1: (row + 1) * ch,
	}, true
}

// NewBlockAtlas атлас со всеми текстурами зарегистрированных блоков
func NewBlockAtlas(reg *block.Registry) (*GridAtlas, error) {
	types := reg.All()
	side := 1
	for side*side < len(types) {
		side++
	}
	a := NewGridAtlas(side, side)
	for _, t := range types {
		if t.Air {
			continue
		}
		if err := a.Add(t.Texture); err != nil {
			return nil, err
		}
	}
	return a, nil
}
