package entity

import (
	"fmt"
	"sync"

	"github.com/annel0/voxelworld/internal/vec"
)

// TypeID числовой идентификатор типа сущности
type TypeID uint16

const (
	PlayerTypeID TypeID = 1
)

// Type тип сущности: размеры бокса и набор компонентов
type Type struct {
	ID   TypeID
	Name string

	Width, Height, Depth float64
	EyeHeight            float64

	// Init настраивает компоненты новой сущности
	Init func(e *Entity, pos vec.Vec3Float)
}

var (
	typesMu  sync.RWMutex
	registry = make(map[TypeID]*Type)
)

// Register добавляет тип в реестр
func Register(t *Type) (*Type, error) {
	typesMu.Lock()
	defer typesMu.Unlock()
	if _, exists := registry[t.ID]; exists {
		return nil, fmt.Errorf("entity type %d (%s) already registered", t.ID, t.Name)
	}
	registry[t.ID] = t
	return t, nil
}

// Get возвращает тип по ID
func Get(id TypeID) (*Type, bool) {
	typesMu.RLock()
	defer typesMu.RUnlock()
	t, exists := registry[id]
	return t, exists
}

func mustRegister(t *Type) *Type {
	t, err := Register(t)
	if err != nil {
		panic(err)
	}
	return t
}
