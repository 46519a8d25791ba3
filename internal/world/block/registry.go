package block

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrFrozen реестр закрыт для регистрации
	ErrFrozen = errors.New("block registry is frozen")
	// ErrDuplicate ID или идентификатор уже заняты
	ErrDuplicate = errors.New("block already registered")
)

// Registry реестр типов блоков с воздухом в качестве значения по умолчанию
type Registry struct {
	mu      sync.RWMutex
	byID    map[BlockID]*BlockType
	byIdent map[Identifier]*BlockType
	frozen  bool
}

// NewRegistry создает реестр, в котором уже есть воздух
func NewRegistry() *Registry {
	r := &Registry{
		byID:    make(map[BlockID]*BlockType),
		byIdent: make(map[Identifier]*BlockType),
	}
	r.byID[Air.ID] = Air
	r.byIdent[Air.Identifier] = Air
	return r
}

// Register добавляет тип блока в реестр
func (r *Registry) Register(t *BlockType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return fmt.Errorf("register %s: %w", t.Identifier, ErrFrozen)
	}
	if _, exists := r.byID[t.ID]; exists {
		return fmt.Errorf("register %s (id %d): %w", t.Identifier, t.ID, ErrDuplicate)
	}
	if _, exists := r.byIdent[t.Identifier]; exists {
		return fmt.Errorf("register %s: %w", t.Identifier, ErrDuplicate)
	}

	r.byID[t.ID] = t
	r.byIdent[t.Identifier] = t
	return nil
}

// Freeze запрещает дальнейшую регистрацию
func (r *Registry) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

// Get возвращает тип по ID
func (r *Registry) Get(id BlockID) (*BlockType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, exists := r.byID[id]
	return t, exists
}

// GetOrAir возвращает тип по ID или воздух
func (r *Registry) GetOrAir(id BlockID) *BlockType {
	if t, ok := r.Get(id); ok {
		return t
	}
	return Air
}

// GetByIdentifier возвращает тип по идентификатору
func (r *Registry) GetByIdentifier(id Identifier) (*BlockType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, exists := r.byIdent[id]
	return t, exists
}

// All возвращает все типы, отсортированные по ID
func (r *Registry) All() []*BlockType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*BlockType, 0, len(r.byID))
	for _, t := range r.byID {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

var registry = NewRegistry()

// Default возвращает глобальный реестр
func Default() *Registry {
	return registry
}

// Register добавляет тип в глобальный реестр
func Register(t *BlockType) error {
	return registry.Register(t)
}

// MustRegister как Register, но паникует; для init() встроенных блоков
func MustRegister(t *BlockType) *BlockType {
	if err := registry.Register(t); err != nil {
		panic(err)
	}
	return t
}

// Get возвращает тип из глобального реестра
func Get(id BlockID) (*BlockType, bool) {
	return registry.Get(id)
}

// IsValidBlockID проверяет, зарегистрирован ли ID
func IsValidBlockID(id BlockID) bool {
	_, exists := registry.Get(id)
	return exists
}
