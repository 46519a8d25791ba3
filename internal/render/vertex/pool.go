package vertex

import (
	"errors"
	"sync"

	"github.com/annel0/voxelworld/internal/logging"
)

// ErrNotOwned handle не принадлежит пулу или уже возвращен
var ErrNotOwned = errors.New("vertex builder not borrowed from this pool")

// Stats состояние пула
type Stats struct {
	Idle      int
	Borrowed  int
	Created   uint64
	Discarded uint64
}

// Pool пул буферов вершин. Acquire никогда не блокируется:
// при отсутствии свободного буфера создается новый.
type Pool struct {
	mu       sync.Mutex
	idle     []*Builder
	borrowed map[*Builder]*Handle
	factory  func() *Builder

	created   uint64
	discarded uint64

	logger *logging.Logger
}

// NewPool создает пул с фабрикой буферов
func NewPool(factory func() *Builder) *Pool {
	return &Pool{
		borrowed: make(map[*Builder]*Handle),
		factory:  factory,
		logger:   logging.GetMeshLogger(),
	}
}

// NewDefaultPool пул буферов PositionColorTex с заданными емкостями
func NewDefaultPool(vertexCapacity, indexCapacity int) *Pool {
	return NewPool(func() *Builder {
		return NewBuilder(PositionColorTex, vertexCapacity, indexCapacity)
	})
}

// Handle право владения буфером. Ровно один из Release или Discard
// должен быть вызван; Close вызывает Discard, если ни один не вызван.
type Handle struct {
	pool    *Pool
	builder *Builder
}

// Acquire выдает буфер
func (p *Pool) Acquire() *Handle {
	p.mu.Lock()
	defer p.mu.Unlock()

	var b *Builder
	if n := len(p.idle); n > 0 {
		b = p.idle[n-1]
		p.idle[n-1] = nil
		p.idle = p.idle[:n-1]
	} else {
		b = p.factory()
		p.created++
	}
	h := &Handle{pool: p, builder: b}
	p.borrowed[b] = h
	return h
}

// Builder возвращает буфер handle
func (h *Handle) Builder() *Builder {
	return h.builder
}

// Release возвращает буфер в пул для повторного использования
func (h *Handle) Release() error {
	return h.pool.giveBack(h, true)
}

// Discard выбрасывает буфер: после ошибки его состояние не доверенное
func (h *Handle) Discard() error {
	return h.pool.giveBack(h, false)
}

// Close выбрасывает буфер, если он еще не возвращен. Удобно через defer.
func (h *Handle) Close() {
	if h.pool.owns(h) {
		_ = h.Discard()
	}
}

func (p *Pool) owns(h *Handle) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.borrowed[h.builder] == h
}

func (p *Pool) giveBack(h *Handle, reuse bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.borrowed[h.builder] != h {
		p.logger.Warn("попытка вернуть буфер, который не выдан этим пулом")
		return ErrNotOwned
	}
	delete(p.borrowed, h.builder)

	if reuse {
		p.idle = append(p.idle, h.builder)
	} else {
		p.discarded++
	}
	return nil
}

// Stats возвращает снимок состояния пула
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Stats{
		Idle:      len(p.idle),
		Borrowed:  len(p.borrowed),
		Created:   p.created,
		Discarded: p.discarded,
	}
}
