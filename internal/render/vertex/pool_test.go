package vertex

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestPool() *Pool {
	return NewDefaultPool(16, 24)
}

func TestPoolReusesReleasedBuilder(t *testing.T) {
	p := newTestPool()
	h := p.Acquire()
	b := h.Builder()
	assert.NoError(t, h.Release())

	h2 := p.Acquire()
	assert.Same(t, b, h2.Builder(), "освобожденный буфер должен переиспользоваться")
	assert.Equal(t, uint64(1), p.Stats().Created)
}

func TestPoolDiscardDropsBuilder(t *testing.T) {
	p := newTestPool()
	h := p.Acquire()
	b := h.Builder()
	assert.NoError(t, h.Discard())

	h2 := p.Acquire()
	assert.NotSame(t, b, h2.Builder(), "выброшенный буфер не возвращается в пул")
	st := p.Stats()
	assert.Equal(t, uint64(2), st.Created)
	assert.Equal(t, uint64(1), st.Discarded)
	assert.Equal(t, 1, st.Borrowed)
}

func TestDoubleReleaseIsNoop(t *testing.T) {
	p := newTestPool()
	h := p.Acquire()
	assert.NoError(t, h.Release())
	assert.ErrorIs(t, h.Release(), ErrNotOwned)
	assert.ErrorIs(t, h.Discard(), ErrNotOwned)
	assert.Equal(t, 1, p.Stats().Idle, "повторный возврат не дублирует буфер")
}

func TestForeignHandleRejected(t *testing.T) {
	a, b := newTestPool(), newTestPool()
	h := a.Acquire()
	foreign := &Handle{pool: b, builder: h.Builder()}
	assert.ErrorIs(t, foreign.Release(), ErrNotOwned)
	assert.Equal(t, 0, b.Stats().Idle)
}

func TestCloseDiscardsOnlyUnreturned(t *testing.T) {
	p := newTestPool()

	h := p.Acquire()
	h.Close()
	assert.Equal(t, uint64(1), p.Stats().Discarded)

	h = p.Acquire()
	assert.NoError(t, h.Release())
	h.Close()
	st := p.Stats()
	assert.Equal(t, uint64(1), st.Discarded, "Close после Release ничего не делает")
	assert.Equal(t, 1, st.Idle)
}

func TestPoolConcurrentAcquire(t *testing.T) {
	p := newTestPool()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h := p.Acquire()
			defer h.Close()
			h.Builder().Reset()
			h.Builder().Emit()
			_ = h.Release()
		}()
	}
	wg.Wait()

	st := p.Stats()
	assert.Equal(t, 0, st.Borrowed)
	assert.Equal(t, int(st.Created), st.Idle)
}
