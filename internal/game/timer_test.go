package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimerTicksAndPartial(t *testing.T) {
	start := time.Unix(0, 0)
	timer := NewTimer(20, 100, start)

	timer.Update(start.Add(50 * time.Millisecond))
	assert.Equal(t, 1, timer.TickCount())
	assert.InDelta(t, 0, timer.PartialTick(), 1e-9)

	timer.Update(start.Add(125 * time.Millisecond))
	assert.Equal(t, 1, timer.TickCount())
	assert.InDelta(t, 0.5, timer.PartialTick(), 1e-9)

	timer.Update(start.Add(150 * time.Millisecond))
	assert.Equal(t, 1, timer.TickCount(), "остаток переносится")
	assert.InDelta(t, 0, timer.PartialTick(), 1e-9)
}

func TestTimerClampsElapsed(t *testing.T) {
	start := time.Unix(0, 0)
	timer := NewTimer(20, 100, start)

	timer.Update(start.Add(10 * time.Second))
	assert.Equal(t, 20, timer.TickCount(), "не больше секунды за кадр")

	timer.Update(start)
	assert.Equal(t, 0, timer.TickCount(), "время назад не дает тиков")
}

func TestTimerCapsTickCount(t *testing.T) {
	start := time.Unix(0, 0)
	timer := NewTimer(1000, 100, start)

	timer.Update(start.Add(time.Second))
	assert.Equal(t, 100, timer.TickCount())
	assert.Less(t, timer.PartialTick(), 1.0, "излишек тиков отбрасывается")
}

func TestTimerDefaults(t *testing.T) {
	timer := NewTimer(0, 0, time.Now())
	assert.Equal(t, DefaultTPS, timer.TPS())
}
