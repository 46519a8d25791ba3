// Package game связывает мир, игрока, камеру и рендерер в игровой цикл.
package game

import "time"

// Параметры таймера по умолчанию
const (
	DefaultTPS         = 20.0
	DefaultMaxTicks    = 100
	maxElapsedPerFrame = time.Second
)

// Timer переводит прошедшее время в целое число тиков и дробную часть тика
type Timer struct {
	tps      float64
	maxTicks int

	current     time.Time
	accum       float64
	partialTick float64
	tickCount   int
}

// NewTimer создает таймер, отсчет начинается с момента start
func NewTimer(tps float64, maxTicks int, start time.Time) *Timer {
	if tps <= 0 {
		tps = DefaultTPS
	}
	if maxTicks <= 0 {
		maxTicks = DefaultMaxTicks
	}
	return &Timer{tps: tps, maxTicks: maxTicks, current: start}
}

// Update учитывает время до now. Прошедшее время ограничено секундой,
// число тиков ограничено maxTicks; излишек при ограничении отбрасывается.
func (t *Timer) Update(now time.Time) {
	elapsed := now.Sub(t.current)
	t.current = now
	if elapsed < 0 {
		elapsed = 0
	} else if elapsed > maxElapsedPerFrame {
		elapsed = maxElapsedPerFrame
	}

	t.accum += elapsed.Seconds() * t.tps
	ticks := int(t.accum)
	t.accum -= float64(ticks)
	if ticks > t.maxTicks {
		ticks = t.maxTicks
	}
	t.tickCount = ticks
	t.partialTick = t.accum
}

// TickCount число тиков, которые нужно выполнить в этом кадре
func (t *Timer) TickCount() int {
	return t.tickCount
}

// PartialTick доля следующего тика для интерполяции
func (t *Timer) PartialTick() float64 {
	return t.partialTick
}

// TPS частота тиков
func (t *Timer) TPS() float64 {
	return t.tps
}
