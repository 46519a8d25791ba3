package world

import "github.com/annel0/voxelworld/internal/logging"

// Listener получает уведомления об изменениях блоков.
// Вызывается синхронно из SetBlockType на горутине, изменившей мир.
type Listener interface {
	OnBlockChanged(x, y, z int)
}

// ListenerFunc адаптер функции к Listener
type ListenerFunc func(x, y, z int)

// OnBlockChanged вызывает f
func (f ListenerFunc) OnBlockChanged(x, y, z int) {
	f(x, y, z)
}

// LoggingListener пишет изменения блоков в лог мира на уровне TRACE
type LoggingListener struct {
	world *World
}

// NewLoggingListener подписывает логирующий слушатель на мир
func NewLoggingListener(w *World) *LoggingListener {
	l := &LoggingListener{world: w}
	w.AddListener(l)
	w.logger.Info("🪵 логирование изменений блоков включено")
	return l
}

// OnBlockChanged пишет новый тип блока
func (l *LoggingListener) OnBlockChanged(x, y, z int) {
	if !l.world.logger.Enabled(logging.TRACE) {
		return
	}
	l.world.logger.Trace("блок (%d, %d, %d) -> %s", x, y, z, l.world.GetBlockType(x, y, z))
}
