package render

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/annel0/voxelworld/internal/render/vertex"
)

// metrics счетчики рендерера и пула буферов
type metrics struct {
	submitted prometheus.Counter
	dropped   prometheus.Counter
	stale     prometheus.Counter
	failed    prometheus.Counter
	cancelled prometheus.Counter
	completed prometheus.Counter
	chunks    prometheus.Gauge
	visible   prometheus.Gauge
	drawn     prometheus.Gauge
	culled    prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer, pool *vertex.Pool) *metrics {
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "voxelworld",
			Subsystem: "renderer",
			Name:      name,
			Help:      help,
		})
	}
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "voxelworld",
			Subsystem: "renderer",
			Name:      name,
			Help:      help,
		})
	}
	poolGauge := func(name, help string, value func(vertex.Stats) float64) prometheus.GaugeFunc {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "voxelworld",
			Subsystem: "vertex_pool",
			Name:      name,
			Help:      help,
		}, func() float64 { return value(pool.Stats()) })
	}

	m := &metrics{
		submitted: counter("compiles_submitted_total", "Задач компиляции отправлено в пул."),
		dropped:   counter("compiles_dropped_total", "Задач отброшено из-за переполненной очереди."),
		stale:     counter("compiles_stale_total", "Результатов отброшено как устаревшие."),
		failed:    counter("compiles_failed_total", "Компиляций, завершившихся ошибкой."),
		cancelled: counter("compiles_cancelled_total", "Компиляций, отмененных новой версией чанка."),
		completed: counter("compiles_completed_total", "Результатов компиляции, принятых чанком."),
		chunks:    gauge("chunks", "Чанков в рендерере."),
		visible:   gauge("chunks_visible", "Чанков в радиусе отрисовки."),
		drawn:     gauge("chunks_drawn", "Чанков, прошедших отсечение и нарисованных."),
		culled:    gauge("chunks_culled", "Чанков, отсеченных пирамидой видимости."),
	}
	if reg == nil {
		return m
	}

	collectors := []prometheus.Collector{
		m.submitted, m.dropped, m.stale, m.failed, m.cancelled, m.completed,
		m.chunks, m.visible, m.drawn, m.culled,
		poolGauge("idle", "Свободных буферов.", func(s vertex.Stats) float64 { return float64(s.Idle) }),
		poolGauge("borrowed", "Выданных буферов.", func(s vertex.Stats) float64 { return float64(s.Borrowed) }),
		poolGauge("created", "Созданных буферов.", func(s vertex.Stats) float64 { return float64(s.Created) }),
		poolGauge("discarded", "Выброшенных буферов.", func(s vertex.Stats) float64 { return float64(s.Discarded) }),
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				logger().Warn("не удалось зарегистрировать метрику: %v", err)
			}
		}
	}
	return m
}
