package render

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/alitto/pond/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/annel0/voxelworld/internal/config"
	"github.com/annel0/voxelworld/internal/geom"
	"github.com/annel0/voxelworld/internal/logging"
	"github.com/annel0/voxelworld/internal/render/mesh"
	"github.com/annel0/voxelworld/internal/render/vertex"
	"github.com/annel0/voxelworld/internal/world"
	"github.com/annel0/voxelworld/internal/world/block"
	"github.com/annel0/voxelworld/internal/world/entity"
)

var (
	// ErrQueueFull очередь компиляции переполнена, чанк остается грязным
	ErrQueueFull = errors.New("compile queue is full")
	// ErrClosed рендерер закрыт
	ErrClosed = errors.New("world renderer is closed")
)

// Значения по умолчанию
const (
	DefaultRadius     = 8
	DefaultQueueSize  = 256
	DefaultPickRadius = 5
)

func logger() *logging.Logger {
	return logging.GetRenderLogger()
}

// Options параметры WorldRenderer
type Options struct {
	Radius         int
	Workers        int
	QueueSize      int
	PickRadius     float64
	GCInterval     int
	VertexCapacity int
	IndexCapacity  int

	// Atlas по умолчанию строится из реестра блоков
	Atlas mesh.Atlas
	// Registerer для метрик; nil отключает регистрацию
	Registerer prometheus.Registerer
}

// OptionsFromConfig переносит секцию render конфигурации
func OptionsFromConfig(cfg *config.Config) Options {
	r := &cfg.Render
	return Options{
		Radius:         r.GetRadius(),
		Workers:        r.GetWorkers(),
		QueueSize:      r.GetQueueSize(),
		PickRadius:     float64(r.GetPickRadius()),
		GCInterval:     r.GetGCInterval(),
		VertexCapacity: r.VertexCapacity,
		IndexCapacity:  r.IndexCapacity,
	}
}

func (o *Options) applyDefaults() {
	if o.Radius <= 0 {
		o.Radius = DefaultRadius
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.QueueSize <= 0 {
		o.QueueSize = DefaultQueueSize
	}
	if o.PickRadius <= 0 {
		o.PickRadius = DefaultPickRadius
	}
	if o.VertexCapacity <= 0 {
		o.VertexCapacity = vertex.DefaultVertexCapacity
	}
	if o.IndexCapacity <= 0 {
		o.IndexCapacity = vertex.DefaultIndexCapacity
	}
}

// WorldRenderer держит клиентские чанки вокруг зрителя, отправляет
// грязные чанки на компиляцию в пул и рисует готовые.
// Render, SelectBlock, CollectGarbage и Close вызываются из потока отрисовки.
type WorldRenderer struct {
	world    *world.World
	gpu      GPU
	opts     Options
	compiler *mesh.Compiler

	pool      pond.Pool
	queueSize int
	inflight  sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	chunks map[world.ChunkPos]*RenderChunk
	closed bool

	frustum geom.Frustum
	ray     geom.FrustumRay
	frames  int

	outline *outlineMesh
	metrics *metrics
	logger  *logging.Logger
}

// NewWorldRenderer создает рендерер и подписывает его на изменения мира
func NewWorldRenderer(w *world.World, gpu GPU, opts Options) (*WorldRenderer, error) {
	opts.applyDefaults()
	if opts.Atlas == nil {
		atlas, err := mesh.NewBlockAtlas(block.Default())
		if err != nil {
			return nil, fmt.Errorf("build block atlas: %w", err)
		}
		opts.Atlas = atlas
	}

	vp := vertex.NewDefaultPool(opts.VertexCapacity, opts.IndexCapacity)
	ctx, cancel := context.WithCancel(context.Background())
	wr := &WorldRenderer{
		world:     w,
		gpu:       gpu,
		opts:      opts,
		compiler:  mesh.NewCompiler(mesh.NewBlockRenderer(opts.Atlas), vp),
		pool:      pond.NewPool(opts.Workers),
		queueSize: opts.QueueSize,
		ctx:       ctx,
		cancel:    cancel,
		chunks:    make(map[world.ChunkPos]*RenderChunk),
		outline:   newOutlineMesh(),
		metrics:   newMetrics(opts.Registerer, vp),
		logger:    logger(),
	}
	w.AddListener(wr)
	wr.logger.Info("рендерер мира: радиус %d, воркеров %d, очередь %d", opts.Radius, opts.Workers, opts.QueueSize)
	return wr, nil
}

// Radius радиус отрисовки в чанках
func (w *WorldRenderer) Radius() int {
	return w.opts.Radius
}

// ChunkCount число клиентских чанков
func (w *WorldRenderer) ChunkCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.chunks)
}

// Chunk возвращает клиентский чанк или nil
func (w *WorldRenderer) Chunk(pos world.ChunkPos) *RenderChunk {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.chunks[pos]
}

func (w *WorldRenderer) getOrCreateChunk(pos world.ChunkPos) *RenderChunk {
	w.mu.Lock()
	defer w.mu.Unlock()
	c, ok := w.chunks[pos]
	if !ok {
		c = newRenderChunk(pos)
		w.chunks[pos] = c
	}
	return c
}

// RenderingChunks чанки в радиусе отрисовки вокруг зрителя, ближние по
// вертикали первыми, затем по горизонтали
func (w *WorldRenderer) RenderingChunks(viewer *entity.Entity) []*RenderChunk {
	var list []*RenderChunk
	world.ForEachChunk(viewer.BoundingBox, w.opts.Radius, func(x, y, z int) {
		list = append(list, w.getOrCreateChunk(world.ChunkPos{X: x, Y: y, Z: z}))
	})
	pos := viewer.Position
	sort.SliceStable(list, func(i, j int) bool {
		yi, yj := list[i].yDistance(pos), list[j].yDistance(pos)
		if yi != yj {
			return yi < yj
		}
		return list[i].xzDistanceSquared(pos) < list[j].xzDistanceSquared(pos)
	})
	w.metrics.visible.Set(float64(len(list)))
	w.metrics.chunks.Set(float64(w.ChunkCount()))
	return list
}

// CompileChunks отправляет грязные чанки на компиляцию в порядке списка.
// На переполненной очереди останавливается; оставшиеся чанки ждут кадра.
func (w *WorldRenderer) CompileChunks(chunks []*RenderChunk) int {
	submitted := 0
	for _, c := range chunks {
		if !c.IsDirty() {
			continue
		}
		if err := w.submit(c); err != nil {
			if errors.Is(err, ErrQueueFull) {
				w.logger.Debug("очередь компиляции заполнена, отправлено %d", submitted)
			}
			break
		}
		submitted++
	}
	return submitted
}

// submit снимает снимок чанка мира и ставит задачу компиляции
func (w *WorldRenderer) submit(c *RenderChunk) error {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return ErrClosed
	}
	if w.pool.WaitingTasks() >= uint64(w.queueSize) {
		w.metrics.dropped.Inc()
		return ErrQueueFull
	}

	snap := w.world.GetOrCreateChunk(c.Pos.X, c.Pos.Y, c.Pos.Z).Snapshot()
	ctx, version := c.beginCompile(w.ctx)

	w.inflight.Add(1)
	w.pool.Submit(func() {
		defer w.inflight.Done()
		data, err := w.compiler.Compile(ctx, snap, w.world, version)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				w.metrics.cancelled.Inc()
				return
			}
			w.metrics.failed.Inc()
			w.logger.Error("ошибка компиляции чанка %s: %v", c.Pos, err)
			c.compileFailed(version)
			return
		}
		if !c.offer(data) {
			w.metrics.stale.Inc()
			return
		}
		w.metrics.completed.Inc()
	})
	w.metrics.submitted.Inc()
	return nil
}

// WaitIdle ждет завершения всех отправленных компиляций
func (w *WorldRenderer) WaitIdle() {
	w.inflight.Wait()
}

// Render рисует один кадр: видимые чанки, компиляция грязных,
// отсечение по пирамиде видимости, загрузка и отрисовка.
// Матрицы проекции и вида уже должны быть заданы в rc.
func (w *WorldRenderer) Render(rc *RenderContext, viewer *entity.Entity) int {
	chunks := w.RenderingChunks(viewer)
	w.CompileChunks(chunks)

	w.frustum.Set(rc.ProjectionView())
	drawn, culled := 0, 0
	for _, c := range chunks {
		if !w.frustum.TestBox(world.ChunkBounds(c.Pos)) {
			culled++
			continue
		}
		c.upload(rc.GPU)
		if c.draw(rc) {
			drawn++
		}
	}
	w.metrics.drawn.Set(float64(drawn))
	w.metrics.culled.Set(float64(culled))

	w.frames++
	if w.opts.GCInterval > 0 && w.frames%w.opts.GCInterval == 0 {
		w.CollectGarbage(viewer)
	}
	return drawn
}

// OnBlockChanged помечает грязными чанк блока и чанки шести соседей
func (w *WorldRenderer) OnBlockChanged(x, y, z int) {
	w.markDirtyAt(x, y, z)
	for _, d := range geom.Directions {
		w.markDirtyAt(x+d.AxisX(), y+d.AxisY(), z+d.AxisZ())
	}
}

func (w *WorldRenderer) markDirtyAt(x, y, z int) {
	if c := w.Chunk(world.ChunkPosOf(x, y, z)); c != nil {
		c.MarkDirty()
	}
}

// CollectGarbage освобождает чанки вне радиуса отрисовки
func (w *WorldRenderer) CollectGarbage(viewer *entity.Entity) int {
	keep := make(map[world.ChunkPos]struct{})
	world.ForEachChunk(viewer.BoundingBox, w.opts.Radius, func(x, y, z int) {
		keep[world.ChunkPos{X: x, Y: y, Z: z}] = struct{}{}
	})

	var removed []*RenderChunk
	w.mu.Lock()
	for pos, c := range w.chunks {
		if _, ok := keep[pos]; !ok {
			removed = append(removed, c)
			delete(w.chunks, pos)
		}
	}
	w.mu.Unlock()

	for _, c := range removed {
		c.release(w.gpu)
	}
	if len(removed) > 0 {
		w.logger.Debug("сборка чанков: освобождено %d", len(removed))
	}
	w.metrics.chunks.Set(float64(w.ChunkCount()))
	return len(removed)
}

// Close останавливает пул компиляции и освобождает ресурсы GPU
func (w *WorldRenderer) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrClosed
	}
	w.closed = true
	w.mu.Unlock()

	w.logger.Info("закрытие рендерера мира")
	w.cancel()
	w.pool.StopAndWait()

	w.mu.Lock()
	chunks := w.chunks
	w.chunks = make(map[world.ChunkPos]*RenderChunk)
	w.mu.Unlock()
	for _, c := range chunks {
		c.release(w.gpu)
	}
	w.outline.release(w.gpu)
	return nil
}
