package world

import (
	"math"
	"sync"

	"github.com/google/uuid"

	"github.com/annel0/voxelworld/internal/geom"
	"github.com/annel0/voxelworld/internal/logging"
	"github.com/annel0/voxelworld/internal/physics"
	"github.com/annel0/voxelworld/internal/vec"
	"github.com/annel0/voxelworld/internal/world/block"
	"github.com/annel0/voxelworld/internal/world/entity"
)

// TickingRadius радиус в чанках вокруг игрока, в котором мир обновляется
const TickingRadius = 5

// World хранит чанки, сущности и слушателей изменений.
// Изменения выполняются одной горутиной (логический тик), чтение
// карты чанков допускается параллельно из рендера.
type World struct {
	mu        sync.RWMutex
	chunks    map[ChunkPos]*Chunk
	generator Generator

	listenersMu sync.RWMutex
	listeners   []Listener

	entities []*entity.Entity
	motion   *physics.MotionSystem

	logger *logging.Logger
}

// New создаёт пустой мир с указанным генератором
func New(gen Generator) *World {
	if gen == nil {
		gen = LayeredGenerator{}
	}
	return &World{
		chunks:    make(map[ChunkPos]*Chunk),
		generator: gen,
		motion:    physics.NewMotionSystem(),
		logger:    logging.GetWorldLogger(),
	}
}

// AddListener регистрирует слушателя изменений блоков
func (w *World) AddListener(l Listener) {
	w.listenersMu.Lock()
	w.listeners = append(w.listeners, l)
	w.listenersMu.Unlock()
}

// GetChunk возвращает загруженный чанк или nil
func (w *World) GetChunk(x, y, z int) *Chunk {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.chunks[ChunkPos{x, y, z}]
}

// GetChunkByAbsolutePos возвращает чанк, содержащий блок, или nil
func (w *World) GetChunkByAbsolutePos(x, y, z int) *Chunk {
	p := ChunkPosOf(x, y, z)
	return w.GetChunk(p.X, p.Y, p.Z)
}

// IsChunkLoaded проверяет, создан ли чанк
func (w *World) IsChunkLoaded(x, y, z int) bool {
	return w.GetChunk(x, y, z) != nil
}

// IsBlockLoaded проверяет, создан ли чанк, содержащий блок
func (w *World) IsBlockLoaded(x, y, z int) bool {
	return w.GetChunkByAbsolutePos(x, y, z) != nil
}

// ChunkCount возвращает число загруженных чанков
func (w *World) ChunkCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.chunks)
}

// GetOrCreateChunk единственный путь создания чанка.
// Генератор запускается ровно один раз для каждой координаты.
func (w *World) GetOrCreateChunk(x, y, z int) *Chunk {
	pos := ChunkPos{x, y, z}

	w.mu.RLock()
	c, exists := w.chunks[pos]
	w.mu.RUnlock()
	if exists {
		return c
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	// Проверяем еще раз на случай race condition
	if c, exists := w.chunks[pos]; exists {
		return c
	}

	c = NewChunk(pos)
	w.generator.Generate(c)
	w.chunks[pos] = c
	w.logger.Trace("чанк %s создан, всего %d", pos, len(w.chunks))
	return c
}

// EnsureBlockLoaded создает чанк, содержащий блок, если его еще нет
func (w *World) EnsureBlockLoaded(x, y, z int) {
	p := ChunkPosOf(x, y, z)
	w.GetOrCreateChunk(p.X, p.Y, p.Z)
}

// GetBlockType возвращает блок по абсолютным координатам; для незагруженных чанков воздух
func (w *World) GetBlockType(x, y, z int) *block.BlockType {
	c := w.GetChunkByAbsolutePos(x, y, z)
	if c == nil {
		return block.Air
	}
	return c.GetBlockType(AbsoluteToRelative(x), AbsoluteToRelative(y), AbsoluteToRelative(z))
}

// SetBlockType записывает блок, если чанк загружен, и уведомляет слушателей
func (w *World) SetBlockType(x, y, z int, t *block.BlockType) {
	c := w.GetChunkByAbsolutePos(x, y, z)
	if c == nil {
		return
	}
	c.SetBlockType(AbsoluteToRelative(x), AbsoluteToRelative(y), AbsoluteToRelative(z), t)

	w.listenersMu.RLock()
	listeners := w.listeners
	w.listenersMu.RUnlock()
	for _, l := range listeners {
		l.OnBlockChanged(x, y, z)
	}
}

// ForEachChunk перебирает координаты чанков вокруг бокса с запасом chunkRadius.
// Нижняя граница округляется вниз, верхняя вверх и берется с запасом в один чанк.
func ForEachChunk(box geom.AABB, chunkRadius int, fn func(x, y, z int)) {
	r := float64(chunkRadius * ChunkSize)
	b := box.Grow(r, r, r)
	minX := AbsoluteToChunk(int(math.Floor(b.MinX)))
	minY := AbsoluteToChunk(int(math.Floor(b.MinY)))
	minZ := AbsoluteToChunk(int(math.Floor(b.MinZ)))
	maxX := AbsoluteToChunk(int(math.Ceil(b.MaxX))) + 1
	maxY := AbsoluteToChunk(int(math.Ceil(b.MaxY))) + 1
	maxZ := AbsoluteToChunk(int(math.Ceil(b.MaxZ))) + 1
	for x := minX; x < maxX; x++ {
		for y := minY; y < maxY; y++ {
			for z := minZ; z < maxZ; z++ {
				fn(x, y, z)
			}
		}
	}
}

// CreateEntity создаёт сущность типа t в точке (x, y, z)
func (w *World) CreateEntity(t *entity.Type, x, y, z float64) *entity.Entity {
	e := entity.New(uuid.New(), t, vec.Vec3Float{X: x, Y: y, Z: z})
	w.entities = append(w.entities, e)
	w.logger.Debug("сущность %s (%s) создана в (%.2f, %.2f, %.2f)", e.ID, t.Name, x, y, z)
	return e
}

// Entities возвращает сущности мира
func (w *World) Entities() []*entity.Entity {
	return w.entities
}

// RemoveEntity удаляет сущность по ID
func (w *World) RemoveEntity(id uuid.UUID) bool {
	for i, e := range w.entities {
		if e.ID == id {
			w.entities = append(w.entities[:i], w.entities[i+1:]...)
			return true
		}
	}
	return false
}

// Tick выполняет один логический тик: движение сущностей в радиусе
// TickingRadius от игроков. Без игроков обновляются все сущности.
func (w *World) Tick() {
	w.motion.Process(w, w.tickingEntities())
}

func (w *World) tickingEntities() []*entity.Entity {
	var players []ChunkPos
	for _, e := range w.entities {
		if e.Type != nil && e.Type.ID == entity.PlayerTypeID {
			players = append(players, entityChunk(e))
		}
	}
	if len(players) == 0 {
		return w.entities
	}

	active := make([]*entity.Entity, 0, len(w.entities))
	for _, e := range w.entities {
		c := entityChunk(e)
		for _, p := range players {
			if chebyshev(c, p) <= TickingRadius {
				active = append(active, e)
				break
			}
		}
	}
	return active
}

func entityChunk(e *entity.Entity) ChunkPos {
	return ChunkPosOf(
		int(math.Floor(e.Position.X)),
		int(math.Floor(e.Position.Y)),
		int(math.Floor(e.Position.Z)),
	)
}

func chebyshev(a, b ChunkPos) int {
	return max(abs(a.X-b.X), abs(a.Y-b.Y), abs(a.Z-b.Z))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
