package world

import (
	"fmt"
	"sync"

	"github.com/annel0/voxelworld/internal/geom"
	"github.com/annel0/voxelworld/internal/world/block"
)

// ChunkSize размер ребра чанка в блоках
const ChunkSize = 32

// ChunkVolume количество блоков в чанке
const ChunkVolume = ChunkSize * ChunkSize * ChunkSize

// ChunkPos координаты чанка
type ChunkPos struct {
	X, Y, Z int
}

func (p ChunkPos) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.Z)
}

// Add возвращает соседние координаты
func (p ChunkPos) Add(dx, dy, dz int) ChunkPos {
	return ChunkPos{p.X + dx, p.Y + dy, p.Z + dz}
}

// AbsoluteToChunk переводит абсолютную координату блока в координату чанка
func AbsoluteToChunk(pos int) int {
	return floorDiv(pos, ChunkSize)
}

// AbsoluteToRelative переводит абсолютную координату в координату внутри чанка [0,32)
func AbsoluteToRelative(pos int) int {
	return floorMod(pos, ChunkSize)
}

// RelativeToAbsolute переводит координату внутри чанка в абсолютную
func RelativeToAbsolute(chunk, rel int) int {
	return chunk*ChunkSize + rel
}

// ChunkPosOf возвращает чанк, содержащий блок
func ChunkPosOf(x, y, z int) ChunkPos {
	return ChunkPos{AbsoluteToChunk(x), AbsoluteToChunk(y), AbsoluteToChunk(z)}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}

// Chunk представляет участок мира 32x32x32 блока.
// Не хранит ссылку на мир: соседей спрашивают через World.
type Chunk struct {
	Pos ChunkPos

	blocks [ChunkVolume]*block.BlockType
	Mu     sync.RWMutex // Мьютекс для безопасного доступа
}

// NewChunk создаёт чанк, заполненный воздухом
func NewChunk(pos ChunkPos) *Chunk {
	c := &Chunk{Pos: pos}
	for i := range c.blocks {
		c.blocks[i] = block.Air
	}
	return c
}

// Index возвращает индекс блока в массиве: (y*32+z)*32+x
func Index(x, y, z int) int {
	return (y*ChunkSize+z)*ChunkSize + x
}

// InBounds проверяет, что относительные координаты внутри чанка
func InBounds(x, y, z int) bool {
	return x >= 0 && x < ChunkSize && y >= 0 && y < ChunkSize && z >= 0 && z < ChunkSize
}

// GetBlockType возвращает блок по относительным координатам, вне границ воздух
func (c *Chunk) GetBlockType(x, y, z int) *block.BlockType {
	if !InBounds(x, y, z) {
		return block.Air
	}
	c.Mu.RLock()
	defer c.Mu.RUnlock()
	return c.blocks[Index(x, y, z)]
}

// SetBlockType записывает блок по относительным координатам, вне границ no-op
func (c *Chunk) SetBlockType(x, y, z int, t *block.BlockType) {
	if !InBounds(x, y, z) {
		return
	}
	if t == nil {
		t = block.Air
	}
	c.Mu.Lock()
	c.blocks[Index(x, y, z)] = t
	c.Mu.Unlock()
}

// setUnlocked используется генератором до публикации чанка
func (c *Chunk) setUnlocked(x, y, z int, t *block.BlockType) {
	c.blocks[Index(x, y, z)] = t
}

// Fill заполняет чанк функцией от относительных координат.
// Используется генераторами до того, как чанк стал виден другим горутинам.
func (c *Chunk) Fill(fn func(x, y, z int) *block.BlockType) {
	for y := 0; y < ChunkSize; y++ {
		for z := 0; z < ChunkSize; z++ {
			for x := 0; x < ChunkSize; x++ {
				if t := fn(x, y, z); t != nil {
					c.setUnlocked(x, y, z, t)
				}
			}
		}
	}
}

// Snapshot возвращает копию массива блоков под блокировкой чтения
func (c *Chunk) Snapshot() *Snapshot {
	s := &Snapshot{Pos: c.Pos}
	c.Mu.RLock()
	s.Blocks = c.blocks
	c.Mu.RUnlock()
	return s
}

// From возвращает мировые координаты минимального угла
func (c *Chunk) From() (x, y, z int) {
	return c.Pos.X * ChunkSize, c.Pos.Y * ChunkSize, c.Pos.Z * ChunkSize
}

// Bounds возвращает мировые границы [pos*32, pos*32+32)
func (c *Chunk) Bounds() geom.AABB {
	return ChunkBounds(c.Pos)
}

// ChunkBounds границы чанка по координатам
func ChunkBounds(p ChunkPos) geom.AABB {
	x, y, z := float64(p.X*ChunkSize), float64(p.Y*ChunkSize), float64(p.Z*ChunkSize)
	return geom.AABB{
		MinX: x, MinY: y, MinZ: z,
		MaxX: x + ChunkSize, MaxY: y + ChunkSize, MaxZ: z + ChunkSize,
	}
}

// Snapshot неизменяемая копия блоков чанка для компиляции вне основного потока
type Snapshot struct {
	Pos    ChunkPos
	Blocks [ChunkVolume]*block.BlockType
}

// GetBlockType возвращает блок по относительным координатам, вне границ воздух
func (s *Snapshot) GetBlockType(x, y, z int) *block.BlockType {
	if !InBounds(x, y, z) {
		return block.Air
	}
	return s.Blocks[Index(x, y, z)]
}

// IsEmpty сообщает, что в снимке только воздух
func (s *Snapshot) IsEmpty() bool {
	for _, t := range s.Blocks {
		if !t.Air {
			return false
		}
	}
	return true
}
