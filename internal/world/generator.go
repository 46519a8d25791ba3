package world

import (
	"fmt"
	"math"

	"github.com/aquilax/go-perlin"

	"github.com/annel0/voxelworld/internal/world/block"
	"github.com/annel0/voxelworld/internal/world/block/implementations"
)

// Generator заполняет новый чанк. Вызывается ровно один раз на чанк,
// до того как чанк станет виден другим горутинам.
type Generator interface {
	Generate(c *Chunk)
}

// Высоты слоев плоского мира
const (
	StoneTop   = 5 // Ниже - камень
	DirtTop    = 8 // Ниже - земля
	GrassLevel = 8 // На этой высоте - трава
)

// layerAt возвращает блок для абсолютной высоты y при поверхности surface
func layerAt(y, surface int) *block.BlockType {
	switch {
	case y < surface-(GrassLevel-StoneTop):
		return implementations.Stone
	case y < surface:
		return implementations.Dirt
	case y == surface:
		return implementations.Grass
	}
	return nil
}

// LayeredGenerator плоский мир: камень, земля, трава на высоте 8
type LayeredGenerator struct{}

// Generate заполняет чанк слоями в зависимости от абсолютной высоты
func (LayeredGenerator) Generate(c *Chunk) {
	c.Fill(func(x, y, z int) *block.BlockType {
		return layerAt(RelativeToAbsolute(c.Pos.Y, y), GrassLevel)
	})
}

// PerlinGenerator рельеф по карте высот из 2D шума Перлина
type PerlinGenerator struct {
	Seed       int64
	NoiseScale float64 // Масштаб шума по горизонтали
	BaseHeight float64 // Средняя высота поверхности
	Amplitude  float64 // Размах высот

	noise *perlin.Perlin
}

// NewPerlinGenerator создаёт генератор с параметрами по умолчанию
func NewPerlinGenerator(seed int64) *PerlinGenerator {
	alpha := 2.0  // Сглаживание шума
	beta := 2.0   // Частота шума
	n := int32(3) // Количество октав
	return &PerlinGenerator{
		Seed:       seed,
		NoiseScale: 0.02,
		BaseHeight: GrassLevel,
		Amplitude:  12,
		noise:      perlin.NewPerlin(alpha, beta, n, seed),
	}
}

// SurfaceAt возвращает высоту травы в столбце (x, z)
func (g *PerlinGenerator) SurfaceAt(x, z int) int {
	// Шум от -1 до 1
	n := g.noise.Noise2D(float64(x)*g.NoiseScale, float64(z)*g.NoiseScale)
	return int(math.Floor(g.BaseHeight + n*g.Amplitude))
}

// Generate заполняет чанк по карте высот
func (g *PerlinGenerator) Generate(c *Chunk) {
	var surface [ChunkSize][ChunkSize]int
	for z := 0; z < ChunkSize; z++ {
		for x := 0; x < ChunkSize; x++ {
			surface[z][x] = g.SurfaceAt(RelativeToAbsolute(c.Pos.X, x), RelativeToAbsolute(c.Pos.Z, z))
		}
	}
	c.Fill(func(x, y, z int) *block.BlockType {
		return layerAt(RelativeToAbsolute(c.Pos.Y, y), surface[z][x])
	})
}

// NewGenerator создает генератор по имени из конфигурации
func NewGenerator(name string, seed int64) (Generator, error) {
	switch name {
	case "", "layered":
		return LayeredGenerator{}, nil
	case "perlin":
		return NewPerlinGenerator(seed), nil
	}
	return nil, fmt.Errorf("unknown world generator %q", name)
}
