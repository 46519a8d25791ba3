package mesh

import (
	"context"
	"errors"
	"fmt"

	"github.com/annel0/voxelworld/internal/geom"
	"github.com/annel0/voxelworld/internal/logging"
	"github.com/annel0/voxelworld/internal/render/vertex"
	"github.com/annel0/voxelworld/internal/world"
	"github.com/annel0/voxelworld/internal/world/block"
)

// BlockSource мир для проверки соседей за границей чанка
type BlockSource interface {
	GetBlockType(x, y, z int) *block.BlockType
	IsBlockLoaded(x, y, z int) bool
}

// Compiler собирает геометрию чанка из снимка
type Compiler struct {
	renderer *BlockRenderer
	pool     *vertex.Pool
	logger   *logging.Logger
}

// NewCompiler создает компилятор
func NewCompiler(renderer *BlockRenderer, pool *vertex.Pool) *Compiler {
	return &Compiler{
		renderer: renderer,
		pool:     pool,
		logger:   logging.GetMeshLogger(),
	}
}

// Pool возвращает пул буферов компилятора
func (c *Compiler) Pool() *vertex.Pool {
	return c.pool
}

// Compile строит ChunkVertexData для снимка. Грань блока выводится, если сосед
// внутри чанка воздух, либо сосед за границей в загруженном чанке и воздух.
// При отмене ctx буфер возвращается в пул и возвращается ошибка ctx.
// При панике или ошибке буфер выбрасывается.
func (c *Compiler) Compile(ctx context.Context, snap *world.Snapshot, src BlockSource, version uint64) (data *ChunkVertexData, err error) {
	h := c.pool.Acquire()
	defer h.Close()
	defer func() {
		if r := recover(); r != nil {
			data = nil
			err = fmt.Errorf("compile chunk %s: panic: %v", snap.Pos, r)
		}
	}()

	b := h.Builder()
	b.Reset()

	cx, cy, cz := snap.Pos.X, snap.Pos.Y, snap.Pos.Z
	for _, dir := range geom.Directions {
		ax, ay, az := dir.Axis()
		for x := 0; x < world.ChunkSize; x++ {
			if err := ctx.Err(); err != nil {
				if relErr := h.Release(); relErr != nil {
					return nil, errors.Join(err, fmt.Errorf("compile chunk %s: %w", snap.Pos, relErr))
				}
				return nil, err
			}
			for y := 0; y < world.ChunkSize; y++ {
				for z := 0; z < world.ChunkSize; z++ {
					t := snap.Blocks[world.Index(x, y, z)]
					if t.Air {
						continue
					}
					absX := world.RelativeToAbsolute(cx, x)
					absY := world.RelativeToAbsolute(cy, y)
					absZ := world.RelativeToAbsolute(cz, z)
					if !faceVisible(snap, src, x+ax, y+ay, z+az, absX+ax, absY+ay, absZ+az) {
						continue
					}
					c.renderer.RenderFace(b, t, absX, absY, absZ, dir)
				}
			}
		}
	}

	data = &ChunkVertexData{
		Layout:                     b.Layout(),
		IndexCount:                 b.IndexCount(),
		VertexData:                 b.VertexBytes(),
		IndexData:                  b.IndexBytes(),
		ShouldReallocateVertexData: b.ShouldReallocateVertexData(),
		ShouldReallocateIndexData:  b.ShouldReallocateIndexData(),
		Pos:                        snap.Pos,
		Version:                    version,
	}
	if err := h.Release(); err != nil {
		return nil, fmt.Errorf("compile chunk %s: %w", snap.Pos, err)
	}
	c.logger.Trace("чанк %s скомпилирован: %d индексов", snap.Pos, data.IndexCount)
	return data, nil
}

func faceVisible(snap *world.Snapshot, src BlockSource, nx, ny, nz, absX, absY, absZ int) bool {
	if world.InBounds(nx, ny, nz) {
		return snap.Blocks[world.Index(nx, ny, nz)].Air
	}
	if src == nil || !src.IsBlockLoaded(absX, absY, absZ) {
		return false
	}
	return src.GetBlockType(absX, absY, absZ).Air
}
