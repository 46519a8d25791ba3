package implementations

import "github.com/annel0/voxelworld/internal/world/block"

// Dirt земля под травой
var Dirt = block.MustRegister(block.NewBlockType(block.DirtBlockID, "dirt", block.Settings{}))
