package implementations

import "github.com/annel0/voxelworld/internal/world/block"

// Stone камень, нижний слой генератора
var Stone = block.MustRegister(block.NewBlockType(block.StoneBlockID, "stone", block.Settings{}))
