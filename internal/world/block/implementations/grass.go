package implementations

import "github.com/annel0/voxelworld/internal/world/block"

// Grass блок травы, верхний слой генератора
var Grass = block.MustRegister(block.NewBlockType(block.GrassBlockID, "grass_block", block.Settings{}))
