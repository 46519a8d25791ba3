package entity

import "github.com/annel0/voxelworld/internal/vec"

// Размеры игрока
const (
	PlayerWidth     = 0.6
	PlayerHeight    = 1.8
	PlayerEyeHeight = 1.62
)

// Player тип сущности игрока
var Player = mustRegister(&Type{
	ID:        PlayerTypeID,
	Name:      "player",
	Width:     PlayerWidth,
	Height:    PlayerHeight,
	Depth:     PlayerWidth,
	EyeHeight: PlayerEyeHeight,
	Init:      setupPlayer,
})

func setupPlayer(e *Entity, pos vec.Vec3Float) {
	e.Add(Acceleration)
	e.Add(BoundingBox)
	e.Add(EyeHeight)
	e.Add(Position)
	e.Add(Rotation)
	e.Add(Velocity)

	e.Position = pos
	e.EyeHeight = PlayerEyeHeight
	e.RefreshBoundingBox()
}
