package block

import "github.com/annel0/voxelworld/internal/geom"

// BlockID числовой идентификатор типа блока
type BlockID uint16

// Константы ID блоков
const (
	AirBlockID   BlockID = iota // 0
	GrassBlockID                // 1
	DirtBlockID                 // 2
	StoneBlockID                // 3
)

// BlockType тип блока. Неизменяем после регистрации,
// сравнивается по указателю.
type BlockType struct {
	ID         BlockID
	Identifier Identifier
	Air        bool
	// Texture идентификатор текстуры для всех граней
	Texture Identifier
}

// Settings параметры создания типа блока
type Settings struct {
	Air     bool
	Texture string
}

// NewBlockType создает тип блока; текстура по умолчанию block/<path>
func NewBlockType(id BlockID, name string, s Settings) *BlockType {
	ident := Builtin(name)
	tex := ident.WithPrefix("block")
	if s.Texture != "" {
		tex = Builtin(s.Texture)
	}
	return &BlockType{ID: id, Identifier: ident, Air: s.Air, Texture: tex}
}

// OutlineShape форма выделения в локальных координатах блока
func (t *BlockType) OutlineShape() geom.AABB {
	if t.Air {
		return geom.Empty
	}
	return geom.FullCube
}

// CollisionShape форма столкновений в локальных координатах блока
func (t *BlockType) CollisionShape() geom.AABB {
	if t.Air {
		return geom.Empty
	}
	return geom.FullCube
}

func (t *BlockType) String() string {
	return t.Identifier.String()
}

// Air тип воздуха, значение реестра по умолчанию
var Air = NewBlockType(AirBlockID, "air", Settings{Air: true})
