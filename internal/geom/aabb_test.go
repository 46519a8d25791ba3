package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAABBNormalizes(t *testing.T) {
	b := NewAABB(1, 2, 3, 0, 0, 0)
	assert.Equal(t, AABB{0, 0, 0, 1, 2, 3}, b)
}

func TestExpandFollowsMovementSign(t *testing.T) {
	b := FullCube.Expand(-0.5, 2, 0)
	assert.Equal(t, AABB{-0.5, 0, 0, 1, 3, 1}, b)
}

func TestGrow(t *testing.T) {
	b := FullCube.Grow(1, 1, 1)
	assert.Equal(t, AABB{-1, -1, -1, 2, 2, 2}, b)
}

func TestClipYCollide(t *testing.T) {
	ground := FullCube // блок в (0,0,0)
	player := NewAABB(0.2, 1.5, 0.2, 0.8, 3.3, 0.8)

	t.Run("падение ограничивается верхом блока", func(t *testing.T) {
		assert.InDelta(t, -0.5, ground.ClipYCollide(player, -2), 1e-9)
	})
	t.Run("движение вверх не ограничивается блоком снизу", func(t *testing.T) {
		assert.Equal(t, 1.0, ground.ClipYCollide(player, 1))
	})
	t.Run("без перекрытия по XZ движение свободно", func(t *testing.T) {
		aside := player.Move(2, 0, 0)
		assert.Equal(t, -2.0, ground.ClipYCollide(aside, -2))
	})
	t.Run("касание гранью не считается перекрытием", func(t *testing.T) {
		touching := NewAABB(1, 1.5, 0, 2, 2, 1)
		assert.Equal(t, -2.0, ground.ClipYCollide(touching, -2))
	})
}

func TestClipXZCollide(t *testing.T) {
	wall := FullCube.Move(2, 0, 0)
	mover := NewAABB(0, 0, 0, 1, 1, 1)
	assert.InDelta(t, 1.0, wall.ClipXCollide(mover, 5), 1e-9)
	assert.Equal(t, -5.0, wall.ClipXCollide(mover, -5))

	wallZ := FullCube.Move(0, 0, -3)
	assert.InDelta(t, -2.0, wallZ.ClipZCollide(mover, -4), 1e-9)
}

func TestDirectionOpposite(t *testing.T) {
	for _, d := range Directions {
		x, y, z := d.Axis()
		ox, oy, oz := d.Opposite().Axis()
		assert.Equal(t, [3]int{-x, -y, -z}, [3]int{ox, oy, oz}, "направление %s", d)
	}
}
