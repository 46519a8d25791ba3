package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/annel0/voxelworld/internal/logging"
)

// MatrixStack стек матриц. Push возвращает функцию, которая
// восстанавливает стек к состоянию до Push.
type MatrixStack struct {
	stack []mgl32.Mat4
}

// NewMatrixStack создает стек с единичной матрицей
func NewMatrixStack() *MatrixStack {
	return &MatrixStack{stack: []mgl32.Mat4{mgl32.Ident4()}}
}

// Push копирует вершину стека
func (s *MatrixStack) Push() (pop func()) {
	depth := len(s.stack)
	s.stack = append(s.stack, s.Top())
	popped := false
	return func() {
		if popped {
			logging.GetRenderLogger().Warn("повторный pop стека матриц")
			return
		}
		popped = true
		if len(s.stack) < depth+1 {
			logging.GetRenderLogger().Warn("стек матриц уже короче ожидаемого: %d < %d", len(s.stack), depth+1)
			return
		}
		s.stack = s.stack[:depth]
	}
}

// Top возвращает текущую матрицу
func (s *MatrixStack) Top() mgl32.Mat4 {
	return s.stack[len(s.stack)-1]
}

// Set заменяет текущую матрицу
func (s *MatrixStack) Set(m mgl32.Mat4) {
	s.stack[len(s.stack)-1] = m
}

// Mul умножает текущую матрицу справа на m
func (s *MatrixStack) Mul(m mgl32.Mat4) {
	s.Set(s.Top().Mul4(m))
}

// Depth глубина стека
func (s *MatrixStack) Depth() int {
	return len(s.stack)
}

// RenderContext состояние отрисовки одного кадра: GPU, размер кадра и матрицы
type RenderContext struct {
	GPU    GPU
	Width  int
	Height int

	projection *MatrixStack
	view       *MatrixStack
	model      *MatrixStack
}

// NewRenderContext создает контекст отрисовки
func NewRenderContext(gpu GPU, width, height int) *RenderContext {
	return &RenderContext{
		GPU:        gpu,
		Width:      width,
		Height:     height,
		projection: NewMatrixStack(),
		view:       NewMatrixStack(),
		model:      NewMatrixStack(),
	}
}

// Scope сохраняет все три матрицы; вызов pop возвращает их обратно
func (c *RenderContext) Scope() (pop func()) {
	p1 := c.projection.Push()
	p2 := c.view.Push()
	p3 := c.model.Push()
	return func() {
		p3()
		p2()
		p1()
	}
}

func (c *RenderContext) Projection() *MatrixStack { return c.projection }
func (c *RenderContext) View() *MatrixStack       { return c.view }
func (c *RenderContext) Model() *MatrixStack      { return c.model }

// SetProjectionView задает проекцию и вид
func (c *RenderContext) SetProjectionView(projection, view mgl32.Mat4) {
	c.projection.Set(projection)
	c.view.Set(view)
}

// ProjectionView возвращает projection*view
func (c *RenderContext) ProjectionView() mgl32.Mat4 {
	return c.projection.Top().Mul4(c.view.Top())
}

// MVP возвращает projection*view*model
func (c *RenderContext) MVP() mgl32.Mat4 {
	return c.ProjectionView().Mul4(c.model.Top())
}

// Aspect соотношение сторон кадра
func (c *RenderContext) Aspect() float32 {
	if c.Height <= 0 {
		return 1
	}
	return float32(c.Width) / float32(c.Height)
}

// Perspective перспективная проекция с углом обзора fovDeg
func Perspective(fovDeg float64, aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(float32(fovDeg)), aspect, 0.01, 1000)
}
