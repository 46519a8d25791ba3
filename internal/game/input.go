package game

// InputState состояние управления на момент кадра
type InputState struct {
	Forward, Back, Left, Right bool
	Jump                       bool
	Sprint                     bool
	Break                      bool
	Place                      bool

	// Смещение курсора с прошлого кадра в пикселях
	CursorDX, CursorDY float64
	// HotbarSlot выбранная ячейка, -1 оставляет текущую
	HotbarSlot int
}

// Input источник управления и размера кадра
type Input interface {
	Poll() InputState
	Viewport() (width, height int)
}

// StaticInput фиксированный ввод для безголового запуска и тестов
type StaticInput struct {
	State         InputState
	Width, Height int
}

// NewStaticInput создает ввод без нажатий
func NewStaticInput(width, height int) *StaticInput {
	return &StaticInput{State: InputState{HotbarSlot: -1}, Width: width, Height: height}
}

func (s *StaticInput) Poll() InputState {
	st := s.State
	// Курсор сдвигается один раз
	s.State.CursorDX, s.State.CursorDY = 0, 0
	return st
}

func (s *StaticInput) Viewport() (int, int) {
	return s.Width, s.Height
}
