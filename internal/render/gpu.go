// Package render отрисовывает видимые чанки мира, планирует их компиляцию
// и выбирает блок под прицелом.
package render

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/annel0/voxelworld/internal/render/vertex"
)

// BufferID идентификатор буфера на GPU, 0 означает отсутствие буфера
type BufferID uint32

// BufferTarget назначение буфера
type BufferTarget uint8

const (
	ArrayBuffer BufferTarget = iota
	ElementArrayBuffer
)

// DrawMode примитив отрисовки
type DrawMode uint8

const (
	Triangles DrawMode = iota
	Lines
)

// GPU минимальный набор вызовов графического API, нужный рендереру.
// Все методы вызываются только из потока отрисовки.
type GPU interface {
	GenBuffer() BufferID
	BufferData(target BufferTarget, id BufferID, data []byte)
	BufferSubData(target BufferTarget, id BufferID, offset int, data []byte)
	DrawElements(mode DrawMode, mvp mgl32.Mat4, layout *vertex.Layout, vbo, ibo BufferID, count int)
	DeleteBuffer(id BufferID)
}

// GPUStats счетчики вызовов RecordingGPU
type GPUStats struct {
	BufferData    int
	BufferSubData int
	DrawCalls     int
	DrawnIndices  int
	LiveBuffers   int
	// Overflows записи за пределы выделенного буфера
	Overflows int
}

// RecordingGPU GPU без видеокарты: помнит размеры буферов и считает вызовы.
// Используется безголовым запуском и тестами.
type RecordingGPU struct {
	mu      sync.Mutex
	next    BufferID
	buffers map[BufferID]int
	stats   GPUStats
}

// NewRecordingGPU создает RecordingGPU
func NewRecordingGPU() *RecordingGPU {
	return &RecordingGPU{buffers: make(map[BufferID]int)}
}

func (g *RecordingGPU) GenBuffer() BufferID {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	g.buffers[g.next] = 0
	return g.next
}

func (g *RecordingGPU) BufferData(_ BufferTarget, id BufferID, data []byte) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.buffers[id] = len(data)
	g.stats.BufferData++
}

func (g *RecordingGPU) BufferSubData(_ BufferTarget, id BufferID, offset int, data []byte) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if offset+len(data) > g.buffers[id] {
		g.stats.Overflows++
	}
	g.stats.BufferSubData++
}

func (g *RecordingGPU) DrawElements(_ DrawMode, _ mgl32.Mat4, _ *vertex.Layout, _, _ BufferID, count int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stats.DrawCalls++
	g.stats.DrawnIndices += count
}

func (g *RecordingGPU) DeleteBuffer(id BufferID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.buffers, id)
}

// BufferSize размер данных буфера
func (g *RecordingGPU) BufferSize(id BufferID) (int, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, ok := g.buffers[id]
	return n, ok
}

// Stats снимок счетчиков
func (g *RecordingGPU) Stats() GPUStats {
	g.mu.Lock()
	defer g.mu.Unlock()
	s := g.stats
	s.LiveBuffers = len(g.buffers)
	return s
}

// ResetFrame обнуляет счетчики отрисовки, размеры буферов сохраняются
func (g *RecordingGPU) ResetFrame() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stats.DrawCalls = 0
	g.stats.DrawnIndices = 0
}
