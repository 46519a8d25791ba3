// Package implementations регистрирует встроенные типы блоков.
// Импортируется ради побочного эффекта init().
package implementations

import "github.com/annel0/voxelworld/internal/world/block"

// Bootstrap гарантирует, что пакет импортирован и блоки зарегистрированы
func Bootstrap() *block.Registry {
	return block.Default()
}
