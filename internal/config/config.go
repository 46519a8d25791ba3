package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации приложения.
type Config struct {
	World   WorldConfig   `yaml:"world"`
	Render  RenderConfig  `yaml:"render"`
	Game    GameConfig    `yaml:"game"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// WorldConfig параметры мира и генерации
type WorldConfig struct {
	Seed      int64  `yaml:"seed"`
	Generator string `yaml:"generator"` // "layered" | "perlin"
}

// RenderConfig параметры рендерера и компиляции мешей
type RenderConfig struct {
	Radius         int     `yaml:"radius"`
	Workers        int     `yaml:"workers"`
	QueueSize      int     `yaml:"queue_size"`
	PickRadius     int     `yaml:"pick_radius"`
	FOV            float64 `yaml:"fov"`
	GCInterval     int     `yaml:"gc_interval"`
	VertexCapacity int     `yaml:"vertex_capacity"`
	IndexCapacity  int     `yaml:"index_capacity"`
}

// GameConfig параметры игрового цикла
type GameConfig struct {
	TPS              float64 `yaml:"tps"`
	MaxTicksPerFrame int     `yaml:"max_ticks_per_frame"`
}

// ServerConfig параметры служебного HTTP
type ServerConfig struct {
	MetricsPort int `yaml:"metrics_port"`
}

// LoggingConfig параметры логирования
type LoggingConfig struct {
	Level string `yaml:"level"`
}

const (
	GeneratorLayered = "layered"
	GeneratorPerlin  = "perlin"
)

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		World: WorldConfig{Seed: 1, Generator: GeneratorLayered},
		Render: RenderConfig{
			Radius:         8,
			QueueSize:      256,
			PickRadius:     5,
			FOV:            70,
			GCInterval:     600,
			VertexCapacity: 30000,
			IndexCapacity:  45000,
		},
		Game:    GameConfig{TPS: 20, MaxTicksPerFrame: 100},
		Logging: LoggingConfig{Level: "info"},
	}
}

// GetRadius возвращает радиус отрисовки в чанках: config -> env -> default
func (r *RenderConfig) GetRadius() int {
	return getIntWithEnvFallback(r.Radius, "VOXEL_RENDER_RADIUS", 8)
}

// GetWorkers возвращает число воркеров компиляции: config -> env -> NumCPU
func (r *RenderConfig) GetWorkers() int {
	return getIntWithEnvFallback(r.Workers, "VOXEL_WORKERS", runtime.NumCPU())
}

// GetQueueSize возвращает размер очереди задач компиляции
func (r *RenderConfig) GetQueueSize() int {
	if r.QueueSize > 0 {
		return r.QueueSize
	}
	return 256
}

// GetPickRadius возвращает радиус выбора блока
func (r *RenderConfig) GetPickRadius() int {
	if r.PickRadius > 0 {
		return r.PickRadius
	}
	return 5
}

// GetFOV возвращает угол обзора в градусах
func (r *RenderConfig) GetFOV() float64 {
	if r.FOV > 0 {
		return r.FOV
	}
	return 70
}

// GetGCInterval возвращает период сборки невидимых чанков в кадрах
func (r *RenderConfig) GetGCInterval() int {
	if r.GCInterval > 0 {
		return r.GCInterval
	}
	return 600
}

// GetTPS возвращает частоту тиков
func (g *GameConfig) GetTPS() float64 {
	if g.TPS > 0 {
		return g.TPS
	}
	return 20
}

// GetMaxTicksPerFrame возвращает ограничение тиков за кадр
func (g *GameConfig) GetMaxTicksPerFrame() int {
	if g.MaxTicksPerFrame > 0 {
		return g.MaxTicksPerFrame
	}
	return 100
}

// GetMetricsPort возвращает Prometheus порт с поддержкой fallback значений
func (s *ServerConfig) GetMetricsPort() int {
	return getIntWithEnvFallback(s.MetricsPort, "VOXEL_METRICS_PORT", 2112)
}

// getIntWithEnvFallback возвращает значение с приоритетом: config -> env -> default
func getIntWithEnvFallback(configVal int, envVar string, defaultVal int) int {
	if configVal > 0 {
		return configVal
	}

	if envVal := os.Getenv(envVar); envVal != "" {
		if v, err := strconv.Atoi(envVal); err == nil && v > 0 {
			return v
		}
	}

	return defaultVal
}

// Validate проверяет значения, которые нельзя исправить подстановкой дефолта
func (c *Config) Validate() error {
	switch c.World.Generator {
	case "", GeneratorLayered, GeneratorPerlin:
	default:
		return fmt.Errorf("неизвестный генератор %q", c.World.Generator)
	}
	if c.Render.Radius < 0 || c.Render.Workers < 0 || c.Render.QueueSize < 0 {
		return fmt.Errorf("параметры render не могут быть отрицательными")
	}
	return nil
}

// Load читает YAML файл конфигурации поверх Default().
// Если path == "", пытается прочитать из ENV GAME_CONFIG, иначе возвращает дефолты.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv("GAME_CONFIG")
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("чтение конфигурации %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("разбор конфигурации %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("конфигурация %s: %w", path, err)
	}

	return cfg, nil
}
