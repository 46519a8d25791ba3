package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/annel0/voxelworld/internal/config"
	"github.com/annel0/voxelworld/internal/game"
	"github.com/annel0/voxelworld/internal/logging"
	"github.com/annel0/voxelworld/internal/render"
	"github.com/annel0/voxelworld/internal/world"
	"github.com/annel0/voxelworld/internal/world/block/implementations"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to YAML config (GAME_CONFIG if empty)")
		frames     = flag.Int("frames", 0, "Frames to run, 0 runs until interrupted")
		fps        = flag.Int("fps", 60, "Target frames per second")
		noMetrics  = flag.Bool("no-metrics", false, "Disable the /metrics endpoint")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}
	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("❌ Ошибка уровня логирования: %v", err)
	}
	logging.InitLogger(level)
	logger := logging.GetGameLogger()
	defer func() { _ = logging.GetLoggerManager().CloseAll() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *frames, *fps, !*noMetrics); err != nil {
		logger.Error("❌ %v", err)
		os.Exit(1)
	}
	logger.Info("👋 Симуляция остановлена")
}

// run собирает мир, рендерер и игру и крутит безголовый цикл кадров
func run(ctx context.Context, cfg *config.Config, frames, fps int, metrics bool) error {
	logger := logging.GetGameLogger()
	registry := implementations.Bootstrap()
	registry.Freeze()

	gen, err := world.NewGenerator(cfg.World.Generator, cfg.World.Seed)
	if err != nil {
		return fmt.Errorf("create generator: %w", err)
	}
	w := world.New(gen)
	world.NewLoggingListener(w)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	opts := render.OptionsFromConfig(cfg)
	opts.Registerer = reg
	gpu := render.NewRecordingGPU()
	wr, err := render.NewWorldRenderer(w, gpu, opts)
	if err != nil {
		return fmt.Errorf("create world renderer: %w", err)
	}

	input := game.NewStaticInput(854, 480)
	g := game.New(w, wr, gpu, input, game.Options{
		TPS:              cfg.Game.GetTPS(),
		MaxTicksPerFrame: cfg.Game.GetMaxTicksPerFrame(),
		FOV:              cfg.Render.GetFOV(),
	}, time.Now())
	defer func() {
		if err := g.Close(); err != nil && !errors.Is(err, render.ErrClosed) {
			logger.Warn("ошибка остановки рендерера: %v", err)
		}
	}()

	group, gctx := errgroup.WithContext(ctx)
	if metrics {
		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Server.GetMetricsPort()),
			Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		}
		group.Go(func() error {
			logger.Info("📈 Prometheus /metrics доступен по адресу %s", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		group.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	group.Go(func() error {
		return loop(gctx, g, gpu, frames, fps)
	})
	if err := group.Wait(); err != nil && !errors.Is(err, errFramesDone) {
		return err
	}
	return nil
}

// errFramesDone останавливает группу, когда отработано заданное число кадров
var errFramesDone = errors.New("frame limit reached")

func loop(ctx context.Context, g *game.Game, gpu *render.RecordingGPU, frames, fps int) error {
	logger := logging.GetGameLogger()
	if fps <= 0 {
		fps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	logger.Info("🎮 Запуск цикла: %d fps, кадров %d", fps, frames)
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			gpu.ResetFrame()
			g.Frame(now)
			if n := g.Frames(); n%uint64(fps) == 0 {
				st := gpu.Stats()
				p := g.Player().Position
				logger.Debug("кадр %d, тиков %d: нарисовано %d индексов за %d вызовов, игрок (%.2f, %.2f, %.2f)",
					n, g.Ticks(), st.DrawnIndices, st.DrawCalls, p.X, p.Y, p.Z)
			}
			if frames > 0 && g.Frames() >= uint64(frames) {
				return errFramesDone
			}
		}
	}
}
