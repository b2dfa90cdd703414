package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/younwookim/spinner/internal/application/controller"
	"github.com/younwookim/spinner/internal/application/game"
	"github.com/younwookim/spinner/internal/application/replay"
	"github.com/younwookim/spinner/internal/application/scene/spinning"
	"github.com/younwookim/spinner/internal/infrastructure/logger"
	"github.com/younwookim/spinner/internal/infrastructure/metrics"
	"go.uber.org/zap"
)

func main() {
	// Parse command line flags
	confDir := flag.String("conf", "", "Config directory containing game.yaml (default: embedded)")
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Play a recording headless and print the result")
	metricsFlag := flag.String("metrics", "", "Write prometheus metrics to this file on exit")
	flag.Parse()

	cfg, err := loadConfig(*confDir)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log, logger.Options{App: "spinner"})
	defer func() { _ = log.Sync() }()

	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	if err != nil {
		log.Fatal("failed to create metrics", zap.Error(err))
	}

	if *replayFlag != "" {
		data, err := replay.LoadReplay(*replayFlag)
		if err != nil {
			log.Fatal("failed to load replay", zap.Error(err))
		}
		summary, err := runReplay(cfg, data, log, m)
		if err != nil {
			log.Fatal("replay failed", zap.Error(err))
		}
		log.Info("replay finished",
			zap.Int("frames", summary.Frames),
			zap.Stringer("state", summary.State),
			zap.Int("successfulSpins", summary.SuccessfulSpins),
			zap.Int("picks", summary.Picks),
			zap.Int("booms", summary.Booms),
			zap.Any("events", summary.Events))
		writeMetrics(*metricsFlag, reg, log)
		return
	}

	sc := spinning.New(cfg, controller.NewRegistry(log), spinning.KeyboardInput{}, log,
		spinning.WithRecording(*recordFlag),
		spinning.WithMetrics(m))
	g := game.New(sc, cfg.Display)

	// Set up ebiten
	ebiten.SetWindowSize(cfg.Display.ScreenWidth*cfg.Display.Scale, cfg.Display.ScreenHeight*cfg.Display.Scale)
	ebiten.SetWindowTitle(cfg.Display.Title)
	ebiten.SetTPS(cfg.Display.Framerate)

	// Run game
	runErr := ebiten.RunGame(g)
	g.Close()
	writeMetrics(*metricsFlag, reg, log)
	if runErr != nil {
		log.Fatal("game stopped", zap.Error(runErr))
	}
}

func writeMetrics(path string, reg *prometheus.Registry, log *zap.Logger) {
	if path == "" {
		return
	}
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		log.Error("failed to write metrics", zap.String("path", path), zap.Error(err))
		return
	}
	log.Info("metrics written", zap.String("path", path))
}
