// Package main is the entry point for the model viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/t0yman/opengl-model-viewer/internal/config"
	"github.com/t0yman/opengl-model-viewer/internal/logger"
	"github.com/t0yman/opengl-model-viewer/internal/viewer"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== OpenGL Model Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if config.SaveRequested() {
		path, err := cfg.Save()
		if err != nil {
			logger.Error("failed to save config", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("config saved", zap.String("path", path))
		return
	}

	// Create and run the viewer
	v, err := viewer.New(cfg)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	// Run the frame loop
	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
