package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-fov-detector/internal/config"
	"go-fov-detector/internal/logger"
)

// loadConfig reads config.yaml/env and applies explicitly set flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadWithPath(flagConfigPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("mode") {
		cfg.Detector.Mode = flagMode
	}
	if flags.Changed("interval") {
		cfg.Detector.IntervalSeconds = flagInterval
	}
	if flags.Changed("headset-aware") {
		cfg.Detector.HeadsetAware = flagHeadsetAware
	}
	if flags.Changed("viewer-fov") {
		cfg.Viewer.VerticalFOV = flagViewerFOV
	}
	if flags.Changed("immersive") {
		cfg.Viewer.Immersive = flagImmersive
	}
	if flags.Changed("sway") {
		cfg.Viewer.SwayDegrees = flagSway
	}
	if flags.Changed("jitter") {
		cfg.Viewer.JitterDegrees = flagJitter
	}
	if flags.Changed("seed") {
		cfg.Viewer.Seed = flagSeed
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = flagLogLevel
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*logger.Logger, error) {
	log, err := logger.NewLogger(logger.LoggingConfig(cfg.Logging))
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	logger.SetDefault(log)
	return log, nil
}
