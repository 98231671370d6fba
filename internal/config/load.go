package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"go-fov-detector/internal/utils"
)

// Config holds all configuration sections.
type Config struct {
	Detector DetectorConfig `mapstructure:"detector"`
	Viewer   ViewerConfig   `mapstructure:"viewer"`
	Probe    ProbeConfig    `mapstructure:"probe"`
	Host     HostConfig     `mapstructure:"host"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// DetectorConfig configures when sweeps run and how far the probe sits.
type DetectorConfig struct {
	Mode            string  `mapstructure:"mode"`
	IntervalSeconds float64 `mapstructure:"intervalSeconds"`
	// HeadsetAware raises the sweep ceiling to FOVMaxHeadset.
	HeadsetAware   bool    `mapstructure:"headsetAware"`
	DetectDistance float64 `mapstructure:"detectDistance"`
}

// ViewerConfig describes the simulated viewer used by the bundled hosts.
type ViewerConfig struct {
	VerticalFOV   float64 `mapstructure:"verticalFOV"` // degrees
	Aspect        float64 `mapstructure:"aspect"`
	Near          float64 `mapstructure:"near"`
	Far           float64 `mapstructure:"far"`
	EyeHeight     float64 `mapstructure:"eyeHeight"`
	Immersive     bool    `mapstructure:"immersive"`
	TrackingValid bool    `mapstructure:"trackingValid"`
	SwayDegrees   float64 `mapstructure:"swayDegrees"`
	SwayPeriod    float64 `mapstructure:"swayPeriod"` // seconds
	JitterDegrees float64 `mapstructure:"jitterDegrees"`
	Seed          int64   `mapstructure:"seed"` // 0 = time based
}

// ProbeConfig holds probe geometry.
type ProbeConfig struct {
	Radius float64 `mapstructure:"radius"`
}

// HostConfig holds frame loop settings.
type HostConfig struct {
	FPS       int `mapstructure:"fps"`
	MaxFrames int `mapstructure:"maxFrames"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"outputPath"`
}

// Interval returns the re-arm delay clamped to [MinDetectInterval, MaxDetectInterval].
func (d DetectorConfig) Interval() time.Duration {
	return ClampInterval(d.IntervalSeconds)
}

// ClampInterval converts seconds to a duration within the allowed range.
func ClampInterval(seconds float64) time.Duration {
	s := utils.Clamp(seconds, MinDetectInterval, MaxDetectInterval)
	return time.Duration(s * float64(time.Second))
}

// MaxAngle returns the sweep ceiling for this configuration.
func (d DetectorConfig) MaxAngle() int {
	if d.HeadsetAware {
		return FOVMaxHeadset
	}
	return FOVMax
}

// FrameDelta returns the duration of one host frame.
func (h HostConfig) FrameDelta() time.Duration {
	if h.FPS <= 0 {
		return time.Second / TargetFPS
	}
	return time.Second / time.Duration(h.FPS)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("detector.mode", ModeOnStart)
	v.SetDefault("detector.intervalSeconds", DefaultDetectInterval)
	v.SetDefault("detector.headsetAware", false)
	v.SetDefault("detector.detectDistance", DetectDistance)

	v.SetDefault("viewer.verticalFOV", DefaultViewerFOV)
	v.SetDefault("viewer.aspect", DefaultViewerAspect)
	v.SetDefault("viewer.near", DefaultNearClip)
	v.SetDefault("viewer.far", DefaultFarClip)
	v.SetDefault("viewer.eyeHeight", DefaultEyeHeight)
	v.SetDefault("viewer.immersive", false)
	v.SetDefault("viewer.trackingValid", true)
	v.SetDefault("viewer.swayDegrees", 0.0)
	v.SetDefault("viewer.swayPeriod", 4.0)
	v.SetDefault("viewer.jitterDegrees", 0.0)
	v.SetDefault("viewer.seed", 0)

	v.SetDefault("probe.radius", 0.0)

	v.SetDefault("host.fps", TargetFPS)
	v.SetDefault("host.maxFrames", 600)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.outputPath", "stderr")
}

// Load reads configuration from FOVDETECT_* environment variables,
// config.yaml and defaults.
func Load() (*Config, error) {
	return LoadWithPath("")
}

// LoadWithPath reads configuration from the specified directory or the
// default locations (current directory, /etc/fovdetect/).
func LoadWithPath(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("FOVDETECT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/fovdetect/")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks ranges and enum values. Out-of-range intervals are not an
// error, they are clamped by DetectorConfig.Interval.
func Validate(cfg *Config) error {
	var errs []string

	switch cfg.Detector.Mode {
	case ModeOnStart, ModeInterval, ModeIntervalDesktop, ModeManually:
	default:
		errs = append(errs, fmt.Sprintf("detector.mode must be one of: %s, %s, %s, %s",
			ModeOnStart, ModeInterval, ModeIntervalDesktop, ModeManually))
	}
	if cfg.Detector.DetectDistance <= 0 {
		errs = append(errs, "detector.detectDistance must be positive")
	}

	if cfg.Viewer.VerticalFOV <= 0 || cfg.Viewer.VerticalFOV >= 180 {
		errs = append(errs, "viewer.verticalFOV must be between 0 and 180")
	}
	if cfg.Viewer.JitterDegrees < 0 {
		errs = append(errs, "viewer.jitterDegrees must not be negative")
	}
	if cfg.Viewer.Aspect <= 0 {
		errs = append(errs, "viewer.aspect must be positive")
	}
	if cfg.Viewer.Near <= 0 || cfg.Viewer.Far <= cfg.Viewer.Near {
		errs = append(errs, "viewer.near must be positive and less than viewer.far")
	}
	if cfg.Probe.Radius < 0 {
		errs = append(errs, "probe.radius must not be negative")
	}
	if cfg.Host.FPS <= 0 {
		errs = append(errs, "host.fps must be positive")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(cfg.Logging.Level)] {
		errs = append(errs, "logging.level must be one of: debug, info, warn, error")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}
