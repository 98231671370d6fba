// internal/config/config.go
package config

import "image/color"

const (
	ScreenWidth  = 960
	ScreenHeight = 540
	MaxDeltaTime = 0.06
	TargetFPS    = 60

	// Пределы перебора угла
	FOVMin         = 50
	FOVMax         = 100
	FOVMaxHeadset  = 120
	DetectDistance = 0.2

	MinDetectInterval     = 3.0
	MaxDetectInterval     = 60.0
	DefaultDetectInterval = 10.0

	DefaultViewerFOV    = 70.0
	DefaultViewerAspect = 16.0 / 9.0
	DefaultNearClip     = 0.01
	DefaultFarClip      = 1000.0
	DefaultEyeHeight    = 1.6

	ProbeScreenSize = 6.0 // pixels
	TextOffsetX     = 12
	TextOffsetY     = 20
)

// Detect mode names as they appear in config files and flags.
const (
	ModeOnStart         = "onStart"
	ModeInterval        = "interval"
	ModeIntervalDesktop = "intervalDesktop"
	ModeManually        = "manually"
)

var (
	BackgroundColor = color.RGBA{20, 20, 30, 255}
	HorizonColor    = color.RGBA{70, 100, 120, 220}
	ProbeColor      = color.RGBA{255, 215, 0, 255}
	TextLightColor  = color.RGBA{240, 240, 240, 255}
	DetectingColor  = color.RGBA{70, 130, 180, 220}
	FailedColor     = color.RGBA{220, 60, 60, 220}
	DetectedColor   = color.RGBA{50, 205, 50, 255}
)
