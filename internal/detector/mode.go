package detector

import (
	"fmt"

	"go-fov-detector/internal/config"
)

// Mode decides when sweeps start and whether they re-arm.
type Mode int

const (
	// OnStart runs one sweep when the detector starts.
	OnStart Mode = iota
	// Interval re-arms after every sweep.
	Interval
	// IntervalDesktop re-arms only while the viewer is not in a headset.
	IntervalDesktop
	// Manually never starts on its own.
	Manually
)

var modeNames = map[Mode]string{
	OnStart:         config.ModeOnStart,
	Interval:        config.ModeInterval,
	IntervalDesktop: config.ModeIntervalDesktop,
	Manually:        config.ModeManually,
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode maps a config name to a Mode.
func ParseMode(name string) (Mode, error) {
	for m, n := range modeNames {
		if n == name {
			return m, nil
		}
	}
	return OnStart, fmt.Errorf("unknown detect mode %q", name)
}
