// cmd/fovdetect/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagConfigPath   string
	flagMode         string
	flagInterval     float64
	flagHeadsetAware bool
	flagViewerFOV    float64
	flagImmersive    bool
	flagSway         float64
	flagJitter       float64
	flagSeed         int64
	flagLogLevel     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fovdetect",
		Short: "Empirical vertical field-of-view detector",
		Long: `fovdetect sweeps a probe in front of a simulated viewer's head from a wide
angle toward a narrow one and reports the first angle at which the probe is
rendered. That angle is the viewer's vertical field of view.

Without a subcommand it opens the window host.`,
		SilenceUsage: true,
		RunE:         runWindow,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfigPath, "config", "", "Directory containing config.yaml")
	pf.StringVar(&flagMode, "mode", "", "Detect mode: onStart, interval, intervalDesktop, manually")
	pf.Float64Var(&flagInterval, "interval", 0, "Re-arm interval in seconds (clamped to 3-60)")
	pf.BoolVar(&flagHeadsetAware, "headset-aware", false, "Sweep from 120° instead of 100°")
	pf.Float64Var(&flagViewerFOV, "viewer-fov", 0, "Simulated viewer vertical FOV in degrees")
	pf.BoolVar(&flagImmersive, "immersive", false, "Simulated viewer wears a headset")
	pf.Float64Var(&flagSway, "sway", 0, "Head sway amplitude in degrees")
	pf.Float64Var(&flagJitter, "jitter", 0, "Per-frame head tremor amplitude in degrees")
	pf.Int64Var(&flagSeed, "seed", 0, "Seed for head tremor (0 = time based)")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(newWindowCmd(), newTUICmd(), newRunCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
