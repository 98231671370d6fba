package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"go-fov-detector/internal/app"
	"go-fov-detector/internal/sim"
	"go-fov-detector/internal/tui"
)

var (
	flagSkipMenu  bool
	flagSweeps    int
	flagMaxFrames int
)

func newWindowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "window",
		Short: "Open the window host (the screen is the viewer's view)",
		RunE:  runWindow,
	}
	cmd.Flags().BoolVar(&flagSkipMenu, "skip-menu", false, "Start detecting immediately")
	return cmd
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	return app.Run(cfg, log, flagSkipMenu)
}

func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the detector in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			// Логи в терминал сломают интерфейс
			switch cfg.Logging.OutputPath {
			case "", "stdout", "stderr":
				cfg.Logging.Level = "error"
				cfg.Logging.OutputPath = "stderr"
			}
			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			model, err := tui.New(cfg, log)
			if err != nil {
				return err
			}
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithFPS(cfg.Host.FPS))
			_, err = p.Run()
			return err
		},
	}
}

var (
	styleOK   = lipgloss.NewStyle().Foreground(lipgloss.Color("#32CD32")).Bold(true)
	styleFail = lipgloss.NewStyle().Foreground(lipgloss.Color("#DC3C3C")).Bold(true)
	styleDim  = lipgloss.NewStyle().Foreground(lipgloss.Color("#667788"))
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run sweeps headlessly on simulated time and print the results",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if flagSweeps < 1 {
				return fmt.Errorf("--sweeps must be at least 1, got %d", flagSweeps)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			host, err := sim.NewHost(cfg, log)
			if err != nil {
				return err
			}
			defer host.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			maxFrames := cfg.Host.MaxFrames
			if cmd.Flags().Changed("max-frames") {
				maxFrames = flagMaxFrames
			}

			host.Start()
			if !host.Detector.Detecting() {
				// Manually: запускаем одну попытку сами
				host.Detector.StartDetection()
			}
			results, err := host.RunSweeps(ctx, flagSweeps, maxFrames)
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			log.Debug("headless run finished",
				zap.Int("frames", host.Frames()), zap.Int("sweeps", len(results)))

			out := cmd.OutOrStdout()
			for i, r := range results {
				if r.Success {
					fmt.Fprintf(out, "sweep %d: %s\n", i+1, styleOK.Render(fmt.Sprintf("%d°", r.FOV)))
				} else {
					fmt.Fprintf(out, "sweep %d: %s\n", i+1, styleFail.Render("failed"))
				}
			}
			fmt.Fprintln(out, styleDim.Render(fmt.Sprintf("%d frames, %v simulated", host.Frames(), host.Scheduler.Now())))
			if len(results) == 0 {
				return fmt.Errorf("no sweep finished within %d frames", maxFrames)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&flagSweeps, "sweeps", 1, "Number of sweeps to wait for")
	cmd.Flags().IntVar(&flagMaxFrames, "max-frames", 0, "Frame budget (defaults to host.maxFrames)")
	return cmd
}
