package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/spf13/cobra"

	"github.com/smazurov/spincam/internal/api"
	"github.com/smazurov/spincam/internal/capture"
	"github.com/smazurov/spincam/internal/config"
	"github.com/smazurov/spincam/internal/devices"
	"github.com/smazurov/spincam/internal/events"
	"github.com/smazurov/spincam/internal/logging"
	"github.com/smazurov/spincam/internal/metrics/exporters"
	"github.com/smazurov/spincam/pkg/machinevision"
)

// statusEvery is how many frames pass between systemd status updates.
const statusEvery = 100

func newGrabCmd(opts *Options) (*cobra.Command, error) {
	grabOpts := &GrabOptions{}

	cmd := &cobra.Command{
		Use:   "grab",
		Short: "Capture frames from the camera",
		Long: `Opens the selected camera, starts continuous acquisition and writes every frame as PNG. ` +
			`Frame timeouts and incomplete frames are retried; other errors and SIGINT/SIGTERM stop the capture.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadConfigFrom(grabOpts, opts.Config, cmd); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runGrab(ctx, stop, opts, grabOpts)
		},
	}
	if err := config.BindFlags(cmd.Flags(), grabOpts); err != nil {
		return nil, err
	}
	return cmd, nil
}

func runGrab(ctx context.Context, cancel context.CancelFunc, opts *Options, grabOpts *GrabOptions) error {
	logger := logging.GetLogger("main")

	bus := events.New()
	unsubscribe := bus.Subscribe(func(e events.CaptureStateChangedEvent) {
		if e.Capturing {
			notify(logger, daemon.SdNotifyReady)
		}
	})
	defer unsubscribe()

	dev := newDevice(opts, bus)
	spec, err := dev.Open(opts.settings())
	if err != nil {
		return fmt.Errorf("open camera: %w", err)
	}
	defer func() {
		if err := dev.Close(); err != nil {
			logger.Warn("Failed to close camera", "error", err)
		}
	}()
	logger.Info("Camera ready",
		"manufacturer", spec.Manufacturer,
		"model", spec.Model,
		"serial", spec.Serial,
		"width", spec.Width,
		"height", spec.Height)

	if grabOpts.Presets {
		if err := applyPresets(dev, opts.Config, logger); err != nil {
			return err
		}
	}
	if grabOpts.Flip {
		if err := dev.SetParameter(devices.FlipParameterName, true); err != nil {
			return fmt.Errorf("enable flip: %w", err)
		}
	}

	if grabOpts.Watch {
		watcher := config.NewConfigWatcher(opts.Config, config.LoadParameterPresets, logging.GetLogger("config"))
		watcher.OnReload(func(presets config.Presets) {
			logging.SetLevels(config.LoadLoggingConfig(opts.Config))
			if err := config.ApplyParameterPresets(dev, presets); err != nil {
				logger.Warn("Parameter presets partially applied", "error", err)
				return
			}
			logger.Info("Parameter presets reloaded", "count", len(presets))
		})
		if err := watcher.Start(ctx); err != nil {
			return fmt.Errorf("watch %s: %w", opts.Config, err)
		}
		defer func() {
			if err := watcher.Stop(); err != nil {
				logger.Warn("Failed to stop config watcher", "error", err)
			}
		}()
	}

	var sinks []capture.Sink
	if grabOpts.Output != "" {
		pngSink, err := capture.NewPNGSink(grabOpts.Output, grabOpts.Prefix)
		if err != nil {
			return err
		}
		sinks = append(sinks, pngSink)
	}

	if grabOpts.Listen != "" {
		snapshot := &capture.Snapshot{}
		sinks = append(sinks, snapshot)

		server := api.NewServer(api.Options{
			Device:         dev,
			Snapshot:       snapshot,
			Bus:            bus,
			MetricsHandler: exporters.HTTPHandler(),
		})
		go func() {
			if err := server.Start(grabOpts.Listen); err != nil {
				logger.Error("API server failed", "error", err)
				cancel()
			}
		}()
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := server.Stop(shutdownCtx); err != nil {
				logger.Warn("Failed to stop API server", "error", err)
			}
		}()
	}

	defer notify(logger, daemon.SdNotifyStopping)

	stats, err := capture.Run(ctx, dev, capture.Tee(sinks...), capture.Options{
		Frames:     grabOpts.Count,
		MaxRetries: grabOpts.MaxRetries,
		OnFrame: func(n int) {
			if n%statusEvery == 0 {
				notify(logger, fmt.Sprintf("STATUS=Captured %d frames", n))
			}
		},
	})
	logger.Info("Grab finished",
		"delivered", stats.Delivered,
		"timeouts", stats.Timeouts,
		"incomplete", stats.Incomplete,
		"skipped", stats.Skipped)
	return err
}

// applyPresets applies the [parameters] table of path. A missing file or an
// empty table is not an error; presets the camera rejects are logged.
func applyPresets(dev *devices.Spinnaker, path string, logger *slog.Logger) error {
	presets, err := config.LoadParameterPresets(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug("No config file, skipping parameter presets", "config", path)
		return nil
	}
	if err != nil {
		return err
	}
	if len(presets) == 0 {
		return nil
	}

	if err := config.ApplyParameterPresets(dev, presets); err != nil {
		logger.Warn("Parameter presets partially applied", "error", err)
		return nil
	}
	logger.Info("Parameter presets applied", "count", len(presets), "parameters", presetNames(dev.Parameters(), presets))
	return nil
}

// presetNames lists the preset names in parameter order.
func presetNames(params []machinevision.Parameter, presets config.Presets) []string {
	var names []string
	for _, p := range params {
		if _, ok := presets[p.Name()]; ok {
			names = append(names, p.Name())
		}
	}
	return names
}

// notify sends state to systemd. Outside a notify service it does nothing.
func notify(logger *slog.Logger, state string) {
	if _, err := daemon.SdNotify(false, state); err != nil {
		logger.Debug("sd_notify failed", "state", state, "error", err)
	}
}
