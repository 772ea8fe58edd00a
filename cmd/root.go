// Package cmd implements the spincam command line.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/smazurov/spincam/internal/config"
	"github.com/smazurov/spincam/internal/devices"
	"github.com/smazurov/spincam/internal/events"
	"github.com/smazurov/spincam/internal/logging"
	"github.com/smazurov/spincam/pkg/spinnaker"
)

// NewRootCmd creates the spincam command with all subcommands attached.
func NewRootCmd() (*cobra.Command, error) {
	opts := &Options{}

	root := &cobra.Command{
		Use:           "spincam",
		Short:         "Frame acquisition for FLIR Spinnaker cameras",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadConfig(opts, cmd); err != nil {
				return err
			}
			logging.Initialize(opts.loggingConfig())
			if opts.SpinnakerLibrary != "" {
				spinnaker.SetLibraryPath(opts.SpinnakerLibrary)
			}
			logging.GetLogger("config").Debug("Configuration loaded", "config", opts.Config)
			return nil
		},
	}
	if err := config.BindFlags(root.PersistentFlags(), opts); err != nil {
		return nil, err
	}

	grab, err := newGrabCmd(opts)
	if err != nil {
		return nil, err
	}
	root.AddCommand(newListCmd(opts), newParamsCmd(opts), grab, newVersionCmd())
	return root, nil
}

// Execute runs the command line.
func Execute() error {
	root, err := NewRootCmd()
	if err != nil {
		return err
	}
	return root.Execute()
}

func newDevice(opts *Options, bus *events.Bus) *devices.Spinnaker {
	return devices.New(&devices.Options{
		Bus:                 bus,
		FrameTimeout:        opts.FrameTimeout,
		ExtraBoolParameters: opts.ExtraBoolParameters,
	})
}
