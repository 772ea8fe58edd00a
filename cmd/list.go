package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/smazurov/spincam/pkg/machinevision"
)

func newListCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List connected cameras",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dev := newDevice(opts, nil)
			return writeDeviceList(cmd.OutOrStdout(), dev.ListDevices())
		},
	}
}

func writeDeviceList(w io.Writer, listed []machinevision.ListedDevice) error {
	if len(listed) == 0 {
		_, err := fmt.Fprintln(w, "No Spinnaker cameras found.")
		return err
	}
	for i, d := range listed {
		line := fmt.Sprintf("%d: %s, %s", i, d.Manufacturer, d.Model)
		if d.Settings != nil && d.Settings.SerialNumber != "" {
			line += " (serial " + d.Settings.SerialNumber + ")"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
