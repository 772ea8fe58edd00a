package cmd

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/smazurov/spincam/internal/logging"
	"github.com/smazurov/spincam/pkg/machinevision"
)

func newParamsCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "params",
		Short: "Open the camera and print its parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dev := newDevice(opts, nil)
			if _, err := dev.Open(opts.settings()); err != nil {
				return fmt.Errorf("open camera: %w", err)
			}
			defer func() {
				if err := dev.Close(); err != nil {
					logging.GetLogger("main").Warn("Failed to close camera", "error", err)
				}
			}()
			return writeParameterTable(cmd.OutOrStdout(), dev.Parameters())
		},
	}
}

func writeParameterTable(w io.Writer, params []machinevision.Parameter) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tVALUE\tRANGE\tUNIT")

	for _, p := range params {
		value, valueRange := "-", "-"
		switch fp := p.(type) {
		case *machinevision.FloatParameter:
			v, err := fp.Get()
			minimum, maximum, rangeErr := fp.Range()
			if err != nil || rangeErr != nil {
				v, minimum, maximum = fp.Cached()
			}
			value = formatFloat(v)
			valueRange = formatFloat(minimum) + " .. " + formatFloat(maximum)
		case *machinevision.BoolParameter:
			v, err := fp.Get()
			if err != nil {
				v = fp.Cached()
			}
			value = strconv.FormatBool(v)
		}

		unit := p.Unit()
		if unit == "" {
			unit = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Name(), value, valueRange, unit)
	}
	return tw.Flush()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
