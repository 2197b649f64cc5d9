package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-spectra/algorithms/windowing"
	"github.com/RyanBlaney/sonido-spectra/transcode"
)

type windowOutput struct {
	Type         windowing.Type `json:"type" yaml:"type"`
	Size         int            `json:"size" yaml:"size"`
	Coefficients []float64      `json:"coefficients" yaml:"coefficients"`
}

func newWindowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "window <kind> <n>",
		Short: "Print symmetric window coefficients",
		Long: `Print n coefficients of a rectangular, hann, hamming or blackman window.
Unknown kinds fall back to rectangular.`,
		Example: `  spectra window hann 8
  spectra window blackman 64 -o csv`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			size, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid window length %q: %w", args[1], err)
			}

			windowType := windowing.ParseType(args[0])
			out := windowOutput{
				Type:         windowType,
				Size:         max(size, 0),
				Coefficients: windowing.Generate(windowType, size),
			}

			return writeOutput(cmd.OutOrStdout(), a.cfg.OutputFormat, out, func(w io.Writer) error {
				return transcode.WriteColumnCSV(w, "coefficient", out.Coefficients)
			})
		},
	}
}
