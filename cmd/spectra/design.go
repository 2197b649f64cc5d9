package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-spectra/algorithms/filters"
	"github.com/RyanBlaney/sonido-spectra/config"
	"github.com/RyanBlaney/sonido-spectra/transcode"
)

type responsePoint struct {
	Frequency float64 `json:"frequency" yaml:"frequency"`
	Magnitude float64 `json:"magnitude" yaml:"magnitude"`
	Phase     float64 `json:"phase" yaml:"phase"`
}

type designOutput struct {
	Spec     filters.FIRSpec `json:"spec" yaml:"spec"`
	Taps     []float64       `json:"taps" yaml:"taps"`
	Response []responsePoint `json:"response,omitempty" yaml:"response,omitempty"`
}

func newDesignCmd(a *app) *cobra.Command {
	var (
		numTaps    int
		responseAt []float64
	)

	cmd := &cobra.Command{
		Use:   "design <lowpass|highpass|bandpass>",
		Short: "Design windowed-sinc FIR filter taps",
		Example: `  spectra design lowpass --cutoff 1000 --sample-rate 8000 --taps 101
  spectra design bandpass --cutoff 300,3400 --taps 401 --response-at 100,1000,3800`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			firType := filters.ParseFIRType(args[0])
			if firType == filters.FIRNone {
				return fmt.Errorf("%q: %w", args[0], filters.ErrUnknownFilter)
			}

			filter, err := filters.NewFIRFilter(filters.FIRSpec{
				Type:       firType,
				Cutoffs:    a.cfg.Analysis.Filter.Cutoffs,
				SampleRate: a.cfg.Analysis.SampleRate,
				NumTaps:    numTaps,
			})
			if err != nil {
				return err
			}

			out := designOutput{
				Spec: filter.GetSpec(),
				Taps: filter.GetCoefficients(),
			}
			for _, f := range responseAt {
				mag, phase := filter.GetFrequencyResponse(f)
				out.Response = append(out.Response, responsePoint{Frequency: f, Magnitude: mag, Phase: phase})
			}

			return writeOutput(cmd.OutOrStdout(), a.cfg.OutputFormat, out, func(w io.Writer) error {
				return transcode.WriteColumnCSV(w, "coefficient", out.Taps)
			})
		},
	}

	cmd.Flags().StringSlice("cutoff", nil, "cutoff frequencies (Hz); bandpass takes low,high")
	cmd.Flags().Float64("sample-rate", config.DefaultAnalysisConfig().SampleRate, "sample rate (Hz)")
	cmd.Flags().IntVar(&numTaps, "taps", filters.DefaultNumTaps, "number of taps")
	cmd.Flags().Float64SliceVar(&responseAt, "response-at", nil, "frequencies (Hz) at which to report the response")

	return cmd
}
