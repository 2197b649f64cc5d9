package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-spectra/algorithms/spectral"
	"github.com/RyanBlaney/sonido-spectra/analyzers"
	"github.com/RyanBlaney/sonido-spectra/config"
	"github.com/RyanBlaney/sonido-spectra/transcode"
)

type roundTripOutput struct {
	Source     string  `json:"source" yaml:"source"`
	Samples    int     `json:"samples" yaml:"samples"`
	FFTSize    int     `json:"fft_size" yaml:"fft_size"`
	SampleRate float64 `json:"sample_rate" yaml:"sample_rate"`
	MaxError   float64 `json:"max_error" yaml:"max_error"` // Between peak normalized signals
}

func newRoundTripCmd(a *app) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "roundtrip",
		Short: "Check forward + inverse FFT reconstruction of a signal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			audio, err := a.loadSignal(input)
			if err != nil {
				return err
			}

			cfg := a.cfg.Analysis
			cfg.SampleRate = audio.SampleRate

			analyzer, err := analyzers.NewSpectrumAnalyzer(cfg)
			if err != nil {
				return err
			}

			reconstructed, err := analyzer.RoundTrip(audio.Samples)
			if err != nil {
				return err
			}

			maxErr, err := analyzer.RoundTripError(audio.Samples)
			if err != nil {
				return err
			}

			out := roundTripOutput{
				Source:     audio.Source,
				Samples:    audio.NumSamples(),
				FFTSize:    spectral.NextPowerOfTwo(audio.NumSamples()),
				SampleRate: audio.SampleRate,
				MaxError:   maxErr,
			}

			return writeOutput(cmd.OutOrStdout(), a.cfg.OutputFormat, out, func(w io.Writer) error {
				return transcode.WriteColumnCSV(w, "reconstructed", reconstructed)
			})
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "input signal (.csv, .f64, .raw)")
	cmd.Flags().Float64("sample-rate", config.DefaultAnalysisConfig().SampleRate, "sample rate (Hz) for single-column input")

	return cmd
}
