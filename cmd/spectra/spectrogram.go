package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-spectra/analyzers"
	"github.com/RyanBlaney/sonido-spectra/config"
	"github.com/RyanBlaney/sonido-spectra/logging"
	"github.com/RyanBlaney/sonido-spectra/transcode"
)

func newSpectrogramCmd(a *app) *cobra.Command {
	var input string
	defaults := config.DefaultAnalysisConfig()

	cmd := &cobra.Command{
		Use:     "spectrogram",
		Short:   "Compute a short-time Fourier transform magnitude matrix",
		Example: `  spectra spectrogram --input speech.csv --window-size 1024 --hop 256 -o csv`,
		Args:    cobra.NoArgs,
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

			result, err := analyzer.Spectrogram(audio.Samples)
			if err != nil {
				return err
			}

			a.logger.Info("Spectrogram completed", logging.Fields{
				"frames": result.TimeFrames,
				"bins":   result.FreqBins,
			})

			return writeOutput(cmd.OutOrStdout(), a.cfg.OutputFormat, result, func(w io.Writer) error {
				return transcode.WriteSpectrogramCSV(w, result)
			})
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "input signal (.csv, .f64, .raw)")
	cmd.Flags().Float64("sample-rate", defaults.SampleRate, "sample rate (Hz) for single-column input")
	cmd.Flags().String("window", defaults.WindowType, "window (rectangular, hann, hamming, blackman)")
	cmd.Flags().Int("window-size", defaults.WindowSize, "samples per frame")
	cmd.Flags().Int("hop", defaults.HopSize, "samples between frame starts")
	cmd.Flags().String("filter", "", "FIR pre-filter (lowpass, highpass, bandpass)")
	cmd.Flags().StringSlice("cutoff", nil, "filter cutoff frequencies (Hz)")

	return cmd
}
