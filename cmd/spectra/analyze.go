package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-spectra/analyzers"
	"github.com/RyanBlaney/sonido-spectra/config"
	"github.com/RyanBlaney/sonido-spectra/logging"
	"github.com/RyanBlaney/sonido-spectra/transcode"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	var input string
	defaults := config.DefaultAnalysisConfig()

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Compute the one-sided spectrum of a signal",
		Long: `Filter (optional), window and transform the first --window-size samples
of the input. Shorter signals are zero-padded.`,
		Example: `  spectra analyze --input tone.csv
  spectra analyze -i speech.csv --window hamming --window-size 4096 -o csv
  spectra analyze -i speech.csv --filter bandpass --cutoff 300,3400`,
		Args: cobra.NoArgs,
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

			result, err := analyzer.Analyze(audio.Samples)
			if err != nil {
				return err
			}

			_, peakHz := result.Spectrum.Peak()
			a.logger.Info("Analysis completed", logging.Fields{
				"bins":    result.Spectrum.Bins(),
				"peak_hz": peakHz,
			})

			return writeOutput(cmd.OutOrStdout(), a.cfg.OutputFormat, result, func(w io.Writer) error {
				return transcode.WriteSpectrumCSV(w, result.Spectrum)
			})
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "input signal (.csv, .f64, .raw)")
	cmd.Flags().Float64("sample-rate", defaults.SampleRate, "sample rate (Hz) for single-column input")
	cmd.Flags().String("window", defaults.WindowType, "window (rectangular, hann, hamming, blackman)")
	cmd.Flags().Int("window-size", defaults.WindowSize, "samples analysed")
	cmd.Flags().String("filter", "", "FIR pre-filter (lowpass, highpass, bandpass)")
	cmd.Flags().StringSlice("cutoff", nil, "filter cutoff frequencies (Hz)")

	return cmd
}
