package main

import (
	"errors"

	"github.com/RyanBlaney/sonido-spectra/logging"
	"github.com/RyanBlaney/sonido-spectra/transcode"
)

var errNoInput = errors.New("--input is required")

// loadSignal decodes path; single-column input uses the configured
// sample rate
func (a *app) loadSignal(path string) (*transcode.AudioData, error) {
	if path == "" {
		return nil, errNoInput
	}

	decoder := transcode.NewDecoder(&transcode.DecoderConfig{
		FallbackSampleRate: a.cfg.Analysis.SampleRate,
	})

	audio, err := decoder.DecodeFile(path)
	if err != nil {
		return nil, err
	}

	a.logger.Info("Loaded signal", logging.Fields{
		"source":      audio.Source,
		"samples":     audio.NumSamples(),
		"sample_rate": audio.SampleRate,
		"duration":    audio.Duration.String(),
	})

	return audio, nil
}
