package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/multierr"
)

// Window size bounds accepted by the analysis pipeline
const (
	MinWindowSize = 256
	MaxWindowSize = 8192
)

// Config represents the application configuration
type Config struct {
	LogLevel     string         `mapstructure:"log_level" json:"log_level" yaml:"log_level"`
	OutputFormat string         `mapstructure:"output_format" json:"output_format" yaml:"output_format"` // "json", "yaml", "csv"
	Analysis     AnalysisConfig `mapstructure:"analysis" json:"analysis" yaml:"analysis"`
}

// AnalysisConfig controls one spectrum analysis
type AnalysisConfig struct {
	SampleRate float64      `mapstructure:"sample_rate" json:"sample_rate" yaml:"sample_rate"` // Hz
	WindowSize int          `mapstructure:"window_size" json:"window_size" yaml:"window_size"` // Samples analysed
	HopSize    int          `mapstructure:"hop_size" json:"hop_size" yaml:"hop_size"`          // Spectrogram hop
	WindowType string       `mapstructure:"window_type" json:"window_type" yaml:"window_type"` // "rectangular", "hann", "hamming", "blackman"
	Filter     FilterConfig `mapstructure:"filter" json:"filter" yaml:"filter"`
}

// FilterConfig selects the optional FIR pre-filter
type FilterConfig struct {
	Type           string    `mapstructure:"type" json:"type" yaml:"type"`                               // "", "lowpass", "highpass", "bandpass"
	Cutoffs        []float64 `mapstructure:"cutoffs" json:"cutoffs" yaml:"cutoffs"`                      // Hz
	SingleEdgeTaps int       `mapstructure:"single_edge_taps" json:"single_edge_taps" yaml:"single_edge_taps"` // Lowpass / highpass
	BandpassTaps   int       `mapstructure:"bandpass_taps" json:"bandpass_taps" yaml:"bandpass_taps"`
}

// DefaultConfig returns the default application configuration
func DefaultConfig() *Config {
	return &Config{
		LogLevel:     "info",
		OutputFormat: "json",
		Analysis:     DefaultAnalysisConfig(),
	}
}

// DefaultAnalysisConfig returns sensible analysis defaults
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		SampleRate: 44100,
		WindowSize: 2048,
		HopSize:    512,
		WindowType: "hann",
		Filter: FilterConfig{
			SingleEdgeTaps: 201,
			BandpassTaps:   401,
		},
	}
}

// Validate reports every invalid field at once
func (c *AnalysisConfig) Validate() error {
	var err error

	if c.SampleRate <= 0 {
		err = multierr.Append(err, fmt.Errorf("sample_rate must be positive, got %g", c.SampleRate))
	}
	if c.WindowSize < MinWindowSize || c.WindowSize > MaxWindowSize {
		err = multierr.Append(err, fmt.Errorf("window_size must be in [%d, %d], got %d", MinWindowSize, MaxWindowSize, c.WindowSize))
	}
	if c.HopSize <= 0 {
		err = multierr.Append(err, fmt.Errorf("hop_size must be positive, got %d", c.HopSize))
	}
	if c.Filter.SingleEdgeTaps <= 0 {
		err = multierr.Append(err, fmt.Errorf("filter.single_edge_taps must be positive, got %d", c.Filter.SingleEdgeTaps))
	}
	if c.Filter.BandpassTaps <= 0 {
		err = multierr.Append(err, fmt.Errorf("filter.bandpass_taps must be positive, got %d", c.Filter.BandpassTaps))
	}
	for _, cutoff := range c.Filter.Cutoffs {
		if cutoff < 0 {
			err = multierr.Append(err, fmt.Errorf("filter cutoff must be non-negative, got %g", cutoff))
		}
	}

	return err
}

// Validate checks the whole configuration
func (c *Config) Validate() error {
	var err error
	switch c.OutputFormat {
	case "json", "yaml", "csv":
	default:
		err = multierr.Append(err, fmt.Errorf("output_format must be json, yaml or csv, got %q", c.OutputFormat))
	}
	return multierr.Append(err, c.Analysis.Validate())
}

// SetDefaults registers the default values on v
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("output_format", d.OutputFormat)
	v.SetDefault("analysis.sample_rate", d.Analysis.SampleRate)
	v.SetDefault("analysis.window_size", d.Analysis.WindowSize)
	v.SetDefault("analysis.hop_size", d.Analysis.HopSize)
	v.SetDefault("analysis.window_type", d.Analysis.WindowType)
	v.SetDefault("analysis.filter.type", d.Analysis.Filter.Type)
	v.SetDefault("analysis.filter.cutoffs", []float64{})
	v.SetDefault("analysis.filter.single_edge_taps", d.Analysis.Filter.SingleEdgeTaps)
	v.SetDefault("analysis.filter.bandpass_taps", d.Analysis.Filter.BandpassTaps)
}

// Load unmarshals and validates the configuration held by v
func Load(v *viper.Viper) (*Config, error) {
	if v == nil {
		return nil, errors.New("nil viper instance")
	}

	SetDefaults(v)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
