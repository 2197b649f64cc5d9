package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/RyanBlaney/sonido-spectra/config"
	"github.com/RyanBlaney/sonido-spectra/logging"
)

const envPrefix = "SPECTRA"

// flagKeys maps command line flags onto configuration keys
var flagKeys = map[string]string{
	"log-level":   "log_level",
	"output":      "output_format",
	"sample-rate": "analysis.sample_rate",
	"window-size": "analysis.window_size",
	"hop":         "analysis.hop_size",
	"window":      "analysis.window_type",
	"filter":      "analysis.filter.type",
	"cutoff":      "analysis.filter.cutoffs",
}

// app holds state shared by every subcommand of one invocation
type app struct {
	v          *viper.Viper
	configFile string
	cfg        *config.Config
	logger     logging.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	defaults := config.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "spectra",
		Short: "Radix-2 FFT spectrum analysis and FIR filter design",
		Long: `spectra computes one-sided magnitude/phase spectra of sampled signals
using an iterative radix-2 FFT, with optional windowed-sinc FIR pre-filtering.

Signals are read from CSV (one column of amplitudes, or time,amplitude pairs)
or raw little-endian float64 files (.f64, .raw).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "",
		"config file (default is ./spectra.yaml or $HOME/.config/spectra/spectra.yaml)")
	rootCmd.PersistentFlags().String("log-level", defaults.LogLevel,
		"log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringP("output", "o", defaults.OutputFormat,
		"output format (json, yaml, csv)")

	rootCmd.AddCommand(
		newAnalyzeCmd(a),
		newDesignCmd(a),
		newWindowCmd(a),
		newRoundTripCmd(a),
		newSpectrogramCmd(a),
	)

	return rootCmd
}

// initialize resolves configuration (flags > env > file > defaults) and
// installs the logger
func (a *app) initialize(cmd *cobra.Command) error {
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	a.v.AutomaticEnv()

	if err := a.readConfigFile(); err != nil {
		return err
	}

	if err := bindFlags(cmd, a.v); err != nil {
		return err
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	logger, err := newCLILogger(level)
	if err != nil {
		return err
	}
	logging.SetGlobalLogger(logger)

	a.logger = logger.WithFields(logging.Fields{
		"component": "cli",
		"command":   cmd.Name(),
	})
	if used := a.v.ConfigFileUsed(); used != "" {
		a.logger.Debug("Using config file", logging.Fields{"path": used})
	}

	return nil
}

func (a *app) readConfigFile() error {
	if a.configFile != "" {
		a.v.SetConfigFile(a.configFile)
	} else {
		a.v.SetConfigName("spectra")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			a.v.AddConfigPath(filepath.Join(home, ".config", "spectra"))
		}
	}

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.configFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	return nil
}

// bindFlags binds every explicitly set flag of cmd to its configuration key.
// Unset flags leave the env, file and default layers in charge.
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var lastErr error

	visit := func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || !f.Changed {
			return
		}
		if err := v.BindPFlag(key, f); err != nil {
			lastErr = err
		}
	}

	cmd.Flags().VisitAll(visit)
	cmd.InheritedFlags().VisitAll(visit)

	return lastErr
}

// newCLILogger logs to stderr so stdout carries only command output
func newCLILogger(level logging.Level) (*logging.DefaultLogger, error) {
	zcfg := zap.NewDevelopmentConfig()
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	zcfg.DisableStacktrace = true

	zl, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	logger := logging.NewZapLogger(zl)
	logger.SetLevel(level)
	return logger, nil
}
