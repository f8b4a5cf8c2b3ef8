// Package cli implements the cuboard command line.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/SeamusWaldron/cuboard/internal/config"
)

const version = "0.2.0"

// tuiAnnotation marks commands that own the terminal. Their logs go to a
// file instead of stderr.
const tuiAnnotation = "cuboard/tui"

var (
	// Global flags
	configPath string
	logFile    string
	verbose    bool

	conf   *config.Config
	logger = zap.NewNop()
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "cuboard",
	Short: "Type with a GAN smart cube",
	Long: `cuboard turns a GAN v2 smart cube into a keyboard.

Each key is two or three quarter turns: a turn on a neighbouring face picks
the character, the turn that follows picks the group. Run "cuboard cheatsheet"
to see the layout, then "cuboard type" to start typing.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the root command. Cancelling ctx stops scans, sessions and
// recordings.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: $CUBOARD_CONFIG or ~/.cuboard/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file instead of stderr")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	conf = c

	level, err := conf.LogLevel()
	if err != nil {
		return err
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	output := logFile
	if output == "" {
		output = "stderr"
		if _, ok := cmd.Annotations[tuiAnnotation]; ok {
			dir, err := config.Dir()
			if err != nil {
				return err
			}
			output = filepath.Join(dir, "cuboard.log")
		}
	}

	l, err := newLogger(level, output)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	logger = l
	return nil
}

func newLogger(level zapcore.Level, output string) (*zap.Logger, error) {
	cfg := zap.Config{
		Level:       zap.NewAtomicLevelAt(level),
		Development: level == zapcore.DebugLevel,
		Encoding:    "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "time",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalColorLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
	}
	if output != "stderr" && output != "stdout" {
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	return cfg.Build()
}
