package main

import (
	"fmt"
	"os"

	"github.com/anirudhraja/quickwire/wire"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	protoPath  string
	outPath    string
	logLevel   string
	logPretty  bool
	strictUTF8 bool
	maxDepth   int

	rootCmd = &cobra.Command{
		Use:   "quickwire-sample",
		Short: "Encode the perftest workloads, read them back and verify the bytes",
		RunE:  runSample,
	}

	schemaCmd = &cobra.Command{
		Use:   "schema [proto file]",
		Short: "Print the messages of a .proto file with the tag of every field",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSchema,
	}
)

func main() {
	if err := execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func execute() error {
	initCommands()
	return rootCmd.Execute()
}

func initCommands() {
	rootCmd.AddCommand(schemaCmd)

	defaults := wire.CurrentConfig()
	rootCmd.PersistentFlags().StringVar(&protoPath, "proto", "internal/perftest/perftest.proto", "schema the workloads are checked against")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logPretty, "log-pretty", true, "human readable console logging")

	rootCmd.Flags().StringVar(&outPath, "out", "", "write the frames to this file instead of memory")
	rootCmd.Flags().BoolVar(&strictUTF8, "strict-utf8", defaults.StrictUTF8, "reject invalid utf-8 in string fields")
	rootCmd.Flags().IntVar(&maxDepth, "max-depth", defaults.MaxDepth, "nested message depth limit, 0 for none")
}

func newLogger() (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	var logger zerolog.Logger
	if logPretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"})
	} else {
		logger = zerolog.New(os.Stdout)
	}
	return logger.Level(level).With().Timestamp().Logger(), nil
}

func runSample(cmd *cobra.Command, _ []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}

	cfg := wire.CurrentConfig()
	cfg.StrictUTF8 = strictUTF8
	cfg.MaxDepth = maxDepth
	wire.SetConfig(cfg)
	log.Debug().
		Bool("strict_utf8", cfg.StrictUTF8).
		Bool("check_size", cfg.CheckSize).
		Int("max_depth", cfg.MaxDepth).
		Bool("packed_fast_path", cfg.PackedFastPath).
		Msg("Wire configuration")

	if protoPath != "" {
		if err := checkSchema(log, protoPath); err != nil {
			return err
		}
	}

	results, err := runWorkloads(log, outPath)
	if err != nil {
		return err
	}
	var total int
	for _, res := range results {
		total += res.bytes
	}
	log.Info().Int("workloads", len(results)).Int("bytes", total).Msg("All workloads verified")
	return nil
}

func runSchema(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	path := protoPath
	if len(args) == 1 {
		path = args[0]
	}
	return printSchema(log, path)
}
