package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/miniptr/internal/logger"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
	debug   bool
	logDir  string
)

// numbers formats counts with digit grouping.
var numbers = message.NewPrinter(language.English)

var rootCmd = &cobra.Command{
	Use:   "miniptrctl",
	Short: "Inspect and exercise miniptr pools",
	Long: `miniptrctl drives the slab and slice pools of miniptr. It prints
size class tables, replays random insert/remove traces against every slab
layout, and runs scripted slice allocation workloads.`,
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogging()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log pool events to stderr")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Write JSON logs to this directory")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initLogging() error {
	switch {
	case debug:
		return logger.Init(logger.Options{Enabled: true, Stderr: true, Level: slog.LevelDebug})
	case logDir != "":
		return logger.Init(logger.Options{Enabled: true, LogDir: logDir})
	}
	return nil
}

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
