package main

import (
	"runtime"

	"github.com/spf13/cobra"
)

// Overridden with -ldflags "-X main.version=..." at release time.
var (
	version = "0.1.0"
	commit  = "none"
	date    = "unknown"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion()
		},
	})
}

// VersionInfo describes the running binary.
type VersionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Built   string `json:"built"`
	Go      string `json:"go"`
}

func runVersion() error {
	info := VersionInfo{
		Version: rootCmd.Version,
		Commit:  commit,
		Built:   date,
		Go:      runtime.Version(),
	}
	if jsonOut {
		return printJSON(info)
	}
	printInfo("%s %s\n", rootCmd.Name(), info.Version)
	printInfo("  commit: %s\n", info.Commit)
	printInfo("  built:  %s\n", info.Built)
	printVerbose("  go:     %s\n", info.Go)
	return nil
}
