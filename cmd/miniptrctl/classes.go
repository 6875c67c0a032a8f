package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/miniptr/slice"
)

var (
	classesN     uint
	classesB     uint
	classesCount int
)

func init() {
	cmd := newClassesCmd()
	cmd.Flags().UintVar(&classesN, "n", slice.Exp2Fine.N, "log2 of the ratio between classes")
	cmd.Flags().UintVar(&classesB, "b", slice.Exp2Fine.B, "log2 of the smallest class capacity")
	cmd.Flags().IntVar(&classesCount, "count", 12, "Number of classes to print")
	rootCmd.AddCommand(cmd)
}

func newClassesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classes",
		Short: "Print an exponential size class table",
		Long: `The classes command prints the capacity of each class of an
exponential size class family, where class c holds 2^(B+(c-1)N) elements.

Example:
  miniptrctl classes
  miniptrctl classes --n 2 --b 3 --count 6
  miniptrctl classes --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClasses()
		},
	}
}

// ClassRow is one line of the classes table.
type ClassRow struct {
	Class    uint32 `json:"class"`
	Capacity int    `json:"capacity"`
}

func classTable(sc slice.Exp2Size, count int) []ClassRow {
	last := min(uint32(count), sc.MaxClass())
	rows := make([]ClassRow, 0, last)
	for c := uint32(1); c <= last; c++ {
		rows = append(rows, ClassRow{Class: c, Capacity: sc.Capacity(c)})
	}
	return rows
}

func runClasses() error {
	if classesCount < 1 {
		return fmt.Errorf("--count must be positive, got %d", classesCount)
	}
	sc, err := slice.NewExp2Size(classesN, classesB)
	if err != nil {
		return err
	}

	rows := classTable(sc, classesCount)
	if jsonOut {
		return printJSON(rows)
	}

	printVerbose("Size classes %s, %d of %d shown\n", sc, len(rows), sc.MaxClass())
	printInfo("%-6s %s\n", "CLASS", "CAPACITY")
	for _, r := range rows {
		printInfo("%-6d %s\n", r.Class, numbers.Sprintf("%d", r.Capacity))
	}
	return nil
}
