// Command benchcmp turns `go test -bench` output into a markdown report that
// pairs two implementations of the same benchmark, keylist against intrusive
// free lists by default.
//
//	go test -bench . -benchmem ./slab | go run ./scripts/benchcmp
//	go test -bench . -benchmem ./slice | go run ./scripts/benchcmp -base heap -cand offheap
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult represents a parsed benchmark result.
type BenchmarkResult struct {
	Name        string
	Operation   string
	Layout      string
	Impl        string
	Iterations  int
	NsPerOp     float64
	BytesPerOp  int64
	AllocsPerOp int64
}

// ComparisonResult pairs the base and candidate runs of one operation.
type ComparisonResult struct {
	Operation  string
	Layout     string
	BaseNs     float64
	CandNs     float64
	Speedup    float64
	BaseMem    int64
	CandMem    int64
	BaseAllocs int64
	CandAllocs int64
	BaseOnly   bool
	CandOnly   bool
}

var (
	inputFile = flag.String(
		"input",
		"",
		"Input file with benchmark output (stdin if not specified)",
	)
	outputFile = flag.String("output", "", "Output markdown file (stdout if not specified)")
	baseImpl   = flag.String("base", "keylist", "Implementation to compare against")
	candImpl   = flag.String("cand", "intrusive", "Implementation being compared")
	quiet      = flag.Bool("quiet", false, "Suppress progress output")
)

func main() {
	flag.Parse()

	var in io.Reader = os.Stdin
	if *inputFile != "" {
		f, err := os.Open(*inputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening input file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	results := parseBenchmarks(bufio.NewScanner(in))
	if !*quiet {
		fmt.Fprintf(os.Stderr, "Parsed %d benchmark results\n", len(results))
	}

	comparisons := generateComparisons(results, *baseImpl, *candImpl)
	if !*quiet {
		fmt.Fprintf(os.Stderr, "Generated %d comparisons\n", len(comparisons))
	}

	report := generateMarkdownReport(comparisons, *baseImpl, *candImpl, time.Now())

	if *outputFile == "" {
		fmt.Fprint(os.Stdout, report)
		return
	}
	if err := os.WriteFile(*outputFile, []byte(report), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
		os.Exit(1)
	}
	if !*quiet {
		fmt.Fprintf(os.Stderr, "Report written to %s\n", *outputFile)
	}
}

// Benchmark_InsertRemove/keylist/tagged-8    1000000    45.2 ns/op    0 B/op    0 allocs/op
var benchmarkRegex = regexp.MustCompile(
	`^(Benchmark\S+)\s+(\d+)\s+([\d.]+)\s+ns/op(?:\s+([\d.]+)\s+B/op)?(?:\s+([\d.]+)\s+allocs/op)?`,
)

func parseBenchmarks(scanner *bufio.Scanner) []BenchmarkResult {
	var results []BenchmarkResult

	for scanner.Scan() {
		line := scanner.Text()

		// Lines from `go test -json` carry the benchmark text in Output.
		var testEvent map[string]any
		if err := json.Unmarshal([]byte(line), &testEvent); err == nil {
			if output, ok := testEvent["Output"].(string); ok {
				line = output
			}
		}

		matches := benchmarkRegex.FindStringSubmatch(strings.TrimSpace(line))
		if matches == nil {
			continue
		}

		r := BenchmarkResult{Name: matches[1]}
		r.Iterations, _ = strconv.Atoi(matches[2])
		r.NsPerOp, _ = strconv.ParseFloat(matches[3], 64)
		if matches[4] != "" {
			r.BytesPerOp, _ = strconv.ParseInt(matches[4], 10, 64)
		}
		if matches[5] != "" {
			r.AllocsPerOp, _ = strconv.ParseInt(matches[5], 10, 64)
		}

		var ok bool
		r.Operation, r.Impl, r.Layout, ok = splitName(r.Name)
		if !ok {
			continue
		}
		results = append(results, r)
	}

	return results
}

// splitName splits Benchmark_<Operation>/<impl>/<layout>-<procs>. Benchmarks
// without an implementation level are skipped.
func splitName(name string) (operation, impl, layout string, ok bool) {
	parts := strings.Split(name, "/")
	if len(parts) < 2 {
		return "", "", "", false
	}

	operation = strings.TrimPrefix(strings.TrimPrefix(parts[0], "Benchmark"), "_")
	impl = stripProcs(parts[1])
	if len(parts) >= 3 {
		layout = stripProcs(parts[len(parts)-1])
	}
	return operation, impl, layout, true
}

func stripProcs(s string) string {
	if i := strings.LastIndex(s, "-"); i > 0 {
		if _, err := strconv.Atoi(s[i+1:]); err == nil {
			return s[:i]
		}
	}
	return s
}

func generateComparisons(results []BenchmarkResult, base, cand string) []ComparisonResult {
	type key struct {
		operation string
		layout    string
	}

	grouped := make(map[key]map[string]BenchmarkResult)
	for _, result := range results {
		k := key{result.Operation, result.Layout}
		if grouped[k] == nil {
			grouped[k] = make(map[string]BenchmarkResult)
		}
		grouped[k][result.Impl] = result
	}

	var comparisons []ComparisonResult
	for k, impls := range grouped {
		b, hasBase := impls[base]
		c, hasCand := impls[cand]
		comp := ComparisonResult{Operation: k.operation, Layout: k.layout}

		switch {
		case hasBase && hasCand:
			comp.BaseNs, comp.CandNs = b.NsPerOp, c.NsPerOp
			comp.BaseMem, comp.CandMem = b.BytesPerOp, c.BytesPerOp
			comp.BaseAllocs, comp.CandAllocs = b.AllocsPerOp, c.AllocsPerOp
			if c.NsPerOp > 0 {
				comp.Speedup = b.NsPerOp / c.NsPerOp
			}
		case hasBase:
			comp.BaseNs, comp.BaseMem, comp.BaseAllocs = b.NsPerOp, b.BytesPerOp, b.AllocsPerOp
			comp.BaseOnly = true
		case hasCand:
			comp.CandNs, comp.CandMem, comp.CandAllocs = c.NsPerOp, c.BytesPerOp, c.AllocsPerOp
			comp.CandOnly = true
		default:
			continue
		}
		comparisons = append(comparisons, comp)
	}

	sort.Slice(comparisons, func(i, j int) bool {
		if comparisons[i].Operation != comparisons[j].Operation {
			return comparisons[i].Operation < comparisons[j].Operation
		}
		return comparisons[i].Layout < comparisons[j].Layout
	})

	return comparisons
}

func generateMarkdownReport(comparisons []ComparisonResult, base, cand string, now time.Time) string {
	var sb strings.Builder

	sb.WriteString("# Benchmark Report\n\n")
	fmt.Fprintf(&sb, "Generated: %s\n\n", now.Format("2006-01-02 15:04:05"))

	candFaster, baseFaster, unpaired := 0, 0, 0
	totalSpeedup := 0.0
	for _, comp := range comparisons {
		switch {
		case comp.BaseOnly || comp.CandOnly:
			unpaired++
		case comp.Speedup > 1.0:
			candFaster++
			totalSpeedup += comp.Speedup
		default:
			if comp.Speedup < 1.0 {
				baseFaster++
			}
			totalSpeedup += comp.Speedup
		}
	}

	paired := len(comparisons) - unpaired
	avgSpeedup := 0.0
	if paired > 0 {
		avgSpeedup = totalSpeedup / float64(paired)
	}

	sb.WriteString("## Summary\n\n")
	fmt.Fprintf(&sb, "- **Total benchmarks**: %d\n", len(comparisons))
	fmt.Fprintf(&sb, "- **Paired** (%s and %s): %d\n", base, cand, paired)
	fmt.Fprintf(&sb, "  - %s faster: %d (%s)\n", cand, candFaster, percent(candFaster, paired))
	fmt.Fprintf(&sb, "  - %s faster: %d (%s)\n", base, baseFaster, percent(baseFaster, paired))
	fmt.Fprintf(&sb, "  - Average speedup: **%.2fx**\n", avgSpeedup)
	fmt.Fprintf(&sb, "- **Unpaired**: %d\n\n", unpaired)

	sb.WriteString("## Detailed Results\n\n")
	fmt.Fprintf(&sb, "| Operation | Layout | %s (ns/op) | %s (ns/op) | Speedup | Memory (B/op) | Allocs |\n", base, cand)
	sb.WriteString("|-----------|--------|------|------|---------|---------------|--------|\n")

	for _, comp := range comparisons {
		switch {
		case comp.BaseOnly:
			fmt.Fprintf(&sb, "| %s | %s | %s | *N/A* | *%s only* | %s | %s |\n",
				comp.Operation, comp.Layout, formatNumber(comp.BaseNs), base,
				formatBytes(comp.BaseMem), formatNumber(float64(comp.BaseAllocs)))
		case comp.CandOnly:
			fmt.Fprintf(&sb, "| %s | %s | *N/A* | %s | *%s only* | %s | %s |\n",
				comp.Operation, comp.Layout, formatNumber(comp.CandNs), cand,
				formatBytes(comp.CandMem), formatNumber(float64(comp.CandAllocs)))
		default:
			indicator, style := "✓", "**"
			if comp.Speedup < 1.0 {
				indicator, style = "✗", ""
			}
			fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s%.2fx%s %s | %s vs %s%s | %s vs %s%s |\n",
				comp.Operation, comp.Layout,
				formatNumber(comp.BaseNs), formatNumber(comp.CandNs),
				style, comp.Speedup, style, indicator,
				formatBytes(comp.BaseMem), formatBytes(comp.CandMem), lower(comp.CandMem, comp.BaseMem),
				formatNumber(float64(comp.BaseAllocs)), formatNumber(float64(comp.CandAllocs)),
				lower(comp.CandAllocs, comp.BaseAllocs))
		}
	}

	sb.WriteString("\n## Notes\n\n")
	fmt.Fprintf(&sb, "- **Speedup > 1.0**: %s is faster ✓\n", cand)
	fmt.Fprintf(&sb, "- **Speedup < 1.0**: %s is faster ✗\n", base)
	sb.WriteString("- **Memory comparison**: Lower is better\n")
	sb.WriteString("- **Allocations**: Fewer is better\n")

	return sb.String()
}

func percent(n, of int) string {
	if of == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", float64(n)/float64(of)*100)
}

// lower marks whether the candidate figure beats the base.
func lower(cand, base int64) string {
	switch {
	case cand < base:
		return " ✓"
	case cand > base:
		return " ✗"
	}
	return ""
}

func formatNumber(n float64) string {
	if n >= 1000000 {
		return fmt.Sprintf("%.2fM", n/1000000)
	} else if n >= 1000 {
		return fmt.Sprintf("%.1fK", n/1000)
	}
	return fmt.Sprintf("%.0f", n)
}

func formatBytes(b int64) string {
	if b >= 1024*1024 {
		return fmt.Sprintf("%.2fMB", float64(b)/(1024*1024))
	} else if b >= 1024 {
		return fmt.Sprintf("%.1fKB", float64(b)/1024)
	}
	return fmt.Sprintf("%dB", b)
}
