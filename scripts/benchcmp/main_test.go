package main

import (
	"bufio"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleOutput = `goos: linux
goarch: amd64
pkg: github.com/joshuapare/miniptr/slab
Benchmark_InsertRemove/keylist/tagged-8         	30000000	        40.0 ns/op	       0 B/op	       0 allocs/op
Benchmark_InsertRemove/intrusive/tagged-8       	40000000	        20.0 ns/op	       0 B/op	       0 allocs/op
Benchmark_InsertRemove/keylist/default-8        	30000000	        35.5 ns/op	       0 B/op	       0 allocs/op
{"Action":"output","Output":"Benchmark_Replay/keylist/default-8 \t 5000 \t 250000 ns/op \t 2048 B/op \t 12 allocs/op\n"}
Benchmark_Replay/intrusive/default-8            	    6000	    200000 ns/op	    1024 B/op	       6 allocs/op
PASS
`

func TestParseBenchmarks(t *testing.T) {
	results := parseBenchmarks(bufio.NewScanner(strings.NewReader(sampleOutput)))
	require.Len(t, results, 5)

	r := results[0]
	assert.Equal(t, "InsertRemove", r.Operation)
	assert.Equal(t, "keylist", r.Impl)
	assert.Equal(t, "tagged", r.Layout)
	assert.Equal(t, 30000000, r.Iterations)
	assert.InDelta(t, 40.0, r.NsPerOp, 1e-9)

	replay := results[3]
	assert.Equal(t, "Replay", replay.Operation)
	assert.Equal(t, int64(2048), replay.BytesPerOp)
	assert.Equal(t, int64(12), replay.AllocsPerOp)
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		name                   string
		operation, impl, shape string
		ok                     bool
	}{
		{"Benchmark_AllocDealloc/heap/exp2fine-16", "AllocDealloc", "heap", "exp2fine", true},
		{"Benchmark_Replay/keylist", "Replay", "keylist", "", true},
		{"Benchmark_Replay-8", "", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, impl, layout, ok := splitName(tt.name)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.operation, op)
			assert.Equal(t, tt.impl, impl)
			assert.Equal(t, tt.shape, layout)
		})
	}
}

func TestGenerateComparisons(t *testing.T) {
	results := parseBenchmarks(bufio.NewScanner(strings.NewReader(sampleOutput)))
	comps := generateComparisons(results, "keylist", "intrusive")
	require.Len(t, comps, 3)

	// Sorted by operation, then layout.
	assert.Equal(t, "InsertRemove", comps[0].Operation)
	assert.Equal(t, "default", comps[0].Layout)
	assert.True(t, comps[0].BaseOnly)

	assert.Equal(t, "tagged", comps[1].Layout)
	assert.InDelta(t, 2.0, comps[1].Speedup, 1e-9)

	assert.Equal(t, "Replay", comps[2].Operation)
	assert.InDelta(t, 1.25, comps[2].Speedup, 1e-9)
}

func TestGenerateMarkdownReport(t *testing.T) {
	results := parseBenchmarks(bufio.NewScanner(strings.NewReader(sampleOutput)))
	comps := generateComparisons(results, "keylist", "intrusive")
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	report := generateMarkdownReport(comps, "keylist", "intrusive", now)
	for _, want := range []string{
		"Generated: 2026-01-02 03:04:05",
		"- **Paired** (keylist and intrusive): 2",
		"  - intrusive faster: 2 (100.0%)",
		"| InsertRemove | tagged | 40 | 20 | **2.00x** ✓ | 0B vs 0B | 0 vs 0 |",
		"| InsertRemove | default | 36 | *N/A* | *keylist only* | 0B | 0 |",
		"| Replay | default | 250.0K | 200.0K | **1.25x** ✓ | 2.0KB vs 1.0KB ✓ | 12 vs 6 ✓ |",
	} {
		assert.Contains(t, report, want)
	}
}
