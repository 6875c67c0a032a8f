package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/joshuapare/miniptr/index"
	"github.com/joshuapare/miniptr/internal/logger"
	"github.com/joshuapare/miniptr/metrics"
	"github.com/joshuapare/miniptr/slice"
	"github.com/joshuapare/miniptr/slot"
)

var slicesProm bool

func init() {
	cmd := newSlicesCmd()
	cmd.Flags().BoolVar(&slicesProm, "prom", false, "Print pool metrics in Prometheus text format")
	rootCmd.AddCommand(cmd)
}

func newSlicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "slices <workload.yaml>",
		Short: "Run a scripted slice pool workload",
		Long: `The slices command runs the allocations and frees listed in a YAML
workload against a slice pool and prints the range each step received.

Workload format:
  classes: {n: 1, b: 2}   # exponential size classes
  key: u32                # u16, u32 or u64
  offheap: 4096           # optional: fixed off-heap buffer of this many words
  ops:
    - {alloc: 3, name: a}
    - {alloc: 12, name: b}
    - {free: a}

Example:
  miniptrctl slices workload.yaml
  miniptrctl slices workload.yaml --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSlices(args[0])
		},
	}
}

// Workload is the YAML document read by the slices command.
type Workload struct {
	Classes struct {
		N uint `yaml:"n" validate:"min=1,max=8"`
		B uint `yaml:"b" validate:"max=32"`
	} `yaml:"classes"`
	Key     string       `yaml:"key" validate:"omitempty,oneof=u16 u32 u64"`
	Offheap int          `yaml:"offheap" validate:"min=0"`
	Ops     []WorkloadOp `yaml:"ops" validate:"required,min=1,dive"`
}

// WorkloadOp is a single step: either an allocation or a free of a named
// earlier allocation.
type WorkloadOp struct {
	Alloc *int   `yaml:"alloc,omitempty" validate:"omitempty,min=0"`
	Name  string `yaml:"name,omitempty" validate:"omitempty,max=64"`
	Free  string `yaml:"free,omitempty" validate:"omitempty,max=64"`
}

// validateOp requires exactly one of alloc and free, and a name for allocs.
func validateOp(sl validator.StructLevel) {
	op := sl.Current().Interface().(WorkloadOp)
	switch {
	case op.Alloc == nil && op.Free == "":
		sl.ReportError(op.Alloc, "Alloc", "alloc", "alloc_or_free", "")
	case op.Alloc != nil && op.Free != "":
		sl.ReportError(op.Free, "Free", "free", "alloc_xor_free", "")
	case op.Alloc != nil && op.Name == "":
		sl.ReportError(op.Name, "Name", "name", "required_with_alloc", "")
	}
}

// StepResult reports one executed step.
type StepResult struct {
	Op    string `json:"op"`
	Name  string `json:"name"`
	Begin int    `json:"begin"`
	End   int    `json:"end"`
	Error string `json:"error,omitempty"`
}

// SlicesResult summarizes a workload run.
type SlicesResult struct {
	Steps []StepResult `json:"steps"`
	Len   int          `json:"len"`
	Cap   int          `json:"cap"`
	Stats slice.Stats  `json:"stats"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(validateOp, WorkloadOp{})
	return v
}

func loadWorkload(path string) (*Workload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workload: %w", err)
	}
	var w Workload
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("failed to parse workload: %w", err)
	}
	if w.Key == "" {
		w.Key = "u32"
	}
	if err := validate.Struct(&w); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, fmt.Errorf("invalid workload: %s failed %q", verrs[0].Namespace(), verrs[0].Tag())
		}
		return nil, fmt.Errorf("invalid workload: %w", err)
	}
	return &w, nil
}

// slicePool is the subset of slice.Pool the workload runner needs, with
// ranges flattened to ints so one runner serves every key type.
type slicePool interface {
	alloc(capacity int) (int, int, error)
	dealloc(begin, end int) error
	source() metrics.SliceSource
	close() error
}

type poolAdapter[K index.Key[K]] struct {
	pool    *slice.Pool[K, slot.Default[K], *slot.Default[K]]
	release func() error
}

func (a *poolAdapter[K]) alloc(capacity int) (int, int, error) {
	r, err := a.pool.Alloc(capacity)
	return r.Begin.Index(), r.End.Index(), err
}

func (a *poolAdapter[K]) dealloc(begin, end int) error {
	return a.pool.Dealloc(slice.NewRange[K](begin, end))
}

func (a *poolAdapter[K]) source() metrics.SliceSource { return a.pool }

func (a *poolAdapter[K]) close() error {
	if a.release == nil {
		return nil
	}
	return a.release()
}

func newAdapter[K index.Key[K]](classes slice.SizeClasses, offheap int) (slicePool, error) {
	if offheap == 0 {
		return &poolAdapter[K]{pool: slice.NewPool[K, slot.Default[K]](classes)}, nil
	}
	oh, err := slice.NewOffHeap[K](classes, offheap)
	if err != nil {
		return nil, err
	}
	return &poolAdapter[K]{pool: oh.Pool, release: oh.Close}, nil
}

func buildSlicePool(w *Workload) (slicePool, error) {
	classes, err := slice.NewExp2Size(w.Classes.N, w.Classes.B)
	if err != nil {
		return nil, err
	}
	switch w.Key {
	case "u16":
		return newAdapter[index.U16](classes, w.Offheap)
	case "u64":
		return newAdapter[index.U64](classes, w.Offheap)
	default:
		return newAdapter[index.U32](classes, w.Offheap)
	}
}

func runWorkload(w *Workload) (*SlicesResult, slicePool, error) {
	pool, err := buildSlicePool(w)
	if err != nil {
		return nil, nil, err
	}
	fail := func(err error) (*SlicesResult, slicePool, error) {
		return nil, nil, errors.Join(err, pool.close())
	}

	live := make(map[string][2]int)
	res := &SlicesResult{}
	for i, op := range w.Ops {
		if op.Alloc != nil {
			if _, dup := live[op.Name]; dup {
				return fail(fmt.Errorf("op %d: %q is already allocated", i, op.Name))
			}
			begin, end, err := pool.alloc(*op.Alloc)
			step := StepResult{Op: "alloc", Name: op.Name, Begin: begin, End: end}
			if err != nil {
				logger.Warn("workload alloc failed", "op", i, "name", op.Name, "capacity", *op.Alloc, "error", err)
				step.Error = err.Error()
			} else {
				live[op.Name] = [2]int{begin, end}
			}
			res.Steps = append(res.Steps, step)
			continue
		}

		r, ok := live[op.Free]
		if !ok {
			return fail(fmt.Errorf("op %d: free of unknown allocation %q", i, op.Free))
		}
		if err := pool.dealloc(r[0], r[1]); err != nil {
			return fail(fmt.Errorf("op %d: %w", i, err))
		}
		delete(live, op.Free)
		res.Steps = append(res.Steps, StepResult{Op: "free", Name: op.Free, Begin: r[0], End: r[1]})
	}

	src := pool.source()
	res.Len, res.Cap, res.Stats = src.Len(), src.Cap(), src.Stats()
	logger.Info("workload finished", "ops", len(w.Ops), "len", res.Len, "cap", res.Cap,
		"splits", res.Stats.Splits, "leaked", res.Stats.LeakedUnits)
	return res, pool, nil
}

func runSlices(path string) error {
	w, err := loadWorkload(path)
	if err != nil {
		return err
	}
	printVerbose("Loaded %d ops, classes N=%d B=%d, key %s\n", len(w.Ops), w.Classes.N, w.Classes.B, w.Key)

	res, pool, err := runWorkload(w)
	if err != nil {
		return err
	}
	defer pool.close()

	if slicesProm {
		reg := metrics.NewRegistry()
		reg.WatchSlice(path, pool.source())
		return reg.WriteText(os.Stdout)
	}
	if jsonOut {
		return printJSON(res)
	}

	for _, s := range res.Steps {
		if s.Error != "" {
			printInfo("%-5s %-10s error: %s\n", s.Op, s.Name, s.Error)
			continue
		}
		printInfo("%-5s %-10s [%d, %d)\n", s.Op, s.Name, s.Begin, s.End)
	}
	printInfo("backing: %s of %s elements, %s splits, %s leaked\n",
		numbers.Sprintf("%d", res.Len), numbers.Sprintf("%d", res.Cap),
		numbers.Sprintf("%d", res.Stats.Splits), numbers.Sprintf("%d", res.Stats.LeakedUnits))
	return nil
}
