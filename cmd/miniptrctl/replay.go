package main

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/miniptr/index"
	"github.com/joshuapare/miniptr/internal/logger"
	"github.com/joshuapare/miniptr/internal/trace"
	"github.com/joshuapare/miniptr/metrics"
	"github.com/joshuapare/miniptr/slab"
	"github.com/joshuapare/miniptr/slot"
)

var (
	replayKey     string
	replaySlot    string
	replayFree    string
	replaySize    int
	replayRemoval float64
	replaySeed    int64
	replayMaxLive int
	replayProm    bool
)

func init() {
	cmd := newReplayCmd()
	cmd.Flags().StringVar(&replayKey, "key", "u32", "Key type: u8, u16, u32, u64, neg32")
	cmd.Flags().StringVar(&replaySlot, "slot", "tagged", "Slot layout: tagged, default, clone")
	cmd.Flags().StringVar(&replayFree, "free", "intrusive", "Free list: keylist, intrusive")
	cmd.Flags().IntVar(&replaySize, "size", 10000, "Number of trace events")
	cmd.Flags().Float64Var(&replayRemoval, "removal", 0.3, "Probability that an event removes a key")
	cmd.Flags().Int64Var(&replaySeed, "seed", 171, "Trace seed")
	cmd.Flags().IntVar(&replayMaxLive, "max-live", 0, "Cap on live keys (0: key type limit)")
	cmd.Flags().BoolVar(&replayProm, "prom", false, "Print pool metrics in Prometheus text format")
	rootCmd.AddCommand(cmd)
}

func newReplayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replay",
		Short: "Replay a random insert/remove trace against a slab pool",
		Long: `The replay command generates a deterministic random trace of inserts
and removes, runs it against a slab pool of the chosen layout, and checks that
every insert receives the key predicted by a last-freed-first model.

Example:
  miniptrctl replay
  miniptrctl replay --key u8 --slot default --free keylist
  miniptrctl replay --size 100000 --removal 0.45 --prom`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay()
		},
	}
}

// replayTarget adapts a slab pool of any key and slot type to a trace.
type replayTarget struct {
	trace.Target
	source  metrics.SlabSource
	maxKeys int
}

func keyLimit[K index.Key[K]]() int {
	if m := index.Max[K](); m < math.MaxInt {
		return m + 1
	}
	return math.MaxInt
}

func intTarget[K index.Key[K], S any, PS slot.Ptr[S, int]](p *slab.Pool[K, int, S, PS]) *replayTarget {
	return &replayTarget{
		Target: trace.Target{
			Insert: func(v int) (int, error) {
				k, err := p.TryInsert(v)
				return k.Index(), err
			},
			Remove: func(k int) (int, error) {
				v, ok := p.TryRemove(index.NewUnchecked[K](k))
				if !ok {
					return 0, fmt.Errorf("%w: %d", slab.ErrNoValue, k)
				}
				return v, nil
			},
		},
		source:  p,
		maxKeys: keyLimit[K](),
	}
}

// keyTarget is intTarget for layouts whose value type is the key type.
func keyTarget[K index.Key[K], S any, PS slot.Ptr[S, K]](p *slab.Pool[K, K, S, PS]) *replayTarget {
	return &replayTarget{
		Target: trace.Target{
			Insert: func(v int) (int, error) {
				k, err := p.TryInsert(index.NewUnchecked[K](v))
				return k.Index(), err
			},
			Remove: func(k int) (int, error) {
				v, ok := p.TryRemove(index.NewUnchecked[K](k))
				if !ok {
					return 0, fmt.Errorf("%w: %d", slab.ErrNoValue, k)
				}
				return v.Index(), nil
			},
			ValueLimit: keyLimit[K](),
		},
		source:  p,
		maxKeys: keyLimit[K](),
	}
}

func newTarget[K index.Key[K]](slotKind, free string) (*replayTarget, error) {
	switch slotKind + "/" + free {
	case "tagged/keylist":
		return intTarget(slab.NewKeyList[K, int, slot.Tagged[K, int]]()), nil
	case "tagged/intrusive":
		return intTarget(slab.NewIntrusive[K, int, slot.Tagged[K, int]]()), nil
	case "default/keylist":
		return keyTarget(slab.NewKeyList[K, K, slot.Default[K]]()), nil
	case "default/intrusive":
		return keyTarget(slab.NewIntrusive[K, K, slot.Default[K]]()), nil
	case "clone/keylist":
		return keyTarget(slab.NewKeyList[K, K, slot.Clone[K]]()), nil
	case "clone/intrusive":
		return keyTarget(slab.NewIntrusive[K, K, slot.Clone[K]]()), nil
	}
	return nil, fmt.Errorf("unknown layout %q with free list %q", slotKind, free)
}

func buildTarget(key, slotKind, free string) (*replayTarget, error) {
	switch key {
	case "u8":
		return newTarget[index.U8](slotKind, free)
	case "u16":
		return newTarget[index.U16](slotKind, free)
	case "u32":
		return newTarget[index.U32](slotKind, free)
	case "u64":
		return newTarget[index.U64](slotKind, free)
	case "neg32":
		return newTarget[index.Neg32](slotKind, free)
	}
	return nil, fmt.Errorf("unknown key type %q", key)
}

// ReplayResult summarizes a replay run.
type ReplayResult struct {
	Key        string     `json:"key"`
	Slot       string     `json:"slot"`
	Free       string     `json:"free"`
	Events     int        `json:"events"`
	Inserts    int        `json:"inserts"`
	Removes    int        `json:"removes"`
	TotalSlots int        `json:"total_slots"`
	FreeSlots  int        `json:"free_slots"`
	Stats      slab.Stats `json:"stats"`
}

func runReplay() error {
	if replaySize < 0 {
		return fmt.Errorf("--size must not be negative, got %d", replaySize)
	}
	if replayRemoval < 0 || replayRemoval > 1 {
		return fmt.Errorf("--removal must be within [0, 1], got %g", replayRemoval)
	}

	target, err := buildTarget(replayKey, replaySlot, replayFree)
	if err != nil {
		return err
	}

	maxLive := target.maxKeys
	if replayMaxLive > 0 {
		maxLive = min(maxLive, replayMaxLive)
	}
	events := trace.Generate(trace.Config{
		Seed:    replaySeed,
		Size:    replaySize,
		Removal: replayRemoval,
		MaxKeys: maxLive,
	})
	printVerbose("Generated %s events (seed %d, max live %s)\n",
		numbers.Sprintf("%d", len(events)), replaySeed, numbers.Sprintf("%d", maxLive))

	if err := trace.Replay(events, target.Target); err != nil {
		return fmt.Errorf("replay %s/%s/%s: %w", replayKey, replaySlot, replayFree, err)
	}

	res := ReplayResult{
		Key:        replayKey,
		Slot:       replaySlot,
		Free:       replayFree,
		Events:     len(events),
		TotalSlots: target.source.TotalSlots(),
		FreeSlots:  target.source.FreeSlots(),
		Stats:      target.source.Stats(),
	}
	for _, ev := range events {
		if ev.Op == trace.OpInsert {
			res.Inserts++
		} else {
			res.Removes++
		}
	}
	logger.Info("replay finished",
		"key", res.Key, "slot", res.Slot, "free", res.Free,
		"events", res.Events, "total_slots", res.TotalSlots, "free_slots", res.FreeSlots)

	if replayProm {
		reg := metrics.NewRegistry()
		reg.WatchSlab(replayKey+"/"+replaySlot+"/"+replayFree, target.source)
		return reg.WriteText(os.Stdout)
	}
	if jsonOut {
		return printJSON(res)
	}

	printInfo("Replayed %s events against %s keys, %s slots, %s free list\n",
		numbers.Sprintf("%d", res.Events), res.Key, res.Slot, res.Free)
	printInfo("  inserts:     %s (%s reused)\n", numbers.Sprintf("%d", res.Inserts), numbers.Sprintf("%d", res.Stats.Reused))
	printInfo("  removes:     %s\n", numbers.Sprintf("%d", res.Removes))
	printInfo("  total slots: %s\n", numbers.Sprintf("%d", res.TotalSlots))
	printInfo("  free slots:  %s\n", numbers.Sprintf("%d", res.FreeSlots))
	printInfo("All keys matched the model\n")
	return nil
}
