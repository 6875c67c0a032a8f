package slab

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/miniptr/index"
	"github.com/joshuapare/miniptr/internal/trace"
	"github.com/joshuapare/miniptr/slot"
)

func replayInts(events []trace.Event, s Store[index.U16, int]) error {
	return trace.Replay(events, trace.Target{
		Insert: func(v int) (int, error) {
			k, err := s.TryInsert(v)
			return k.Index(), err
		},
		Remove: func(k int) (int, error) {
			v, ok := s.TryRemove(index.U16(k))
			if !ok {
				return 0, ErrNoValue
			}
			return v, nil
		},
	})
}

func replayKeys(events []trace.Event, s Store[index.U16, index.U16]) error {
	return trace.Replay(events, trace.Target{
		Insert: func(v int) (int, error) {
			k, err := s.TryInsert(index.U16(v))
			return k.Index(), err
		},
		Remove: func(k int) (int, error) {
			v, ok := s.TryRemove(index.U16(k))
			if !ok {
				return 0, ErrNoValue
			}
			return v.Index(), nil
		},
		ValueLimit: index.Max[index.U16]() + 1,
	})
}

// TestStress_ReplayAllVariants replays one random trace against every slot
// layout and free-list strategy. All of them must hand out the same keys.
func TestStress_ReplayAllVariants(t *testing.T) {
	events := trace.Generate(trace.Config{Seed: 171, Size: 20000, Removal: 0.3})

	t.Run("keylist/tagged", func(t *testing.T) {
		require.NoError(t, replayInts(events, NewKeyList[index.U16, int, slot.Tagged[index.U16, int]]()))
	})
	t.Run("intrusive/tagged", func(t *testing.T) {
		require.NoError(t, replayInts(events, NewIntrusive[index.U16, int, slot.Tagged[index.U16, int]]()))
	})
	t.Run("keylist/default", func(t *testing.T) {
		require.NoError(t, replayKeys(events, NewKeyList[index.U16, index.U16, slot.Default[index.U16]]()))
	})
	t.Run("intrusive/default", func(t *testing.T) {
		require.NoError(t, replayKeys(events, NewIntrusive[index.U16, index.U16, slot.Default[index.U16]]()))
	})
	t.Run("keylist/clone", func(t *testing.T) {
		require.NoError(t, replayKeys(events, NewKeyList[index.U16, index.U16, slot.Clone[index.U16]]()))
	})
	t.Run("intrusive/clone", func(t *testing.T) {
		require.NoError(t, replayKeys(events, NewIntrusive[index.U16, index.U16, slot.Clone[index.U16]]()))
	})
}

// TestStress_FreeCountMatchesModel checks FreeSlots against the model after
// every step of a trace.
func TestStress_FreeCountMatchesModel(t *testing.T) {
	events := trace.Generate(trace.Config{Seed: 7, Size: 3000, Removal: 0.45})
	p := NewIntrusive[index.U16, int, slot.Tagged[index.U16, int]]()
	m := trace.NewModel()

	for i, ev := range events {
		if ev.Op == trace.OpInsert {
			m.Insert()
			p.Insert(i)
		} else {
			m.Remove(ev.Key)
			p.Remove(index.U16(ev.Key))
		}
		require.Equal(t, m.Free(), p.FreeSlots(), "event %d", i)
		require.Equal(t, m.Slots(), p.TotalSlots(), "event %d", i)
	}
}
