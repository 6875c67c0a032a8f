package slab

import (
	"testing"

	"github.com/joshuapare/miniptr/index"
	"github.com/joshuapare/miniptr/internal/trace"
	"github.com/joshuapare/miniptr/slot"
)

// Sub-benchmarks are named <free list>/<slot layout> so that
// scripts/benchcmp can pair keylist and intrusive runs.

// Benchmark_InsertRemove measures steady-state churn on a warm pool.
func Benchmark_InsertRemove(b *testing.B) {
	b.Run("keylist/tagged", func(b *testing.B) {
		benchChurn(b, NewKeyList[index.U32, int, slot.Tagged[index.U32, int]]())
	})
	b.Run("intrusive/tagged", func(b *testing.B) {
		benchChurn(b, NewIntrusive[index.U32, int, slot.Tagged[index.U32, int]]())
	})
	b.Run("keylist/default", func(b *testing.B) {
		benchChurn(b, NewKeyList[index.U32, int, slot.Default[int]]())
	})
}

func benchChurn(b *testing.B, s Store[index.U32, int]) {
	keys := make([]index.U32, 1024)
	for i := range keys {
		keys[i], _ = s.TryInsert(i)
	}
	b.ResetTimer()
	b.ReportAllocs()
	for i := range b.N {
		j := i & 1023
		s.TryRemove(keys[j])
		keys[j], _ = s.TryInsert(i)
	}
}

// Benchmark_Replay replays a fixed random trace on a fresh pool.
func Benchmark_Replay(b *testing.B) {
	events := trace.Generate(trace.Config{Seed: 171, Size: 10000, Removal: 0.3})
	b.Run("keylist/default", func(b *testing.B) {
		benchReplay(b, events, func() Store[index.U32, index.U32] {
			return NewKeyList[index.U32, index.U32, slot.Default[index.U32]]()
		})
	})
	b.Run("intrusive/default", func(b *testing.B) {
		benchReplay(b, events, func() Store[index.U32, index.U32] {
			return NewIntrusive[index.U32, index.U32, slot.Default[index.U32]]()
		})
	})
}

func benchReplay(b *testing.B, events []trace.Event, fresh func() Store[index.U32, index.U32]) {
	b.ReportAllocs()
	for range b.N {
		q := fresh()
		for i, ev := range events {
			if ev.Op == trace.OpInsert {
				q.TryInsert(index.U32(i))
			} else {
				q.TryRemove(index.U32(ev.Key))
			}
		}
	}
}
