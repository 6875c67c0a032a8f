// Package trace generates deterministic insert/remove workloads for the slab
// pools and predicts the key each insert must receive.
//
// Both free-list strategies reuse keys last-freed-first and only append when
// nothing is free, so a single [Model] predicts the keys for any pool.
package trace

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrDiverged is returned by Replay when a pool hands out a key other than
// the one the model predicts.
var ErrDiverged = errors.New("trace: pool diverged from model")

// Op is the kind of an Event.
type Op uint8

const (
	OpInsert Op = iota
	OpRemove
)

func (o Op) String() string {
	if o == OpRemove {
		return "remove"
	}
	return "insert"
}

// Event is one step of a trace. For inserts, Key is the key the pool is
// expected to return.
type Event struct {
	Op  Op
	Key int
}

// Config controls Generate.
type Config struct {
	Seed    int64
	Size    int     // number of events
	Removal float64 // probability that a step removes a live key
	MaxKeys int     // 0 means unbounded
}

// Model tracks live and free keys the same way the pools do.
type Model struct {
	free []int
	next int
	live []int
	pos  map[int]int
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{pos: make(map[int]int)}
}

// Next returns the key the next Insert will produce.
func (m *Model) Next() int {
	if n := len(m.free); n > 0 {
		return m.free[n-1]
	}
	return m.next
}

// Insert records an insert and returns its key.
func (m *Model) Insert() int {
	var k int
	if n := len(m.free); n > 0 {
		k = m.free[n-1]
		m.free = m.free[:n-1]
	} else {
		k = m.next
		m.next++
	}
	m.pos[k] = len(m.live)
	m.live = append(m.live, k)
	return k
}

// Remove records the removal of a live key.
func (m *Model) Remove(k int) {
	i, ok := m.pos[k]
	if !ok {
		panic(fmt.Sprintf("trace: remove of non-live key %d", k))
	}
	last := m.live[len(m.live)-1]
	m.live[i] = last
	m.pos[last] = i
	m.live = m.live[:len(m.live)-1]
	delete(m.pos, k)
	m.free = append(m.free, k)
}

// Live returns the number of live keys.
func (m *Model) Live() int { return len(m.live) }

// Slots returns the number of keys ever handed out.
func (m *Model) Slots() int { return m.next }

// Free returns the number of free keys.
func (m *Model) Free() int { return len(m.free) }

// Generate builds a trace from cfg. The same config always yields the same
// trace.
func Generate(cfg Config) []Event {
	rng := rand.New(rand.NewSource(cfg.Seed))
	m := NewModel()
	events := make([]Event, 0, cfg.Size)

	for len(events) < cfg.Size {
		full := cfg.MaxKeys > 0 && m.Live() >= cfg.MaxKeys
		if m.Live() > 0 && (full || rng.Float64() < cfg.Removal) {
			k := m.live[rng.Intn(len(m.live))]
			m.Remove(k)
			events = append(events, Event{Op: OpRemove, Key: k})
			continue
		}
		events = append(events, Event{Op: OpInsert, Key: m.Insert()})
	}
	return events
}

// Target is the pool a trace is replayed against.
type Target struct {
	// Insert stores v and returns the assigned key.
	Insert func(v int) (int, error)
	// Remove frees k and returns the value stored under it.
	Remove func(k int) (int, error)
	// ValueLimit bounds the values passed to Insert, for pools whose value
	// type is narrow. Zero means unbounded.
	ValueLimit int
}

// Replay runs events against t. The value stored by each insert is its event
// ordinal, reduced modulo ValueLimit when set.
func Replay(events []Event, t Target) error {
	stored := make(map[int]int)
	for i, ev := range events {
		switch ev.Op {
		case OpInsert:
			v := i
			if t.ValueLimit > 0 {
				v %= t.ValueLimit
			}
			k, err := t.Insert(v)
			if err != nil {
				return fmt.Errorf("event %d: %w", i, err)
			}
			if k != ev.Key {
				return fmt.Errorf("%w: event %d got key %d, want %d", ErrDiverged, i, k, ev.Key)
			}
			stored[k] = v
		case OpRemove:
			v, err := t.Remove(ev.Key)
			if err != nil {
				return fmt.Errorf("event %d: %w", i, err)
			}
			if want := stored[ev.Key]; v != want {
				return fmt.Errorf("%w: event %d removed value %d from key %d, want %d", ErrDiverged, i, v, ev.Key, want)
			}
			delete(stored, ev.Key)
		}
	}
	return nil
}
