package main

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/joshuapare/miniptr/index"
	"github.com/joshuapare/miniptr/internal/trace"
	"github.com/joshuapare/miniptr/slab"
	"github.com/joshuapare/miniptr/slot"
)

var (
	exploreSize    int
	exploreRemoval float64
	exploreSeed    int64
	exploreMaxLive int
)

func init() {
	cmd := newExploreCmd()
	cmd.Flags().IntVar(&exploreSize, "size", 200, "Number of trace events")
	cmd.Flags().Float64Var(&exploreRemoval, "removal", 0.4, "Probability that an event removes a key")
	cmd.Flags().Int64Var(&exploreSeed, "seed", 171, "Trace seed")
	cmd.Flags().IntVar(&exploreMaxLive, "max-live", 48, "Cap on live keys")
	rootCmd.AddCommand(cmd)
}

func newExploreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explore",
		Short: "Step through a trace on an interactive slab view",
		Long: `The explore command opens a terminal view of an intrusive slab pool
and steps through a random insert/remove trace one event at a time. Live
slots, free slots, and the free-list chain are drawn after every event.

Example:
  miniptrctl explore
  miniptrctl explore --size 1000 --max-live 96`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newExploreModel(trace.Config{
				Seed:    exploreSeed,
				Size:    exploreSize,
				Removal: exploreRemoval,
				MaxKeys: exploreMaxLive,
			})
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
	}
}

type (
	exploreSlot = slot.Tagged[index.U16, int]
	explorePool = slab.Pool[index.U16, int, exploreSlot, *exploreSlot]
)

// playInterval is the delay between events while playing.
const playInterval = 120 * time.Millisecond

type tickMsg time.Time

// copyResultMsg reports the outcome of a clipboard write.
type copyResultMsg struct {
	err error
}

// writeClipboard is swapped out in tests; CI machines have no clipboard.
var writeClipboard = clipboard.WriteAll

// exploreModel is the bubbletea model for the explore command.
type exploreModel struct {
	events []trace.Event
	pool   *explorePool
	pos    int // events applied so far
	last   string
	err    error
	notice string // result of the last copy

	playing  bool
	showHelp bool
	width    int

	keys KeyMap
	help help.Model
}

func newExploreModel(cfg trace.Config) (exploreModel, error) {
	if cfg.MaxKeys <= 0 || cfg.MaxKeys > index.Max[index.U16]()+1 {
		return exploreModel{}, fmt.Errorf("--max-live must be within [1, %d], got %d",
			index.Max[index.U16]()+1, cfg.MaxKeys)
	}
	if cfg.Size < 0 {
		return exploreModel{}, fmt.Errorf("--size must not be negative, got %d", cfg.Size)
	}
	return exploreModel{
		events: trace.Generate(cfg),
		pool:   slab.NewIntrusive[index.U16, int, exploreSlot](),
		width:  80,
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}, nil
}

func (m exploreModel) Init() tea.Cmd { return nil }

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		if !m.playing {
			return m, nil
		}
		if !m.step() {
			m.playing = false
			return m, nil
		}
		return m, tick()

	case copyResultMsg:
		if msg.err != nil {
			m.notice = "copy failed: " + msg.err.Error()
		} else {
			m.notice = "copied pool state to clipboard"
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
		case key.Matches(msg, m.keys.Close):
			m.showHelp = false
		case key.Matches(msg, m.keys.Copy):
			return m, copySnapshot(m.snapshot())
		case key.Matches(msg, m.keys.Step):
			m.playing = false
			m.step()
		case key.Matches(msg, m.keys.Back):
			m.playing = false
			m.seek(m.pos - 1)
		case key.Matches(msg, m.keys.End):
			m.playing = false
			m.seek(len(m.events))
		case key.Matches(msg, m.keys.Reset):
			m.playing = false
			m.seek(0)
		case key.Matches(msg, m.keys.Play):
			m.playing = !m.playing
			if m.playing {
				return m, tick()
			}
		}
	}
	return m, nil
}

func copySnapshot(text string) tea.Cmd {
	return func() tea.Msg {
		return copyResultMsg{err: writeClipboard(text)}
	}
}

func tick() tea.Cmd {
	return tea.Tick(playInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// step applies the next event and reports whether one was left.
func (m *exploreModel) step() bool {
	if m.err != nil || m.pos >= len(m.events) {
		return false
	}
	ev := m.events[m.pos]
	switch ev.Op {
	case trace.OpInsert:
		k, err := m.pool.TryInsert(m.pos)
		if err != nil {
			m.err = err
			return false
		}
		if k.Index() != ev.Key {
			m.err = fmt.Errorf("%w: event %d got key %d, model expected %d", trace.ErrDiverged, m.pos, k.Index(), ev.Key)
			return false
		}
		m.last = fmt.Sprintf("insert %d -> key %d", m.pos, ev.Key)
	case trace.OpRemove:
		v, ok := m.pool.TryRemove(index.NewUnchecked[index.U16](ev.Key))
		if !ok {
			m.err = fmt.Errorf("%w: event %d removed vacant key %d", trace.ErrDiverged, m.pos, ev.Key)
			return false
		}
		m.last = fmt.Sprintf("remove key %d -> %d", ev.Key, v)
	}
	m.pos++
	return true
}

// seek rebuilds the pool from scratch up to event n. Traces are
// deterministic, so going back is a replay of the prefix.
func (m *exploreModel) seek(n int) {
	n = max(0, min(n, len(m.events)))
	if n < m.pos || m.err != nil {
		m.pool = slab.NewIntrusive[index.U16, int, exploreSlot]()
		m.pos, m.last, m.err = 0, "", nil
	}
	for m.pos < n && m.step() {
	}
}

// freeChain walks the free list from its head, at most limit links.
func (m exploreModel) freeChain(limit int) []int {
	next, ok := m.pool.NextKey()
	if !ok {
		return nil
	}
	var chain []int
	k := next
	for len(chain) < limit {
		s, ok := m.pool.Slot(k)
		if !ok || s.HasValue() {
			break
		}
		chain = append(chain, k.Index())
		link, _ := s.Key()
		if link == k {
			break
		}
		k = link
	}
	return chain
}
