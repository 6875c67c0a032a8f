package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/joshuapare/miniptr/index"
)

// View renders the slab pane, with the keyboard help laid over it when open.
func (m exploreModel) View() string {
	if !m.showHelp {
		return m.renderMain()
	}
	// Built per render: Update returns a fresh model every time.
	return overlay.New(
		helpModal{keys: m.keys, help: m.help},
		slabView{model: &m},
		overlay.Center,
		overlay.Center,
		0,
		0,
	).View()
}

func (m exploreModel) renderMain() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("miniptr slab explorer"))
	b.WriteString(labelStyle.Render("  " + m.statusLine()))
	b.WriteString("\n\n")

	b.WriteString(paneStyle.Render(m.renderSlots()))
	b.WriteString("\n")

	st := m.pool.Stats()
	fmt.Fprintf(&b, "%s %d live, %d slots, %d free\n",
		labelStyle.Render("pool:"), m.pool.Len(), m.pool.TotalSlots(), m.pool.FreeSlots())
	fmt.Fprintf(&b, "%s %d inserts (%d reused), %d removes\n",
		labelStyle.Render("stats:"), st.Inserts, st.Reused, st.Removes)
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("free chain:"), m.freeChainText(12))

	if m.last != "" {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("last:"), m.last)
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render("error: "+m.err.Error()) + "\n")
	}
	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m exploreModel) statusLine() string {
	status := "paused"
	if m.playing {
		status = "playing"
	}
	return fmt.Sprintf("event %d/%d  %s", m.pos, len(m.events), status)
}

// freeChainText lists the first limit keys of the free chain.
func (m exploreModel) freeChainText(limit int) string {
	chain := m.freeChain(limit)
	parts := make([]string, len(chain))
	for i, k := range chain {
		parts[i] = strconv.Itoa(k)
	}
	if len(chain) < m.pool.FreeSlots() {
		parts = append(parts, "...")
	}
	if len(parts) == 0 {
		return "empty"
	}
	return strings.Join(parts, " -> ")
}

// snapshot is the plain-text state the copy key puts on the clipboard.
func (m exploreModel) snapshot() string {
	st := m.pool.Stats()
	lines := []string{
		m.statusLine(),
		fmt.Sprintf("pool: %d live, %d slots, %d free", m.pool.Len(), m.pool.TotalSlots(), m.pool.FreeSlots()),
		fmt.Sprintf("stats: %d inserts (%d reused), %d removes", st.Inserts, st.Reused, st.Removes),
		"free chain: " + m.freeChainText(m.pool.FreeSlots()),
	}
	if m.last != "" {
		lines = append(lines, "last: "+m.last)
	}
	return strings.Join(lines, "\n") + "\n"
}

// slabView wraps the explorer for use as the overlay background.
type slabView struct {
	model *exploreModel
}

func (v slabView) Init() tea.Cmd                       { return nil }
func (v slabView) Update(tea.Msg) (tea.Model, tea.Cmd) { return v, nil }
func (v slabView) View() string                        { return v.model.renderMain() }

// helpModal is the full key list shown over the slab pane.
type helpModal struct {
	keys KeyMap
	help help.Model
}

func (h helpModal) Init() tea.Cmd                       { return nil }
func (h helpModal) Update(tea.Msg) (tea.Model, tea.Cmd) { return h, nil }

func (h helpModal) View() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		helpTitleStyle.Render("Keyboard Shortcuts"),
		"",
		h.help.FullHelpView(h.keys.FullHelp()),
		"",
		labelStyle.Render("? or esc to close"),
	)
	return modalStyle.Render(body)
}

// renderSlots draws one cell per slot: the key for live slots, a dot for
// free ones, and the next key to be handed out highlighted.
func (m exploreModel) renderSlots() string {
	total := m.pool.TotalSlots()
	if total == 0 {
		return freeSlotStyle.Render("no slots yet")
	}

	const cellWidth = 4
	cols := max(8, (m.width-6)/cellWidth)
	next, hasNext := m.pool.NextKey()

	var rows []string
	var row strings.Builder
	for i := range total {
		k := index.NewUnchecked[index.U16](i)
		s, _ := m.pool.Slot(k)
		cell := fmt.Sprintf("%3d", i)
		switch {
		case hasNext && k == next:
			cell = nextSlotStyle.Render("  >")
		case s.HasValue():
			cell = liveSlotStyle.Render(cell)
		default:
			cell = freeSlotStyle.Render("  .")
		}
		row.WriteString(cell)
		row.WriteByte(' ')
		if (i+1)%cols == 0 {
			rows = append(rows, row.String())
			row.Reset()
		}
	}
	if row.Len() > 0 {
		rows = append(rows, row.String())
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
