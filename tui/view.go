package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kvernberg/planboard/core/board"
	"github.com/kvernberg/planboard/core/grid"
	"github.com/kvernberg/planboard/core/schedule"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	laneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	laneSelStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	barStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("24"))
	barSelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("208"))
	blockStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("55"))
	carryingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	dialogStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).BorderForeground(lipgloss.Color("208"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

const laneLabelWidth = 14

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	rng := m.engine.Range()
	days := rng.Days()

	title := days[0]
	if len(days) > 1 {
		title = fmt.Sprintf("%s .. %s", days[0], days[len(days)-1])
	}
	b.WriteString(headerStyle.Render("planboard  "+title) + "\n")
	b.WriteString(mutedStyle.Render(m.timeAxis(rng)) + "\n")

	for i, l := range m.lanes {
		b.WriteString(m.renderLane(l, i == m.laneIdx, rng))
	}

	if m.carrying != "" {
		b.WriteString(carryingStyle.Render("carrying "+m.carrying) +
			mutedStyle.Render("  enter: drop on selected lane  esc: cancel") + "\n")
	}
	if m.naming {
		b.WriteString(dialogStyle.Render("Block name: "+m.nameInput.View()) + "\n")
	} else if res, pending := m.engine.Pending(); pending {
		b.WriteString(m.renderDialog(res) + "\n")
	} else {
		b.WriteString(mutedStyle.Render("enter: pick up/drop  j/k: select  tab: lane  h/l: period  v: day/week  x: unblock  R: rename  D: dissolve  q: quit") + "\n")
	}
	if m.err != nil {
		b.WriteString(errStyle.Render(m.err.Error()) + "\n")
	}
	return b.String()
}

// cellWidth returns how many terminal cells one grid column takes.
func (m Model) cellWidth(rng grid.DayRange) int {
	cols := rng.Columns()
	avail := m.width - laneLabelWidth
	if avail < cols || m.width == 0 {
		return 1
	}
	w := avail / cols
	if w > 4 {
		w = 4
	}
	return w
}

func (m Model) timeAxis(rng grid.DayRange) string {
	cw := m.cellWidth(rng)
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", laneLabelWidth))
	// a label every 2 hours keeps the axis readable at narrow widths
	for seg := 0; seg < rng.Columns(); seg++ {
		cell := strings.Repeat(" ", cw)
		if seg%grid.SegmentsPerDay == 0 || (cw >= 2 && seg%4 == 0) {
			label := grid.SegmentLabel(seg % grid.SegmentsPerDay)
			if len(label) > cw {
				label = label[:cw]
			}
			cell = label + strings.Repeat(" ", cw-len(label))
		}
		b.WriteString(cell)
	}
	return b.String()
}

func (m Model) renderLane(l lane, selected bool, rng grid.DayRange) string {
	derived := m.laneItems(l)
	cw := m.cellWidth(rng)
	cols := rng.Columns()

	label := l.name
	if label == "" {
		label = l.id
	}
	style := laneStyle
	if selected {
		style = laneSelStyle
	}

	rows := make([][]rune, derived.Rows)
	owner := make([][]int, derived.Rows)
	for r := range rows {
		rows[r] = []rune(strings.Repeat("·", cols*cw))
		owner[r] = make([]int, cols*cw)
		for i := range owner[r] {
			owner[r][i] = -1
		}
	}
	for idx, it := range derived.Items {
		start := it.ColStart * cw
		width := it.ColSpan * cw
		text := " " + it.Label
		for i := 0; i < width && start+i < len(rows[it.Row]); i++ {
			ch := ' '
			if i < len(text) {
				ch = rune(text[i])
			}
			rows[it.Row][start+i] = ch
			owner[it.Row][start+i] = idx
		}
	}

	var b strings.Builder
	for r := range rows {
		name := ""
		if r == 0 {
			name = label
			if len(name) > laneLabelWidth-2 {
				name = name[:laneLabelWidth-2]
			}
		}
		b.WriteString(style.Render(fmt.Sprintf("%-*s", laneLabelWidth, name)))
		b.WriteString(m.renderRow(rows[r], owner[r], derived.Items, selected))
		b.WriteString("\n")
	}
	return b.String()
}

// renderRow styles each contiguous run of cells by the item that owns it.
func (m Model) renderRow(cells []rune, owner []int, items []schedule.Item, laneSelected bool) string {
	var b strings.Builder
	i := 0
	for i < len(cells) {
		j := i
		for j < len(cells) && owner[j] == owner[i] {
			j++
		}
		run := string(cells[i:j])
		if owner[i] == -1 {
			b.WriteString(mutedStyle.Render(run))
		} else {
			it := items[owner[i]]
			style := barStyle
			if it.IsBlock() {
				style = blockStyle
			}
			if laneSelected && owner[i] == m.itemIdx {
				style = barSelStyle
			}
			b.WriteString(style.Render(run))
		}
		i = j
	}
	return b.String()
}

// renderDialog renders the overlap resolution prompt.
func (m Model) renderDialog(res board.Resolution) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Overlap on the %s lane (%d bookings).\n", res.Target.Kind, len(res.ClusterIDs))
	if res.OfferBlockID != "" {
		fmt.Fprintf(&b, "[a] add to block %q   [r] revert", res.OfferBlockName)
	} else {
		b.WriteString("[n] create new block   [r] revert")
	}
	return dialogStyle.Render(b.String())
}
