// Package tui renders the schedule board in the terminal: one lane per
// resource, bookings as bars, keyboard driven drag-and-drop and the
// overlap resolution dialog.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kvernberg/planboard/core/board"
	"github.com/kvernberg/planboard/core/events"
	"github.com/kvernberg/planboard/core/schedule"
)

// Run starts the board UI and blocks until the user quits or the
// context is cancelled.
func Run(ctx context.Context, engine *board.Engine) error {
	program := tea.NewProgram(New(engine), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// lane identifies one drop target row group on the board.
type lane struct {
	kind events.TargetKind
	id   string
	name string
}

// Model is the bubbletea model for the schedule board.
type Model struct {
	engine *board.Engine

	lanes   []lane
	laneIdx int
	itemIdx int

	// carrying holds the id of the booking picked up for reassignment.
	carrying string

	naming       bool // collecting a block name for CreateNewBlock or rename
	renameTarget string
	nameInput    textinput.Model

	width  int
	height int
	err    error
}

// New builds the board model from the engine's current snapshot.
func New(engine *board.Engine) Model {
	input := textinput.New()
	input.Placeholder = "Run name"
	input.CharLimit = 40
	m := Model{engine: engine, nameInput: input}
	m.rebuildLanes()
	return m
}

func (m *Model) rebuildLanes() {
	snap := m.engine.Snapshot()
	lanes := []lane{{kind: events.TargetUnassigned, name: "Unassigned"}}
	for _, v := range snap.Vehicles {
		if v.Active {
			lanes = append(lanes, lane{kind: events.TargetVehicle, id: v.ID, name: v.Name})
		}
	}
	for _, d := range snap.Drivers {
		if d.Active {
			lanes = append(lanes, lane{kind: events.TargetDriver, id: d.ID, name: d.Name})
		}
	}
	m.lanes = lanes
	if m.laneIdx >= len(lanes) {
		m.laneIdx = len(lanes) - 1
	}
	m.clampItem()
}

func (m *Model) laneItems(l lane) schedule.Lane {
	switch l.kind {
	case events.TargetVehicle:
		return m.engine.VehicleLane(l.id)
	case events.TargetDriver:
		return m.engine.DriverLane(l.id)
	default:
		return m.engine.UnassignedLane()
	}
}

func (m *Model) clampItem() {
	items := m.laneItems(m.lanes[m.laneIdx]).Items
	if m.itemIdx >= len(items) {
		m.itemIdx = len(items) - 1
	}
	if m.itemIdx < 0 {
		m.itemIdx = 0
	}
}

func (m Model) selectedItem() (schedule.Item, bool) {
	items := m.laneItems(m.lanes[m.laneIdx]).Items
	if len(items) == 0 || m.itemIdx >= len(items) {
		return schedule.Item{}, false
	}
	return items[m.itemIdx], true
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if m.naming {
			return m.updateNaming(msg)
		}
		if _, pending := m.engine.Pending(); pending {
			return m.updateDialog(msg)
		}
		return m.updateBoard(msg)
	}
	return m, nil
}

func (m Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "left", "h":
		m.engine.SetRange(m.engine.Range().Prev())
	case "right", "l":
		m.engine.SetRange(m.engine.Range().Next())
	case "v":
		m.engine.SetRange(m.engine.Range().Toggle())
	case "tab", "down", "j":
		if msg.String() == "down" || msg.String() == "j" {
			// within-lane selection first
			items := m.laneItems(m.lanes[m.laneIdx]).Items
			if m.itemIdx < len(items)-1 {
				m.itemIdx++
				return m, nil
			}
		}
		m.laneIdx = (m.laneIdx + 1) % len(m.lanes)
		m.itemIdx = 0
	case "shift+tab", "up", "k":
		if msg.String() == "up" || msg.String() == "k" {
			if m.itemIdx > 0 {
				m.itemIdx--
				return m, nil
			}
		}
		m.laneIdx = (m.laneIdx - 1 + len(m.lanes)) % len(m.lanes)
		m.itemIdx = 0
	case "enter", " ":
		if m.carrying == "" {
			if it, ok := m.selectedItem(); ok && !it.IsBlock() {
				m.carrying = it.Bookings[0].ID
			}
			return m, nil
		}
		l := m.lanes[m.laneIdx]
		m.err = m.engine.Drop(ctx, m.carrying, board.DropTarget{Kind: l.kind, ResourceID: l.id})
		m.carrying = ""
		m.rebuildLanes()
	case "esc":
		m.carrying = ""
	case "x":
		if it, ok := m.selectedItem(); ok && !it.IsBlock() && it.Bookings[0].BlockID != "" {
			m.err = m.engine.RemoveFromBlock(ctx, it.Bookings[0].ID)
			m.rebuildLanes()
		}
	case "D":
		if it, ok := m.selectedItem(); ok && it.IsBlock() {
			m.err = m.engine.DissolveBlock(ctx, it.BlockID)
			m.rebuildLanes()
		}
	case "R":
		if it, ok := m.selectedItem(); ok && it.IsBlock() {
			m.naming = true
			m.nameInput.SetValue("")
			m.nameInput.Focus()
			m.renameTarget = it.BlockID
		}
	}
	return m, nil
}

// updateDialog handles keys while the overlap resolution dialog is open.
func (m Model) updateDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	res, _ := m.engine.Pending()
	switch msg.String() {
	case "a":
		if res.OfferBlockID != "" {
			m.err = m.engine.ConfirmAddToBlock(ctx)
			m.rebuildLanes()
		}
	case "n":
		if res.OfferBlockID == "" {
			m.naming = true
			m.nameInput.SetValue("")
			m.nameInput.Focus()
			m.renameTarget = ""
		}
	case "r", "esc":
		m.err = m.engine.Decline(ctx)
		m.rebuildLanes()
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

// updateNaming handles the block name input for both CreateNewBlock and
// rename.
func (m Model) updateNaming(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	switch msg.String() {
	case "enter":
		name := m.nameInput.Value()
		m.naming = false
		m.nameInput.Blur()
		if m.renameTarget != "" {
			m.err = m.engine.RenameBlock(ctx, m.renameTarget, name)
			m.renameTarget = ""
		} else {
			m.err = m.engine.ConfirmNewBlock(ctx, name)
		}
		m.rebuildLanes()
		return m, nil
	case "esc":
		m.naming = false
		m.nameInput.Blur()
		m.renameTarget = ""
		return m, nil
	}
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}
