package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kvistberg/arena2d/internal/core"
)

// BlockbreakSelection holds the user's selection from the Blockbreak menu.
type BlockbreakSelection struct {
	Preset string // difficulty preset: easy, normal, hard, fixed
}

// blockbreakPresets lists the selectable presets in display order.
var blockbreakPresets = []struct {
	id    string
	label string
}{
	{"easy", "Easy (5 lives, wide paddle)"},
	{"normal", "Normal"},
	{"hard", "Hard (2 lives, fast ball)"},
	{"fixed", "Fixed (no ramp-up)"},
}

// BlockbreakMenuModel lets users choose a difficulty preset for Blockbreak.
type BlockbreakMenuModel struct {
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	selection BlockbreakSelection
	choosing  bool
	quitting  bool
	back      bool
}

// NewBlockbreakMenuModel creates a new Blockbreak preset selection model.
func NewBlockbreakMenuModel(width, height int) BlockbreakMenuModel {
	return BlockbreakMenuModel{
		cursor:    1, // default to normal
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m BlockbreakMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m BlockbreakMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m BlockbreakMenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(blockbreakPresets)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.selection = BlockbreakSelection{Preset: blockbreakPresets[m.cursor].id}
		return m, nil
	case MenuActionBack:
		m.back = true
		return m, nil
	}

	return m, nil
}

// View renders the preset selection.
func (m BlockbreakMenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("B L O C K B R E A K", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty:", m.width))
	b.WriteString("\n\n")

	for i, preset := range blockbreakPresets {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(fmt.Sprintf("%s%s", cursor, preset.label), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m BlockbreakMenuModel) Selected() *BlockbreakSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsChoosing returns true if still in selection mode.
func (m BlockbreakMenuModel) IsChoosing() bool {
	return m.choosing
}

// IsQuitting returns true if user wants to quit.
func (m BlockbreakMenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m BlockbreakMenuModel) WantsBack() bool {
	return m.back
}

// RunBlockbreakSelector runs the Blockbreak preset selection and returns the selection.
func RunBlockbreakSelector(cfg core.RuntimeConfig) (*BlockbreakSelection, core.RuntimeConfig, error) {
	model := NewBlockbreakMenuModel(cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, cfg, err
	}

	m, ok := finalModel.(BlockbreakMenuModel)
	if !ok {
		return nil, cfg, nil
	}

	if m.IsQuitting() || m.WantsBack() {
		return nil, cfg, nil
	}

	return m.Selected(), cfg, nil
}
