package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/aepplanner/pkg/xdm"
)

// Tree styles
var (
	treeSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	treeNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	treeTypeStyle     = lipgloss.NewStyle().Foreground(colorGray)
	treeBadgeStyle    = lipgloss.NewStyle().Foreground(colorYellow)
	treeIdentityStyle = lipgloss.NewStyle().Foreground(colorGreen)
	treeDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// TreeModel - Interactive field tree
// =============================================================================

// TreeModel is the bubbletea model for browsing a reconstructed field tree.
// Expansion is tracked per node path, so toggling one node leaves every
// other node as it was.
type TreeModel struct {
	Root   *xdm.Node
	State  *xdm.ExpansionState
	Cursor int
	Height int
	Offset int

	rows []xdm.Row
}

// newTreeModel creates a tree model with only the root expanded.
func newTreeModel(root *xdm.Node) TreeModel {
	m := TreeModel{Root: root, State: &xdm.ExpansionState{}, Height: 20}
	m.refresh()
	return m
}

func (m *TreeModel) refresh() {
	m.rows = xdm.Rows(m.Root, m.State)
	if m.Cursor >= len(m.rows) {
		m.Cursor = max(len(m.rows)-1, 0)
	}
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m TreeModel) Init() tea.Cmd {
	return nil
}

func (m TreeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.rows)-1 {
				m.Cursor++
			}
		case "enter", " ":
			if r, ok := m.current(); ok && r.Kind != xdm.KindLeaf {
				m.State.Toggle(r.Path)
			}
		case "right", "l":
			if r, ok := m.current(); ok && r.Kind != xdm.KindLeaf {
				m.State.Set(r.Path, true)
			}
		case "left", "h":
			if r, ok := m.current(); ok {
				if r.Expanded {
					m.State.Set(r.Path, false)
				} else {
					m.Cursor = m.parentIndex()
				}
			}
		case "e":
			m.State.ExpandAll(m.Root)
		case "c":
			m.State = &xdm.ExpansionState{}
			m.Cursor = 0
		}
		m.refresh()
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
		m.refresh()
	}
	return m, nil
}

func (m TreeModel) current() (xdm.Row, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.rows) {
		return xdm.Row{}, false
	}
	return m.rows[m.Cursor], true
}

// parentIndex is the index of the closest row above the cursor with a
// smaller depth, or the cursor itself at the root.
func (m TreeModel) parentIndex() int {
	depth := m.rows[m.Cursor].Depth
	for i := m.Cursor - 1; i >= 0; i-- {
		if m.rows[i].Depth < depth {
			return i
		}
	}
	return m.Cursor
}

func (m TreeModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Schema Fields"))
	b.WriteString("\n")
	b.WriteString(treeDimStyle.Render("↑/↓ navigate  ⏎ toggle  ←/→ collapse/expand  e expand all  c collapse  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.rows))
	for i := m.Offset; i < end; i++ {
		b.WriteString(m.renderRow(m.rows[i], i == m.Cursor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(treeDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.rows))))
	return b.String()
}

func (m TreeModel) renderRow(r xdm.Row, selected bool) string {
	cursor := "  "
	label := treeNormalStyle
	if selected {
		cursor = "▸ "
		label = treeSelectedStyle
	}

	line := cursor + strings.Repeat("  ", r.Depth) + r.Marker() + " " + label.Render(r.Label())
	line += "  " + treeTypeStyle.Render(xdm.DisplayType(r.Node))
	for _, badge := range r.Badges() {
		style := treeBadgeStyle
		if badge == "id" {
			style = treeIdentityStyle
		}
		line += " " + style.Render("["+badge+"]")
	}
	return line
}
