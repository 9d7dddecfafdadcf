package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/familytree/pkg/family"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ConfirmModel - yes/no prompt
// =============================================================================

// ConfirmModel is the bubbletea model for a yes/no question. It defaults
// to "no".
type ConfirmModel struct {
	Question  string
	Yes       bool
	Confirmed bool
	Done      bool
}

// NewConfirmModel creates a prompt for question.
func NewConfirmModel(question string) ConfirmModel {
	return ConfirmModel{Question: question}
}

func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "y", "Y":
		m.Yes, m.Confirmed, m.Done = true, true, true
		return m, tea.Quit
	case "n", "N", "q", "esc", "ctrl+c":
		m.Yes, m.Confirmed, m.Done = false, false, true
		return m, tea.Quit
	case "left", "right", "h", "l", "tab":
		m.Yes = !m.Yes
	case "enter":
		m.Confirmed, m.Done = m.Yes, true
		return m, tea.Quit
	}
	return m, nil
}

func (m ConfirmModel) View() string {
	if m.Done {
		return ""
	}
	yes, no := listDimStyle.Render(" yes "), listSelectedStyle.Render("[no]")
	if m.Yes {
		yes, no = listSelectedStyle.Render("[yes]"), listDimStyle.Render(" no ")
	}
	return fmt.Sprintf("%s %s  %s\n%s\n",
		StyleWarning.Render(m.Question), yes, no,
		listDimStyle.Render("y/n answer  ←/→ toggle  ⏎ confirm"))
}

// confirm asks question on the terminal.
func confirm(question string) (bool, error) {
	final, err := tea.NewProgram(NewConfirmModel(question)).Run()
	if err != nil {
		return false, fmt.Errorf("confirm prompt: %w", err)
	}
	return final.(ConfirmModel).Confirmed, nil
}

// =============================================================================
// MemberPickerModel - Interactive member selection
// =============================================================================

// MemberPickerModel is the bubbletea model for choosing one member when a
// command is run without an id. Typing filters by name or id.
type MemberPickerModel struct {
	Members  []family.Member
	Filter   string
	Cursor   int
	Height   int
	Offset   int
	Selected *family.Member
}

// NewMemberPickerModel creates a picker over members.
func NewMemberPickerModel(members []family.Member) MemberPickerModel {
	return MemberPickerModel{Members: members, Height: 15}
}

// Visible returns the members matching the filter.
func (m MemberPickerModel) Visible() []family.Member {
	if m.Filter == "" {
		return m.Members
	}
	f := strings.ToLower(m.Filter)
	var out []family.Member
	for _, mem := range m.Members {
		if strings.Contains(strings.ToLower(mem.Name), f) || strings.Contains(strings.ToLower(mem.ID), f) {
			out = append(out, mem)
		}
	}
	return out
}

func (m MemberPickerModel) Init() tea.Cmd {
	return nil
}

func (m MemberPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		visible := m.Visible()
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyUp:
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case tea.KeyDown:
			if m.Cursor < len(visible)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case tea.KeyEnter:
			if len(visible) == 0 {
				return m, nil
			}
			sel := visible[m.Cursor]
			m.Selected = &sel
			return m, tea.Quit
		case tea.KeyBackspace:
			if m.Filter != "" {
				m.Filter = m.Filter[:len(m.Filter)-1]
				m.Cursor, m.Offset = 0, 0
			}
		case tea.KeyRunes:
			m.Filter += string(msg.Runes)
			m.Cursor, m.Offset = 0, 0
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m MemberPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Member"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("type to filter  ↑/↓ navigate  ⏎ select  esc quit"))
	b.WriteString("\n")
	if m.Filter != "" {
		b.WriteString(StyleHighlight.Render("filter: " + m.Filter))
	}
	b.WriteString("\n\n")

	visible := m.Visible()
	end := min(m.Offset+m.Height, len(visible))
	for i := m.Offset; i < end; i++ {
		mem := visible[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%s %-24s %s", cursor,
			genderStyle(mem.Gender).Render(mem.Gender.Symbol()), mem.Name,
			listDimStyle.Render(mem.ID))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}
	if len(visible) == 0 {
		b.WriteString(listDimStyle.Render("  no matches"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(visible)), len(visible))))
	return b.String()
}

// pickMember runs the picker. It returns "" when the user quits.
func pickMember(members []family.Member) (string, error) {
	if len(members) == 0 {
		return "", nil
	}
	final, err := tea.NewProgram(NewMemberPickerModel(members)).Run()
	if err != nil {
		return "", fmt.Errorf("member picker: %w", err)
	}
	if sel := final.(MemberPickerModel).Selected; sel != nil {
		return sel.ID, nil
	}
	return "", nil
}
