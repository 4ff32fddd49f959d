package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/notionplan/notionplan/internal/cli/formatter"
	"github.com/notionplan/notionplan/internal/domain"
)

type reviewAction int

const (
	reviewDone reviewAction = iota
	reviewCancel
	reviewEdit
)

// reviewKeyMap holds the review list's key bindings; the bottom help
// line is rendered from these.
type reviewKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Toggle     key.Binding
	ApproveAll key.Binding
	RejectAll  key.Binding
	Edit       key.Binding
	Confirm    key.Binding
	Cancel     key.Binding
}

func defaultReviewKeyMap() reviewKeyMap {
	return reviewKeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k")),
		Down:       key.NewBinding(key.WithKeys("down", "j")),
		Toggle:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		ApproveAll: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "approve all")),
		RejectAll:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "approve none")),
		Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Confirm:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "cancel")),
	}
}

// shortHelp lists the bindings shown in the bottom bar, in order.
func (k reviewKeyMap) shortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.ApproveAll, k.RejectAll, k.Edit, k.Confirm, k.Cancel}
}

// reviewModel lets the user walk the proposed operations, toggle
// approvals, and pick one to edit.
type reviewModel struct {
	operations []domain.Operation
	keys       reviewKeyMap
	cursor     int
	action     reviewAction
	editIndex  int
}

func newReviewModel(operations []domain.Operation) *reviewModel {
	return &reviewModel{operations: operations, keys: defaultReviewKeyMap()}
}

func (m *reviewModel) Init() tea.Cmd { return nil }

func (m *reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.operations)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Toggle):
		m.operations[m.cursor].Approved = !m.operations[m.cursor].Approved
	case key.Matches(keyMsg, m.keys.ApproveAll):
		for i := range m.operations {
			m.operations[i].Approved = true
		}
	case key.Matches(keyMsg, m.keys.RejectAll):
		for i := range m.operations {
			m.operations[i].Approved = false
		}
	case key.Matches(keyMsg, m.keys.Edit):
		m.action = reviewEdit
		m.editIndex = m.cursor
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Confirm):
		m.action = reviewDone
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Cancel):
		m.action = reviewCancel
		return m, tea.Quit
	}
	return m, nil
}

func (m *reviewModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(formatter.Header("Review Plan"))
	b.WriteString("\n\n")

	for i, op := range m.operations {
		cursor := "  "
		if i == m.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
		}

		check := formatter.Dim("[ ]")
		if op.Approved {
			check = formatter.StyleGreen.Render("[✓]")
		}

		b.WriteString(fmt.Sprintf("%s%s %s %s  %s\n",
			cursor, check,
			formatter.KindBadge(op.Kind),
			formatter.StyleFg.Render(op.MainFieldValue()),
			formatter.ConfidenceBadge(op.Confidence),
		))

		if i == m.cursor {
			if op.Reason != "" {
				b.WriteString("      " + formatter.Dim(op.Reason) + "\n")
			}
			for _, w := range op.Warnings {
				b.WriteString("      " + formatter.StyleYellow.Render("WARNING: "+w) + "\n")
			}
		}
	}

	approved := 0
	for _, op := range m.operations {
		if op.Approved {
			approved++
		}
	}
	b.WriteString("\n")
	b.WriteString(formatter.Dim(fmt.Sprintf("  %d of %d approved", approved, len(m.operations))))
	b.WriteString("\n\n")
	hints := make([]string, 0, 6)
	for _, bind := range m.keys.shortHelp() {
		hints = append(hints, bind.Help().Key+" "+bind.Help().Desc)
	}
	b.WriteString(formatter.Dim("  " + strings.Join(hints, " · ")))
	b.WriteString("\n")

	return b.String()
}

// runReview walks the user through approving and editing operations.
// Editing happens outside the list view, then the list reopens.
func runReview(schema *domain.DatabaseSchema, plan domain.Plan) (domain.Plan, error) {
	operations := plan.Operations

	for {
		model := newReviewModel(operations)
		if _, err := tea.NewProgram(model).Run(); err != nil {
			return domain.Plan{}, fmt.Errorf("running review: %w", err)
		}

		switch model.action {
		case reviewCancel:
			return domain.Plan{}, fmt.Errorf("review cancelled")
		case reviewEdit:
			edited, err := runEditForm(schema, operations[model.editIndex])
			if err != nil {
				return domain.Plan{}, err
			}
			operations[model.editIndex] = edited
		case reviewDone:
			plan.Operations = operations
			return plan, nil
		}
	}
}
