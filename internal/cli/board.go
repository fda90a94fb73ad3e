package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smartject/smartject/internal/alloc"
	"github.com/smartject/smartject/internal/cli/formatter"
	"github.com/smartject/smartject/internal/domain"
	"github.com/smartject/smartject/internal/money"
)

// boardKeyMap holds the board's key bindings.
type boardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

var boardKeys = boardKeyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// boardLoadedMsg signals that schedule data has been loaded.
type boardLoadedMsg struct {
	proposal *domain.Proposal
	ledger   *alloc.Ledger
	err      error
}

// boardModel is a read-only scrolling view of one proposal's schedule with
// deliverable checklists expanded under the selected milestone.
type boardModel struct {
	app        *App
	proposalID string

	proposal *domain.Proposal
	ledger   *alloc.Ledger
	cursor   int
	loading  bool
	err      error
}

func runBoard(app *App, proposalID string) error {
	m := &boardModel{app: app, proposalID: proposalID, loading: true}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m *boardModel) Init() tea.Cmd {
	return m.load()
}

func (m *boardModel) load() tea.Cmd {
	app := m.app
	proposalID := m.proposalID
	return func() tea.Msg {
		ctx := context.Background()
		p, err := app.Proposals.GetByID(ctx, proposalID)
		if err != nil {
			return boardLoadedMsg{err: err}
		}
		ledger, err := app.Milestones.Schedule(ctx, proposalID)
		if err != nil {
			return boardLoadedMsg{err: err}
		}
		return boardLoadedMsg{proposal: p, ledger: ledger}
	}
}

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case boardLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.proposal = msg.proposal
		m.ledger = msg.ledger
		if m.cursor >= m.ledger.Len() {
			m.cursor = m.ledger.Len() - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, boardKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, boardKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, boardKeys.Down):
			if m.ledger != nil && m.cursor < m.ledger.Len()-1 {
				m.cursor++
			}
		case key.Matches(msg, boardKeys.Refresh):
			m.loading = true
			return m, m.load()
		}
	}
	return m, nil
}

func (m *boardModel) View() string {
	if m.loading {
		return formatter.Dim("Loading schedule…")
	}
	if m.err != nil {
		return formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n" + formatter.Dim("q to quit")
	}

	var b strings.Builder

	b.WriteString(formatter.Header(m.proposal.Title))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s  %s %s\n\n",
		formatter.Dim("Budget:"), money.FormatInt(m.app.Symbol, m.proposal.Budget),
		formatter.Dim("Timeline:"), m.proposal.Timeline))

	items := m.ledger.Milestones()
	if len(items) == 0 {
		b.WriteString(formatter.Dim("No milestones yet.\n"))
	}
	for i, ms := range items {
		marker := "  "
		line := fmt.Sprintf("%d. %-28s %3d%%  %-10s %s",
			i+1, ms.Name, ms.Percentage, ms.Amount, ms.DueDate.Format("2006-01-02"))
		status := formatter.MilestoneStatusStyle(ms.Status).Render(string(ms.Status))
		if i == m.cursor {
			marker = formatter.StyleHeader.Render("❯ ")
			line = formatter.Bold(line)
		}
		b.WriteString(fmt.Sprintf("%s%s  %s\n", marker, line, status))

		if i == m.cursor {
			for _, d := range ms.Deliverables {
				check := formatter.Dim("[ ]")
				if d.Completed {
					check = formatter.StyleGreen.Render("[✓]")
				}
				b.WriteString(fmt.Sprintf("     %s %s\n", check, d.Description))
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s\n", formatter.Dim("Allocated:"),
		formatter.RenderAllocation(m.ledger.TotalPercentage(), 20)))
	b.WriteString(formatter.Dim("↑/↓ move · r refresh · q quit"))

	return b.String()
}
