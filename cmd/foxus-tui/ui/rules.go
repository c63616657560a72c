package ui

import (
	"strconv"
	"strings"

	"foxus/app/dto"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// RulesModel lists the categorization rules with their category names
// resolved. Read-only; edits go through the desktop app or the
// command socket directly.
type RulesModel struct {
	Session *Session
	Table   table.Model
	Err     error
}

type rulesDataMsg struct {
	rules      []dto.RuleResponse
	categories []dto.CategoryResponse
}

func NewRulesModel(s *Session, height int) RulesModel {
	columns := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Pattern", Width: 28},
		{Title: "Kind", Width: 8},
		{Title: "Category", Width: 18},
		{Title: "Priority", Width: 8},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(tableHeight(height)),
	)
	st := table.DefaultStyles()
	st.Header = st.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	st.Selected = st.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(st)

	return RulesModel{Session: s, Table: t}
}

func (m RulesModel) Init() tea.Cmd { return m.refresh }

func (m RulesModel) refresh() tea.Msg {
	rules, err := m.Session.ListRules()
	if err != nil {
		return errMsg{err}
	}
	categories, err := m.Session.ListCategories()
	if err != nil {
		return errMsg{err}
	}
	return rulesDataMsg{rules: rules, categories: categories}
}

func (m RulesModel) Update(msg tea.Msg) (RulesModel, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return m, m.refresh
		case "q":
			return m, tea.Quit
		}

	case rulesDataMsg:
		m.Err = nil
		names := make(map[uint]string, len(msg.categories))
		for _, c := range msg.categories {
			names[c.ID] = c.Name
		}
		rows := make([]table.Row, 0, len(msg.rules))
		for _, rule := range msg.rules {
			rows = append(rows, table.Row{
				strconv.FormatUint(uint64(rule.ID), 10),
				rule.Pattern,
				rule.MatchKind,
				names[rule.CategoryID],
				strconv.Itoa(rule.Priority),
			})
		}
		m.Table.SetRows(rows)

	case errMsg:
		m.Err = msg.err
	}

	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

func (m RulesModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Foxus - Rules") + "\n\n")
	b.WriteString(m.Table.View())
	b.WriteString("\n\n")
	b.WriteString(blurredStyle.Render("r refresh · tab views · q quit"))
	if m.Err != nil {
		b.WriteString("\n" + errorMessageStyle(m.Err.Error()))
	}
	return b.String()
}
