package ui

import (
	"fmt"
	"strconv"
	"strings"

	"foxus/app/dto"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DashboardModel shows the focus state and today's totals side by
// side with the top apps table. 's' opens the budget prompt, 'e' ends
// the session, 'r' refreshes.
type DashboardModel struct {
	Session *Session
	Table   table.Model
	Budget  textinput.Model

	State     dto.FocusStateResponse
	Stats     dto.StatsResponse
	prompting bool
	Err       error
}

type dashboardDataMsg struct {
	state dto.FocusStateResponse
	stats dto.StatsResponse
}

func NewDashboardModel(s *Session, height int) DashboardModel {
	columns := []table.Column{
		{Title: "App", Width: 36},
		{Title: "Time", Width: 12},
		{Title: "Kind", Width: 14},
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

	budget := textinput.New()
	budget.Placeholder = "budget minutes"
	budget.CharLimit = 4
	budget.Width = 16

	return DashboardModel{Session: s, Table: t, Budget: budget}
}

func (m DashboardModel) Init() tea.Cmd { return m.refresh }

func (m DashboardModel) refresh() tea.Msg {
	state, err := m.Session.FocusState()
	if err != nil {
		return errMsg{err}
	}
	stats, err := m.Session.TodayStats()
	if err != nil {
		return errMsg{err}
	}
	return dashboardDataMsg{state: state, stats: stats}
}

func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	var cmd tea.Cmd

	if m.prompting {
		return m.updatePrompt(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return m, m.refresh
		case "s":
			m.prompting = true
			m.Budget.SetValue("")
			m.Budget.Focus()
			return m, textinput.Blink
		case "e":
			return m, func() tea.Msg {
				if err := m.Session.EndSession(); err != nil {
					return errMsg{err}
				}
				return m.refresh()
			}
		case "q":
			return m, tea.Quit
		}

	case dashboardDataMsg:
		m.Err = nil
		m.State = msg.state
		m.Stats = msg.stats
		rows := make([]table.Row, 0, len(msg.stats.TopApps))
		for _, app := range msg.stats.TopApps {
			rows = append(rows, table.Row{app.AppName, formatSecs(app.TotalSecs), productivityLabel(app.Productivity)})
		}
		m.Table.SetRows(rows)

	case errMsg:
		m.Err = msg.err
	}

	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

func (m DashboardModel) updatePrompt(msg tea.Msg) (DashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			minutes, err := strconv.Atoi(strings.TrimSpace(m.Budget.Value()))
			m.prompting = false
			m.Budget.Blur()
			if err != nil {
				m.Err = fmt.Errorf("budget must be a number of minutes")
				return m, nil
			}
			return m, func() tea.Msg {
				if err := m.Session.StartSession(minutes); err != nil {
					return errMsg{err}
				}
				return m.refresh()
			}
		case "esc":
			m.prompting = false
			m.Budget.Blur()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.Budget, cmd = m.Budget.Update(msg)
	return m, cmd
}

func (m DashboardModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Foxus - Today") + "\n\n")

	if m.State.Active {
		b.WriteString(activeStyle.Render("● Focus session active") +
			fmt.Sprintf("  budget %s", formatSecs(m.State.BudgetRemaining)))
		if m.State.SessionDurationSecs != nil {
			b.WriteString(fmt.Sprintf("  elapsed %s", formatSecs(int(*m.State.SessionDurationSecs))))
		}
	} else {
		b.WriteString(idleStyle.Render("○ No focus session"))
	}
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("%s  %s  %s\n\n",
		productiveStyle.Render("productive "+formatSecs(m.Stats.ProductiveSecs)),
		"neutral "+formatSecs(m.Stats.NeutralSecs),
		distractingStyle.Render("distracting "+formatSecs(m.Stats.DistractingSecs))))

	b.WriteString(m.Table.View())
	b.WriteString("\n\n")

	if m.prompting {
		b.WriteString("Start session " + m.Budget.View() + "  (enter to start, esc to cancel)")
	} else {
		b.WriteString(blurredStyle.Render("s start session · e end session · r refresh · tab views · q quit"))
	}

	if m.Err != nil {
		b.WriteString("\n" + errorMessageStyle(m.Err.Error()))
	}
	return b.String()
}

func tableHeight(height int) int {
	h := height - 12
	if h < 3 {
		h = 8
	}
	return h
}

func formatSecs(secs int) string {
	if secs < 0 {
		secs = 0
	}
	if secs < 3600 {
		return fmt.Sprintf("%dm%02ds", secs/60, secs%60)
	}
	return fmt.Sprintf("%dh%02dm", secs/3600, (secs%3600)/60)
}

func productivityLabel(p int) string {
	switch {
	case p > 0:
		return "productive"
	case p < 0:
		return "distracting"
	default:
		return "neutral"
	}
}
