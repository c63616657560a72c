package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

type view int

const (
	viewDashboard view = iota
	viewRules
	viewSchedules
)

type errMsg struct{ err error }

// RootModel cycles between the dashboard, rules, and schedules views
// with tab. All views share one Session.
type RootModel struct {
	Screen    view
	Session   *Session
	Dashboard DashboardModel
	Rules     RulesModel
	Schedules SchedulesModel
	Quitting  bool
	height    int
}

func NewRootModel(s *Session) RootModel {
	return RootModel{
		Screen:    viewDashboard,
		Session:   s,
		Dashboard: NewDashboardModel(s, 24),
		Rules:     NewRulesModel(s, 24),
		Schedules: NewSchedulesModel(s, 24),
	}
}

func (m RootModel) Init() tea.Cmd {
	return m.Dashboard.Init()
}

func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.Dashboard.Table.SetHeight(tableHeight(msg.Height))
		m.Rules.Table.SetHeight(tableHeight(msg.Height))
		m.Schedules.Table.SetHeight(tableHeight(msg.Height))

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.Quitting = true
			m.Session.Close()
			return m, tea.Quit
		}
		if msg.String() == "tab" && !m.Dashboard.prompting {
			m.Screen = (m.Screen + 1) % 3
			switch m.Screen {
			case viewDashboard:
				return m, m.Dashboard.Init()
			case viewRules:
				return m, m.Rules.Init()
			case viewSchedules:
				return m, m.Schedules.Init()
			}
		}
	}

	var cmd tea.Cmd
	switch m.Screen {
	case viewDashboard:
		m.Dashboard, cmd = m.Dashboard.Update(msg)
	case viewRules:
		m.Rules, cmd = m.Rules.Update(msg)
	case viewSchedules:
		m.Schedules, cmd = m.Schedules.Update(msg)
	}
	return m, cmd
}

func (m RootModel) View() string {
	if m.Quitting {
		return "Bye!\n"
	}
	switch m.Screen {
	case viewDashboard:
		return docStyle.Render(m.Dashboard.View())
	case viewRules:
		return docStyle.Render(m.Rules.View())
	case viewSchedules:
		return docStyle.Render(m.Schedules.View())
	}
	return ""
}
