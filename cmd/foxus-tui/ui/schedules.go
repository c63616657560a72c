package ui

import (
	"strconv"
	"strings"

	"foxus/app/dto"
	"foxus/app/models"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var dayAbbrev = map[int]string{
	1: "Mon", 2: "Tue", 3: "Wed", 4: "Thu", 5: "Fri", 6: "Sat", 7: "Sun",
}

// SchedulesModel lists the recurring focus windows.
type SchedulesModel struct {
	Session *Session
	Table   table.Model
	Err     error
}

type schedulesDataMsg struct {
	schedules []dto.ScheduleResponse
}

func NewSchedulesModel(s *Session, height int) SchedulesModel {
	columns := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Days", Width: 24},
		{Title: "Window", Width: 14},
		{Title: "Budget", Width: 10},
		{Title: "Enabled", Width: 8},
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

	return SchedulesModel{Session: s, Table: t}
}

func (m SchedulesModel) Init() tea.Cmd { return m.refresh }

func (m SchedulesModel) refresh() tea.Msg {
	schedules, err := m.Session.ListSchedules()
	if err != nil {
		return errMsg{err}
	}
	return schedulesDataMsg{schedules: schedules}
}

func (m SchedulesModel) Update(msg tea.Msg) (SchedulesModel, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return m, m.refresh
		case "q":
			return m, tea.Quit
		}

	case schedulesDataMsg:
		m.Err = nil
		rows := make([]table.Row, 0, len(msg.schedules))
		for _, sched := range msg.schedules {
			enabled := "no"
			if sched.Enabled {
				enabled = "yes"
			}
			rows = append(rows, table.Row{
				strconv.FormatUint(uint64(sched.ID), 10),
				formatDays(sched.DaysOfWeek),
				sched.StartTime + "-" + sched.EndTime,
				formatSecs(sched.DistractionBudgetSecs),
				enabled,
			})
		}
		m.Table.SetRows(rows)

	case errMsg:
		m.Err = msg.err
	}

	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

func formatDays(csv string) string {
	s := models.FocusSchedule{DaysOfWeek: csv}
	days := s.Days()
	parts := make([]string, 0, len(days))
	for _, d := range days {
		if name, ok := dayAbbrev[d]; ok {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, " ")
}

func (m SchedulesModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Foxus - Schedules") + "\n\n")
	b.WriteString(m.Table.View())
	b.WriteString("\n\n")
	b.WriteString(blurredStyle.Render("r refresh · tab views · q quit"))
	if m.Err != nil {
		b.WriteString("\n" + errorMessageStyle(m.Err.Error()))
	}
	return b.String()
}
