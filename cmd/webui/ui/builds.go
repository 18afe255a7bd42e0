package ui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// BuildsModel is the operator's view of the registry: a table of every
// uploaded build, newest first, with delete for admins.
type BuildsModel struct {
	Session *Session
	Table   table.Model
	Builds  []BuildRow
	Status  string
	Err     error
}

type buildsLoadedMsg struct {
	Builds []BuildRow
	Err    error
}

type buildDeletedMsg struct {
	ID  uint
	Err error
}

func NewBuildsModel(s *Session, width, height int) BuildsModel {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Name", Width: 20},
		{Title: "Version", Width: 12},
		{Title: "Target", Width: 24},
		{Title: "Uploaded", Width: 20},
		{Title: "By", Width: 12},
		{Title: "MB", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(height-10, 5)),
	)

	sStyle := table.DefaultStyles()
	sStyle.Header = sStyle.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	sStyle.Selected = sStyle.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(sStyle)

	return BuildsModel{Session: s, Table: t}
}

func (m BuildsModel) Init() tea.Cmd { return m.loadCmd }

func (m BuildsModel) loadCmd() tea.Msg {
	builds, err := m.Session.ListBuilds()
	return buildsLoadedMsg{Builds: builds, Err: err}
}

func (m BuildsModel) Update(msg tea.Msg) (BuildsModel, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return m, m.loadCmd
		case "d":
			if m.Session.Role != "admin" {
				m.Status = "viewer role cannot delete builds"
				return m, nil
			}
			row := m.Table.SelectedRow()
			if len(row) == 0 {
				return m, nil
			}
			id, err := strconv.ParseUint(row[0], 10, 32)
			if err != nil {
				return m, nil
			}
			return m, func() tea.Msg {
				return buildDeletedMsg{ID: uint(id), Err: m.Session.DeleteBuild(uint(id))}
			}
		}
	case buildsLoadedMsg:
		m.Err = msg.Err
		if msg.Err == nil {
			m.Builds = msg.Builds
			rows := make([]table.Row, 0, len(msg.Builds))
			for _, b := range msg.Builds {
				target := fmt.Sprintf("%s %s %s", b.PrinterType, b.SubType, b.Make)
				rows = append(rows, table.Row{strconv.FormatUint(uint64(b.ID), 10), b.Name, b.Version, target, b.UploadTime, b.UploadedBy, b.Size})
			}
			m.Table.SetRows(rows)
			m.Status = fmt.Sprintf("%d build(s)", len(msg.Builds))
		}
	case buildDeletedMsg:
		if msg.Err != nil {
			m.Err = msg.Err
			return m, nil
		}
		m.Err = nil
		m.Status = fmt.Sprintf("build %d deleted", msg.ID)
		return m, m.loadCmd
	}

	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

func (m BuildsModel) View() string {
	header := titleStyle.Render("Builds") + "  " + blurredStyle.Render(fmt.Sprintf("role=%s", m.Session.Role))
	help := blurredStyle.Render("r: refresh  d: delete  q: quit")
	body := m.Table.View()
	footer := statusMessageStyle(m.Status)
	if m.Err != nil {
		footer = errorMessageStyle(m.Err.Error())
	}
	return header + "\n\n" + body + "\n\n" + footer + "\n" + help
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
