package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

type state int

const (
	stateLogin state = iota
	stateBuilds
)

type RootModel struct {
	State    state
	Session  *Session
	Login    LoginModel
	Builds   BuildsModel
	Quitting bool
	width    int
	height   int
}

func NewRootModel(serverURL string) RootModel {
	s := NewSession(serverURL)
	return RootModel{
		State:   stateLogin,
		Session: s,
		Login:   NewLoginModel(s),
	}
}

func (m RootModel) Init() tea.Cmd {
	return m.Login.Init()
}

func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.State == stateBuilds {
			m.Builds.Table.SetHeight(max(msg.Height-10, 5))
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.Quitting = true
			return m, tea.Quit
		case "q":
			if m.State == stateBuilds {
				m.Quitting = true
				return m, tea.Quit
			}
		}

	case loginResultMsg:
		if msg.Err != nil {
			m.Login.Err = msg.Err
			return m, nil
		}
		m.State = stateBuilds
		m.Builds = NewBuildsModel(m.Session, m.width, m.height)
		return m, m.Builds.Init()
	}

	var cmd tea.Cmd
	switch m.State {
	case stateLogin:
		m.Login, cmd = m.Login.Update(msg)
	case stateBuilds:
		m.Builds, cmd = m.Builds.Update(msg)
	}
	return m, cmd
}

func (m RootModel) View() string {
	if m.Quitting {
		return ""
	}
	switch m.State {
	case stateLogin:
		return docStyle.Render(m.Login.View())
	case stateBuilds:
		return docStyle.Render(m.Builds.View())
	}
	return ""
}
