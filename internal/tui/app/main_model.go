// Package app содержит основную логику TUI приложения
package app

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-vinyl/internal/library"
	"github.com/hazadus/go-vinyl/internal/tui/tracklist"
)

// controlsHeight - строки под панель управления и справку
const controlsHeight = 3

var (
	controlsStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#5f5fd7")).
			Padding(0, 2)

	helpStyle     = lipgloss.NewStyle().PaddingLeft(2)
	quitTextStyle = lipgloss.NewStyle().Margin(1, 0, 2, 4)
)

// keyMap описывает глобальные клавиши
type keyMap struct {
	Play  key.Binding
	Pause key.Binding
	Quit  key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Play, k.Pause, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Play: tracklist.PlayKey,
	Pause: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("пробел", "пауза"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "выход"),
	),
}

// MainModel представляет главную модель TUI
type MainModel struct {
	view           *library.View
	tracklistModel *tracklist.Model
	help           help.Model
	width          int
	quitting       bool
}

// NewMainModel создает новую главную модель
func NewMainModel(view *library.View) *MainModel {
	return &MainModel{
		view:           view,
		tracklistModel: tracklist.NewModel(view),
		help:           help.New(),
	}
}

// Init инициализирует модель
func (m *MainModel) Init() tea.Cmd {
	return m.tracklistModel.Init()
}

// Update обрабатывает сообщения
func (m *MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		if key.Matches(msg, keys.Pause) {
			m.view.TogglePause()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		var cmd tea.Cmd
		m.tracklistModel, cmd = m.tracklistModel.Update(tea.WindowSizeMsg{
			Width:  msg.Width,
			Height: max(msg.Height-controlsHeight, 0),
		})
		return m, cmd
	}

	var cmd tea.Cmd
	m.tracklistModel, cmd = m.tracklistModel.Update(msg)
	return m, cmd
}

// View отображает интерфейс
func (m *MainModel) View() string {
	if m.quitting {
		return quitTextStyle.Render("До свидания!")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.tracklistModel.View(),
		m.controlsView(),
		helpStyle.Render(m.help.View(keys)),
	)
}

// controlsView - панель паузы, видна всегда, даже при пустом списке
func (m *MainModel) controlsView() string {
	return controlsStyle.Render("⏯  Пауза / продолжить")
}

// Tracklist возвращает модель списка треков
func (m *MainModel) Tracklist() *tracklist.Model {
	return m.tracklistModel
}
