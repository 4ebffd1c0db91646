// Package tracklist содержит модель экрана списка треков для TUI
package tracklist

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-vinyl/internal/artwork"
	"github.com/hazadus/go-vinyl/internal/data"
	"github.com/hazadus/go-vinyl/internal/library"
	"github.com/hazadus/go-vinyl/internal/utils"
)

// Размер превью обложки в терминале: колонки и строки
const (
	previewWidth  = 24
	previewHeight = 12
)

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	paginationStyle   = list.DefaultStyles().PaginationStyle.PaddingLeft(4)
	previewStyle      = lipgloss.NewStyle().MarginLeft(2).MarginTop(1)
	emptyPreviewStyle = lipgloss.NewStyle().
				Width(previewWidth).
				Height(previewHeight).
				Align(lipgloss.Center, lipgloss.Center).
				Foreground(lipgloss.Color("#666666")).
				Border(lipgloss.RoundedBorder())
)

// LoadedMsg приходит, когда загрузка библиотеки завершилась
type LoadedMsg struct {
	Err error
}

// PlayKey - клавиша воспроизведения выбранного трека
var PlayKey = key.NewBinding(
	key.WithKeys("enter"),
	key.WithHelp("enter", "воспроизвести"),
)

// rowItem реализует интерфейс list.Item для строки библиотеки
type rowItem struct {
	row library.Row
}

func (i rowItem) FilterValue() string {
	return fmt.Sprintf("%s %s %s", i.row.Artist, i.row.Title, i.row.Album)
}

// rowItemDelegate реализует отображение элементов списка
type rowItemDelegate struct{}

func (d rowItemDelegate) Height() int                             { return 1 }
func (d rowItemDelegate) Spacing() int                            { return 0 }
func (d rowItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d rowItemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(rowItem)
	if !ok {
		return
	}

	// Форматируем строку в виде таблицы: № | Название | Исполнитель | Альбом
	str := strings.Join([]string{
		utils.Column(i.row.TrackNumber, 6),
		utils.Column(i.row.Title, 32),
		utils.Column(i.row.Artist, 20),
		utils.TruncateString(i.row.Album, 24),
	}, " ")

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + strings.Join(s, " "))
		}
	}

	fmt.Fprint(w, fn(str))
}

// Model представляет модель экрана списка треков
type Model struct {
	view    *library.View
	list    list.Model
	visuals map[string]*data.Visual

	loaded     bool
	preview    string
	previewFor string
}

// NewModel создает новую модель списка треков. Треки появятся после LoadedMsg.
func NewModel(view *library.View) *Model {
	l := list.New(nil, rowItemDelegate{}, 0, 0)
	l.Title = "Треки"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = titleStyle
	l.Styles.PaginationStyle = paginationStyle

	return &Model{
		view: view,
		list: l,
	}
}

// Init запускает однократную загрузку библиотеки
func (m *Model) Init() tea.Cmd {
	view := m.view
	return func() tea.Msg {
		return LoadedMsg{Err: view.Load(context.Background())}
	}
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		m.loaded = true
		// При ошибке список остается пустым
		if msg.Err != nil {
			return m, nil
		}
		cmd := m.setRows()
		m.refreshPreview()
		return m, cmd

	case tea.WindowSizeMsg:
		m.list.SetSize(max(msg.Width-previewWidth-4, 0), msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, PlayKey) {
			if row, ok := m.SelectedRow(); ok {
				m.view.Play(row.Path)
			}
			return m, nil
		}
	}

	// Обновляем список
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	m.refreshPreview()
	return m, cmd
}

// View отображает модель
func (m *Model) View() string {
	return lipgloss.JoinHorizontal(lipgloss.Top, m.list.View(), previewStyle.Render(m.preview))
}

// Loaded сообщает, завершилась ли загрузка
func (m *Model) Loaded() bool {
	return m.loaded
}

// SelectedRow возвращает выбранную строку
func (m *Model) SelectedRow() (library.Row, bool) {
	item, ok := m.list.SelectedItem().(rowItem)
	if !ok {
		return library.Row{}, false
	}
	return item.row, true
}

// Rows возвращает строки в порядке отображения
func (m *Model) Rows() []library.Row {
	items := m.list.Items()
	rows := make([]library.Row, 0, len(items))
	for _, item := range items {
		if ri, ok := item.(rowItem); ok {
			rows = append(rows, ri.row)
		}
	}
	return rows
}

func (m *Model) setRows() tea.Cmd {
	rows := m.view.Rows()
	items := make([]list.Item, len(rows))
	for i, row := range rows {
		items[i] = rowItem{row: row}
	}

	m.visuals = make(map[string]*data.Visual, len(rows))
	for _, t := range m.view.Tracks() {
		m.visuals[t.Path] = t.Visual
	}

	return m.list.SetItems(items)
}

// refreshPreview перерисовывает обложку, только если выбор изменился
func (m *Model) refreshPreview() {
	row, ok := m.SelectedRow()
	if !ok {
		m.preview, m.previewFor = "", ""
		return
	}
	if m.previewFor == row.Path && m.preview != "" {
		return
	}

	m.previewFor = row.Path
	preview, err := artwork.Preview(m.visuals[row.Path], previewWidth, previewHeight)
	if err != nil {
		// Рамка-заглушка вместо обложки
		preview = emptyPreviewStyle.Render("♪")
	}
	m.preview = preview
}
