// Package tui содержит компоненты для текстового пользовательского интерфейса
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/hazadus/go-vinyl/internal/library"
	"github.com/hazadus/go-vinyl/internal/tui/app"
)

// App представляет основное TUI приложение
type App struct {
	view *library.View
	log  *zap.Logger
}

// NewApp создает новый экземпляр TUI приложения
func NewApp(view *library.View, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	return &App{
		view: view,
		log:  log,
	}
}

// Run запускает TUI приложение
func (tuiApp *App) Run() error {
	model := app.NewMainModel(tuiApp.view)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()

	// Дожидаемся команд, отправленных перед выходом
	tuiApp.view.Wait()

	if err != nil {
		tuiApp.log.Error("ошибка TUI", zap.Error(err))
	}
	return err
}
