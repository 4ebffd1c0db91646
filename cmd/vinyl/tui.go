package main

import (
	"github.com/spf13/cobra"

	"github.com/hazadus/go-vinyl/internal/tui"
)

// createTUICommand создает команду tui с привязкой к экземпляру приложения
func (app *Application) createTUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch TUI (Terminal User Interface)",
		Long:  `Launch the interactive track list. Enter plays the selected track, space toggles pause.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.launchTUI()
		},
	}
}

func (app *Application) launchTUI() error {
	view, err := app.newView()
	if err != nil {
		return err
	}
	return tui.NewApp(view, app.logger()).Run()
}
