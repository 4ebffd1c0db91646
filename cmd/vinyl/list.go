package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-vinyl/internal/utils"
)

// createListCommand создает команду list с привязкой к экземпляру приложения
func (app *Application) createListCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all tracks from the library",
		Long:  `Load the library once and print it in display order.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.listTracks(ctx)
		},
	}
}

func (app *Application) listTracks(ctx context.Context) error {
	view, err := app.newView()
	if err != nil {
		return err
	}
	if err := view.Load(ctx); err != nil {
		return err
	}

	rows := view.Rows()
	if len(rows) == 0 {
		fmt.Println("📚 Библиотека пуста.")
		return nil
	}

	fmt.Printf("📚 Найдено треков: %d\n\n", len(rows))

	// Выводим заголовок таблицы
	fmt.Printf("%-6s %-30s %-20s %-20s %-3s %s\n",
		"№", "Название", "Исполнитель", "Альбом", "🖼", "Путь")
	fmt.Println(strings.Repeat("-", 120))

	for _, row := range rows {
		artwork := ""
		if row.HasArtwork {
			artwork = "✓"
		}
		fmt.Printf("%s %s %s %s %-3s %s\n",
			utils.Column(row.TrackNumber, 6),
			utils.Column(utils.OrDash(row.Title), 30),
			utils.Column(utils.OrDash(row.Artist), 20),
			utils.Column(utils.OrDash(row.Album), 20),
			artwork,
			row.Path)
	}

	fmt.Println()
	fmt.Println("💡 Используйте 'vinyl play [путь]' для воспроизведения трека")
	return nil
}
