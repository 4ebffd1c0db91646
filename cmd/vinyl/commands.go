package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hazadus/go-vinyl/internal/config"
)

// createRootCommand создает корневую команду с настроенными подкомандами
func (app *Application) createRootCommand(ctx context.Context) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vinyl",
		Short: "A terminal music library with cover art",
		Long: `Browse a local or S3 music library sorted by track number, look at the cover art
and control playback from a terminal UI, an HTML gallery or a remote host.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return app.setup()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Без терминала интерфейс не запустить, показываем справку
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return cmd.Help()
			}
			return app.launchTUI()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&app.flags.configPath, "config", config.DefaultPath, "path to the config file")
	flags.StringVar(&app.flags.hostURL, "host", "", "URL of a running 'vinyl serve' to send commands to")
	flags.StringVar(&app.flags.sortMode, "sort", "", "track order: lexical or numeric")
	flags.StringVar(&app.flags.rowKey, "row-key", "", "row identity: artist_title or path")

	// Добавляем команды, передавая в них экземпляр приложения и контекст
	rootCmd.AddCommand(app.createTUICommand())
	rootCmd.AddCommand(app.createListCommand(ctx))
	rootCmd.AddCommand(app.createPlayCommand(ctx))
	rootCmd.AddCommand(app.createPauseCommand(ctx))
	rootCmd.AddCommand(app.createServeCommand(ctx))

	return rootCmd
}
