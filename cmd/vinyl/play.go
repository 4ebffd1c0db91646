package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// createPlayCommand создает команду play с привязкой к экземпляру приложения
func (app *Application) createPlayCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "play [path]",
		Short: "Play a track by its library path",
		Long: `Send play_file to the host. With --host the command returns immediately,
otherwise the track is played by this process until it ends or Ctrl+C is pressed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return app.playTrack(ctx, args[0])
		},
	}
}

// createPauseCommand создает команду pause с привязкой к экземпляру приложения
func (app *Application) createPauseCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "pause",
		Short: "Toggle pause on the host",
		Long:  `Send pause_play to the host. Useful together with --host.`,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.togglePause(ctx)
		},
	}
}

func (app *Application) playTrack(ctx context.Context, path string) error {
	h, err := app.Host()
	if err != nil {
		return err
	}

	if err := h.PlayFile(ctx, path); err != nil {
		return err
	}
	fmt.Printf("🎵 Сейчас играет: %s\n", path)

	// Удаленный хост играет сам, локальный плеер нужно дождаться
	if app.player == nil {
		return nil
	}
	select {
	case <-app.player.Done():
		fmt.Println("✅ Воспроизведение завершено")
	case <-ctx.Done():
		fmt.Println("\n⏹️  Воспроизведение остановлено")
	}
	return nil
}

func (app *Application) togglePause(ctx context.Context) error {
	h, err := app.Host()
	if err != nil {
		return err
	}

	if err := h.PausePlay(ctx); err != nil {
		return err
	}
	fmt.Println("⏯️  Команда паузы отправлена")
	if app.Config.HostURL == "" {
		fmt.Println("💡 Без --host в этом процессе ничего не играет")
	}
	return nil
}
