// Package host реализует команды find_files, play_file и pause_play в том же процессе
package host

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/hazadus/go-vinyl/internal/data"
	"github.com/hazadus/go-vinyl/internal/player"
)

// Source перечисляет треки и открывает их для воспроизведения
type Source interface {
	Tracks(ctx context.Context) ([]data.Track, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

// Playback управляет воспроизведением
type Playback interface {
	Play(name string, rc io.ReadCloser) error
	TogglePause() error
	Stop()
}

// Service связывает источник треков с плеером
type Service struct {
	source   Source
	playback Playback
	log      *zap.Logger
}

// NewService создает новый сервис хоста
func NewService(source Source, playback Playback, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		source:   source,
		playback: playback,
		log:      log,
	}
}

// FindFiles возвращает все треки источника
func (s *Service) FindFiles(ctx context.Context) ([]data.Track, error) {
	tracks, err := s.source.Tracks(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска треков: %w", err)
	}
	s.log.Info("треки найдены", zap.Int("count", len(tracks)))
	return tracks, nil
}

// PlayFile останавливает текущий трек и начинает воспроизведение указанного
func (s *Service) PlayFile(ctx context.Context, path string) error {
	s.playback.Stop()

	// Поток должен жить дольше запроса, который его открыл
	rc, err := s.source.Open(context.WithoutCancel(ctx), path)
	if err != nil {
		return fmt.Errorf("ошибка открытия трека: %w", err)
	}

	if err := s.playback.Play(path, rc); err != nil {
		return fmt.Errorf("ошибка воспроизведения: %w", err)
	}
	return nil
}

// PausePlay переключает паузу. Без активного трека ничего не делает.
func (s *Service) PausePlay(_ context.Context) error {
	err := s.playback.TogglePause()
	if errors.Is(err, player.ErrNothingPlaying) {
		s.log.Debug("пауза без активного трека")
		return nil
	}
	return err
}
