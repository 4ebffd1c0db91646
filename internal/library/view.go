// Package library содержит представление библиотеки: однократную загрузку списка треков,
// его сортировку, построение строк для отображения и передачу команд воспроизведения хосту
package library

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/hazadus/go-vinyl/internal/data"
)

// Имена команд хоста
const (
	CmdFindFiles = "find_files"
	CmdPlayFile  = "play_file"
	CmdPausePlay = "pause_play"
)

// Host - канал команд к процессу, который находит и воспроизводит файлы
type Host interface {
	// FindFiles возвращает найденные треки
	FindFiles(ctx context.Context) ([]data.Track, error)
	// PlayFile начинает воспроизведение файла по пути
	PlayFile(ctx context.Context, path string) error
	// PausePlay переключает паузу на стороне хоста
	PausePlay(ctx context.Context) error
}

// Phase - наблюдаемое состояние представления
type Phase int

const (
	// PhaseEmpty - данных еще нет (или загрузка не удалась)
	PhaseEmpty Phase = iota
	// PhaseLoaded - список треков получен
	PhaseLoaded
)

// ErrAlreadyLoaded возвращается при повторном вызове Load
var ErrAlreadyLoaded = errors.New("список треков уже запрошен")

// Option настраивает View
type Option func(*View)

// WithSortMode задает режим сортировки
func WithSortMode(mode SortMode) Option {
	return func(v *View) { v.sortMode = mode }
}

// WithRowKey задает способ построения ключа строки
func WithRowKey(key RowKey) Option {
	return func(v *View) { v.rowKey = key }
}

// WithLogger задает логгер
func WithLogger(log *zap.Logger) Option {
	return func(v *View) {
		if log != nil {
			v.log = log
		}
	}
}

// WithDispatchErrorHandler задает обработчик ошибок команд play_file и pause_play.
// Без него ошибки этих команд отбрасываются.
func WithDispatchErrorHandler(fn func(command string, err error)) Option {
	return func(v *View) { v.onDispatchError = fn }
}

// View хранит список треков и передает хосту намерения пользователя
type View struct {
	host            Host
	sortMode        SortMode
	rowKey          RowKey
	log             *zap.Logger
	onDispatchError func(command string, err error)

	requested atomic.Bool
	inflight  sync.WaitGroup

	mutex  sync.RWMutex
	tracks []data.Track
	loaded bool
	err    error
}

// New создает представление поверх канала команд хоста
func New(host Host, opts ...Option) *View {
	v := &View{
		host:     host,
		sortMode: SortLexical,
		rowKey:   KeyArtistTitle,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Load один раз запрашивает список треков, сортирует и сохраняет его.
// Блокирует вызывающего до ответа хоста, таймаут не применяется.
func (v *View) Load(ctx context.Context) error {
	if !v.requested.CompareAndSwap(false, true) {
		return ErrAlreadyLoaded
	}

	v.log.Debug("запрос списка треков", zap.String("command", CmdFindFiles))
	tracks, err := v.host.FindFiles(ctx)
	if err != nil {
		err = fmt.Errorf("ошибка получения списка треков: %w", err)
		v.mutex.Lock()
		v.err = err
		v.mutex.Unlock()
		v.log.Warn("список треков не получен", zap.Error(err))
		return err
	}

	sorted := Sort(tracks, v.sortMode)

	v.mutex.Lock()
	v.tracks = sorted
	v.loaded = true
	v.mutex.Unlock()

	v.log.Info("список треков загружен", zap.Int("tracks", len(sorted)), zap.String("sort", string(v.sortMode)))
	return nil
}

// Phase возвращает текущее состояние представления
func (v *View) Phase() Phase {
	v.mutex.RLock()
	defer v.mutex.RUnlock()
	if v.loaded {
		return PhaseLoaded
	}
	return PhaseEmpty
}

// Err возвращает ошибку загрузки, если она была.
// Позволяет отличить сбой хоста от пустой библиотеки.
func (v *View) Err() error {
	v.mutex.RLock()
	defer v.mutex.RUnlock()
	return v.err
}

// Tracks возвращает копию отсортированного списка треков
func (v *View) Tracks() []data.Track {
	v.mutex.RLock()
	defer v.mutex.RUnlock()
	return slices.Clone(v.tracks)
}

// Rows строит строки для отображения из текущего состояния
func (v *View) Rows() []Row {
	v.mutex.RLock()
	defer v.mutex.RUnlock()
	return Render(v.tracks, v.rowKey)
}

// Play отправляет хосту команду play_file и не ждет результата
func (v *View) Play(path string) {
	v.dispatch(CmdPlayFile, func(ctx context.Context) error {
		return v.host.PlayFile(ctx, path)
	})
}

// TogglePause отправляет хосту команду pause_play и не ждет результата
func (v *View) TogglePause() {
	v.dispatch(CmdPausePlay, func(ctx context.Context) error {
		return v.host.PausePlay(ctx)
	})
}

// Wait дожидается завершения всех отправленных команд
func (v *View) Wait() {
	v.inflight.Wait()
}

func (v *View) dispatch(command string, call func(ctx context.Context) error) {
	v.inflight.Add(1)
	go func() {
		defer v.inflight.Done()
		if err := call(context.Background()); err != nil && v.onDispatchError != nil {
			v.onDispatchError(command, err)
		}
	}()
}
