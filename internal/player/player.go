// Package player содержит компоненты для управления воспроизведением аудио
package player

import (
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/flac"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
	"go.uber.org/zap"
)

var (
	// ErrNothingPlaying возвращается при попытке паузы без активного трека
	ErrNothingPlaying = errors.New("нет активного воспроизведения")
	// ErrUnsupportedFormat возвращается для файлов с неизвестным расширением
	ErrUnsupportedFormat = errors.New("неподдерживаемый формат файла")
)

// resampleQuality - качество передискретизации для beep.Resample
const resampleQuality = 4

// Player управляет воспроизведением треков
type Player struct {
	doneChan chan struct{}
	log      *zap.Logger

	mutex      sync.Mutex
	sampleRate beep.SampleRate // Частота динамиков после инициализации
	current    string
	paused     bool

	streamer beep.StreamSeekCloser
	ctrl     *beep.Ctrl
	source   io.Closer
}

// NewPlayer создает новый экземпляр плеера
func NewPlayer(log *zap.Logger) *Player {
	if log == nil {
		log = zap.NewNop()
	}
	return &Player{
		doneChan: make(chan struct{}, 1),
		log:      log,
	}
}

// Done возвращает канал, в который приходит сигнал о завершении трека
func (p *Player) Done() <-chan struct{} {
	return p.doneChan
}

// Decode выбирает декодер по расширению имени файла
func Decode(name string, rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
		err      error
	)

	switch ext := strings.ToLower(path.Ext(name)); ext {
	case ".mp3":
		streamer, format, err = mp3.Decode(rc)
	case ".wav":
		streamer, format, err = wav.Decode(rc)
	case ".flac":
		streamer, format, err = flac.Decode(rc)
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("ошибка декодирования %s: %w", name, err)
	}
	return streamer, format, nil
}

// Play останавливает текущий трек и начинает воспроизведение нового.
// Источник закрывается плеером.
func (p *Player) Play(name string, rc io.ReadCloser) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.stopInternal()

	streamer, format, err := Decode(name, rc)
	if err != nil {
		rc.Close()
		return err
	}

	// Инициализируем speaker (только один раз)
	if p.sampleRate == 0 {
		err = speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/5))
		if err != nil {
			streamer.Close()
			rc.Close()
			return fmt.Errorf("ошибка инициализации динамиков: %w", err)
		}
		p.sampleRate = format.SampleRate
	}

	var s beep.Streamer = streamer
	if format.SampleRate != p.sampleRate {
		s = beep.Resample(resampleQuality, format.SampleRate, p.sampleRate, streamer)
	}

	p.streamer = streamer
	p.source = rc
	p.current = name
	p.paused = false
	p.ctrl = &beep.Ctrl{Streamer: s}

	speaker.Play(beep.Seq(p.ctrl, beep.Callback(func() {
		select {
		case p.doneChan <- struct{}{}:
		default:
		}
	})))

	p.log.Info("воспроизведение начато", zap.String("path", name), zap.Int("sample_rate", int(format.SampleRate)))
	return nil
}

// TogglePause приостанавливает или возобновляет воспроизведение
func (p *Player) TogglePause() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.ctrl == nil {
		return ErrNothingPlaying
	}

	speaker.Lock()
	p.paused = !p.paused
	p.ctrl.Paused = p.paused
	speaker.Unlock()

	p.log.Debug("пауза переключена", zap.String("path", p.current), zap.Bool("paused", p.paused))
	return nil
}

// Stop останавливает воспроизведение
func (p *Player) Stop() {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.stopInternal()
}

// stopInternal внутренний метод остановки (должен вызываться под мьютексом)
func (p *Player) stopInternal() {
	if p.ctrl != nil {
		speaker.Clear()
		p.ctrl = nil
	}

	if p.streamer != nil {
		p.streamer.Close()
		p.streamer = nil
	}

	if p.source != nil {
		p.source.Close()
		p.source = nil
	}

	p.current = ""
	p.paused = false
}

// Close закрывает плеер и освобождает ресурсы
func (p *Player) Close() error {
	p.Stop()
	return nil
}

// IsPlaying возвращает true, если трек воспроизводится и не на паузе
func (p *Player) IsPlaying() bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.ctrl != nil && !p.paused
}

// Current возвращает путь текущего трека
func (p *Player) Current() string {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.current
}
