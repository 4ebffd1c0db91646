package tracklist

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/go-vinyl/internal/data"
	"github.com/hazadus/go-vinyl/internal/library"
)

type stubHost struct {
	mu     sync.Mutex
	tracks []data.Track
	err    error
	played []string
}

func (h *stubHost) FindFiles(context.Context) ([]data.Track, error) { return h.tracks, h.err }

func (h *stubHost) PlayFile(_ context.Context, path string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.played = append(h.played, path)
	return nil
}

func (h *stubHost) PausePlay(context.Context) error { return nil }

func str(s string) *string { return &s }

func testTracks(t *testing.T) []data.Track {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{G: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Ошибка кодирования PNG: %v", err)
	}

	return []data.Track{
		{Path: "/2.mp3", Title: str("Второй"), Artist: str("Группа"), TrackNumber: str("2")},
		{Path: "/10.mp3", Title: str("Десятый"), TrackNumber: str("10"),
			Visual: &data.Visual{MediaType: "image/png", Data: buf.Bytes()}},
	}
}

// loadModel выполняет команду Init и передает результат в модель
func loadModel(t *testing.T, host *stubHost) (*Model, *library.View) {
	t.Helper()
	view := library.New(host)
	model := NewModel(view)

	cmd := model.Init()
	if cmd == nil {
		t.Fatal("Init должен возвращать команду загрузки")
	}
	msg := cmd()
	if _, ok := msg.(LoadedMsg); !ok {
		t.Fatalf("Ожидалось LoadedMsg, получено %T", msg)
	}
	model, _ = model.Update(msg)
	model, _ = model.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return model, view
}

func TestLoadFillsList(t *testing.T) {
	model, _ := loadModel(t, &stubHost{tracks: testTracks(t)})

	if !model.Loaded() {
		t.Error("Модель должна считаться загруженной")
	}
	rows := model.Rows()
	if len(rows) != 2 {
		t.Fatalf("Ожидалось 2 строки, получено %d", len(rows))
	}
	// Лексическая сортировка: "10" раньше "2"
	if rows[0].Path != "/10.mp3" || rows[1].Path != "/2.mp3" {
		t.Errorf("Неожиданный порядок: %s, %s", rows[0].Path, rows[1].Path)
	}

	out := model.View()
	if !strings.Contains(out, "Десятый") || !strings.Contains(out, "Второй") {
		t.Errorf("Строки не отображаются:\n%s", out)
	}
	if !strings.Contains(out, "▀") {
		t.Error("Для выбранного трека с обложкой ожидалось превью")
	}
}

func TestLoadFailureKeepsEmptyList(t *testing.T) {
	model, view := loadModel(t, &stubHost{err: errors.New("хост недоступен")})

	if !model.Loaded() {
		t.Error("Модель должна считаться загруженной после ошибки")
	}
	if len(model.Rows()) != 0 {
		t.Errorf("Ожидался пустой список, получено %d строк", len(model.Rows()))
	}
	if view.Err() == nil {
		t.Error("Ошибка загрузки должна сохраниться в представлении")
	}
	if _, ok := model.SelectedRow(); ok {
		t.Error("В пустом списке не должно быть выбранной строки")
	}
}

func TestEnterPlaysSelectedRow(t *testing.T) {
	host := &stubHost{tracks: testTracks(t)}
	model, view := loadModel(t, host)

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	view.Wait()

	if len(host.played) != 2 || host.played[0] != "/2.mp3" || host.played[1] != "/2.mp3" {
		t.Errorf("Ожидалось два запуска /2.mp3, получено %v", host.played)
	}
}

func TestSlashDoesNotFilter(t *testing.T) {
	host := &stubHost{tracks: testTracks(t)}
	model, view := loadModel(t, host)

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if model.list.FilterState() != list.Unfiltered {
		t.Errorf("Фильтр не должен включаться, состояние %v", model.list.FilterState())
	}
	if got := len(model.list.VisibleItems()); got != 2 {
		t.Errorf("Ожидалось 2 видимые строки, получено %d", got)
	}

	model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	view.Wait()
	if len(host.played) != 1 || host.played[0] != "/10.mp3" {
		t.Errorf("Enter должен запускать выбранный трек, получено %v", host.played)
	}
}

func TestEnterOnEmptyList(t *testing.T) {
	host := &stubHost{}
	model, view := loadModel(t, host)

	model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	view.Wait()

	if len(host.played) != 0 {
		t.Errorf("Пустой список не должен отправлять команды: %v", host.played)
	}
}

func TestPreviewPlaceholderWithoutArtwork(t *testing.T) {
	model, _ := loadModel(t, &stubHost{tracks: testTracks(t)})

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	row, ok := model.SelectedRow()
	if !ok || row.Path != "/2.mp3" {
		t.Fatalf("Ожидался выбор /2.mp3, получено %+v", row)
	}
	if !strings.Contains(model.View(), "♪") {
		t.Error("Для трека без обложки ожидалась заглушка")
	}
}
