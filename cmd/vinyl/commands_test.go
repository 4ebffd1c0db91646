package main

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hazadus/go-vinyl/internal/bridge"
	"github.com/hazadus/go-vinyl/internal/config"
	"github.com/hazadus/go-vinyl/internal/data"
	"github.com/hazadus/go-vinyl/internal/host"
)

// captureOutput перехватывает stdout и stderr во время выполнения функции
func captureOutput(t *testing.T, fn func()) string {
	oldStdout := os.Stdout
	oldStderr := os.Stderr

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Ошибка создания pipe: %v", err)
	}

	os.Stdout = w
	os.Stderr = w

	// Читаем параллельно, чтобы большой вывод не заблокировал pipe
	var buf bytes.Buffer
	done := make(chan struct{})
	go func() {
		io.Copy(&buf, r)
		close(done)
	}()

	fn()

	os.Stdout = oldStdout
	os.Stderr = oldStderr
	w.Close()
	<-done

	return buf.String()
}

// id3File пишет mp3-файл, содержащий только тег ID3v2.3
func id3File(t *testing.T, path string, frames map[string]string) {
	t.Helper()
	var body []byte
	for id, text := range frames {
		frame := []byte(id)
		frame = binary.BigEndian.AppendUint32(frame, uint32(len(text)+1))
		frame = append(frame, 0, 0, 0)
		body = append(body, append(frame, text...)...)
	}
	body = append(body, make([]byte, 32)...)
	size := len(body)
	tag := []byte{'I', 'D', '3', 3, 0, 0,
		byte(size>>21) & 0x7f, byte(size>>14) & 0x7f, byte(size>>7) & 0x7f, byte(size) & 0x7f}

	if err := os.WriteFile(path, append(tag, body...), 0o644); err != nil {
		t.Fatalf("Ошибка записи файла: %v", err)
	}
}

// createTestApplication создает тестовое приложение с библиотекой во временном каталоге
func createTestApplication(t *testing.T, musicDir string) *Application {
	cfg := config.Default()
	cfg.MusicDir = musicDir
	cfg.LogFile = ""

	return &Application{
		Config: cfg,
		Log:    zap.NewNop(),
	}
}

// writeConfig пишет файл конфигурации и возвращает путь к нему
func writeConfig(t *testing.T, musicDir string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "vinyl.yaml")
	content := "music_dir: " + musicDir + "\nlog_file: " + filepath.Join(dir, "vinyl.log") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Ошибка записи конфигурации: %v", err)
	}
	return path
}

func testLibrary(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	id3File(t, filepath.Join(dir, "a.mp3"), map[string]string{"TIT2": "Second", "TPE1": "Band", "TRCK": "2"})
	id3File(t, filepath.Join(dir, "b.mp3"), map[string]string{"TIT2": "Tenth", "TPE1": "Band", "TALB": "LP", "TRCK": "10"})
	return dir
}

// TestCmdList проверяет, что команда `list` выводит треки в порядке отображения
func TestCmdList(t *testing.T) {
	app := createTestApplication(t, testLibrary(t))
	listCmd := app.createListCommand(context.Background())

	output := captureOutput(t, func() {
		listCmd.SetArgs([]string{})
		if err := listCmd.Execute(); err != nil {
			t.Errorf("Ошибка выполнения команды list: %v", err)
		}
	})

	for _, expected := range []string{"📚 Найдено треков: 2", "Second", "Tenth", "Band", "LP"} {
		if !strings.Contains(output, expected) {
			t.Errorf("Вывод команды list не содержит '%s': %s", expected, output)
		}
	}
	// Лексический порядок: "10" раньше "2"
	if strings.Index(output, "Tenth") > strings.Index(output, "Second") {
		t.Errorf("Ожидалось, что трек 10 идет раньше трека 2: %s", output)
	}
}

// TestCmdListEmpty проверяет, что команда `list` корректно обрабатывает пустую библиотеку
func TestCmdListEmpty(t *testing.T) {
	app := createTestApplication(t, t.TempDir())
	listCmd := app.createListCommand(context.Background())

	output := captureOutput(t, func() {
		listCmd.SetArgs([]string{})
		if err := listCmd.Execute(); err != nil {
			t.Errorf("Ошибка выполнения команды list: %v", err)
		}
	})

	if !strings.Contains(output, "📚 Библиотека пуста") {
		t.Errorf("Команда list не отобразила сообщение о пустой библиотеке: %s", output)
	}
}

// TestCmdListMissingDir проверяет ошибку для отсутствующего каталога
func TestCmdListMissingDir(t *testing.T) {
	app := createTestApplication(t, filepath.Join(t.TempDir(), "missing"))
	listCmd := app.createListCommand(context.Background())
	listCmd.SilenceUsage = true
	listCmd.SilenceErrors = true

	captureOutput(t, func() {
		listCmd.SetArgs([]string{})
		if err := listCmd.Execute(); err == nil {
			t.Error("Ожидалась ошибка для отсутствующего каталога")
		}
	})
}

// TestRootFlags проверяет, что флаги перекрывают конфигурацию
func TestRootFlags(t *testing.T) {
	configPath := writeConfig(t, testLibrary(t))

	app := &Application{}
	rootCmd := app.createRootCommand(context.Background())

	output := captureOutput(t, func() {
		rootCmd.SetArgs([]string{"list", "--config", configPath, "--sort", "numeric", "--row-key", "path"})
		if err := rootCmd.Execute(); err != nil {
			t.Errorf("Ошибка выполнения команды: %v", err)
		}
	})
	app.Close()

	if app.Config.SortMode != "numeric" || app.Config.RowKey != "path" {
		t.Errorf("Флаги не применились: %s, %s", app.Config.SortMode, app.Config.RowKey)
	}
	if strings.Index(output, "Second") > strings.Index(output, "Tenth") {
		t.Errorf("Ожидался числовой порядок: %s", output)
	}
}

// TestRootInvalidSort проверяет отказ для неизвестного режима сортировки
func TestRootInvalidSort(t *testing.T) {
	configPath := writeConfig(t, t.TempDir())

	app := &Application{}
	rootCmd := app.createRootCommand(context.Background())
	rootCmd.SilenceErrors = true

	captureOutput(t, func() {
		rootCmd.SetArgs([]string{"list", "--config", configPath, "--sort", "random"})
		if err := rootCmd.Execute(); err == nil {
			t.Error("Ожидалась ошибка для неизвестного режима сортировки")
		}
	})
}

// recordingHost - хост за мостом команд, который только запоминает вызовы
type recordingHost struct {
	mu     sync.Mutex
	tracks []data.Track
	played []string
	pauses int
}

func (h *recordingHost) FindFiles(context.Context) ([]data.Track, error) { return h.tracks, nil }

func (h *recordingHost) PlayFile(_ context.Context, path string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.played = append(h.played, path)
	return nil
}

func (h *recordingHost) PausePlay(context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pauses++
	return nil
}

func startBridge(t *testing.T, h *recordingHost) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := bridge.NewRouter(nil)
	bridge.NewServer(h, nil).RegisterRoutes(router)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server.URL
}

// TestRemoteCommands проверяет list, play и pause через --host
func TestRemoteCommands(t *testing.T) {
	title := "Remote Song"
	h := &recordingHost{tracks: []data.Track{{Path: "/srv/music/r.mp3", Title: &title}}}
	hostURL := startBridge(t, h)
	configPath := writeConfig(t, t.TempDir())

	run := func(args ...string) string {
		app := &Application{}
		rootCmd := app.createRootCommand(context.Background())
		defer app.Close()

		return captureOutput(t, func() {
			rootCmd.SetArgs(append(args, "--config", configPath, "--host", hostURL))
			if err := rootCmd.Execute(); err != nil {
				t.Errorf("Ошибка выполнения %v: %v", args, err)
			}
		})
	}

	if output := run("list"); !strings.Contains(output, "Remote Song") {
		t.Errorf("list через --host не показал трек: %s", output)
	}
	if output := run("play", "/srv/music/r.mp3"); !strings.Contains(output, "🎵 Сейчас играет: /srv/music/r.mp3") {
		t.Errorf("Неожиданный вывод play: %s", output)
	}
	if output := run("pause"); !strings.Contains(output, "⏯️  Команда паузы отправлена") {
		t.Errorf("Неожиданный вывод pause: %s", output)
	}

	if len(h.played) != 1 || h.played[0] != "/srv/music/r.mp3" || h.pauses != 1 {
		t.Errorf("Команды не дошли до хоста: %v, пауз %d", h.played, h.pauses)
	}
}

// TestLocalPauseIsNoop проверяет, что пауза без воспроизведения не является ошибкой
func TestLocalPauseIsNoop(t *testing.T) {
	app := createTestApplication(t, t.TempDir())
	pauseCmd := app.createPauseCommand(context.Background())
	defer app.Close()

	output := captureOutput(t, func() {
		pauseCmd.SetArgs([]string{})
		if err := pauseCmd.Execute(); err != nil {
			t.Errorf("Ошибка выполнения команды pause: %v", err)
		}
	})

	if !strings.Contains(output, "Без --host") {
		t.Errorf("Ожидалась подсказка про --host: %s", output)
	}
}

// TestCmdPlayInvalidArgs проверяет обработку неверных аргументов в команде play
func TestCmdPlayInvalidArgs(t *testing.T) {
	app := createTestApplication(t, t.TempDir())
	playCmd := app.createPlayCommand(context.Background())
	playCmd.SilenceUsage = true
	playCmd.SilenceErrors = true

	captureOutput(t, func() {
		playCmd.SetArgs([]string{})
		if err := playCmd.Execute(); err == nil {
			t.Error("Ожидалась ошибка без аргументов")
		}
	})
}

// TestHostSelection проверяет выбор хоста и его переиспользование
func TestHostSelection(t *testing.T) {
	local := createTestApplication(t, t.TempDir())
	defer local.Close()

	first, err := local.Host()
	if err != nil {
		t.Fatalf("Ошибка создания локального хоста: %v", err)
	}
	if _, ok := first.(*host.Service); !ok {
		t.Errorf("Без host_url ожидался *host.Service, получено %T", first)
	}
	if second, _ := local.Host(); second != first {
		t.Error("Повторный вызов должен вернуть тот же хост")
	}

	remote := createTestApplication(t, t.TempDir())
	remote.Config.HostURL = "http://127.0.0.1:1"
	h, err := remote.Host()
	if err != nil {
		t.Fatalf("Ошибка создания удаленного хоста: %v", err)
	}
	if _, ok := h.(*bridge.Client); !ok {
		t.Errorf("С host_url ожидался *bridge.Client, получено %T", h)
	}
}
