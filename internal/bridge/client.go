package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hazadus/go-vinyl/internal/data"
	"github.com/hazadus/go-vinyl/internal/library"
)

// DispatchTimeout ограничивает play_file и pause_play. На find_files не действует.
const DispatchTimeout = 30 * time.Second

// Client реализует library.Host поверх HTTP
type Client struct {
	baseURL         string
	httpClient      *http.Client
	dispatchTimeout time.Duration
}

// NewClient создает клиента для хоста по адресу baseURL
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:         strings.TrimRight(baseURL, "/"),
		httpClient:      httpClient,
		dispatchTimeout: DispatchTimeout,
	}
}

// FindFiles запрашивает список треков
func (c *Client) FindFiles(ctx context.Context) ([]data.Track, error) {
	var tracks []data.Track
	if err := c.Invoke(ctx, library.CmdFindFiles, nil, &tracks); err != nil {
		return nil, err
	}
	return tracks, nil
}

// PlayFile просит хост начать воспроизведение
func (c *Client) PlayFile(ctx context.Context, path string) error {
	ctx, cancel := context.WithTimeout(ctx, c.dispatchTimeout)
	defer cancel()
	return c.Invoke(ctx, library.CmdPlayFile, PlayFileArgs{Path: path}, nil)
}

// PausePlay просит хост переключить паузу
func (c *Client) PausePlay(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.dispatchTimeout)
	defer cancel()
	return c.Invoke(ctx, library.CmdPausePlay, nil, nil)
}

// Invoke вызывает команду хоста. Если out не nil, в него декодируется ответ.
func (c *Client) Invoke(ctx context.Context, command string, args, out any) error {
	var body io.Reader
	if args != nil {
		payload, err := json.Marshal(args)
		if err != nil {
			return fmt.Errorf("ошибка кодирования аргументов: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/invoke/"+command, body)
	if err != nil {
		return fmt.Errorf("ошибка создания запроса: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(RequestIDHeader, uuid.New().String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ошибка вызова %s: %w", command, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var payload struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %s", ErrUnknownCommand, command)
		}
		return fmt.Errorf("хост вернул %d на %s: %s", resp.StatusCode, command, payload.Error)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("ошибка разбора ответа %s: %w", command, err)
	}
	return nil
}
