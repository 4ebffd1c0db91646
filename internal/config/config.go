// Package config содержит функции для загрузки конфигурации приложения
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hazadus/go-vinyl/internal/library"
)

// DefaultPath - путь к файлу конфигурации по умолчанию
const DefaultPath = "~/.vinyl"

// S3Config настройки S3 как источника треков
type S3Config struct {
	Bucket     string        `yaml:"bucket"`
	Region     string        `yaml:"region"`
	AccessKey  string        `yaml:"access_key"`
	SecretKey  string        `yaml:"secret_key"`
	Endpoint   string        `yaml:"endpoint"`
	Prefix     string        `yaml:"prefix"`
	PresignTTL time.Duration `yaml:"presign_ttl"`
}

// Enabled сообщает, настроен ли S3 как источник треков
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// Config структура для хранения конфигурации приложения
type Config struct {
	MusicDir   string   `yaml:"music_dir"`
	Extensions []string `yaml:"extensions"`
	ListenAddr string   `yaml:"listen_addr"` // Адрес моста команд для vinyl serve
	HostURL    string   `yaml:"host_url"`    // Пусто - хост работает в том же процессе
	SortMode   string   `yaml:"sort_mode"`
	RowKey     string   `yaml:"row_key"`
	LogFile    string   `yaml:"log_file"`
	LogLevel   string   `yaml:"log_level"`
	S3         S3Config `yaml:"s3"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		MusicDir:   "~/Music",
		Extensions: []string{".mp3", ".wav", ".flac"},
		ListenAddr: "127.0.0.1:7311",
		SortMode:   string(library.SortLexical),
		RowKey:     string(library.KeyArtistTitle),
		LogFile:    "~/.vinyl.log",
		LogLevel:   "info",
		S3: S3Config{
			PresignTTL: 15 * time.Minute,
		},
	}
}

// LoadConfig загружает конфигурацию приложения из указанного файла.
// Если файла нет, возвращается конфигурация по умолчанию.
func LoadConfig(filePath string) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	path := expandHome(filePath, home)

	config := Default()

	content, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("ошибка чтения файла конфигурации: %w", err)
	}
	if len(content) > 0 {
		if err := yaml.Unmarshal(content, config); err != nil {
			return nil, fmt.Errorf("ошибка разбора конфигурации: %w", err)
		}
	}

	// Заполняем пропущенные значения
	defaults := Default()
	if config.MusicDir == "" {
		config.MusicDir = defaults.MusicDir
	}
	if len(config.Extensions) == 0 {
		config.Extensions = defaults.Extensions
	}
	if config.ListenAddr == "" {
		config.ListenAddr = defaults.ListenAddr
	}
	if config.LogFile == "" {
		config.LogFile = defaults.LogFile
	}
	if config.S3.PresignTTL <= 0 {
		config.S3.PresignTTL = defaults.S3.PresignTTL
	}

	// Раскрываем тильду в путях
	config.MusicDir = expandHome(config.MusicDir, home)
	config.LogFile = expandHome(config.LogFile, home)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate проверяет значения режимов
func (c *Config) Validate() error {
	if _, ok := library.ParseSortMode(c.SortMode); !ok {
		return fmt.Errorf("неизвестный режим сортировки: %q", c.SortMode)
	}
	if _, ok := library.ParseRowKey(c.RowKey); !ok {
		return fmt.Errorf("неизвестный ключ строки: %q", c.RowKey)
	}
	return nil
}

// ViewOptions возвращает настройки представления библиотеки
func (c *Config) ViewOptions() []library.Option {
	sortMode, _ := library.ParseSortMode(c.SortMode)
	rowKey, _ := library.ParseRowKey(c.RowKey)
	return []library.Option{
		library.WithSortMode(sortMode),
		library.WithRowKey(rowKey),
	}
}

func expandHome(path, home string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		return home + path[1:]
	}
	return path
}
