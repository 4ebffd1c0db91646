package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/hazadus/go-vinyl/internal/bridge"
	"github.com/hazadus/go-vinyl/internal/config"
	"github.com/hazadus/go-vinyl/internal/host"
	"github.com/hazadus/go-vinyl/internal/library"
	"github.com/hazadus/go-vinyl/internal/logging"
	"github.com/hazadus/go-vinyl/internal/player"
	"github.com/hazadus/go-vinyl/internal/s3"
)

// overrides - значения флагов, которые перекрывают конфигурацию
type overrides struct {
	configPath string
	hostURL    string
	sortMode   string
	rowKey     string
}

// Application хранит общее состояние для всех команд
type Application struct {
	Config *config.Config
	Log    *zap.Logger

	flags  overrides
	host   library.Host
	player *player.Player // Только для хоста в том же процессе
}

// setup загружает конфигурацию и настраивает журнал
func (app *Application) setup() error {
	if app.Config == nil {
		cfg, err := config.LoadConfig(app.flags.configPath)
		if err != nil {
			return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
		}
		app.Config = cfg
	}

	if app.flags.hostURL != "" {
		app.Config.HostURL = app.flags.hostURL
	}
	if app.flags.sortMode != "" {
		app.Config.SortMode = app.flags.sortMode
	}
	if app.flags.rowKey != "" {
		app.Config.RowKey = app.flags.rowKey
	}
	if err := app.Config.Validate(); err != nil {
		return err
	}

	if app.Log == nil {
		log, err := logging.New(logging.Options{
			File:  app.Config.LogFile,
			Level: app.Config.LogLevel,
		})
		if err != nil {
			return fmt.Errorf("ошибка настройки журнала: %w", err)
		}
		app.Log = log
	}
	return nil
}

// logger возвращает журнал или заглушку
func (app *Application) logger() *zap.Logger {
	if app.Log == nil {
		return zap.NewNop()
	}
	return app.Log
}

// Host возвращает хост: удаленный, если задан host_url, иначе в том же процессе
func (app *Application) Host() (library.Host, error) {
	if app.host != nil {
		return app.host, nil
	}
	if app.Config.HostURL != "" {
		app.host = bridge.NewClient(app.Config.HostURL, nil)
		return app.host, nil
	}
	return app.localHost()
}

// localHost создает хост, который сам ищет и проигрывает файлы
func (app *Application) localHost() (library.Host, error) {
	log := app.logger()
	cfg := app.Config

	var source host.Source
	if cfg.S3.Enabled() {
		client, err := s3.NewClient(&s3.Config{
			Region:     cfg.S3.Region,
			AccessKey:  cfg.S3.AccessKey,
			SecretKey:  cfg.S3.SecretKey,
			Endpoint:   cfg.S3.Endpoint,
			BucketName: cfg.S3.Bucket,
		})
		if err != nil {
			return nil, err
		}
		source = host.NewS3Source(client, cfg.S3.Prefix, cfg.Extensions, cfg.S3.PresignTTL, log)
	} else {
		source = host.NewLocalSource(cfg.MusicDir, cfg.Extensions, log)
	}

	app.player = player.NewPlayer(log)
	svc := host.NewService(source, app.player, log)
	app.host = svc
	return svc, nil
}

// newView создает представление библиотеки с настройками из конфигурации
func (app *Application) newView() (*library.View, error) {
	h, err := app.Host()
	if err != nil {
		return nil, err
	}

	log := app.logger()
	opts := append(app.Config.ViewOptions(),
		library.WithLogger(log),
		library.WithDispatchErrorHandler(func(command string, err error) {
			log.Debug("команда хоста не выполнена", zap.String("command", command), zap.Error(err))
		}),
	)
	return library.New(h, opts...), nil
}

// Close освобождает плеер и сбрасывает журнал
func (app *Application) Close() {
	if app.player != nil {
		app.player.Close()
	}
	if app.Log != nil {
		_ = app.Log.Sync()
	}
}
