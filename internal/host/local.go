package host

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/hazadus/go-vinyl/internal/data"
	"github.com/hazadus/go-vinyl/internal/metadata"
)

// ErrOutsideLibrary возвращается для путей вне каталога библиотеки
var ErrOutsideLibrary = errors.New("путь вне каталога библиотеки")

// LocalSource ищет треки в каталоге на диске
type LocalSource struct {
	root       string
	extensions []string
	extractor  *metadata.Extractor
	log        *zap.Logger
}

// NewLocalSource создает источник для каталога root
func NewLocalSource(root string, extensions []string, log *zap.Logger) *LocalSource {
	if log == nil {
		log = zap.NewNop()
	}
	return &LocalSource{
		root:       filepath.Clean(root),
		extensions: extensions,
		extractor:  metadata.NewExtractor(),
		log:        log,
	}
}

// Tracks обходит каталог и читает теги каждого подходящего файла
func (s *LocalSource) Tracks(ctx context.Context) ([]data.Track, error) {
	var tracks []data.Track

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !hasExtension(path, s.extensions) {
			return nil
		}

		track, err := s.extractor.ExtractFromFile(path)
		if err != nil {
			s.log.Warn("файл пропущен", zap.String("path", path), zap.Error(err))
			return nil
		}
		if track.Title == nil && track.Artist == nil {
			s.log.Debug("теги не найдены", zap.String("path", path))
		}
		tracks = append(tracks, track)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка обхода каталога %s: %w", s.root, err)
	}
	return tracks, nil
}

// Open открывает файл библиотеки
func (s *LocalSource) Open(_ context.Context, path string) (io.ReadCloser, error) {
	rel, err := filepath.Rel(s.root, filepath.Clean(path))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, fmt.Errorf("%w: %s", ErrOutsideLibrary, path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия файла: %w", err)
	}
	return file, nil
}

func hasExtension(path string, extensions []string) bool {
	ext := filepath.Ext(path)
	for _, e := range extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}
