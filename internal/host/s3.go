package host

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/hazadus/go-vinyl/internal/data"
	"github.com/hazadus/go-vinyl/internal/metadata"
	"github.com/hazadus/go-vinyl/internal/s3"
	"github.com/hazadus/go-vinyl/internal/streaming"
)

const (
	// DefaultHeadSize - сколько байт объекта читать ради тегов с первого раза
	DefaultHeadSize = 256 * 1024
	// maxTagSize ограничивает дочитывание объекта, если заголовок обещает больше
	maxTagSize = 64 * 1024 * 1024
)

// ObjectStore - операции бакета, нужные источнику
type ObjectStore interface {
	Bucket() string
	ListKeys(ctx context.Context, prefix string, extensions []string) ([]string, error)
	FetchHead(ctx context.Context, key string, n int64) ([]byte, error)
	PresignGet(key string, ttl time.Duration) (string, error)
	Path(key string) string
}

// S3Source читает треки из бакета и проигрывает их по подписанной ссылке
type S3Source struct {
	store      ObjectStore
	prefix     string
	extensions []string
	ttl        time.Duration
	headSize   int64
	extractor  *metadata.Extractor
	log        *zap.Logger
}

// NewS3Source создает источник для бакета
func NewS3Source(store ObjectStore, prefix string, extensions []string, ttl time.Duration, log *zap.Logger) *S3Source {
	if log == nil {
		log = zap.NewNop()
	}
	return &S3Source{
		store:      store,
		prefix:     prefix,
		extensions: extensions,
		ttl:        ttl,
		headSize:   DefaultHeadSize,
		extractor:  metadata.NewExtractor(),
		log:        log,
	}
}

// Tracks читает теги из начала каждого объекта
func (s *S3Source) Tracks(ctx context.Context) ([]data.Track, error) {
	keys, err := s.store.ListKeys(ctx, s.prefix, s.extensions)
	if err != nil {
		return nil, err
	}

	tracks := make([]data.Track, 0, len(keys))
	for _, key := range keys {
		path := s.store.Path(key)

		content, err := s.readHead(ctx, key)
		if err != nil {
			s.log.Warn("объект пропущен", zap.String("key", key), zap.Error(err))
			tracks = append(tracks, data.Track{Path: path})
			continue
		}
		tracks = append(tracks, s.extractor.ExtractFromReader(bytes.NewReader(content), path))
	}
	return tracks, nil
}

// readHead загружает начало объекта, дочитывая, пока не поместится весь тег
func (s *S3Source) readHead(ctx context.Context, key string) ([]byte, error) {
	size := s.headSize
	for {
		head, err := s.store.FetchHead(ctx, key, size)
		if err != nil {
			return nil, err
		}
		need := metadata.TagSize(head)
		if int64(len(head)) < size || need <= size || need > maxTagSize {
			return head, nil
		}
		s.log.Debug("тег не поместился, дочитываем", zap.String("key", key), zap.Int64("size", need))
		size = need
	}
}

// Open открывает поток по подписанной ссылке
func (s *S3Source) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	bucket, key, ok := s3.ParsePath(path)
	if !ok || bucket != s.store.Bucket() {
		return nil, fmt.Errorf("%w: %s", ErrOutsideLibrary, path)
	}

	url, err := s.store.PresignGet(key, s.ttl)
	if err != nil {
		return nil, err
	}

	reader, err := streaming.NewReader(ctx, url, streaming.DefaultBufferSize)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия потока: %w", err)
	}
	return reader, nil
}
