// Package metadata предоставляет функционал для извлечения метаданных из аудио файлов
package metadata

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dhowden/tag"

	"github.com/hazadus/go-vinyl/internal/data"
)

// trackNumberFrames - сырые поля с номером трека в разных форматах тегов
var trackNumberFrames = []string{"TRCK", "TRK", "tracknumber", "TRACKNUMBER"}

// Extractor извлекает метаданные из аудио файлов
type Extractor struct{}

// NewExtractor создает новый экстрактор метаданных
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractFromReader извлекает метаданные из io.ReadSeeker.
// Если теги прочитать не удалось, возвращается трек только с путем.
func (e *Extractor) ExtractFromReader(reader io.ReadSeeker, path string) data.Track {
	track := data.Track{Path: path}

	// Сбрасываем reader в начало
	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return track
	}

	metadata, err := tag.ReadFrom(reader)
	if err != nil {
		return track
	}

	track.Title = data.String(metadata.Title())
	track.Artist = data.String(metadata.Artist())
	track.Group = data.String(metadata.AlbumArtist())
	track.Album = data.String(metadata.Album())
	track.TrackNumber = trackNumber(metadata)
	track.Visual = visual(metadata.Picture())
	return track
}

// ExtractFromFile извлекает метаданные из файла
func (e *Extractor) ExtractFromFile(filePath string) (data.Track, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return data.Track{Path: filePath}, fmt.Errorf("ошибка открытия файла: %w", err)
	}
	defer file.Close()

	return e.ExtractFromReader(file, filePath), nil
}

// trackNumber возвращает номер трека строкой в том виде, в каком он записан в теге ("3/12").
// Если сырого поля нет, используется разобранный номер.
func trackNumber(metadata tag.Metadata) *string {
	raw := metadata.Raw()
	for _, frame := range trackNumberFrames {
		if value, ok := raw[frame].(string); ok {
			if value = strings.TrimSpace(value); value != "" {
				return &value
			}
		}
	}

	if n, _ := metadata.Track(); n > 0 {
		value := strconv.Itoa(n)
		return &value
	}
	return nil
}

func visual(picture *tag.Picture) *data.Visual {
	if picture == nil || len(picture.Data) == 0 {
		return nil
	}

	mediaType := picture.MIMEType
	if mediaType == "" {
		mediaType = mediaTypeFromExt(picture.Ext)
	}
	return &data.Visual{
		MediaType: mediaType,
		Data:      data.ByteValues(picture.Data),
	}
}

func mediaTypeFromExt(ext string) string {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	default:
		return "application/octet-stream"
	}
}
