package library

import (
	"strings"

	"github.com/hazadus/go-vinyl/internal/artwork"
	"github.com/hazadus/go-vinyl/internal/data"
)

// RowKey определяет, как строится ключ строки списка
type RowKey string

const (
	// KeyArtistTitle - исполнитель + название, отсутствующее поле пишется как "null".
	// Ключи могут совпадать у разных треков. Режим по умолчанию.
	KeyArtistTitle RowKey = "artist_title"
	// KeyPath - путь к файлу, всегда уникален
	KeyPath RowKey = "path"
)

// ParseRowKey разбирает режим ключа строки из строки
func ParseRowKey(s string) (RowKey, bool) {
	switch RowKey(strings.ToLower(strings.TrimSpace(s))) {
	case "", KeyArtistTitle:
		return KeyArtistTitle, true
	case KeyPath:
		return KeyPath, true
	default:
		return "", false
	}
}

// Image - изображение обложки в строке списка
type Image struct {
	Src    string
	Width  int
	Height int
}

// Row - одна отображаемая строка списка треков
type Row struct {
	Key         string
	Path        string
	Title       string
	Artist      string
	Album       string
	TrackNumber string
	HasArtwork  bool
	Image       Image
}

// Render строит строки для отображения в том порядке, в котором переданы треки
func Render(tracks []data.Track, key RowKey) []Row {
	rows := make([]Row, 0, len(tracks))
	for _, t := range tracks {
		rows = append(rows, Row{
			Key:         rowKey(t, key),
			Path:        t.Path,
			Title:       data.Value(t.Title),
			Artist:      data.Value(t.Artist),
			Album:       data.Value(t.Album),
			TrackNumber: data.Value(t.TrackNumber),
			HasArtwork:  t.Visual != nil,
			Image: Image{
				Src:    artwork.Source(t.Visual),
				Width:  artwork.BoxSize,
				Height: artwork.BoxSize,
			},
		})
	}
	return rows
}

func rowKey(t data.Track, key RowKey) string {
	if key == KeyPath {
		return t.Path
	}
	return keyPart(t.Artist) + keyPart(t.Title)
}

func keyPart(s *string) string {
	if s == nil {
		return "null"
	}
	return *s
}
