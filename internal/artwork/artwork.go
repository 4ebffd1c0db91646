// Package artwork превращает встроенные обложки треков в отображаемые изображения
package artwork

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // Регистрируем декодеры: обложки бывают JPEG и PNG
	_ "image/png"
	"strings"

	"github.com/hazadus/go-vinyl/internal/data"
)

// BoxSize - сторона квадрата, в который вписывается обложка при отображении
const BoxSize = 320

// ErrNotDataURI возвращается, если строка не является data URI с base64
var ErrNotDataURI = errors.New("строка не является data URI в base64")

// DataURI кодирует байты в data URI с указанным типом
func DataURI(mediaType string, payload []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(payload)
}

// Source строит источник изображения для обложки трека.
// Без обложки источник строится из пустой последовательности байт.
func Source(v *data.Visual) string {
	if v == nil {
		return DataURI("", nil)
	}
	return DataURI(v.MediaType, v.Data)
}

// ParseDataURI разбирает data URI обратно в тип и байты
func ParseDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, ErrNotDataURI
	}
	mediaType, payload, ok := strings.Cut(rest, ";base64,")
	if !ok {
		return "", nil, ErrNotDataURI
	}

	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("ошибка декодирования base64: %w", err)
	}
	return mediaType, decoded, nil
}

// Decode декодирует обложку в изображение
func Decode(v *data.Visual) (image.Image, error) {
	if v == nil || len(v.Data) == 0 {
		return nil, errors.New("обложка отсутствует")
	}

	img, _, err := image.Decode(bytes.NewReader(v.Data))
	if err != nil {
		return nil, fmt.Errorf("ошибка декодирования обложки (%s): %w", v.MediaType, err)
	}
	return img, nil
}
