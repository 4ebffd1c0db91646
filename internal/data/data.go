// Package data описывает модель трека и её формат передачи по каналу команд
package data

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
)

// Visual хранит встроенную обложку трека
type Visual struct {
	MediaType string     `json:"mediaType"`
	Data      ByteValues `json:"data"`
}

// Track описывает один найденный медиафайл
type Track struct {
	Path        string  `json:"path"`
	Title       *string `json:"title"`
	Artist      *string `json:"artist"`
	Group       *string `json:"group"` // Исполнитель альбома (TPE2)
	Album       *string `json:"album"`
	TrackNumber *string `json:"trackNumber"`
	Visual      *Visual `json:"visual"`
}

// ByteValues - байты, которые кодируются в JSON как массив чисел, а не base64
type ByteValues []byte

// MarshalJSON кодирует байты как массив чисел
func (b ByteValues) MarshalJSON() ([]byte, error) {
	if b == nil {
		return []byte("[]"), nil
	}

	var buf bytes.Buffer
	buf.Grow(len(b)*4 + 2)
	buf.WriteByte('[')
	for i, v := range b {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Itoa(int(v)))
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// UnmarshalJSON принимает массив чисел 0..255 или base64-строку
func (b *ByteValues) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	if bytes.Equal(raw, []byte("null")) {
		*b = nil
		return nil
	}

	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("ошибка разбора данных обложки: %w", err)
		}
		decoded, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return fmt.Errorf("ошибка декодирования base64: %w", err)
		}
		*b = decoded
		return nil
	}

	var values []int
	if err := json.Unmarshal(raw, &values); err != nil {
		return fmt.Errorf("ошибка разбора данных обложки: %w", err)
	}
	out := make([]byte, len(values))
	for i, v := range values {
		if v < 0 || v > 255 {
			return fmt.Errorf("значение байта вне диапазона: %d", v)
		}
		out[i] = byte(v)
	}
	*b = out
	return nil
}

// String возвращает указатель на копию строки, пустая строка превращается в nil
func String(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Value возвращает значение необязательного поля или пустую строку
func Value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
