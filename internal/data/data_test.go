package data

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestTrackDecodeNulls(t *testing.T) {
	raw := `{"path":"/music/a.mp3","title":null,"artist":"Artist","group":null,"album":null,"trackNumber":null,"visual":null}`

	var track Track
	if err := json.Unmarshal([]byte(raw), &track); err != nil {
		t.Fatalf("Ошибка разбора трека: %v", err)
	}

	if track.Path != "/music/a.mp3" {
		t.Errorf("Ожидался путь /music/a.mp3, получено: %s", track.Path)
	}
	if track.Title != nil || track.Album != nil || track.TrackNumber != nil || track.Visual != nil {
		t.Error("null поля должны декодироваться в nil")
	}
	if Value(track.Artist) != "Artist" {
		t.Errorf("Ожидался artist: Artist, получено: %s", Value(track.Artist))
	}
}

func TestTrackDecodeMissingFields(t *testing.T) {
	var track Track
	if err := json.Unmarshal([]byte(`{"path":"x.mp3"}`), &track); err != nil {
		t.Fatalf("Ошибка разбора трека: %v", err)
	}
	if track.Title != nil || track.Visual != nil {
		t.Error("Отсутствующие поля должны вести себя как null")
	}
}

func TestTrackEncodeExplicitNulls(t *testing.T) {
	out, err := json.Marshal(Track{Path: "a.mp3"})
	if err != nil {
		t.Fatalf("Ошибка сериализации: %v", err)
	}

	for _, field := range []string{`"title":null`, `"artist":null`, `"group":null`, `"album":null`, `"trackNumber":null`, `"visual":null`} {
		if !strings.Contains(string(out), field) {
			t.Errorf("В JSON нет явного %s: %s", field, out)
		}
	}
}

func TestByteValuesAsNumbers(t *testing.T) {
	visual := Visual{MediaType: "image/png", Data: ByteValues{0, 1, 255}}
	out, err := json.Marshal(visual)
	if err != nil {
		t.Fatalf("Ошибка сериализации: %v", err)
	}

	expected := `{"mediaType":"image/png","data":[0,1,255]}`
	if string(out) != expected {
		t.Errorf("Ожидалось %s, получено %s", expected, out)
	}

	var decoded Visual
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("Ошибка разбора: %v", err)
	}
	if !bytes.Equal(decoded.Data, visual.Data) {
		t.Errorf("Байты не совпадают: %v != %v", decoded.Data, visual.Data)
	}
}

func TestByteValuesAcceptsBase64(t *testing.T) {
	var b ByteValues
	if err := json.Unmarshal([]byte(`"AAH/"`), &b); err != nil {
		t.Fatalf("Ошибка разбора base64: %v", err)
	}
	if !bytes.Equal(b, []byte{0, 1, 255}) {
		t.Errorf("Неожиданные байты: %v", b)
	}
}

func TestByteValuesOutOfRange(t *testing.T) {
	var b ByteValues
	if err := json.Unmarshal([]byte(`[1,256]`), &b); err == nil {
		t.Error("Ожидалась ошибка для значения 256")
	}
}

func TestStringHelpers(t *testing.T) {
	if String("") != nil {
		t.Error("Пустая строка должна превращаться в nil")
	}
	if Value(String("abc")) != "abc" {
		t.Error("Value должен возвращать исходную строку")
	}
	if Value(nil) != "" {
		t.Error("Value(nil) должен возвращать пустую строку")
	}
}
