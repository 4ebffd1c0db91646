package library

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/hazadus/go-vinyl/internal/data"
)

// SortMode определяет способ сравнения номеров треков
type SortMode string

const (
	// SortLexical - побайтовое сравнение строк: "10" идет раньше "2".
	// Режим по умолчанию.
	SortLexical SortMode = "lexical"
	// SortNumeric - альтернатива: сравнение по ведущему числу ("3/12" -> 3)
	SortNumeric SortMode = "numeric"
)

// missingTrackNumber подставляется вместо отсутствующего номера трека
const missingTrackNumber = "0"

// ParseSortMode разбирает режим сортировки из строки
func ParseSortMode(s string) (SortMode, bool) {
	switch SortMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortLexical:
		return SortLexical, true
	case SortNumeric:
		return SortNumeric, true
	default:
		return "", false
	}
}

// Sort возвращает новый срез треков, упорядоченный по номеру трека.
// Исходный срез не изменяется, порядок равных элементов сохраняется.
func Sort(tracks []data.Track, mode SortMode) []data.Track {
	sorted := slices.Clone(tracks)
	compare := compareLexical
	if mode == SortNumeric {
		compare = compareNumeric
	}
	slices.SortStableFunc(sorted, func(a, b data.Track) int {
		return compare(trackNumber(a), trackNumber(b))
	})
	return sorted
}

func trackNumber(t data.Track) string {
	if t.TrackNumber == nil {
		return missingTrackNumber
	}
	return *t.TrackNumber
}

func compareLexical(a, b string) int {
	return strings.Compare(a, b)
}

func compareNumeric(a, b string) int {
	na, okA := leadingNumber(a)
	nb, okB := leadingNumber(b)
	switch {
	case okA && okB:
		if c := cmp.Compare(na, nb); c != 0 {
			return c
		}
	case okA:
		return -1
	case okB:
		return 1
	}
	return compareLexical(a, b)
}

// leadingNumber извлекает число из начала строки: "07/12" -> 7
func leadingNumber(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
