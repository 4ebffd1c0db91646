package metadata

import "bytes"

// TagSize сообщает, сколько байт от начала файла нужно для чтения тегов.
// Возвращает 0, если формат по заголовку не распознан.
// Для FLAC результат может превышать len(head): тогда следующий блок
// виден только после повторного чтения с большим размером.
func TagSize(head []byte) int64 {
	switch {
	case bytes.HasPrefix(head, []byte("ID3")):
		return id3Size(head)
	case bytes.HasPrefix(head, []byte("fLaC")):
		return flacSize(head)
	}
	return 0
}

// id3Size читает размер тега ID3v2 из заголовка
func id3Size(head []byte) int64 {
	if len(head) < 10 {
		return 10
	}
	size := int64(head[6]&0x7f)<<21 | int64(head[7]&0x7f)<<14 | int64(head[8]&0x7f)<<7 | int64(head[9]&0x7f)
	size += 10
	if head[5]&0x10 != 0 { // Футер
		size += 10
	}
	return size
}

// flacSize проходит по блокам метаданных FLAC до последнего
func flacSize(head []byte) int64 {
	pos := int64(4)
	for {
		if pos+4 > int64(len(head)) {
			return pos + 4
		}
		header := head[pos : pos+4]
		last := header[0]&0x80 != 0
		pos += 4 + (int64(header[1])<<16 | int64(header[2])<<8 | int64(header[3]))
		if last {
			return pos
		}
	}
}
