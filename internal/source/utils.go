package source

import (
	"bytes"
	"path/filepath"
	"slices"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
)

// transcode converts content that is not valid UTF-8 to UTF-8 and reports
// the source charset. Valid UTF-8 comes back untouched with "".
func transcode(content []byte) ([]byte, string) {
	if utf8.Valid(content) {
		return content, ""
	}
	enc, name, _ := charset.DetermineEncoding(content, "")
	out, err := enc.NewDecoder().Bytes(content)
	if err != nil {
		// декодер не справился: оставляем байты, лексер сообщит о мусоре
		return content, ""
	}
	return out, name
}

// normalizeCRLF заменяет все \r\n на \n, не трогая одиночные \r.
// Возвращает новый слайс и флаг: были ли замены (true, если хотя бы одна).
func normalizeCRLF(content []byte) ([]byte, bool) {
	// Быстрый путь: если нет \r, возвращаем как есть.
	if !slices.Contains(content, '\r') {
		return content, false
	}

	// Новый слайс для результата (максимум такой же длины, может быть короче).
	out := make([]byte, 0, len(content))
	changed := false

	i := 0
	for i < len(content) {
		// Если встретили \r\n — заменяем на \n.
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

// removeBOM strips a leading UTF-8 byte order mark.
func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}

	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}

	return content, false
}

// buildLineIndex collects the offset of every '\n' in content.
func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i)) // #nosec G115 -- file size is checked by FileSet.Add
		}
	}
	return out
}

// toLineCol maps a byte offset to a 1-based line/column.
// A '\n' belongs to the line it terminates.
func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// количество переводов строки строго до off
	n, _ := slices.BinarySearch(lineIdx, off)
	if n == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}
	startOff := lineIdx[n-1] + 1
	return LineCol{Line: uint32(n + 1), Col: off - startOff + 1} // #nosec G115 -- n <= len(lineIdx)
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}
