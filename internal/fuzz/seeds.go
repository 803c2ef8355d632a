package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
)

var seedExts = map[string]bool{".html": true, ".htm": true, ".xml": true, ".svg": true}

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	addMarkupSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все markup-файлы
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !seedExts[filepath.Ext(path)] {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
	if err != nil {
		return
	}
}

// addMarkupSeeds adds small documents hitting one construct each, so the
// corpus is useful even without testdata.
func addMarkupSeeds(f *testing.F) {
	for _, s := range []string{
		"",
		"<p>x</p>",
		"<div><!-- hidden --><p>x</p></div>",
		"<div><span></div>",
		"<div>/* never closes",
		`<div data-foo="bar"></div>`,
		"<!DOCTYPE html><html><body></body></html>",
		"<input disabled value='a' name=b>",
		"<br/><img src=x>",
		"<script>if (a < b) {}</script>",
		"<p>1 &lt; 2 &amp; 3</p>",
		"<svg:rect xml:lang=en/>",
		"text // line comment\nmore",
		"<a\x00b>\xff</a>",
		"<<>>//**/<!---->",
	} {
		f.Add([]byte(s))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
