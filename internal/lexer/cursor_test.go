package lexer

import (
	"testing"

	"tagtree/internal/source"
)

// helper function to create a file
func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.html", []byte(content))
	return fs.Get(id)
}

// TestSequentialReading проверяет последовательное чтение: "a\nb" → a, \n, b, EOF
func TestSequentialReading(t *testing.T) {
	cursor := NewCursor(createFile("a\nb"))

	for _, want := range []byte("a\nb") {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if cursor.Peek() != want {
			t.Errorf("Expected peek %q, got %q", want, cursor.Peek())
		}
		if b := cursor.Bump(); b != want {
			t.Errorf("Expected bump %q, got %q", want, b)
		}
	}
	if !cursor.EOF() || cursor.Peek() != 0 || cursor.Bump() != 0 {
		t.Error("Expected EOF at end")
	}
}

func TestMarkSpanReset(t *testing.T) {
	cursor := NewCursor(createFile("hello world"))
	cursor.Advance(6)
	m := cursor.Mark()
	cursor.Advance(100)
	sp := cursor.SpanFrom(m)
	if sp.Start != 6 || sp.End != 11 {
		t.Fatalf("SpanFrom = %v, want 6..11 (Advance must clamp)", sp)
	}
	if len(cursor.Rest()) != 0 {
		t.Fatalf("Rest at EOF = %q", cursor.Rest())
	}
	cursor.Reset(m)
	if string(cursor.Rest()) != "world" {
		t.Fatalf("Rest after Reset = %q", cursor.Rest())
	}
}
