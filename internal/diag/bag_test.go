package diag

import (
	"strings"
	"testing"

	"tagtree/internal/source"
)

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	for i := range 3 {
		added := b.Add(NewError(SynUnexpectedToken, source.Span{Start: uint32(i)}, "x"))
		if want := i < 2; added != want {
			t.Fatalf("Add #%d = %v, want %v", i, added, want)
		}
	}
	if !b.Full() || b.Len() != 2 {
		t.Fatalf("expected full bag of 2, got len=%d full=%v", b.Len(), b.Full())
	}
	if !b.Add(NewError(SynUnterminatedComment, source.Span{}, "fatal")) || b.Len() != 3 {
		t.Fatal("fatal diagnostic must pass a full bag")
	}
	if NewBag(-5).Cap() != 0 {
		t.Fatal("negative limit must clamp to 0")
	}
	if NewBag(1<<20).Cap() != 65535 {
		t.Fatal("large limit must clamp to uint16")
	}
}

func TestBagSortDedupAndFatal(t *testing.T) {
	b := NewBag(10)
	b.Add(New(SevWarning, SynDuplicateAttribute, source.Span{Start: 5, End: 6}, "dup"))
	b.Add(NewError(SynUnclosedElement, source.Span{Start: 5, End: 6}, "unclosed"))
	b.Add(NewError(SynUnclosedElement, source.Span{Start: 5, End: 6}, "unclosed"))
	b.Add(NewError(SynMismatchedClosingTag, source.Span{Start: 1, End: 2}, "mismatch"))

	if _, ok := b.Fatal(); ok {
		t.Fatal("no fatal diagnostics expected yet")
	}

	b.Dedup()
	if b.Len() != 3 {
		t.Fatalf("Dedup left %d items, want 3", b.Len())
	}

	b.Sort()
	got := []Code{b.Items()[0].Code, b.Items()[1].Code, b.Items()[2].Code}
	want := []Code{SynMismatchedClosingTag, SynUnclosedElement, SynDuplicateAttribute}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order[%d] = %s, want %s", i, got[i].ID(), want[i].ID())
		}
	}

	b.Add(NewError(SynUnterminatedComment, source.Span{}, "eof"))
	if d, ok := b.Fatal(); !ok || d.Code != SynUnterminatedComment {
		t.Fatalf("Fatal() = %v, %v", d.Code, ok)
	}
	if b.Count(SynUnclosedElement) != 1 {
		t.Fatalf("Count = %d", b.Count(SynUnclosedElement))
	}
}

func TestBagMergeGrowsLimit(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(LexInvalidByte, source.Span{}, "a"))
	other := NewBag(2)
	other.Add(NewError(LexInvalidByte, source.Span{}, "b"))
	other.Add(NewError(LexInvalidByte, source.Span{}, "c"))

	a.Merge(other)
	a.Merge(nil)
	if a.Len() != 3 || a.Cap() != 3 {
		t.Fatalf("after merge len=%d cap=%d", a.Len(), a.Cap())
	}
}

func TestBagAtLeast(t *testing.T) {
	b := NewBag(8)
	b.Add(New(SevWarning, SynDuplicateAttribute, source.Span{}, "dup"))
	b.Add(NewError(SynMismatchedClosingTag, source.Span{}, "mismatch"))
	b.Add(New(SevInfo, SynUnexpectedToken, source.Span{}, "info"))

	if got := b.AtLeast(SevError); got.Len() != 1 || got.Items()[0].Code != SynMismatchedClosingTag {
		t.Fatalf("AtLeast(error) = %v", got.Items())
	}
	if got := b.AtLeast(SevWarning); got.Len() != 2 {
		t.Fatalf("AtLeast(warning) kept %d", got.Len())
	}
	if got := b.AtLeast(SevInfo); got.Len() != 3 || got.Cap() != 8 {
		t.Fatalf("AtLeast(info) len=%d cap=%d", got.Len(), got.Cap())
	}
	var nilBag *Bag
	if nilBag.AtLeast(SevInfo).Len() != 0 {
		t.Fatalf("nil bag must give an empty bag")
	}
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in   string
		want Severity
		err  bool
	}{
		{"error", SevError, false},
		{"WARNING", SevWarning, false},
		{"warn", SevWarning, false},
		{" info ", SevInfo, false},
		{"fatal", SevInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseSeverity(tt.in)
		if (err != nil) != tt.err || got != tt.want {
			t.Fatalf("ParseSeverity(%q) = %v, %v", tt.in, got, err)
		}
		if !tt.err && got.Label() != strings.ToLower(strings.TrimSpace(tt.in)) && tt.in != "warn" {
			t.Fatalf("Label() = %q for %q", got.Label(), tt.in)
		}
	}
}

func TestInsertFix(t *testing.T) {
	sp := source.Span{File: 2, Start: 10, End: 14}
	e := Insert(sp, "</p>")
	if e.Span.Start != 10 || e.Span.End != 10 || e.Span.File != 2 || e.NewText != "</p>" {
		t.Fatalf("Insert = %+v", e)
	}
	if d := Delete(sp); d.Span != sp || d.NewText != "" {
		t.Fatalf("Delete = %+v", d)
	}
}
