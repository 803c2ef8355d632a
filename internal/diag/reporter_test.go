package diag

import (
	"testing"

	"tagtree/internal/source"
)

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(4)
	r := BagReporter{Bag: bag}

	b := ReportError(r, SynUnclosedElement, source.Span{Start: 3, End: 8}, "element <p> is never closed").
		WithNote(source.Span{Start: 0, End: 3}, "opened here").
		WithFix("insert </p>", FixEdit{Span: source.Span{Start: 8, End: 8}, NewText: "</p>"})
	b.Emit()
	b.Emit()

	if bag.Len() != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d", bag.Len())
	}
	d := bag.Items()[0]
	if len(d.Notes) != 1 || len(d.Fixes) != 1 || d.Fixes[0].Edits[0].NewText != "</p>" {
		t.Fatalf("unexpected diagnostic payload: %+v", d)
	}

	var nilBuilder *ReportBuilder
	nilBuilder.WithNote(source.Span{}, "x").Emit()
	if nilBuilder.Diagnostic().Code != UnknownCode {
		t.Fatal("nil builder must return zero diagnostic")
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(8)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{Start: 1, End: 2}

	r.Report(LexInvalidByte, SevError, sp, "invalid byte 0x01", nil, nil)
	r.Report(LexInvalidByte, SevError, sp, "invalid byte 0x01", nil, nil)
	r.Report(SynUnexpectedToken, SevError, sp, "unexpected", nil, nil)

	if bag.Len() != 2 {
		t.Fatalf("expected 2 unique diagnostics, got %d", bag.Len())
	}
}
