package diag

import "tagtree/internal/source"

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

// Fatal reports whether d ended the parse of its document.
func (d Diagnostic) Fatal() bool { return d.Code.Fatal() }

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

func (d Diagnostic) WithFix(title string, edits ...FixEdit) Diagnostic {
	d.Fixes = append(d.Fixes, Fix{Title: title, Edits: edits})
	return d
}

// Insert is an edit adding text right before at.Start.
func Insert(at source.Span, text string) FixEdit {
	return FixEdit{Span: source.Span{File: at.File, Start: at.Start, End: at.Start}, NewText: text}
}

// Delete is an edit removing the text under sp.
func Delete(sp source.Span) FixEdit {
	return FixEdit{Span: sp}
}
