package ast

import "tagtree/internal/source"

// Attr is one name/value pair from an open tag.
//
// Value is the raw text between the quotes (or the bare literal for an
// unquoted value); HasValue is false for boolean attributes like `disabled`.
// Custom is set when Name is not in the attribute catalog.
type Attr struct {
	Name     string
	Value    string
	HasValue bool
	Custom   bool
	Span     source.Span
}

// NewAttr builds an attribute and classifies its name against the catalog.
func NewAttr(name, value string, hasValue bool, sp source.Span) Attr {
	_, known := LookupAttr(name)
	return Attr{
		Name:     name,
		Value:    value,
		HasValue: hasValue,
		Custom:   !known,
		Span:     sp,
	}
}
