package ast

import "testing"

func TestLookupTag(t *testing.T) {
	tests := []struct {
		name    string
		want    TagType
		ok      bool
		void    bool
		rawText bool
	}{
		{"div", TagDiv, true, false, false},
		{"DIV", TagDiv, true, false, false},
		{"br", TagBr, true, true, false},
		{"img", TagImg, true, true, false},
		{"script", TagScript, true, false, true},
		{"Style", TagStyle, true, false, true},
		{"h6", TagH6, true, false, false},
		{"my-widget", TagUnknown, false, false, false},
		{"", TagUnknown, false, false, false},
	}
	for _, tt := range tests {
		got, ok := LookupTag(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("LookupTag(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
		if got.IsVoid() != tt.void || got.IsRawText() != tt.rawText {
			t.Errorf("%q flags: void=%v raw=%v", tt.name, got.IsVoid(), got.IsRawText())
		}
	}
}

func TestTagTableConsistent(t *testing.T) {
	specs := TagSpecs()
	if len(specs) != 110 {
		t.Fatalf("expected 110 recognized elements, got %d", len(specs))
	}
	for i, spec := range specs {
		if i > 0 && specs[i-1].Name >= spec.Name {
			t.Fatalf("specs not sorted at %q", spec.Name)
		}
		if spec.Type.String() != spec.Name {
			t.Fatalf("%v.String() = %q, want %q", spec.Type, spec.Type.String(), spec.Name)
		}
		if got, ok := LookupTag(spec.Name); !ok || got != spec.Type {
			t.Fatalf("round trip failed for %q", spec.Name)
		}
	}
	if TagUnknown.String() != "unknown" || TagType(250).String() != "unknown" {
		t.Fatalf("unknown tag must print as unknown")
	}
}
