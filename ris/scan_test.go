package ris

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScanFields(t *testing.T) {
	testCases := []struct {
		name string
		text string
		want []Field
	}{
		{
			name: "empty",
			text: "",
			want: nil,
		},
		{
			name: "single field",
			text: "TI  - Deep learning",
			want: []Field{{Tag: "TI", Value: "Deep learning"}},
		},
		{
			name: "continuation line",
			text: "TI  - Long\n  title continues",
			want: []Field{{Tag: "TI", Value: "Long title continues"}},
		},
		{
			name: "blank line keeps field pending",
			text: "AB  - First part\n\nsecond part",
			want: []Field{{Tag: "AB", Value: "First part second part"}},
		},
		{
			name: "field order preserved",
			text: "TY  - JOUR\nAU  - Smith, J.\nAU  - Lee, K.\nPY  - 2021",
			want: []Field{
				{Tag: "TY", Value: "JOUR"},
				{Tag: "AU", Value: "Smith, J."},
				{Tag: "AU", Value: "Lee, K."},
				{Tag: "PY", Value: "2021"},
			},
		},
		{
			name: "three char tag",
			text: "DO1 - 10.1000/x",
			want: []Field{{Tag: "DO1", Value: "10.1000/x"}},
		},
		{
			name: "flexible hyphen spacing",
			text: "DO- 10.1000/x\nPY -2020",
			want: []Field{
				{Tag: "DO", Value: "10.1000/x"},
				{Tag: "PY", Value: "2020"},
			},
		},
		{
			name: "end of record sentinel terminates pending field",
			text: "KW  - neurons\nER  -\nstray trailing text",
			want: []Field{{Tag: "KW", Value: "neurons"}},
		},
		{
			name: "lowercase prefix is body text",
			text: "ti - not a field\nTI  - Real title",
			want: []Field{{Tag: "TI", Value: "Real title"}},
		},
		{
			name: "leading body text before first field is dropped",
			text: "Dear colleague,\nplease find attached\nTI  - Paper",
			want: []Field{{Tag: "TI", Value: "Paper"}},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ScanFields(tc.text)
			if d := cmp.Diff(tc.want, got); d != "" {
				t.Errorf("mismatch (-want +got):\n%s", d)
			}
		})
	}
}

func TestScanBody(t *testing.T) {
	text := "TI  - Alpha\nAU  - Smith, J."
	html := "TI  - <b>Alpha</b>\nKW  - brains"
	got := ScanBody(text, html)
	want := []Field{
		{Tag: "TI", Value: "Alpha"},
		{Tag: "AU", Value: "Smith, J."},
		{Tag: "TI", Value: "<b>Alpha</b>"},
		{Tag: "KW", Value: "brains"},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("mismatch (-want +got):\n%s", d)
	}
	// identical renderings are scanned once
	if got := ScanBody(text, text); len(got) != 2 {
		t.Errorf("want 2 fields, got %d", len(got))
	}
}

func TestTagLookup(t *testing.T) {
	if !Tag("AU").Known() || !Tag("AU").Repeatable() {
		t.Error("AU should be known and repeatable")
	}
	if Tag("TI").Repeatable() {
		t.Error("TI should be scalar")
	}
	if Tag("QQ").Known() {
		t.Error("QQ should be unknown")
	}
	for _, name := range []string{"title", "TI"} {
		tag, ok := TagForName(name)
		if !ok || tag != TagTitle {
			t.Errorf("TagForName(%q) = %v, %v", name, tag, ok)
		}
	}
	if _, ok := TagForName("frobnicate"); ok {
		t.Error("unexpected tag for bogus name")
	}
}
