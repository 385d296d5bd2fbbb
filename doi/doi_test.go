package doi

import (
	"fmt"
	"testing"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"10.1000/xyz123", "10.1000/xyz123"},
		{" 10.1000/xyz123 ", "10.1000/xyz123"},
		{"https://doi.org/10.1000/xyz123", "10.1000/xyz123"},
		{"https://doi.org/10.1/x", "10.1/x"},
		{"http://doi.org/10.1000/xyz123", "10.1000/xyz123"},
		{"doi.org/10.1000/xyz123", "10.1000/xyz123"},
		{"DOI:10.1000/xyz123", "10.1000/xyz123"},
		{"doi: 10.1000/xyz123", "10.1000/xyz123"},
		{"10.1038/s41467-021-23778-6", "10.1038/s41467-021-23778-6"},
		{"10.1000", ""},            // no slash
		{"doi.org/just/text", ""},  // no numeric registrant
		{"11.1000/xyz", ""},        // wrong directory indicator
		{"Doi:10.1000/xyz123", ""}, // prefixes are case sensitive as listed
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("normalize %s", tc.raw), func(t *testing.T) {
			if got := Normalize(tc.raw); got != tc.want {
				t.Errorf("want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, raw := range []string{
		"https://doi.org/10.1/x",
		"10.1000/xyz123",
		"doi:10.1234/asdf",
	} {
		once := Normalize(raw)
		if twice := Normalize(once); twice != once {
			t.Errorf("not idempotent for %q: %q vs %q", raw, once, twice)
		}
	}
}

func TestExtract(t *testing.T) {
	testCases := []struct {
		text string
		want string
	}{
		{"please see https://doi.org/10.1000/xyz123 for details", "10.1000/xyz123"},
		{"DO  - 10.1038/s41467-021-23778-6", "10.1038/s41467-021-23778-6"},
		{"no identifier in here", ""},
		{"two 10.1000/first and 10.1000/second", "10.1000/first"},
	}
	for _, tc := range testCases {
		if got := Extract(tc.text); got != tc.want {
			t.Errorf("Extract(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}
