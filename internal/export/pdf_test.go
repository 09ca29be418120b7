package export

import "testing"

func TestPercentEncodeForDataURL(t *testing.T) {
	cases := map[string]string{
		"plain":         "plain",
		"two words":     "two%20words",
		"a+b":           "a%2Bb",
		"<p>é</p>":      "%3Cp%3E%C3%A9%3C%2Fp%3E",
		"safe-._~chars": "safe-._~chars",
	}
	for in, want := range cases {
		if got := percentEncodeForDataURL(in); got != want {
			t.Errorf("percentEncodeForDataURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"Ada Lovelace":       "Ada-Lovelace",
		"a/b\\c":             "abc",
		"":                   "portfolio",
		"résumé":             "rsum",
		"already-fine_title": "already-fine_title",
	}
	for in, want := range cases {
		if got := sanitizeFilename(in); got != want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
