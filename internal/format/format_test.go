package format

import (
	"strings"
	"testing"
	"time"
)

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00a0', '\u202f':
			return -1
		}
		return r
	}, s)
}

func TestFormatter_SEK(t *testing.T) {
	t.Parallel()

	f := New(nil)
	got := f.SEK(4950000)
	if !strings.HasSuffix(got, "kr") {
		t.Fatalf("expected kronor suffix, got %q", got)
	}
	if stripSpaces(got) != "4950000kr" {
		t.Fatalf("unexpected digits in %q", got)
	}
	if strings.Contains(got, ",") || strings.Contains(got, ".") {
		t.Fatalf("expected no fraction or comma grouping, got %q", got)
	}
	if strings.Contains(got, "SEK") {
		t.Fatalf("expected the local symbol rather than the ISO code, got %q", got)
	}
	if !strings.HasSuffix(f.SEK(1234), "\u00a0kr") {
		t.Fatalf("expected a non-breaking space before the symbol, got %q", f.SEK(1234))
	}
	if stripSpaces(f.SEK(0)) != "0kr" {
		t.Fatalf("unexpected zero rendering %q", f.SEK(0))
	}
}

func TestFormatter_Times(t *testing.T) {
	t.Parallel()

	cet := time.FixedZone("CET", 60*60)
	f := New(cet)
	ts := time.Date(2024, time.March, 14, 23, 30, 0, 0, time.UTC)

	if got := f.Date(ts); got != "2024-03-15" {
		t.Fatalf("expected local date, got %q", got)
	}
	if got := f.Time(ts); got != "00:30" {
		t.Fatalf("expected local time, got %q", got)
	}
	if got := f.DateTime(ts); got != "2024-03-15 00:30" {
		t.Fatalf("unexpected date time %q", got)
	}
	if f.Date(time.Time{}) != "" || f.DateTime(time.Time{}) != "" {
		t.Fatalf("zero times should render empty")
	}
	if f.Location() != cet {
		t.Fatalf("expected configured location")
	}
}
