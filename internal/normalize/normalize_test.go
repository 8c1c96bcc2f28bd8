package normalize

import (
	"testing"
	"time"
)

func TestSlugFromLink(t *testing.T) {
	cases := []struct {
		link string
		want string
	}{
		{"https://howlongtobeat.com/game/3692", "3692"},
		{"https://howlongtobeat.com/game/3692/", "3692"},
		{"https://trakt.tv/movies/dune-2021?ref=list", "dune-2021"},
		{"https://example.com/comic/page#latest", "page"},
		{"plainslug", "plainslug"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := SlugFromLink(tc.link); got != tc.want {
			t.Errorf("SlugFromLink(%q) = %q, want %q", tc.link, got, tc.want)
		}
	}
}

func TestSanitizeHTMLKeepsOnlyParagraphs(t *testing.T) {
	in := `<p>Fine.</p><script>alert(1)</script><img src="x"><b>bold</b>`
	got := SanitizeHTML(in)
	want := `<p>Fine.</p>bold`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMarkdownToSafeHTML(t *testing.T) {
	got := MarkdownToSafeHTML("A story about **demons**.\n\nSecond paragraph.")
	want := "<p>A story about demons.</p>\n\n<p>Second paragraph.</p>"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if MarkdownToSafeHTML("") != "" {
		t.Error("empty markdown should stay empty")
	}
}

func TestStripCopyrightYear(t *testing.T) {
	cases := []struct{ in, want string }{
		{"©2023 Abbadon", "Abbadon"},
		{"© 2023 Abbadon", "Abbadon"},
		{"Taylor Robin", "Taylor Robin"},
	}
	for _, tc := range cases {
		if got := StripCopyrightYear(tc.in); got != tc.want {
			t.Errorf("StripCopyrightYear(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseTime(t *testing.T) {
	got := ParseTime("2024-03-01T10:30:00Z")
	if got == nil {
		t.Fatal("expected RFC3339 to parse")
	}
	want := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if got := ParseTime("2024-03-01"); got == nil || got.Day() != 1 {
		t.Errorf("date-only layout failed: %v", got)
	}
	if got := ParseTime("Mon, 02 Jan 2006 15:04:05 -0700"); got == nil {
		t.Error("RFC1123Z layout failed")
	}
	if ParseTime("") != nil {
		t.Error("empty input should yield nil")
	}
	if ParseTime("not a date") != nil {
		t.Error("garbage input should yield nil")
	}
}

func TestParseTimeDeterministic(t *testing.T) {
	a := ParseTime("2024-03-01T10:30:00+02:00")
	b := ParseTime("2024-03-01T10:30:00+02:00")
	if a == nil || b == nil || !a.Equal(*b) {
		t.Errorf("same input should normalize identically: %v vs %v", a, b)
	}
	if a.Location() != time.UTC {
		t.Error("timestamps should normalize to UTC")
	}
}
