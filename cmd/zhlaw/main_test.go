package main

import (
	"bytes"
	"strings"
	"testing"

	"zhlaw/internal"
)

func TestPreviewLen(t *testing.T) {
	cases := []struct {
		requested, total, want int
	}{
		{requested: 5, total: 3, want: 3},
		{requested: 2, total: 3, want: 2},
		{requested: 0, total: 3, want: 0},
		{requested: -1, total: 3, want: 0},
		{requested: 5, total: 0, want: 0},
	}
	for _, tc := range cases {
		if got := previewLen(tc.requested, tc.total); got != tc.want {
			t.Fatalf("previewLen(%d, %d)=%d want %d", tc.requested, tc.total, got, tc.want)
		}
	}

	records := []internal.OutputRecord{{Abbreviation: "G"}}
	if got := records[:previewLen(-1, len(records))]; len(got) != 0 {
		t.Fatalf("got %+v", got)
	}
}

func TestWritePreviewKeepsURLsLiteral(t *testing.T) {
	records := []internal.OutputRecord{{Abbreviation: "GG", URL: "https://zh.test/?a=1&b=<2>", Title: "Gemeindegesetz Zürich", Canton: "ZH"}}
	var buf bytes.Buffer
	if err := writePreview(&buf, records); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, `"url": "https://zh.test/?a=1&b=<2>"`) || !strings.Contains(out, "Zürich") {
		t.Fatalf("out=%s", out)
	}
	if strings.Contains(out, `\u0026`) || strings.Contains(out, `\u003c`) {
		t.Fatalf("escaped output: %s", out)
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" https://a.test , ,https://b.test")
	if len(got) != 2 || got[0] != "https://a.test" || got[1] != "https://b.test" {
		t.Fatalf("got %v", got)
	}
	if splitList("") != nil {
		t.Fatal("expected nil for empty input")
	}
}
