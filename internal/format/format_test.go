package format_test

import (
	"strings"
	"testing"
	"time"

	"github.com/hajduko/SaWinHETUtility/internal/format"
)

func TestASCII_BasicTable(t *testing.T) {
	tb := format.NewTable(format.ASCII)
	tb.Header("Lead", "Images", "Output")
	tb.Row("LEAD42", 3, "1.2 MB")
	tb.Row("LEAD7", 4, "850 kB")
	out := tb.String()

	for _, want := range []string{"LEAD", "LEAD42", "850 kB"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	// ASCII uses box-drawing characters from StyleLight
	if !strings.Contains(out, "───") {
		t.Errorf("expected box-drawing characters in ASCII output:\n%s", out)
	}
	if tb.Len() != 2 {
		t.Errorf("Len = %d, want 2", tb.Len())
	}
}

func TestASCII_Title(t *testing.T) {
	tb := format.NewTable(format.ASCII)
	tb.Title("Inbox")
	tb.Header("Key")
	tb.Row("LEAD1.json")
	if out := tb.String(); !strings.Contains(strings.ToLower(out), "inbox") {
		t.Errorf("expected title in output:\n%s", out)
	}
}

func TestMarkdown_BasicTable(t *testing.T) {
	tb := format.NewTable(format.Markdown)
	tb.Title("ignored in markdown")
	tb.Header("Section", "Records")
	tb.Row("Building Service Systems", 2)
	out := tb.String()

	if !strings.Contains(out, "| Section") {
		t.Errorf("expected markdown header with '| Section':\n%s", out)
	}
	if !strings.Contains(out, "---") {
		t.Errorf("expected markdown separator '---':\n%s", out)
	}
	if strings.Contains(out, "ignored in markdown") {
		t.Errorf("markdown output should not carry a title:\n%s", out)
	}
}

func TestMarkdown_WithFooter(t *testing.T) {
	tb := format.NewTable(format.Markdown)
	tb.Header("Lead", "Images")
	tb.Row("LEAD1", 3)
	tb.Row("LEAD2", 4)
	tb.Footer("TOTAL", 7)
	out := tb.String()

	if !strings.Contains(out, "TOTAL") || !strings.Contains(out, "7") {
		t.Errorf("expected footer in output:\n%s", out)
	}
}

func TestCSV(t *testing.T) {
	tb := format.NewTable(format.CSV)
	tb.Header("Lead", "Note")
	tb.Row("LEAD1", "front, left")
	out := tb.String()
	if !strings.Contains(strings.ToLower(out), "lead,note") {
		t.Errorf("expected CSV header:\n%s", out)
	}
	if !strings.Contains(out, "LEAD1,") || !strings.Contains(out, "front") {
		t.Errorf("expected CSV row:\n%s", out)
	}
}

func TestColumns_RightAlign(t *testing.T) {
	tb := format.NewTable(format.ASCII)
	tb.Header("Lead", "Bytes")
	tb.Row("LEAD1", 12345)
	tb.Columns(format.ColumnConfig{Number: 2, Align: format.AlignRight})
	if out := tb.String(); !strings.Contains(out, "12345") {
		t.Errorf("expected '12345' in output:\n%s", out)
	}
}

func TestParseMode(t *testing.T) {
	cases := map[string]format.Mode{
		"":         format.ASCII,
		"table":    format.ASCII,
		"Markdown": format.Markdown,
		"md":       format.Markdown,
		"csv":      format.CSV,
	}
	for in, want := range cases {
		got, err := format.ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := format.ParseMode("xml"); err == nil {
		t.Error("ParseMode(xml) should fail")
	}
}

// --- Helper tests ---

func TestFmtBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{500, "500 B"},
		{1024, "1.0 kB"},
		{1500000, "1.5 MB"},
		{-2000, "-2.0 kB"},
	}
	for _, tc := range tests {
		if got := format.FmtBytes(tc.in); got != tc.want {
			t.Errorf("FmtBytes(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFmtCount(t *testing.T) {
	if got := format.FmtCount(1234567); got != "1,234,567" {
		t.Errorf("FmtCount = %q", got)
	}
}

func TestFmtAge(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		at   time.Time
		want string
	}{
		{now, "now"},
		{now.Add(-90 * time.Second), "1 minute ago"},
		{now.Add(-3 * time.Hour), "3 hours ago"},
		{time.Time{}, "-"},
	}
	for _, tc := range tests {
		if got := format.FmtAge(tc.at, now); got != tc.want {
			t.Errorf("FmtAge(%v) = %q, want %q", tc.at, got, tc.want)
		}
	}
}

func TestFmtDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0ms"},
		{850 * time.Millisecond, "850ms"},
		{30 * time.Second, "30s"},
		{60 * time.Second, "1m 0s"},
		{5*time.Minute + 15*time.Second, "5m 15s"},
	}
	for _, tc := range tests {
		if got := format.FmtDuration(tc.in); got != tc.want {
			t.Errorf("FmtDuration(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"abcdef", 3, "abc"},
		{"Hőszigetelés", 6, "Hős..."},
	}
	for _, tc := range tests {
		if got := format.Truncate(tc.in, tc.maxLen); got != tc.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tc.in, tc.maxLen, got, tc.want)
		}
	}
}

func TestBoolMark(t *testing.T) {
	if format.BoolMark(true) != "✓" || format.BoolMark(false) != "✗" {
		t.Error("BoolMark marks")
	}
}
