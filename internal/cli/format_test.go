package cli

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)

	for _, in := range []string{"2025-03-04", "04-Mar-2025"} {
		got, err := ParseDate(in)
		if err != nil {
			t.Errorf("ParseDate(%q): %v", in, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("ParseDate(%q) = %v, want %v", in, got, want)
		}
	}

	for _, in := range []string{"", "03/04/2025", "2025-13-40"} {
		if _, err := ParseDate(in); err == nil {
			t.Errorf("ParseDate(%q) accepted malformed input", in)
		}
	}
}

func TestParseDateTime(t *testing.T) {
	withTime := time.Date(2025, 3, 4, 15, 30, 0, 0, time.UTC)
	bare := time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)

	got, err := ParseDateTime("2025-03-04 15:30")
	if err != nil || !got.Equal(withTime) {
		t.Errorf("ParseDateTime = %v (%v), want %v", got, err, withTime)
	}
	got, err = ParseDateTime("2025-03-04T15:30")
	if err != nil || !got.Equal(withTime) {
		t.Errorf("ParseDateTime T-form = %v (%v), want %v", got, err, withTime)
	}
	got, err = ParseDateTime("2025-03-04")
	if err != nil || !got.Equal(bare) {
		t.Errorf("ParseDateTime bare date = %v (%v), want %v", got, err, bare)
	}
	if _, err := ParseDateTime("15:30"); err == nil {
		t.Error("ParseDateTime accepted a bare time")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{45 * time.Second, "45s"},
		{12 * time.Minute, "12m"},
		{3*time.Hour + 20*time.Minute, "3h 20m"},
		{26 * time.Hour, "1d 2h"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestTruncateString(t *testing.T) {
	if got := TruncateString("short", 10); got != "short" {
		t.Errorf("TruncateString = %q", got)
	}
	if got := TruncateString("a longer string", 9); got != "a long..." {
		t.Errorf("TruncateString = %q", got)
	}
}
