package util

import (
	"testing"
	"time"
)

func TestFormatCountdown(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{4 * 24 * time.Hour, "96:0:0"},
		{90 * time.Minute, "1:30:0"},
		{61 * time.Second, "0:1:1"},
		{0, "0:0:0"},
		{-time.Hour, "0:0:0"},
	}
	for _, c := range cases {
		if got := FormatCountdown(c.in); got != c.want {
			t.Fatalf("FormatCountdown(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}
