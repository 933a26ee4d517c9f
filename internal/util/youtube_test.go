package util

import "testing"

func TestNormalizeYouTubeURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"dQw4w9WgXcQ", "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"http://youtube.com/watch?v=abc123", "http://youtube.com/watch?v=abc123"},
		{"https://youtu.be/dQw4w9WgXcQ", "https://youtu.be/dQw4w9WgXcQ"},
	}
	for _, c := range cases {
		if got := NormalizeYouTubeURL(c.in); got != c.want {
			t.Fatalf("NormalizeYouTubeURL(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
