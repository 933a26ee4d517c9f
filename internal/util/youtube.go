package util

import "regexp"

// youtubeURLPattern matches full watch/short-form YouTube links. Catalog rows
// store either a complete link or a bare video id.
var youtubeURLPattern = regexp.MustCompile(`http(?:s?)://(?:www\.)?youtu(?:be\.com/watch\?v=|\.be/)([\w\-_]*)`)

// NormalizeYouTubeURL returns raw unchanged when it is already a playable
// YouTube link, otherwise treats raw as a bare video id and builds the
// canonical watch link from it. Empty input yields empty output.
func NormalizeYouTubeURL(raw string) string {
	if raw == "" {
		return ""
	}
	if youtubeURLPattern.MatchString(raw) {
		return raw
	}
	return "https://www.youtube.com/watch?v=" + raw
}
