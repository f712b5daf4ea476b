package media

import "strings"

// AllowedExtensions are the file extensions a resolved entry may carry.
var AllowedExtensions = []string{"ogg", "mp4", "webm", "mp3", "wav"}

// Entry is a resolved URL (absolute or root-relative) that is believed to
// reference a playable media file.
type Entry string

// Extension returns the text after the final dot, or the whole entry when it has none.
func (e Entry) Extension() string {
	s := string(e)
	return s[strings.LastIndex(s, ".")+1:]
}

// Playable reports whether the entry extension is one of AllowedExtensions.
// The comparison is case-sensitive.
func (e Entry) Playable() bool {
	ext := e.Extension()
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// Display returns the URL-unescaped form of the entry for presentation.
func (e Entry) Display() string {
	return Unescape(string(e))
}

// Unescape decodes every valid %XX sequence in s and keeps malformed ones
// as they are, so "Song%20100%.mp3" becomes "Song 100%.mp3".
func Unescape(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

// JoinPath joins a directory and a child reference with a single slash.
func JoinPath(dir, child string) string {
	return strings.TrimSuffix(dir, "/") + "/" + child
}

// FilterPlayable returns the entries whose extension is allowed, keeping order.
func FilterPlayable(entries []Entry) []Entry {
	playable := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Playable() {
			playable = append(playable, e)
		}
	}
	return playable
}
