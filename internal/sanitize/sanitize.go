// Package sanitize cleans untrusted text before it is echoed back to a
// terminal, an MCP client or an HTTP response. It strips control characters
// and bounds the length of quoted input lines.
package sanitize

import (
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// MaxLineLength is the maximum number of runes kept when quoting an input line.
const MaxLineLength = 120

// SanitizeLine prepares a line of user input for inclusion in an error
// message. Control characters are removed and long lines are truncated with
// a trailing ellipsis.
func SanitizeLine(input string) string {
	if input == "" {
		return ""
	}

	s := stripControlChars(input)
	s = strings.ReplaceAll(s, "\t", " ")

	// Truncate rune-safe to avoid splitting multi-byte UTF-8 chars.
	if utf8.RuneCountInString(s) > MaxLineLength {
		runes := []rune(s)
		s = string(runes[:MaxLineLength]) + "..."
	}

	return s
}

// SanitizeFilePath sanitizes a file path by cleaning path traversal sequences and
// stripping control characters. This is used for the 'path' parameter in
// toon_convert_file.
func SanitizeFilePath(input string) string {
	if input == "" {
		return ""
	}
	s := stripControlChars(input)
	s = strings.ReplaceAll(s, "\n", "")
	s = strings.ReplaceAll(s, "\t", "")
	return filepath.Clean(s)
}

// stripControlChars removes ASCII control characters (0x00-0x1F) and DEL (0x7F) from
// the string, except for newline (0x0A) and tab (0x09) which are preserved.
func stripControlChars(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r < 0x20 || r == 0x7F) && r != '\n' && r != '\t' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
