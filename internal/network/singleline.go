package network

import "strings"

// ToSingleLine removes line feeds and carriage returns from s,
// and collapses double spaces, to log s on a single line.
func ToSingleLine(s string) (line string) {
	line = strings.ReplaceAll(s, "\n", "")
	line = strings.ReplaceAll(line, "\r", "")
	line = strings.ReplaceAll(line, "  ", " ")
	line = strings.ReplaceAll(line, "  ", " ")
	return line
}
