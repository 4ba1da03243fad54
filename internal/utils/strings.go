package utils

import (
	"strings"
)

// TrimOrEmpty normalizes user input without turning nil into "nil".
func TrimOrEmpty(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeTicketNumber uppercases and trims a ticket number so the
// duplicate key compares the way dispatchers write them.
func NormalizeTicketNumber(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}
