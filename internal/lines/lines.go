// Package lines splits free-text form fields into list items.
package lines

import (
	"strconv"
	"strings"
)

// Parse splits raw on line breaks, trims every line and drops the blank ones.
// Order is preserved. The result is never nil.
func Parse(raw string) []string {
	items := []string{}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		items = append(items, line)
	}
	return items
}

// Numbered renders items as a 1-based list, one line per item:
// "<indent>1. first".
func Numbered(items []string, indent string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = indent + strconv.Itoa(i+1) + ". " + item
	}
	return out
}
