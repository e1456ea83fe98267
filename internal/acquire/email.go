package acquire

import (
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

// Hiring-flavored local parts win over generic or noreply addresses.
var preferredEmailHints = []string{"career", "job", "talent", "hr", "recruit"}

// PreferredEmail scans text for email addresses and returns the most likely
// application contact: the first address containing a hiring-flavored
// substring, else the first address found, else "".
func PreferredEmail(text string) string {
	matches := emailRe.FindAllString(text, -1)
	if len(matches) == 0 {
		return ""
	}
	for _, m := range matches {
		lower := strings.ToLower(m)
		for _, hint := range preferredEmailHints {
			if strings.Contains(lower, hint) {
				return m
			}
		}
	}
	return matches[0]
}
