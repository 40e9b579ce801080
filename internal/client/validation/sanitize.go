package validation

import "strings"

var markupStripper = strings.NewReplacer("<", "", ">", "", `"`, "", "'", "", "&", "")

// Sanitize removes the characters < > " ' & and trims surrounding
// whitespace. Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(s string) string {
	return strings.TrimSpace(markupStripper.Replace(s))
}

// NormalizeAllergies turns free comma-separated text into a tidy list:
// items are sanitized, empty items dropped, and the rest joined with ", ".
func NormalizeAllergies(s string) string {
	parts := strings.Split(s, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if item := Sanitize(p); item != "" {
			items = append(items, item)
		}
	}
	return strings.Join(items, ", ")
}
