// Package countries is the list offered when picking a nationality.
package countries

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
)

//go:embed countries.json
var raw []byte

type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

var all = mustLoad(raw)

func mustLoad(b []byte) []Country {
	var cs []Country
	if err := json.Unmarshal(b, &cs); err != nil {
		panic(fmt.Sprintf("countries: embedded list is invalid: %v", err))
	}
	return cs
}

// All returns every country in display order.
func All() []Country {
	out := make([]Country, len(all))
	copy(out, all)
	return out
}

// Filter returns the countries whose name contains query, ignoring case.
// An empty query matches everything.
func Filter(query string) []Country {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Country, 0)
	for _, c := range all {
		if strings.Contains(strings.ToLower(c.Name), q) {
			out = append(out, c)
		}
	}
	return out
}

// Lookup finds a country by exact name or ISO code, ignoring case.
func Lookup(s string) (Country, bool) {
	s = strings.TrimSpace(s)
	for _, c := range all {
		if strings.EqualFold(c.Name, s) || strings.EqualFold(c.Code, s) {
			return c, true
		}
	}
	return Country{}, false
}
