package lineup

import "strings"

// FilterByWeekend keeps artists with at least one show on the given weekend.
// The "all" and "both" selectors return the input unchanged. No artist
// appears twice in the result, even if both its shows land on the same
// weekend.
func FilterByWeekend(artists []*Artist, weekend string) []*Artist {
	if weekend == "" || strings.EqualFold(weekend, All) || strings.EqualFold(weekend, "both") {
		return artists
	}

	var filtered []*Artist
	seen := make(map[string]bool)
	for _, a := range artists {
		key := strings.ToLower(a.Name)
		if seen[key] {
			continue
		}
		if a.PlaysOn(weekend) {
			filtered = append(filtered, a)
			seen[key] = true
		}
	}
	return filtered
}
