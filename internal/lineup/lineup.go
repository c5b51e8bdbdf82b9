// Package lineup holds the festival roster model: shows, artists, and the
// de-duplicated catalog built from raw per-weekend event feeds.
package lineup

import (
	"fmt"
	"strings"
)

// Weekend labels used by the lineup feeds. The festival has exactly two
// weekends; "all" is the selector for both.
const (
	Weekend1 = "weekend 1"
	Weekend2 = "weekend 2"
	All      = "all"
)

// Show is a single scheduled performance.
type Show struct {
	Weekend   string
	Stage     string
	TimeRange string
}

func (s Show) String() string {
	return fmt.Sprintf("%s\nStage and host name: %s\nDate: %s", s.Weekend, s.Stage, s.TimeRange)
}

// Artist is a festival performer. Artists playing both weekends carry a
// second show. Songs is the number of tracks the user knows by the artist;
// it stays 0 until a playlist match writes it.
type Artist struct {
	Name  string
	Songs int
	Show  Show
	Show2 *Show
	Link  string
}

// AddShow records a second appearance. A prior second show is overwritten:
// an artist is assumed to have at most one slot per weekend.
func (a *Artist) AddShow(s Show) {
	a.Show2 = &s
}

// PlaysOn reports whether the artist has a show on the given weekend.
// Comparison is case-insensitive.
func (a *Artist) PlaysOn(weekend string) bool {
	if strings.EqualFold(a.Show.Weekend, weekend) {
		return true
	}
	return a.Show2 != nil && strings.EqualFold(a.Show2.Weekend, weekend)
}

// Summary renders the artist for user-facing messages. With an empty or
// "all"/"both" selector both shows are included; otherwise only the show on
// the selected weekend.
func (a *Artist) Summary(selectedWeekend string) string {
	out := fmt.Sprintf("%s- Songs number: %d\n", a.Name, a.Songs)
	switch {
	case selectedWeekend == "" || strings.EqualFold(selectedWeekend, All) || strings.EqualFold(selectedWeekend, "both"):
		out += "Show:\n" + a.Show.String()
		if a.Show2 != nil {
			out += "\nShow2:\n" + a.Show2.String()
		}
	case strings.EqualFold(a.Show.Weekend, selectedWeekend):
		out += "Show:\n" + a.Show.String()
	case a.Show2 != nil && strings.EqualFold(a.Show2.Weekend, selectedWeekend):
		out += "Show:\n" + a.Show2.String()
	default:
		out += "No show for the selected weekend."
	}
	return out
}

// Event is a raw record from a lineup feed: one artist in one stage slot.
type Event struct {
	Artist  string
	Stage   string
	Start   string
	End     string
	Weekend string
	Link    string
}

func (e Event) timeRange() string {
	return fmt.Sprintf("%s to %s", e.Start, e.End)
}

// valid reports whether the record carries enough data to schedule.
func (e Event) valid() bool {
	return e.Artist != "" && e.Start != "" && e.End != "" && e.Weekend != ""
}

// Catalog is the canonical festival roster: at most one Artist per
// case-insensitive name, ordered by first appearance in the feeds.
type Catalog struct {
	artists []*Artist
	byName  map[string]*Artist
}

// BuildCatalog folds raw events into a de-duplicated roster. The first event
// for a name creates the artist with that show as the primary; a later event
// for the same name fills the second show slot. Malformed records are skipped
// and counted, never fatal. Building twice from the same input yields
// element-wise equal rosters.
func BuildCatalog(events []Event) (*Catalog, int) {
	c := &Catalog{byName: make(map[string]*Artist)}
	skipped := 0
	for _, ev := range events {
		if !ev.valid() {
			skipped++
			continue
		}
		show := Show{Weekend: ev.Weekend, Stage: ev.Stage, TimeRange: ev.timeRange()}
		key := strings.ToLower(ev.Artist)
		if existing, ok := c.byName[key]; ok {
			existing.AddShow(show)
			continue
		}
		artist := &Artist{Name: ev.Artist, Show: show, Link: ev.Link}
		c.byName[key] = artist
		c.artists = append(c.artists, artist)
	}
	return c, skipped
}

// Artists returns the roster in first-seen order.
func (c *Catalog) Artists() []*Artist {
	return c.artists
}

// Lookup finds an artist by case-insensitive name.
func (c *Catalog) Lookup(name string) (*Artist, bool) {
	a, ok := c.byName[strings.ToLower(name)]
	return a, ok
}

func (c *Catalog) Len() int {
	return len(c.artists)
}
