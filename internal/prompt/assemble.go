// Package prompt renders matched artists, the walking-time table, and the
// fixed scheduling policy into the text payload sent to the schedule
// generator.
package prompt

import (
	"fmt"
	"strings"

	"github.com/avivkr/lineup-tools/internal/lineup"
)

// Assemble builds the full generator payload for the given matched artists
// and weekend selection. It is a pure function of its inputs: the same
// artists, weekend, and travel table always produce the same text.
func Assemble(artists []*lineup.Artist, weekend string, travel *TravelTimes) string {
	var b strings.Builder

	b.WriteString(promptIntro)
	b.WriteString("\nStage Travel Times:\n")
	if travel != nil {
		if table := travel.Render(); table != "" {
			b.WriteString(table)
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(policyText())

	b.WriteString("\nUser's Favorite Artists and Their Song Counts:\n")
	for _, a := range artists {
		fmt.Fprintf(&b, "%s: %d %s\n", a.Name, a.Songs, songsWord(a.Songs))
	}

	b.WriteString("\nFestival Lineup:\n")
	for _, a := range artists {
		for _, show := range showsFor(a, weekend) {
			fmt.Fprintf(&b, "%s: %s, %s, %s\n", a.Name, show.Stage, show.Weekend, show.TimeRange)
		}
	}

	fmt.Fprintf(&b, "\nSelected weekend: %s\n", weekend)
	return b.String()
}

// showsFor picks the shows relevant to the weekend selection: both shows for
// "all"/"both", otherwise only the one on the selected weekend.
func showsFor(a *lineup.Artist, weekend string) []lineup.Show {
	if weekend == "" || strings.EqualFold(weekend, lineup.All) || strings.EqualFold(weekend, "both") {
		shows := []lineup.Show{a.Show}
		if a.Show2 != nil {
			shows = append(shows, *a.Show2)
		}
		return shows
	}
	if strings.EqualFold(a.Show.Weekend, weekend) {
		return []lineup.Show{a.Show}
	}
	if a.Show2 != nil && strings.EqualFold(a.Show2.Weekend, weekend) {
		return []lineup.Show{*a.Show2}
	}
	return nil
}

func songsWord(n int) string {
	if n == 1 {
		return "song"
	}
	return "songs"
}
