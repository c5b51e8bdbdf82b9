// Package match intersects a user's playlist artists with the festival
// catalog and merges matches across multiple playlists.
package match

import (
	"strings"

	"github.com/avivkr/lineup-tools/internal/lineup"
)

// PlaylistArtist is one artist as reported by a playlist source, with the
// number of their tracks found in the playlist.
type PlaylistArtist struct {
	Name  string
	Songs int
}

// AggregatePlayCounts folds per-track artist names into one PlaylistArtist
// per case-insensitive name, counting tracks. Callers pass the result to
// Match so that a playlist listing an artist on several tracks contributes a
// single, correctly-counted entry.
func AggregatePlayCounts(trackArtists []string) []PlaylistArtist {
	counts := make(map[string]int)
	var order []string
	for _, name := range trackArtists {
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, seen := counts[key]; !seen {
			order = append(order, name)
		}
		counts[key]++
	}

	artists := make([]PlaylistArtist, 0, len(order))
	for _, name := range order {
		artists = append(artists, PlaylistArtist{Name: name, Songs: counts[strings.ToLower(name)]})
	}
	return artists
}

// Match returns the catalog artists the user knows, in catalog order. A hit
// writes the playlist play count onto the catalog artist (in place, not a
// copy); playlist artists the festival does not host are dropped. Matching
// the same input twice leaves the result and the counts unchanged.
func Match(playlist []PlaylistArtist, cat *lineup.Catalog) []*lineup.Artist {
	matched := make(map[string]int)
	for _, pa := range playlist {
		if artist, ok := cat.Lookup(pa.Name); ok {
			artist.Songs = pa.Songs
			matched[strings.ToLower(artist.Name)] = pa.Songs
		}
	}

	var result []*lineup.Artist
	for _, artist := range cat.Artists() {
		if _, ok := matched[strings.ToLower(artist.Name)]; ok {
			result = append(result, artist)
		}
	}
	return result
}

// Merge folds an additional playlist into the matches a session already
// holds. An artist already matched has the new playlist's play count added
// to their total; a first-time match enters with the playlist count. The
// artist entry itself is never duplicated, and new artists follow the
// existing ones in catalog order.
//
// Repeat matches are resolved against the existing entries, not the catalog:
// the catalog may have been rebuilt since the earlier playlist was merged,
// and a count added to a rebuilt catalog's artist would never reach the
// entry the session holds.
//
// Matching directly against the playlist (rather than against a second
// Match result) is what makes summing possible: Match overwrites counts in
// place, so by the time two result lists exist the first playlist's counts
// are already gone.
func Merge(existing []*lineup.Artist, playlist []PlaylistArtist, cat *lineup.Catalog) []*lineup.Artist {
	have := make(map[string]*lineup.Artist, len(existing))
	for _, a := range existing {
		have[strings.ToLower(a.Name)] = a
	}

	fresh := make(map[string]int)
	for _, pa := range playlist {
		if prior, ok := have[strings.ToLower(pa.Name)]; ok {
			prior.Songs += pa.Songs
			continue
		}
		artist, ok := cat.Lookup(pa.Name)
		if !ok {
			continue
		}
		artist.Songs = pa.Songs
		fresh[strings.ToLower(artist.Name)] = pa.Songs
	}

	merged := append([]*lineup.Artist{}, existing...)
	for _, artist := range cat.Artists() {
		if _, ok := fresh[strings.ToLower(artist.Name)]; ok {
			merged = append(merged, artist)
		}
	}
	return merged
}
