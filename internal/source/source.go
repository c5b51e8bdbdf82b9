// Package source fetches raw playlist and lineup data from the outside
// world: the Clashfinder lineup feed, Spotify playlists, and last.fm
// listening history.
package source

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/avivkr/lineup-tools/internal/lineup"
	"github.com/avivkr/lineup-tools/internal/match"
)

// ErrInvalidReference marks a playlist link that does not resolve to a known
// platform. No partial processing is attempted for such links.
var ErrInvalidReference = errors.New("not a recognized playlist reference")

// LineupSource returns the raw events for one festival weekend.
type LineupSource interface {
	Fetch(ctx context.Context, weekend string) ([]lineup.Event, error)
}

// PlaylistSource returns the artists of one playlist with per-artist track
// counts, pre-aggregated so each artist appears once.
type PlaylistSource interface {
	Fetch(ctx context.Context, ref string) ([]match.PlaylistArtist, error)
}

const spotifyPlaylistPrefix = "https://open.spotify.com/playlist/"

// lastfm references look like "lastfm:username" and pull the user's top
// artists instead of a single playlist.
const lastfmPrefix = "lastfm:"

var youtubePlaylistPrefixes = []string{
	"https://www.youtube.com/playlist",
	"https://youtube.com/playlist",
	"https://music.youtube.com/playlist",
}

// Resolver dispatches playlist references to the source that can read them.
type Resolver struct {
	Spotify PlaylistSource
	YouTube PlaylistSource
	LastFM  PlaylistSource
}

func (r *Resolver) Fetch(ctx context.Context, ref string) ([]match.PlaylistArtist, error) {
	ref = strings.TrimSpace(ref)
	switch {
	case strings.HasPrefix(ref, spotifyPlaylistPrefix):
		if r.Spotify == nil {
			return nil, fmt.Errorf("spotify source not configured (set spotify_id and spotify_secret)")
		}
		return r.Spotify.Fetch(ctx, CutQuery(ref))
	case isYouTubePlaylist(ref):
		if r.YouTube == nil {
			return nil, fmt.Errorf("youtube source not configured (set youtube_api_key)")
		}
		// The playlist ID lives in the query string, so the link is
		// passed through uncut.
		return r.YouTube.Fetch(ctx, ref)
	case strings.HasPrefix(ref, lastfmPrefix):
		if r.LastFM == nil {
			return nil, fmt.Errorf("last.fm source not configured (set lastfm_api_key and lastfm_secret)")
		}
		return r.LastFM.Fetch(ctx, strings.TrimPrefix(ref, lastfmPrefix))
	default:
		return nil, fmt.Errorf("%q: %w", ref, ErrInvalidReference)
	}
}

func isYouTubePlaylist(ref string) bool {
	for _, prefix := range youtubePlaylistPrefixes {
		if strings.HasPrefix(ref, prefix) {
			return true
		}
	}
	return false
}

// CutQuery drops everything from the first question mark on, so share links
// with tracking parameters resolve to the bare playlist link.
func CutQuery(link string) string {
	if i := strings.IndexByte(link, '?'); i >= 0 {
		return link[:i]
	}
	return link
}

// NormalizeLink canonicalizes a playlist link for duplicate detection.
// Tracking parameters are cut, except on YouTube links where the query
// string carries the playlist ID itself.
func NormalizeLink(link string) string {
	link = strings.TrimSpace(link)
	if isYouTubePlaylist(link) {
		if id := youtubePlaylistID(link); id != "" {
			return CutQuery(link) + "?list=" + id
		}
		return link
	}
	return CutQuery(link)
}

// SplitLinks breaks a message holding one link per line into individual
// trimmed links, dropping blank lines.
func SplitLinks(text string) []string {
	var links []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			links = append(links, line)
		}
	}
	return links
}
