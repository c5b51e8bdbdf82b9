package source

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/avivkr/lineup-tools/internal/match"
)

// YouTubeSource reads the artists of a YouTube or YouTube Music playlist.
// There is no artist field on a playlist item, so the artist is parsed from
// each video title.
type YouTubeSource struct {
	service *youtube.Service
}

func NewYouTubeSource(ctx context.Context, apiKey string) (*YouTubeSource, error) {
	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("connecting to youtube: %w", err)
	}
	return &YouTubeSource{service: service}, nil
}

// Fetch walks every page of the playlist and counts titles per parsed
// artist. Titles with no recognizable artist are skipped.
func (s *YouTubeSource) Fetch(ctx context.Context, ref string) ([]match.PlaylistArtist, error) {
	id := youtubePlaylistID(ref)
	if id == "" {
		return nil, fmt.Errorf("%q: %w", ref, ErrInvalidReference)
	}

	var trackArtists []string
	pageToken := ""
	for {
		resp, err := s.service.PlaylistItems.List([]string{"snippet"}).
			PlaylistId(id).
			MaxResults(50).
			PageToken(pageToken).
			Context(ctx).
			Do()
		if err != nil {
			return nil, fmt.Errorf("fetching playlist %q: %w", id, err)
		}

		for _, item := range resp.Items {
			if artist := extractArtistFromTitle(item.Snippet.Title); artist != "" {
				trackArtists = append(trackArtists, artist)
			}
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return match.AggregatePlayCounts(trackArtists), nil
}

// extractArtistFromTitle pulls the artist out of a video title of the
// "Artist - Track" or "Artist | Track" form. Titles without either
// separator yield "".
func extractArtistFromTitle(title string) string {
	for _, sep := range []string{" - ", " | "} {
		if artist, _, ok := strings.Cut(title, sep); ok {
			return strings.TrimSpace(artist)
		}
	}
	return ""
}

// youtubePlaylistID extracts the playlist ID from a playlist link: the value
// of the "list" parameter, cut at the next parameter if any.
func youtubePlaylistID(ref string) string {
	_, after, ok := strings.Cut(ref, "list=")
	if !ok {
		return ""
	}
	if i := strings.IndexByte(after, '&'); i >= 0 {
		after = after[:i]
	}
	return after
}
