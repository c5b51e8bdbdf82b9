package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/avivkr/lineup-tools/internal/match"
)

// SpotifySource reads the artists of a public Spotify playlist using the
// client-credentials flow (no user login).
type SpotifySource struct {
	client *spotify.Client
}

func NewSpotifySource(ctx context.Context, clientID, clientSecret string) (*SpotifySource, error) {
	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}
	token, err := config.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("authenticating with spotify: %w", err)
	}

	httpClient := spotifyauth.New().Client(ctx, token)
	return &SpotifySource{client: spotify.New(httpClient)}, nil
}

// Fetch walks every page of the playlist and counts tracks per artist. All
// artists credited on a track are counted, matching how the play counts feed
// the affinity weights.
func (s *SpotifySource) Fetch(ctx context.Context, ref string) ([]match.PlaylistArtist, error) {
	id := playlistID(ref)
	if id == "" {
		return nil, fmt.Errorf("%q: %w", ref, ErrInvalidReference)
	}

	page, err := s.client.GetPlaylistItems(ctx, spotify.ID(id))
	if err != nil {
		return nil, fmt.Errorf("fetching playlist %q: %w", id, err)
	}

	var trackArtists []string
	for {
		for _, item := range page.Items {
			if item.Track.Track == nil {
				continue
			}
			for _, artist := range item.Track.Track.Artists {
				trackArtists = append(trackArtists, artist.Name)
			}
		}

		err = s.client.NextPage(ctx, page)
		if err == spotify.ErrNoMorePages {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("fetching playlist %q next page: %w", id, err)
		}
	}

	return match.AggregatePlayCounts(trackArtists), nil
}

// playlistID extracts the playlist ID from a bare playlist link (query
// already cut).
func playlistID(ref string) string {
	ref = strings.TrimSuffix(ref, "/")
	if i := strings.LastIndexByte(ref, '/'); i >= 0 {
		return ref[i+1:]
	}
	return ref
}
