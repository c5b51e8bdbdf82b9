package source

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/ademuri/lastfm-go/lastfm"
	"github.com/avast/retry-go"
	"golang.org/x/time/rate"

	"github.com/avivkr/lineup-tools/internal/match"
)

// LastFMSource treats a last.fm user's top artists as a playlist: each top
// artist contributes their scrobble count as the play count.
type LastFMSource struct {
	api     *lastfm.Api
	limiter *rate.Limiter

	// Limit caps how many top artists are pulled per user.
	Limit int
}

func NewLastFMSource(apiKey, secret string) *LastFMSource {
	api := lastfm.New(apiKey, secret)
	api.SetUserAgent("lineup-tools/1.0")
	return &LastFMSource{
		api:     api,
		limiter: rate.NewLimiter(rate.Every(1*time.Second), 1),
		Limit:   200,
	}
}

func (s *LastFMSource) Fetch(ctx context.Context, user string) ([]match.PlaylistArtist, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var topArtists lastfm.UserGetTopArtists
	err := retry.Do(
		func() error {
			var err error
			topArtists, err = s.api.User.GetTopArtists(lastfm.P{
				"user":  user,
				"limit": s.Limit,
			})
			return err
		},
		retry.RetryIf(func(err error) bool {
			if lerr, ok := err.(*lastfm.LastfmError); ok {
				return lerr.Code/100 == 5
			}
			return false
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("fetching top artists for %q: %w", user, err)
	}

	var artists []match.PlaylistArtist
	for _, a := range topArtists.Artists {
		count, err := strconv.Atoi(a.PlayCount)
		if err != nil || count < 1 {
			continue
		}
		artists = append(artists, match.PlaylistArtist{Name: a.Name, Songs: count})
	}
	return artists, nil
}
