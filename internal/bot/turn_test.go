package bot

import (
	"context"
	"errors"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/avivkr/lineup-tools/internal/lineup"
	"github.com/avivkr/lineup-tools/internal/match"
	"github.com/avivkr/lineup-tools/internal/session"
	"github.com/avivkr/lineup-tools/internal/source"
)

type fakePlaylists struct {
	artists map[string][]match.PlaylistArtist
	err     error
}

func (f *fakePlaylists) Fetch(ctx context.Context, ref string) ([]match.PlaylistArtist, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.artists[ref], nil
}

// testLoader rebuilds the catalog on every call, like the live loader that
// rereads the cache for each incoming message.
func testLoader(t *testing.T) catalogLoader {
	t.Helper()
	return func(ctx context.Context) (*lineup.Catalog, error) {
		cat, _ := lineup.BuildCatalog([]lineup.Event{
			{Artist: "Maddix", Stage: "Stage 8", Start: "19:00", End: "20:00", Weekend: lineup.Weekend1},
			{Artist: "Azteck", Stage: "Cage", Start: "17:00", End: "18:00", Weekend: lineup.Weekend2},
		})
		return cat, nil
	}
}

const playlistLink = "https://open.spotify.com/playlist/abc"

func resolverWith(f *fakePlaylists) *source.Resolver {
	return &source.Resolver{Spotify: f}
}

func TestProcessPlaylistMessageMatches(t *testing.T) {
	sess := &session.Session{}
	playlists := &fakePlaylists{artists: map[string][]match.PlaylistArtist{
		playlistLink: {{Name: "Maddix", Songs: 5}, {Name: "Unknown", Songs: 2}},
	}}

	turn := processPlaylistMessage(context.Background(), sess, playlistLink+"?si=tracking", resolverWith(playlists), testLoader(t))

	if !turn.AskWeekend {
		t.Error("expected weekend keyboard after a successful match")
	}
	if len(sess.Relevant) != 1 || sess.Relevant[0].Name != "Maddix" {
		t.Fatalf("session matches = %v", sess.Relevant)
	}
	if sess.Relevant[0].Songs != 5 {
		t.Errorf("Songs = %d, want 5", sess.Relevant[0].Songs)
	}
}

func TestProcessPlaylistMessageDuplicateLink(t *testing.T) {
	sess := &session.Session{}
	playlists := &fakePlaylists{artists: map[string][]match.PlaylistArtist{
		playlistLink: {{Name: "Maddix", Songs: 5}},
	}}
	resolver := resolverWith(playlists)

	processPlaylistMessage(context.Background(), sess, playlistLink, resolver, testLoader(t))
	turn := processPlaylistMessage(context.Background(), sess, playlistLink, resolver, testLoader(t))

	maddix := sess.Relevant[0]
	if maddix.Songs != 5 {
		t.Errorf("re-submitted link changed songs to %d, want 5", maddix.Songs)
	}
	joined := strings.Join(turn.Replies, "\n")
	if !strings.Contains(joined, "skipping") {
		t.Errorf("no skip notice for duplicate link: %q", joined)
	}
}

func TestProcessPlaylistMessageTwoPlaylistsSum(t *testing.T) {
	second := "https://open.spotify.com/playlist/def"
	sess := &session.Session{}
	playlists := &fakePlaylists{artists: map[string][]match.PlaylistArtist{
		playlistLink: {{Name: "Maddix", Songs: 5}},
		second:       {{Name: "maddix", Songs: 3}, {Name: "Azteck", Songs: 4}},
	}}
	resolver := resolverWith(playlists)

	// Each message goes through a freshly loaded catalog; the sum must
	// still land on the artist the session holds.
	processPlaylistMessage(context.Background(), sess, playlistLink, resolver, testLoader(t))
	processPlaylistMessage(context.Background(), sess, second, resolver, testLoader(t))

	if len(sess.Relevant) != 2 {
		t.Fatalf("session matches = %d, want 2", len(sess.Relevant))
	}
	if sess.Relevant[0].Songs != 8 {
		t.Errorf("songs after two playlists in separate messages = %d, want summed 8", sess.Relevant[0].Songs)
	}
}

func TestProcessPlaylistMessageInvalidLink(t *testing.T) {
	sess := &session.Session{}
	turn := processPlaylistMessage(context.Background(), sess, "https://example.com/nope", resolverWith(&fakePlaylists{}), testLoader(t))

	if turn.AskWeekend {
		t.Error("invalid link must not trigger the weekend keyboard")
	}
	if len(turn.Replies) == 0 || !strings.Contains(turn.Replies[0], "Invalid link") {
		t.Errorf("replies = %v, want invalid-link notice", turn.Replies)
	}
}

func TestProcessPlaylistMessageNoMatches(t *testing.T) {
	sess := &session.Session{}
	playlists := &fakePlaylists{artists: map[string][]match.PlaylistArtist{
		playlistLink: {{Name: "Unknown Artist", Songs: 9}},
	}}

	turn := processPlaylistMessage(context.Background(), sess, playlistLink, resolverWith(playlists), testLoader(t))

	if turn.AskWeekend {
		t.Error("no matches must suppress the weekend keyboard")
	}
	joined := strings.Join(turn.Replies, "\n")
	if !strings.Contains(joined, "None of your playlist artists") {
		t.Errorf("replies = %v", turn.Replies)
	}
}

func TestProcessPlaylistMessageFetchFailure(t *testing.T) {
	sess := &session.Session{}
	playlists := &fakePlaylists{err: errors.New("rate limited")}

	turn := processPlaylistMessage(context.Background(), sess, playlistLink, resolverWith(playlists), testLoader(t))

	if turn.AskWeekend {
		t.Error("failed fetch must not trigger the weekend keyboard")
	}
	if sess.HasLink(playlistLink) {
		t.Error("failed link must not be marked processed")
	}
}

func TestPromptPayloadCachedForRetry(t *testing.T) {
	sess := &session.Session{
		Relevant: []*lineup.Artist{{
			Name:  "Maddix",
			Songs: 5,
			Show:  lineup.Show{Weekend: lineup.Weekend1, Stage: "Stage 8", TimeRange: "19:00 to 20:00"},
		}},
	}
	sess.SelectWeekend(lineup.Weekend1)

	first := promptPayload(sess, nil)
	if first == "" || sess.LastPrompt != first {
		t.Fatalf("payload not cached: %q", sess.LastPrompt)
	}

	// A retry after a failed generate returns the cached payload instead
	// of rendering again.
	sess.Relevant[0].Songs = 7
	if second := promptPayload(sess, nil); second != first {
		t.Error("retry reassembled the payload instead of reusing the cache")
	}

	// Picking a weekend invalidates the cache.
	sess.SelectWeekend(lineup.Weekend2)
	if sess.LastPrompt != "" {
		t.Error("weekend selection kept the stale payload")
	}
}

func TestCallbackChatID(t *testing.T) {
	// Callbacks for messages older than 48 hours arrive without a message.
	if _, ok := callbackChatID(&tgbotapi.CallbackQuery{}); ok {
		t.Error("callback without a message reported a chat ID")
	}

	cb := &tgbotapi.CallbackQuery{Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 42}}}
	id, ok := callbackChatID(cb)
	if !ok || id != 42 {
		t.Errorf("callbackChatID = %d, %t, want 42, true", id, ok)
	}
}

func TestSplitMessage(t *testing.T) {
	long := strings.Repeat("line one\n", 100)
	parts := splitMessage(long, 100)
	if len(parts) < 2 {
		t.Fatalf("long text not split: %d parts", len(parts))
	}
	for i, p := range parts {
		if len(p) > 100 {
			t.Errorf("part %d length %d exceeds limit", i, len(p))
		}
	}

	short := splitMessage("short", 100)
	if len(short) != 1 || short[0] != "short" {
		t.Errorf("short text mangled: %v", short)
	}
}
