package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/avivkr/lineup-tools/internal/lineup"
	"github.com/avivkr/lineup-tools/internal/match"
	"github.com/avivkr/lineup-tools/internal/prompt"
	"github.com/avivkr/lineup-tools/internal/session"
	"github.com/avivkr/lineup-tools/internal/source"
)

// maxMessageLen stays under Telegram's 4096-character message limit.
const maxMessageLen = 4000

// turnResult is what one playlist-message turn wants delivered: the replies
// in order, and whether the weekend keyboard should follow.
type turnResult struct {
	Replies    []string
	AskWeekend bool
}

// catalogLoader matches bot.Config.LoadCatalog.
type catalogLoader func(ctx context.Context) (*lineup.Catalog, error)

// processPlaylistMessage handles one message holding playlist links. Each
// link is fetched and merged into the session; links already processed are
// skipped so re-submitting a message cannot double-count. An empty match set
// is reported and the weekend keyboard suppressed.
func processPlaylistMessage(ctx context.Context, sess *session.Session, text string, playlists *source.Resolver, loadCatalog catalogLoader) turnResult {
	var res turnResult

	links := source.SplitLinks(text)
	if len(links) == 0 {
		res.Replies = append(res.Replies, "Please send a playlist link!")
		return res
	}

	cat, err := loadCatalog(ctx)
	if err != nil {
		log.Printf("loading catalog: %v", err)
		res.Replies = append(res.Replies, "The festival lineup is unavailable right now, try again later.")
		return res
	}

	processed := 0
	for _, link := range links {
		normalized := source.NormalizeLink(link)
		if sess.HasLink(normalized) {
			res.Replies = append(res.Replies, fmt.Sprintf("Already counted %s, skipping it.", normalized))
			continue
		}

		artists, err := playlists.Fetch(ctx, link)
		if errors.Is(err, source.ErrInvalidReference) {
			res.Replies = append(res.Replies, "Invalid link: "+link)
			continue
		}
		if err != nil {
			log.Printf("fetching playlist %q: %v", link, err)
			res.Replies = append(res.Replies, "Could not read playlist: "+normalized)
			continue
		}

		sess.Relevant = match.Merge(sess.Relevant, artists, cat)
		sess.AddLink(normalized)
		processed++
	}

	if processed == 0 && !sess.HasMatches() {
		return res
	}

	if !sess.HasMatches() {
		res.Replies = append(res.Replies, "None of your playlist artists play at the festival.")
		return res
	}

	res.Replies = append(res.Replies, fmt.Sprintf("%d of your artists play at the festival.", len(sess.Relevant)))
	res.AskWeekend = true
	return res
}

// promptPayload returns the generator payload for the session's current
// selection, rendering it on first use. The cached text survives a failed
// generate, so pressing the button again does not reassemble; picking a
// weekend invalidates it.
func promptPayload(sess *session.Session, travel *prompt.TravelTimes) string {
	if sess.LastPrompt == "" {
		filtered := lineup.FilterByWeekend(sess.Relevant, sess.SelectedWeekend)
		sess.LastPrompt = prompt.Assemble(filtered, sess.SelectedWeekend, travel)
	}
	return sess.LastPrompt
}

// splitMessage cuts long generator output into transport-sized parts,
// preferring to break on line boundaries.
func splitMessage(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	var parts []string
	for len(text) > limit {
		cut := strings.LastIndexByte(text[:limit], '\n')
		if cut <= 0 {
			cut = limit
		}
		parts = append(parts, strings.TrimRight(text[:cut], "\n"))
		text = strings.TrimLeft(text[cut:], "\n")
	}
	if text != "" {
		parts = append(parts, text)
	}
	return parts
}
