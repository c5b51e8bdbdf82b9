// Package bot runs the interactive Telegram frontend: playlist links in,
// matched artists and an optional AI-generated schedule out. All
// conversation state lives in per-chat sessions.
package bot

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/avivkr/lineup-tools/internal/generate"
	"github.com/avivkr/lineup-tools/internal/lineup"
	"github.com/avivkr/lineup-tools/internal/notify"
	"github.com/avivkr/lineup-tools/internal/prompt"
	"github.com/avivkr/lineup-tools/internal/session"
	"github.com/avivkr/lineup-tools/internal/source"
)

const (
	callbackAllWeekends = "weekend_all"
	callbackGenerate    = "generate_ai_lineup"
	callbackDone        = "done"
)

// Config wires the bot's collaborators.
type Config struct {
	Token     string
	Playlists *source.Resolver
	Generator generate.Generator
	Travel    *prompt.TravelTimes

	// LoadCatalog returns the current festival catalog, usually from the
	// local cache filled by the update command.
	LoadCatalog func(ctx context.Context) (*lineup.Catalog, error)
}

type Bot struct {
	api      *tgbotapi.BotAPI
	cfg      Config
	sessions *session.Registry
}

func New(cfg Config) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("connecting to telegram: %w", err)
	}
	return &Bot{
		api:      api,
		cfg:      cfg,
		sessions: session.NewRegistry(),
	}, nil
}

// Run processes updates until the context is canceled.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	log.Printf("bot running as @%s", b.api.Self.UserName)
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update := <-updates:
			switch {
			case update.Message != nil:
				b.handleMessage(ctx, update.Message)
			case update.CallbackQuery != nil:
				b.handleCallback(ctx, update.CallbackQuery)
			}
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	sess := b.sessions.Get(chatID)
	log.Printf("user %s wrote: %s", msg.From.UserName, msg.Text)

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			b.send(chatID, "Hello! Send a playlist link to get started.\nSpotify and YouTube playlist links and lastfm:<username> references work.")
		case "restart":
			sess.Clear()
			b.send(chatID, "All data has been cleared. Send a playlist link to start over.")
		default:
			b.send(chatID, "Unknown command. Send a playlist link, or /restart to start over.")
		}
		return
	}

	turn := processPlaylistMessage(ctx, sess, msg.Text, b.cfg.Playlists, b.cfg.LoadCatalog)
	for _, reply := range turn.Replies {
		b.send(chatID, reply)
	}
	if turn.AskWeekend {
		b.sendWeekendKeyboard(chatID)
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	// Acknowledge so the client stops the spinner.
	b.api.Request(tgbotapi.NewCallback(cb.ID, ""))

	chatID, ok := callbackChatID(cb)
	if !ok {
		// Telegram omits the message on callbacks for messages older
		// than 48 hours; there is no chat to answer to.
		log.Printf("callback %q without a message, ignoring", cb.Data)
		return
	}
	sess := b.sessions.Get(chatID)

	switch cb.Data {
	case lineup.Weekend1, lineup.Weekend2, callbackAllWeekends:
		weekend := cb.Data
		if weekend == callbackAllWeekends {
			weekend = lineup.All
		}
		b.showWeekend(chatID, sess, weekend)

	case callbackGenerate:
		b.generateSchedule(ctx, chatID, sess)

	case callbackDone:
		sess.Clear()
		b.send(chatID, "You have chosen not to generate an AI lineup.\nSend a playlist link whenever you want to start again. Goodbye for now!")

	default:
		log.Printf("invalid callback option %q", cb.Data)
		b.send(chatID, "Invalid option selected!")
	}
}

func (b *Bot) showWeekend(chatID int64, sess *session.Session, weekend string) {
	filtered := lineup.FilterByWeekend(sess.Relevant, weekend)
	sess.SelectWeekend(weekend)

	if len(filtered) == 0 {
		b.send(chatID, fmt.Sprintf("No matched artists play on %s.", weekend))
		return
	}

	b.send(chatID, fmt.Sprintf("%d artists found for %s:", len(filtered), weekend))
	for _, chunk := range notify.ChunkArtists(filtered, notify.ArtistBatchSize) {
		b.send(chatID, notify.RenderChunk(chunk, weekend))
	}
	b.sendGenerateKeyboard(chatID)
}

func (b *Bot) generateSchedule(ctx context.Context, chatID int64, sess *session.Session) {
	filtered := lineup.FilterByWeekend(sess.Relevant, sess.SelectedWeekend)
	if len(filtered) == 0 {
		b.send(chatID, "There is nothing to schedule yet. Send a playlist link first.")
		return
	}

	b.send(chatID, "Your lineup is in process, please wait a while..")

	payload := promptPayload(sess, b.cfg.Travel)

	text, err := b.cfg.Generator.Generate(ctx, payload)
	if err != nil {
		// Session stays intact so the user can press the button again.
		log.Printf("schedule generation failed: %v", err)
		b.send(chatID, "Generating your lineup failed. Your playlists are still loaded - try again in a moment.")
		return
	}

	for _, part := range splitMessage(text, maxMessageLen) {
		b.send(chatID, part)
	}
}

// callbackChatID extracts the originating chat from a callback query, which
// carries no message for sufficiently old messages.
func callbackChatID(cb *tgbotapi.CallbackQuery) (int64, bool) {
	if cb.Message == nil || cb.Message.Chat == nil {
		return 0, false
	}
	return cb.Message.Chat.ID, true
}

func (b *Bot) send(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Printf("sending message: %v", err)
	}
}

func (b *Bot) sendWeekendKeyboard(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "Select a weekend:")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Weekend 1", lineup.Weekend1),
			tgbotapi.NewInlineKeyboardButtonData("Weekend 2", lineup.Weekend2),
			tgbotapi.NewInlineKeyboardButtonData("All", callbackAllWeekends),
		),
	)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("sending keyboard: %v", err)
	}
}

func (b *Bot) sendGenerateKeyboard(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "Would you like to generate an AI lineup?")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Generate AI Lineup", callbackGenerate),
			tgbotapi.NewInlineKeyboardButtonData("No, I'm done", callbackDone),
		),
	)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("sending keyboard: %v", err)
	}
}
