// Package notify delivers rendered text to the user. Long artist listings
// are chunked here, before a transport sees them, so message-size limits of
// the delivery channel are always respected.
package notify

import (
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/avivkr/lineup-tools/internal/lineup"
)

// Notifier sends one chunk of user-facing text.
type Notifier interface {
	Send(text string) error
}

// ArtistBatchSize is how many artists go into one outbound message.
const ArtistBatchSize = 12

// ChunkArtists splits a matched-artist list into batches of at most size
// artists. Each batch renders independently.
func ChunkArtists(artists []*lineup.Artist, size int) [][]*lineup.Artist {
	if size <= 0 {
		size = ArtistBatchSize
	}
	var chunks [][]*lineup.Artist
	for start := 0; start < len(artists); start += size {
		end := start + size
		if end > len(artists) {
			end = len(artists)
		}
		chunks = append(chunks, artists[start:end])
	}
	return chunks
}

// RenderChunk formats one batch of artists for the selected weekend, one
// summary per artist separated by blank lines.
func RenderChunk(artists []*lineup.Artist, weekend string) string {
	parts := make([]string, 0, len(artists))
	for _, a := range artists {
		parts = append(parts, a.Summary(weekend))
	}
	return strings.Join(parts, "\n\n")
}

// EmailNotifier delivers chunks as emails through SendGrid.
type EmailNotifier struct {
	From    string
	To      string
	Subject string

	client *sendgrid.Client
}

func NewEmailNotifier(apiKey, from, to, subject string) *EmailNotifier {
	return &EmailNotifier{
		From:    from,
		To:      to,
		Subject: subject,
		client:  sendgrid.NewSendClient(apiKey),
	}
}

func (n *EmailNotifier) Send(text string) error {
	from := mail.NewEmail("lineup-tools", n.From)
	to := mail.NewEmail(n.To, n.To)
	message := mail.NewSingleEmail(from, n.Subject, to, text, text)
	resp, err := n.client.Send(message)
	if err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("sending email: sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}
