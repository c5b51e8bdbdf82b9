package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avast/retry-go"
	"golang.org/x/time/rate"

	"github.com/avivkr/lineup-tools/internal/lineup"
)

const defaultClashfinderBase = "https://clashfinder.com/data/event"

// ClashfinderSource reads a festival weekend's schedule from the Clashfinder
// JSON feed: locations (stages), each holding its events.
type ClashfinderSource struct {
	// BaseURL without a trailing slash; the event ID and ".json" are appended.
	BaseURL string

	// EventIDs maps a weekend label to its Clashfinder event ID,
	// e.g. "weekend 1" -> "tml2024w1".
	EventIDs map[string]string

	client  *http.Client
	limiter *rate.Limiter
}

func NewClashfinderSource(eventIDs map[string]string) *ClashfinderSource {
	return &ClashfinderSource{
		BaseURL:  defaultClashfinderBase,
		EventIDs: eventIDs,
		client:   &http.Client{Timeout: 30 * time.Second},
		limiter:  rate.NewLimiter(rate.Every(1*time.Second), 1),
	}
}

type clashfinderPayload struct {
	Locations []struct {
		Name   string `json:"name"`
		Events []struct {
			Name  string `json:"name"`
			Start string `json:"start"`
			End   string `json:"end"`
		} `json:"events"`
	} `json:"locations"`
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("feed returned status %d", e.code)
}

// Fetch downloads and decodes one weekend's feed. Transient server errors
// are retried; a feed that stays unreachable surfaces as an error the caller
// treats as zero events for that weekend.
func (c *ClashfinderSource) Fetch(ctx context.Context, weekend string) ([]lineup.Event, error) {
	eventID, ok := c.EventIDs[weekend]
	if !ok {
		return nil, fmt.Errorf("no lineup feed configured for %q", weekend)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s.json", c.BaseURL, eventID)
	var payload clashfinderPayload
	err := retry.Do(
		func() error {
			return c.fetchJSON(ctx, url, &payload)
		},
		retry.RetryIf(func(err error) bool {
			var se *statusError
			return errors.As(err, &se) && se.code/100 == 5
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("fetching lineup for %q: %w", weekend, err)
	}

	var events []lineup.Event
	for _, loc := range payload.Locations {
		for _, ev := range loc.Events {
			events = append(events, lineup.Event{
				Artist:  ev.Name,
				Stage:   loc.Name,
				Start:   ev.Start,
				End:     ev.End,
				Weekend: weekend,
			})
		}
	}
	return events, nil
}

func (c *ClashfinderSource) fetchJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "lineup-tools/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return &statusError{code: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding feed: %w", err)
	}
	return nil
}
