package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pfrederiksen/tourwatch/internal/event"
)

// APISource fetches tour dates from a JSON feed. The feed serves either a
// bare array of shows or an object wrapping one under "events".
type APISource struct {
	client *http.Client
	url    string
	apiKey string
}

// NewAPISource creates a feed client for the endpoint at url. apiKey may be
// empty for public feeds.
func NewAPISource(url, apiKey string) *APISource {
	return &APISource{
		client: newHTTPClient(),
		url:    url,
		apiKey: apiKey,
	}
}

// Name identifies the source in logs and status output
func (s *APISource) Name() string { return "api" }

// feedEvent mirrors one show as the feed serializes it
type feedEvent struct {
	EventID        string   `json:"event_id"`
	StartDate      string   `json:"start_date"`
	EndDate        string   `json:"end_date"`
	Venue          string   `json:"venue"`
	Location       string   `json:"location"`
	TicketLink     string   `json:"ticket_link"`
	VIPLink        string   `json:"vip_link"`
	AdditionalInfo []string `json:"additional_info"`
}

// feedResponse is the wrapped variant of the feed payload
type feedResponse struct {
	Events []feedEvent `json:"events"`
}

// FetchEvents fetches and decodes the feed
func (s *APISource) FetchEvents(ctx context.Context) ([]*event.Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading feed: %w", err)
	}

	items, err := decodeFeed(body)
	if err != nil {
		return nil, err
	}

	events := make([]*event.Event, 0, len(items))
	for _, item := range items {
		events = append(events, item.toEvent(s.url))
	}
	return events, nil
}

// decodeFeed accepts both payload shapes
func decodeFeed(body []byte) ([]feedEvent, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []feedEvent
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("parsing feed: %w", err)
		}
		return items, nil
	}

	var wrapped feedResponse
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}
	return wrapped.Events, nil
}

// toEvent converts a feed record without validating it; records with
// unparseable dates carry a zero Date and are skipped downstream
func (f feedEvent) toEvent(sourceURL string) *event.Event {
	start := event.ParseDate(f.StartDate)
	end := event.ParseDate(f.EndDate)

	return &event.Event{
		SourceID:  f.EventID,
		Venue:     f.Venue,
		Location:  f.Location,
		Date:      start,
		EndDate:   end,
		Details:   f.AdditionalInfo,
		TicketURL: f.TicketLink,
		VIPURL:    f.VIPLink,
		SourceURL: sourceURL,
	}
}
