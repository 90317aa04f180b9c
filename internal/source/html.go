package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/tourwatch/internal/event"
)

// HTMLSource scrapes the rendered tour page. The listing is an embedded
// ticketing widget; each show is a .seated-event-row.
type HTMLSource struct {
	client *http.Client
	url    string
}

// NewHTMLSource creates a scraper for the tour page at url
func NewHTMLSource(url string) *HTMLSource {
	return &HTMLSource{
		client: newHTTPClient(),
		url:    url,
	}
}

// Name identifies the source in logs and status output
func (s *HTMLSource) Name() string { return "html" }

// FetchEvents fetches the tour page and parses all listed shows
func (s *HTMLSource) FetchEvents(ctx context.Context) ([]*event.Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return s.parseEvents(resp.Body, s.url)
}

// parseEvents extracts shows from the widget markup
func (s *HTMLSource) parseEvents(r io.Reader, sourceURL string) ([]*event.Event, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	events := make([]*event.Event, 0)

	doc.Find(".seated-event-row").Each(func(i int, row *goquery.Selection) {
		dateText := collapseSpace(row.Find(".seated-event-date-cell").First().Text())
		start, end := event.ParseDateRange(dateText)
		if start.IsZero() {
			// Rows without a parseable date are placeholders, not shows
			return
		}

		evt := &event.Event{
			SourceID:  strings.TrimSpace(row.AttrOr("data-seated-event-id", "")),
			Venue:     collapseSpace(row.Find(".seated-event-venue-name").First().Text()),
			Location:  collapseSpace(row.Find(".seated-event-venue-location").First().Text()),
			Date:      start,
			EndDate:   end,
			SourceURL: sourceURL,
		}

		if href, ok := row.Find("a[href*='seated.com']").First().Attr("href"); ok {
			evt.TicketURL = href
		}
		row.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
			href := a.AttrOr("href", "")
			if strings.Contains(strings.ToLower(href), "vip") {
				evt.VIPURL = href
				return false
			}
			return true
		})

		if txt := collapseSpace(row.Find(".supporting").First().Text()); txt != "" {
			evt.Details = append(evt.Details, "w/ "+txt)
		}
		if row.Find(".vip-text").Length() > 0 {
			evt.Details = append(evt.Details, "VIP Available")
		}
		if txt := collapseSpace(row.Find(".seated-event-details-cell").First().Text()); txt != "" {
			evt.Details = append(evt.Details, txt)
		}

		events = append(events, evt)
	})

	return events, nil
}

// collapseSpace trims text and folds internal whitespace runs, including the
// newlines the widget puts inside date cells
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
