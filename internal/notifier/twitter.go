package notifier

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"
	"github.com/pfrederiksen/tourwatch/internal/event"
)

// tweetLimit is the Twitter character limit
const tweetLimit = 280

// postGap spaces consecutive posts out to stay under the write rate limit
const postGap = 2 * time.Second

// TwitterNotifier mirrors announcements to Twitter
type TwitterNotifier struct {
	client   *twitter.Client
	artist   string
	lastPost time.Time
}

// NewTwitterNotifier creates a new Twitter notifier using environment variables
// Required environment variables:
// - TWITTER_API_KEY
// - TWITTER_API_SECRET
// - TWITTER_ACCESS_TOKEN
// - TWITTER_ACCESS_SECRET
func NewTwitterNotifier(artist string) (*TwitterNotifier, error) {
	apiKey := os.Getenv("TWITTER_API_KEY")
	apiSecret := os.Getenv("TWITTER_API_SECRET")
	accessToken := os.Getenv("TWITTER_ACCESS_TOKEN")
	accessSecret := os.Getenv("TWITTER_ACCESS_SECRET")

	if apiKey == "" || apiSecret == "" || accessToken == "" || accessSecret == "" {
		return nil, fmt.Errorf("missing required Twitter credentials in environment variables")
	}

	config := oauth1.NewConfig(apiKey, apiSecret)
	token := oauth1.NewToken(accessToken, accessSecret)
	httpClient := config.Client(oauth1.NoContext, token)
	client := twitter.NewClient(httpClient)

	return &TwitterNotifier{client: client, artist: artist}, nil
}

// Name returns the destination name
func (n *TwitterNotifier) Name() string {
	return "twitter"
}

// Announce posts a tweet for one event
func (n *TwitterNotifier) Announce(ctx context.Context, evt *event.Event) error {
	if wait := postGap - time.Since(n.lastPost); wait > 0 {
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	tweet := formatTweet(n.artist, evt)
	if _, _, err := n.client.Statuses.Update(tweet, nil); err != nil {
		return fmt.Errorf("failed to post tweet for %s: %w", evt.Venue, err)
	}
	n.lastPost = time.Now()
	return nil
}

// formatTweet formats an event announcement as a tweet
func formatTweet(artist string, evt *event.Event) string {
	tweet := fmt.Sprintf("🎶 %s has announced a new show!\n\n", artist)

	tweet += fmt.Sprintf("📍 %s", evt.Venue)
	if evt.Location != "" {
		tweet += fmt.Sprintf(" - %s", evt.Location)
	}
	tweet += "\n"

	tweet += fmt.Sprintf("📅 %s\n", event.FormatDateRange(evt.Date, evt.EndDate))

	if evt.TicketURL != "" {
		tweet += fmt.Sprintf("\n🎫 %s\n", evt.TicketURL)
	}

	tweet += "\n#TourDates #LiveMusic"

	if len(tweet) > tweetLimit {
		// Truncate and add ellipsis
		tweet = tweet[:tweetLimit-3] + "..."
	}

	return tweet
}
