package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// apiBaseURL is a variable so tests can point the client at a local server
var apiBaseURL = "https://discord.com/api/v10"

const timeout = 10 * time.Second

// Client is a minimal Discord REST client covering what the watcher needs:
// posting channel messages, registering slash commands, and finishing
// deferred interaction responses. No gateway connection.
type Client struct {
	token         string
	applicationID string
	httpClient    *http.Client
}

// NewClient creates a new Discord client
func NewClient(token, applicationID string) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("bot token is required")
	}
	if applicationID == "" {
		return nil, fmt.Errorf("application ID is required")
	}

	return &Client{
		token:         token,
		applicationID: applicationID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// SendMessage posts a message to the given channel
func (c *Client) SendMessage(ctx context.Context, channelID, content string) error {
	if content == "" {
		return fmt.Errorf("message content is required")
	}

	url := fmt.Sprintf("%s/channels/%s/messages", apiBaseURL, channelID)
	return c.do(ctx, http.MethodPost, url, map[string]interface{}{"content": content})
}

// Command describes a slash command for registration
type Command struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Options     []CommandOption `json:"options,omitempty"`
}

// CommandOption describes one argument of a slash command
type CommandOption struct {
	Type        int    `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required,omitempty"`
}

// OptionString is the application command option type for string arguments
const OptionString = 3

// RegisterCommands bulk-overwrites the application's slash commands. With a
// guild ID the commands appear in that guild immediately; global
// registration can take up to an hour to propagate.
func (c *Client) RegisterCommands(ctx context.Context, guildID string, commands []Command) error {
	url := fmt.Sprintf("%s/applications/%s/commands", apiBaseURL, c.applicationID)
	if guildID != "" {
		url = fmt.Sprintf("%s/applications/%s/guilds/%s/commands", apiBaseURL, c.applicationID, guildID)
	}
	return c.do(ctx, http.MethodPut, url, commands)
}

// EditOriginalResponse replaces the content of a deferred interaction
// response identified by its token
func (c *Client) EditOriginalResponse(ctx context.Context, interactionToken, content string) error {
	url := fmt.Sprintf("%s/webhooks/%s/%s/messages/@original", apiBaseURL, c.applicationID, interactionToken)
	return c.do(ctx, http.MethodPatch, url, map[string]interface{}{"content": content})
}

// FollowUp posts an additional message under a deferred interaction, used
// when a listing does not fit in a single message
func (c *Client) FollowUp(ctx context.Context, interactionToken, content string, ephemeral bool) error {
	payload := map[string]interface{}{"content": content}
	if ephemeral {
		payload["flags"] = MessageFlagEphemeral
	}
	url := fmt.Sprintf("%s/webhooks/%s/%s", apiBaseURL, c.applicationID, interactionToken)
	return c.do(ctx, http.MethodPost, url, payload)
}

// do sends one API request, retrying rate limits and server errors. Discord
// answers 429 with a Retry-After header when a route is exhausted; the
// client waits it out before the next attempt. Other 4xx responses are not
// retried.
func (c *Client) do(ctx context.Context, method, url string, payload interface{}) error {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshaling payload: %w", err)
		}
	}

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		req.Header.Set("Authorization", "Bot "+c.token)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("sending request: %w", err)
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading response: %w", err)
		}

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			if d := retryAfter(resp); d > 0 {
				select {
				case <-time.After(d):
				case <-ctx.Done():
					return backoff.Permanent(ctx.Err())
				}
			}
			return fmt.Errorf("discord API rate limited (status 429)")
		case resp.StatusCode >= 500:
			return fmt.Errorf("discord API error (status %d): %s", resp.StatusCode, respBody)
		case resp.StatusCode >= 400:
			return backoff.Permanent(fmt.Errorf("discord API error (status %d): %s", resp.StatusCode, respBody))
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxElapsedTime = 20 * time.Second
	return backoff.Retry(operation, backoff.WithContext(bo, ctx))
}

// retryAfter reads the Retry-After header, capped so one hot route cannot
// stall the whole sender
func retryAfter(resp *http.Response) time.Duration {
	v := resp.Header.Get("Retry-After")
	if v == "" {
		return 0
	}
	secs, err := strconv.ParseFloat(v, 64)
	if err != nil || secs <= 0 {
		return 0
	}
	d := time.Duration(secs * float64(time.Second))
	if d > 10*time.Second {
		d = 10 * time.Second
	}
	return d
}
