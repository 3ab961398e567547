package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/spurll/weather/internal/domain"
	"github.com/spurll/weather/internal/observability"
)

// Client talks to the Slack Web API: directory listings for recipient
// resolution and chat.postMessage for delivery.
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
	botName    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a Slack client posting as botName.
func NewClient(token, botName string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		token: token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://slack.com/api",
		botName: botName,
		metrics: metrics,
		logger:  logger,
	}
}

// envelope carries the application-level status every Web API response
// includes alongside its payload.
type envelope struct {
	Ok    bool   `json:"ok"`
	Error string `json:"error"`
}

type usersListResponse struct {
	envelope
	Members []struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		RealName string `json:"real_name"`
	} `json:"members"`
}

type channelsListResponse struct {
	envelope
	Channels []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"channels"`
}

// Directory lists every addressable destination: all users, then all
// channels. Archived channels are excluded by the request itself, not
// filtered here. Either listing failing is ErrDirectoryUnavailable.
func (c *Client) Directory(ctx context.Context) ([]domain.Destination, error) {
	var users usersListResponse
	if err := c.call(ctx, "users.list", url.Values{}, &users); err != nil {
		c.metrics.DirectoryLoads.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrDirectoryUnavailable, err)
	}

	var channels channelsListResponse
	params := url.Values{"exclude_archived": {"true"}}
	if err := c.call(ctx, "conversations.list", params, &channels); err != nil {
		c.metrics.DirectoryLoads.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrDirectoryUnavailable, err)
	}

	directory := make([]domain.Destination, 0, len(users.Members)+len(channels.Channels))
	for _, u := range users.Members {
		directory = append(directory, domain.Destination{
			ID:          "@" + u.Name,
			SlackID:     u.ID,
			DisplayName: u.Name,
			RealName:    u.RealName,
			Kind:        domain.KindUser,
		})
	}
	for _, ch := range channels.Channels {
		directory = append(directory, domain.Destination{
			ID:          "#" + ch.Name,
			SlackID:     ch.ID,
			DisplayName: ch.Name,
			Kind:        domain.KindChannel,
		})
	}

	c.metrics.DirectoryLoads.WithLabelValues("success").Inc()
	c.logger.Debug("directory loaded",
		"users", len(users.Members), "channels", len(channels.Channels))
	return directory, nil
}

// Post delivers message text to a destination id ("@name", "#channel", or a
// raw platform id), posting under the configured bot name with the given
// icon. link_names is set so mentions in the text resolve to real ones.
func (c *Client) Post(ctx context.Context, destinationID, text, iconURL string) error {
	params := url.Values{
		"channel":    {destinationID},
		"text":       {text},
		"username":   {c.botName},
		"link_names": {"1"},
	}
	if iconURL != "" {
		params.Set("icon_url", iconURL)
	}

	var resp envelope
	if err := c.call(ctx, "chat.postMessage", params, &resp); err != nil {
		c.metrics.Deliveries.WithLabelValues("error").Inc()
		return fmt.Errorf("%w: %v", domain.ErrDeliveryRejected, err)
	}

	c.metrics.Deliveries.WithLabelValues("success").Inc()
	return nil
}

// statusRecipient lets call read the Ok/Error pair out of any response type
// that embeds envelope.
type statusRecipient interface {
	status() (bool, string)
}

func (e *envelope) status() (bool, string) {
	return e.Ok, e.Error
}

// call performs one Web API request and applies the two-layer success
// check shared by every Slack endpoint: the transport status must be 200
// AND the response's own ok flag must be true. Application errors carry the
// platform's error code.
func (c *Client) call(ctx context.Context, method string, params url.Values, out statusRecipient) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/"+method, strings.NewReader(params.Encode()))
	if err != nil {
		return fmt.Errorf("create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: status %d", method, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}

	if ok, code := out.status(); !ok {
		return fmt.Errorf("%s: %s", method, code)
	}
	return nil
}
