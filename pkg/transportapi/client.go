package transportapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"github.com/travigo/trains/pkg/credentials"
	"github.com/travigo/trains/pkg/util"
)

var ErrUpstream = errors.New("transport api returned an unusable response")
var ErrNetwork = errors.New("could not reach transport api")

const errorBodyLength = 256

// Client talks to the Transport API UK train endpoints
type Client struct {
	BaseURL     string
	Credentials *credentials.Credentials
	UserAgent   string

	HTTPClient *http.Client
}

func NewClient(baseURL string, creds *credentials.Credentials, timeout time.Duration, userAgent string) *Client {
	return &Client{
		BaseURL:     baseURL,
		Credentials: creds,
		UserAgent:   userAgent,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) getJSON(ctx context.Context, requestURL string, destination any) error {
	logger := zerolog.Ctx(ctx)
	startTime := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = util.RedactURL(urlErr.URL, "app_id", "app_key")
		}

		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading body: %w", ErrNetwork, err)
	}

	logger.Debug().
		Str("url", util.RedactURL(requestURL, "app_id", "app_key")).
		Int("status", resp.StatusCode).
		Str("latency", time.Since(startTime).String()).
		Msg("Transport API request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, util.TrimString(string(body), errorBodyLength))
	}

	if err := json.Unmarshal(body, destination); err != nil {
		return fmt.Errorf("%w: decoding body: %w", ErrUpstream, err)
	}

	return nil
}

// withCredentials adds app_id and app_key to a URL unless it already carries them
func (c *Client) withCredentials(rawURL string, parameters map[string]string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: bad url %q: %w", ErrUpstream, rawURL, err)
	}

	query := parsed.Query()
	if c.Credentials != nil {
		if !query.Has("app_id") {
			query.Set("app_id", c.Credentials.AppID)
		}
		if !query.Has("app_key") {
			query.Set("app_key", c.Credentials.AppKey)
		}
	}
	for key, value := range parameters {
		query.Set(key, value)
	}
	parsed.RawQuery = query.Encode()

	return parsed.String(), nil
}
