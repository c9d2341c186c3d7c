package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// Cap on error bodies kept for diagnostics.
const maxErrorBody = 2048

var (
	// ErrNoRoute is reported when the service answers but returns no routes.
	ErrNoRoute = errors.New("routing service returned no route")
	// ErrMalformedRoute is reported when the response cannot be turned into a valid route.
	ErrMalformedRoute = errors.New("routing service returned a malformed route")
)

// StatusError is reported for non-2xx responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("routing service status %d: %s", e.Code, e.Body)
}

// jsonClient issues single-attempt JSON requests against one base URL.
type jsonClient struct {
	session *http.Client
	baseURL string
	apiKey  string
}

func newJSONClient(baseURL, apiKey string, timeout time.Duration) jsonClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return jsonClient{
		session: &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

func (c *jsonClient) newRequest(ctx context.Context, method string, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", c.apiKey)
	}

	return req, nil
}

// getJSON executes req once and decodes a 2xx body into out.
func (c *jsonClient) getJSON(req *http.Request, out any) error {
	resp, err := c.session.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrMalformedRoute, err)
	}

	return nil
}
