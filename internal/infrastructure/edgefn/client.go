package edgefn

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"barangku/pkg/errors"
)

// Client invokes the AI-backed edge functions (shopping-analyze,
// shopping-followup) on behalf of a signed-in user.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type usageLimitBody struct {
	Error     string `json:"error"`
	Limit     int    `json:"limit"`
	Remaining int    `json:"remaining"`
	ResetAt   string `json:"reset_at"`
}

// Invoke calls the named function with the caller's bearer token and decodes
// the JSON response into out. Known upstream statuses map to app errors:
// 401 -> SESSION_EXPIRED, 429 -> usage-limit message built from the response.
func (c *Client) Invoke(ctx context.Context, fn, bearerToken string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Internal("Failed to encode function payload", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+fn, bytes.NewReader(body))
	if err != nil {
		return errors.Internal("Failed to build function request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+bearerToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Internal("Network connection failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Internal("Failed to read function response", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		if out == nil {
			return nil
		}
		if err := json.Unmarshal(respBody, out); err != nil {
			return errors.Internal("Failed to decode function response", err)
		}
		return nil

	case http.StatusUnauthorized:
		return errors.SessionExpired(fmt.Errorf("%s: %s", fn, respBody))

	case http.StatusTooManyRequests:
		var limit usageLimitBody
		message := "Usage limit reached"
		if err := json.Unmarshal(respBody, &limit); err == nil && limit.Limit > 0 {
			message = fmt.Sprintf("Usage limit reached (%d/%d used)", limit.Limit-limit.Remaining, limit.Limit)
			if limit.ResetAt != "" {
				message += ", resets at " + limit.ResetAt
			}
		}
		return errors.New("USAGE_LIMIT", message, http.StatusTooManyRequests, nil)

	default:
		return errors.Internal(fmt.Sprintf("Function %s failed with status %d", fn, resp.StatusCode), fmt.Errorf("%s", respBody))
	}
}
