package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// maxResponseBytes bounds how much of a provider response is read.
const maxResponseBytes = 1 << 20

// caller issues provider HTTP requests and decodes their responses.
type caller struct {
	provider string
	client   *http.Client
}

type requestOption func(*http.Request)

func withBearer(token string) requestOption {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }
}

func withBasicAuth(user, pass string) requestOption {
	return func(r *http.Request) { r.SetBasicAuth(user, pass) }
}

func withQuery(key, value string) requestOption {
	return func(r *http.Request) {
		q := r.URL.Query()
		q.Set(key, value)
		r.URL.RawQuery = q.Encode()
	}
}

// postJSON sends body as JSON to endpoint.
func (c *caller) postJSON(ctx context.Context, endpoint string, body any, opts ...requestOption) (any, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, opts...)
}

// postForm sends form as application/x-www-form-urlencoded to endpoint.
func (c *caller) postForm(ctx context.Context, endpoint string, form url.Values, opts ...requestOption) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, opts...)
}

func (c *caller) do(req *http.Request, opts ...requestOption) (any, error) {
	for _, opt := range opts {
		opt(req)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body := string(raw)
		if len(body) > 512 {
			body = body[:512]
		}
		return nil, &StatusError{Provider: c.provider, StatusCode: resp.StatusCode, Body: body}
	}
	return decodeBody(raw), nil
}

// decodeBody returns the JSON value in raw, or raw as a string when it is not JSON.
// Webhook endpoints such as Slack answer with a plain "ok".
func decodeBody(raw []byte) any {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return map[string]any{}
	}
	var v any
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return string(trimmed)
	}
	return v
}
