package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 4 << 20

// Credentials are the backend cookies of the acting user. They are read from the
// user's session for every call, never cached on the client.
type Credentials struct {
	Cookie string
}

func (c Credentials) Empty() bool { return strings.TrimSpace(c.Cookie) == "" }

// Client talks to the inventory backend REST API.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return NewWithHTTPClient(baseURL, cleanhttp.DefaultPooledClient())
}

func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

// do issues one request and returns the body of a 2xx answer. Nothing is retried.
func (c *Client) do(ctx context.Context, creds Credentials, method, path string, in any) ([]byte, *http.Response, error) {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return nil, nil, errors.Wrap(err, "encode request body")
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "build %s %s", method, path)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if !creds.Empty() {
		req.Header.Set("Cookie", creds.Cookie)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.WithError(err).Debugf("backend %s %s failed", method, path)
		return nil, nil, errors.Wrapf(ErrNetwork, "%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, resp, errors.Wrapf(ErrNetwork, "read %s %s: %v", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Debugf("backend %s %s -> %d", method, path, resp.StatusCode)
		return raw, resp, &APIError{
			Status:  resp.StatusCode,
			Message: gjson.GetBytes(raw, "error").String(),
		}
	}
	return raw, resp, nil
}

// escapeSegments escapes every segment of p but keeps the slashes between them.
func escapeSegments(p string) string {
	parts := strings.Split(p, "/")
	for i, s := range parts {
		parts[i] = url.PathEscape(s)
	}
	return strings.Join(parts, "/")
}
