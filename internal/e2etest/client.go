// Package e2etest boots the real server on a random port and exercises it
// over HTTP with a cookie-jar JSON client.
package e2etest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"
)

type Client struct {
	client *http.Client
	url    string
}

// NewClient creates a JSON API client with a cookie jar so that session
// cookies survive across requests.
func NewClient(serverURL string) (*Client, error) {
	jar, err := newUnsafeCookieJar()
	if err != nil {
		return nil, fmt.Errorf("create unsafe cookie jar: %w", err)
	}
	return &Client{
		client: &http.Client{Jar: jar},
		url:    serverURL,
	}, nil
}

// WaitForReady calls the specified endpoint until it gets a HTTP 200 Success
// response or until the context is cancelled or the 1-second timeout is reached.
func (c *Client) WaitForReady(ctx context.Context, urlPath string) error {
	timeout := 1 * time.Second
	startTime := time.Now()
	var (
		err  error
		req  *http.Request
		resp *http.Response
	)
	for {
		if req, err = http.NewRequestWithContext(
			ctx,
			http.MethodGet,
			c.url+urlPath,
			nil,
		); err != nil {
			return fmt.Errorf("create request: %w", err)
		}

		if resp, err = c.client.Do(req); err == nil {
			if resp.StatusCode == http.StatusOK {
				if err = resp.Body.Close(); err != nil {
					return fmt.Errorf("close response body: %w", err)
				}
				return nil
			}
			if err = resp.Body.Close(); err != nil {
				return fmt.Errorf("close response body: %w", err)
			}
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
			if time.Since(startTime) >= timeout {
				return errors.New("timeout waiting for endpoint to be ready")
			}
			time.Sleep(100 * time.Millisecond) //nolint:mnd // 100ms
		}
	}
}

// Get fetches a URL and returns the response.
func (c *Client) Get(ctx context.Context, urlPath string) (*http.Response, error) {
	return c.do(ctx, http.MethodGet, urlPath, nil)
}

// PostJSON sends a POST request with the body encoded as JSON.
func (c *Client) PostJSON(ctx context.Context, urlPath string, body any) (*http.Response, error) {
	return c.do(ctx, http.MethodPost, urlPath, body)
}

// PutJSON sends a PUT request with the body encoded as JSON.
func (c *Client) PutJSON(ctx context.Context, urlPath string, body any) (*http.Response, error) {
	return c.do(ctx, http.MethodPut, urlPath, body)
}

// Delete sends a DELETE request, optionally with a JSON body.
func (c *Client) Delete(ctx context.Context, urlPath string, body any) (*http.Response, error) {
	return c.do(ctx, http.MethodDelete, urlPath, body)
}

func (c *Client) do(ctx context.Context, method, urlPath string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url+urlPath, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	// Same-origin requests carry Sec-Fetch-Site in browsers; Go 1.25's
	// cross-origin protection rejects cross-site values.
	req.Header.Set("Sec-Fetch-Site", "same-origin")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	return resp, nil
}

// DecodeJSON reads the response body into v and closes it.
func DecodeJSON(resp *http.Response, v any) error {
	defer func() {
		_ = resp.Body.Close()
	}()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}

// unsafeCookieJar stores Secure cookies even though the test server runs on
// plain http. Do not use outside of tests.
type unsafeCookieJar struct {
	jar http.CookieJar
}

func newUnsafeCookieJar() (*unsafeCookieJar, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return &unsafeCookieJar{jar: jar}, nil
}

func (j *unsafeCookieJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	for _, cookie := range cookies {
		cookie.Secure = false
	}
	j.jar.SetCookies(u, cookies)
}

func (j *unsafeCookieJar) Cookies(u *url.URL) []*http.Cookie {
	return j.jar.Cookies(u)
}
