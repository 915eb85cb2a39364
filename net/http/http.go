// The http package provides the HTTP client shared by the providers.
// It handles a common cookie jar and same user agent string

package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
)

// DefaultClient is the client
var DefaultClient = NewClient()

const UserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Ubuntu Chromium/66.0.3359.181 Chrome/66.0.3359.181 Safari/537.36"

// Client is the classic http client with a cookie jar and a given user agent string
type Client struct {
	*http.Client
	userAgent string
	Jar       *cookiejar.Jar
}

// SetCookieJar is configuration function to provide a cookie jar to the client
func SetCookieJar(cj *cookiejar.Jar) func(c *Client) {
	return func(c *Client) {
		c.Jar = cj
		c.Client.Jar = cj
	}
}

// SetUserAgent is configuration function to give a user agent string to the client
func SetUserAgent(ua string) func(c *Client) {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// SetTransport is configuration function to exchange the transport,
// tests use it to serve local files
func SetTransport(rt http.RoundTripper) func(c *Client) {
	return func(c *Client) {
		c.Client.Transport = rt
	}
}

// NewClient create an HTTP Client and configure it with a set of config functions
func NewClient(conf ...func(c *Client)) *Client {
	c := &Client{
		Client:    &http.Client{},
		userAgent: UserAgent,
	}

	for _, f := range conf {
		f(c)
	}
	return c
}

// Get establish a GET request and return a reader with the response body
func (c *Client) Get(ctx context.Context, u string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("can't get url: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	resp, err := c.Do(req)
	if err != nil {
		return nil, fmt.Errorf("can't get: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("can't get response: %s", resp.Status)
	}

	return resp.Body, nil
}
