package unity

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"

	json "github.com/goccy/go-json"
	cleanhttp "github.com/hashicorp/go-cleanhttp"
)

const notAuthorizedMarker = "You are not authorized to view this page."

// Client speaks the Unisphere REST API for one array. The cookie jar keeps
// the session established by Login alive across calls.
type Client struct {
	base     string
	username string
	password string
	http     *http.Client
}

func NewClient(cfg *Config) *Client {
	transport := cleanhttp.DefaultPooledTransport()
	if cfg.Insecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	jar, _ := cookiejar.New(nil)
	return &Client{
		base:     cfg.BaseURL(),
		username: cfg.Username,
		password: cfg.Password,
		http: &http.Client{
			Transport: transport,
			Jar:       jar,
			Timeout:   cfg.Timeout,
		},
	}
}

func (c *Client) do(ctx context.Context, method, path string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.base+"/"+path, nil)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("X-EMC-REST-CLIENT", "true")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.username, c.password)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, body, nil
}

// Login performs the session-establishing exchange. The returned error's
// message is the exact detail reported per requested table when the cycle
// fails to authenticate.
func (c *Client) Login(ctx context.Context) error {
	status, body, err := c.do(ctx, http.MethodGet, "types/loginSessionInfo/instances")
	if err != nil {
		return &AuthError{Detail: err.Error()}
	}
	switch {
	case status == 404:
		return &AuthError{Detail: "HTTP Status 404 - Not Found"}
	case strings.Contains(string(body), notAuthorizedMarker):
		return &AuthError{Detail: fmt.Sprintf("You are not authorized to view this page with user: %s", c.username)}
	case status != 200:
		return &AuthError{Detail: fmt.Sprintf("API responded with %d: %s", status, body)}
	}
	return nil
}

// Logout ends the array session. Callers log failures, the poll result is
// already in hand.
func (c *Client) Logout(ctx context.Context) error {
	status, body, err := c.do(ctx, http.MethodPost, "types/loginSessionInfo/action/logout")
	if err != nil {
		return err
	}
	if status != 200 {
		return &UpstreamError{Status: status, Body: string(body)}
	}
	return nil
}

// Query GETs one API path and decodes the JSON document.
func (c *Client) Query(ctx context.Context, path string) (map[string]any, error) {
	status, body, err := c.do(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	if status != 200 {
		return nil, &UpstreamError{Status: status, Body: string(body)}
	}
	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, &UpstreamError{Status: status, Body: string(body)}
	}
	return doc, nil
}
