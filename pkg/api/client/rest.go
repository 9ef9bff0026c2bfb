package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	json "github.com/goccy/go-json"
)

// ErrUnauthorized is returned when the management API rejects the supplied
// credentials with HTTP 401.  On a fetch this means the session has expired;
// on a settings submit it means the re-authentication password was wrong.
var ErrUnauthorized = errors.New("management API: unauthorized")

// Credentials authenticate one request against the management API.
type Credentials struct {
	Username string
	Password string
}

// httpClient allows http.Client to be mocked for tests.
type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Generic REST restClient.
type restClient struct {
	client  httpClient
	baseURL *url.URL
}

// do performs an HTTP request with this client and returns the response.
func (c *restClient) do(
	ctx context.Context, method, uri string, query url.Values, creds Credentials,
	body []byte,
) (*http.Response, error) {
	url := c.baseURL.JoinPath(uri)
	if len(query) > 0 {
		url.RawQuery = query.Encode()
	}
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url.String(), r)
	if err != nil {
		return nil, fmt.Errorf("%s for %q: %v", method, url, err)
	}
	if creds.Username != "" {
		req.SetBasicAuth(creds.Username, creds.Password)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.client.Do(req)
}

// doJSON performs an HTTP request with this client, marshalling reqBody (when
// non-nil) and unmarshalling the JSON response into v (when non-nil).  HTTP
// 401 maps to ErrUnauthorized; other non-200 statuses become generic errors.
func (c *restClient) doJSON(
	ctx context.Context, method, uri string, query url.Values, creds Credentials,
	reqBody interface{}, v interface{},
) error {
	var body []byte
	if reqBody != nil {
		var err error
		body, err = json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("%s for %q: %v", method, uri, err)
		}
	}
	resp, err := c.do(ctx, method, uri, query, creds, body)
	if err != nil {
		return err
	}

	defer func() {
		_ = resp.Body.Close()
	}()
	switch {
	case resp.StatusCode == http.StatusOK:
		if v == nil {
			return nil
		}
		return json.NewDecoder(resp.Body).Decode(v)
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	}

	return fmt.Errorf("%s for %q, unexpected %v: %s", method, uri, resp.StatusCode, resp.Status)
}
