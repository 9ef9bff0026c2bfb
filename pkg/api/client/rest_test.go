package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseURLStr = "http://mail.test.local:8080"

var baseURL *url.URL

func init() {
	var err error
	baseURL, err = url.Parse(baseURLStr)
	if err != nil {
		panic(err)
	}
}

type mockHTTPClient struct {
	req        *http.Request
	statusCode int
	body       string
}

func (m *mockHTTPClient) Do(req *http.Request) (resp *http.Response, err error) {
	m.req = req
	if m.statusCode == 0 {
		m.statusCode = 200
	}
	resp = &http.Response{
		StatusCode: m.statusCode,
		Status:     fmt.Sprintf("%d status", m.statusCode),
		Body:       io.NopCloser(bytes.NewBufferString(m.body)),
	}
	return
}

func TestDoTable(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		uri      string
		query    url.Values
		creds    Credentials
		wantURL  string
		wantAuth bool
	}{
		{
			name: "get no query", method: "GET", uri: "/api/crypto",
			wantURL: baseURLStr + "/api/crypto",
		},
		{
			name: "get with query", method: "GET", uri: "/api/principal",
			query:   url.Values{"page": {"2"}, "limit": {"10"}},
			wantURL: baseURLStr + "/api/principal?limit=10&page=2",
		},
		{
			name: "post with creds", method: "POST", uri: "/api/crypto",
			creds:   Credentials{Username: "admin", Password: "secret"},
			wantURL: baseURLStr + "/api/crypto", wantAuth: true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mth := &mockHTTPClient{}
			c := &restClient{mth, baseURL}

			resp, err := c.do(context.Background(), tc.method, tc.uri, tc.query, tc.creds, nil)
			require.NoError(t, err)
			require.NoError(t, resp.Body.Close())

			assert.Equal(t, tc.method, mth.req.Method)
			assert.Equal(t, tc.wantURL, mth.req.URL.String())

			user, pass, ok := mth.req.BasicAuth()
			assert.Equal(t, tc.wantAuth, ok)
			if tc.wantAuth {
				assert.Equal(t, tc.creds.Username, user)
				assert.Equal(t, tc.creds.Password, pass)
			}
		})
	}
}

func TestDoJSONDecodes(t *testing.T) {
	mth := &mockHTTPClient{body: `{"foo": "bar"}`}
	c := &restClient{mth, baseURL}

	var v map[string]interface{}
	err := c.doJSON(context.Background(), "GET", "/doget", nil, Credentials{}, nil, &v)
	require.NoError(t, err)
	assert.Equal(t, "bar", v["foo"])
}

func TestDoJSONEncodesRequestBody(t *testing.T) {
	mth := &mockHTTPClient{}
	c := &restClient{mth, baseURL}

	err := c.doJSON(context.Background(), "POST", "/dopost", nil, Credentials{},
		map[string]string{"key": "value"}, nil)
	require.NoError(t, err)

	r, err := mth.req.GetBody()
	require.NoError(t, err)
	body, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"key":"value"}`, string(body))
	assert.Equal(t, "application/json", mth.req.Header.Get("Content-Type"))
}

func TestDoJSONUnauthorized(t *testing.T) {
	mth := &mockHTTPClient{statusCode: 401}
	c := &restClient{mth, baseURL}

	err := c.doJSON(context.Background(), "GET", "/doget", nil, Credentials{}, nil, nil)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestDoJSONGenericError(t *testing.T) {
	mth := &mockHTTPClient{statusCode: 503}
	c := &restClient{mth, baseURL}

	err := c.doJSON(context.Background(), "GET", "/doget", nil, Credentials{}, nil, nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}
