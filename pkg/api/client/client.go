// Package client provides a REST client for the mail server's management API.
package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mailcove/admin/pkg/api/model"
)

// Client accesses the management API of the mail server being administered.
type Client struct {
	restClient
}

// New creates a management API client given the base URL of the mail server,
// ex: "https://mail.example.com".
func New(baseURL string, timeout time.Duration) (*Client, error) {
	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		restClient{
			client: &http.Client{
				Timeout: timeout,
			},
			baseURL: parsedURL,
		},
	}
	return c, nil
}

// GetCrypto fetches the account's current encryption-at-rest configuration.
func (c *Client) GetCrypto(ctx context.Context, creds Credentials) (model.EncryptionParams, error) {
	var params model.EncryptionParams
	err := c.doJSON(ctx, "GET", "/api/crypto", nil, creds, nil, &params)
	return params, err
}

// SaveCrypto submits a new encryption-at-rest configuration.  The credential
// password must be the freshly typed re-authentication password, not the
// session token; the server answers 401 (ErrUnauthorized) when it is wrong.
func (c *Client) SaveCrypto(
	ctx context.Context, creds Credentials, params model.EncryptionParams,
) error {
	return c.doJSON(ctx, "POST", "/api/crypto", nil, creds, params, nil)
}

// ListAccounts fetches one page of individual accounts.  The directory lists
// account names page by page; each named principal is then fetched to fill
// out the row.  page starts at 1, a blank filter is omitted.
func (c *Client) ListAccounts(
	ctx context.Context, creds Credentials, page, limit int, filter string,
) (model.Page[model.Principal], error) {
	query := url.Values{
		"page":  {strconv.Itoa(page)},
		"limit": {strconv.Itoa(limit)},
		"type":  {model.PrincipalIndividual},
	}
	if filter != "" {
		query.Set("filter", filter)
	}

	var names model.Page[string]
	if err := c.doJSON(ctx, "GET", "/api/principal", query, creds, nil, &names); err != nil {
		return model.Page[model.Principal]{}, err
	}

	items := make([]model.Principal, 0, len(names.Items))
	for _, name := range names.Items {
		principal, err := c.GetAccount(ctx, creds, name)
		if err != nil {
			return model.Page[model.Principal]{}, err
		}
		items = append(items, principal)
	}

	return model.Page[model.Principal]{Items: items, Total: names.Total}, nil
}

// GetAccount fetches a single principal by name.
func (c *Client) GetAccount(
	ctx context.Context, creds Credentials, name string,
) (model.Principal, error) {
	var principal model.Principal
	err := c.doJSON(ctx, "GET", "/api/principal/"+url.PathEscape(name), nil, creds,
		nil, &principal)
	return principal, err
}
