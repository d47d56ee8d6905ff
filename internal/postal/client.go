// Package postal looks up Brazilian postal codes (CEP) through the ViaCEP
// public API. Callers only see two outcomes: an address or not-found.
package postal

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"studereg/pkg/config"
	apperrors "studereg/pkg/errors"
)

// Address carries the fields composed from a successful lookup.
type Address struct {
	Street   string `json:"logradouro"`
	District string `json:"bairro"`
	City     string `json:"localidade"`
	State    string `json:"uf"`

	// ViaCEP signals an unknown code with HTTP 200 and {"erro": true}.
	NotFound bool `json:"erro"`
}

// Format renders the address the way the registry displays it.
func (a Address) Format() string {
	return fmt.Sprintf("%s - %s - %s/%s", a.Street, a.District, a.City, a.State)
}

// Client queries the lookup API. No retries: a failed or unknown code is
// reported as not found and the caller decides what to do.
type Client struct {
	http *resty.Client
}

// NewClient builds a client from config.
func NewClient(cfg config.PostalConfig) *Client {
	http := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout)
	return &Client{http: http}
}

// Lookup resolves a postal code. A non-200 response, a transport failure or
// an error-marked body all surface as ErrNotFound.
func (c *Client) Lookup(ctx context.Context, code string) (*Address, error) {
	var addr Address
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&addr).
		Get(fmt.Sprintf("/ws/%s/json/", code))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrNotFound.Code, fmt.Sprintf("postal code %s lookup failed", code))
	}
	if resp.StatusCode() != 200 || addr.NotFound {
		return nil, apperrors.Clone(apperrors.ErrNotFound, fmt.Sprintf("postal code %s not found", code))
	}
	return &addr, nil
}
