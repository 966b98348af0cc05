package apiclient

import (
	"Revamp/internal/favorites"
	"context"
	"net/http"
	"net/url"
)

var _ favorites.Remote = (*Client)(nil)

func (c *Client) List(ctx context.Context, cred favorites.Credential) ([]favorites.Record, error) {
	records := make([]favorites.Record, 0)
	if err := c.do(ctx, http.MethodGet, "/favorites/", cred.Token, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) Create(ctx context.Context, cred favorites.Credential, req favorites.CreateRequest) (favorites.Record, error) {
	var saved favorites.Record
	if err := c.do(ctx, http.MethodPost, "/favorites/", cred.Token, req, &saved); err != nil {
		return favorites.Record{}, err
	}
	return saved, nil
}

func (c *Client) Delete(ctx context.Context, cred favorites.Credential, id favorites.ID) error {
	if id.IsTemporary() {
		return &favorites.TransportError{Op: "DELETE /favorites/", Err: favorites.ErrTemporaryID}
	}
	return c.do(ctx, http.MethodDelete, "/favorites/"+url.PathEscape(id.String()), cred.Token, nil, nil)
}

type reorderRequest struct {
	Order []favorites.OrderItem `json:"order"`
}

func (c *Client) Reorder(ctx context.Context, cred favorites.Credential, order []favorites.OrderItem) error {
	return c.do(ctx, http.MethodPatch, "/favorites/reorder", cred.Token, reorderRequest{Order: order}, nil)
}

type useResponse struct {
	Message   string `json:"message"`
	TimesUsed int    `json:"times_used"`
}

func (c *Client) Use(ctx context.Context, cred favorites.Credential, id favorites.ID) (int, error) {
	if id.IsTemporary() {
		return 0, &favorites.TransportError{Op: "POST /favorites/use", Err: favorites.ErrTemporaryID}
	}
	var resp useResponse
	if err := c.do(ctx, http.MethodPost, "/favorites/"+url.PathEscape(id.String())+"/use", cred.Token, nil, &resp); err != nil {
		return 0, err
	}
	return resp.TimesUsed, nil
}
