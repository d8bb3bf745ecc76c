package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/padview/padview/api/types/v1alpha1"
)

// GetStatus fetches the daemon's current cycle status
func (c *Client) GetStatus(ctx context.Context) (*v1alpha1.DaemonStatus, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/v1alpha1/status", nil, nil)
	if err != nil {
		return nil, err
	}
	var status v1alpha1.DaemonStatus
	if err := decodeJSON(resp, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Refresh asks the daemon to end the current session and re-fetch the
// launch schedule
func (c *Client) Refresh(ctx context.Context) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/v1alpha1/refresh", nil, nil)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

// GetHistory lists recorded countdown sessions, newest first
func (c *Client) GetHistory(ctx context.Context, limit int) ([]v1alpha1.HistoryEntry, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/v1alpha1/history", query, nil)
	if err != nil {
		return nil, err
	}
	var out v1alpha1.HistoryResponse
	if err := decodeJSON(resp, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}
