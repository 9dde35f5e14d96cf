// Package leancloud implements docstore.Store against a LeanCloud-style
// hosted document store: collection CRUD under /1.1/classes/{name} with a
// JSON where-filter passed as a query parameter.
package leancloud

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/canteen-labs/canteen-backend/internal/docstore"
)

// codeClassNotFound is returned by the store for a class that has never been
// created via POST. The contract maps it to an empty result set.
const codeClassNotFound = 101

type Client struct {
	serverURL string
	appID     string
	appKey    string
	client    *http.Client
}

func New(serverURL, appID, appKey string) *Client {
	return &Client{
		serverURL: serverURL,
		appID:     appID,
		appKey:    appKey,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

// remoteError is the store's error envelope. Present in the body whenever a
// request fails logically, regardless of HTTP status.
type remoteError struct {
	Code    int    `json:"code"`
	Message string `json:"error"`
}

func (e *remoteError) Error() string {
	return fmt.Sprintf("leancloud: code %d: %s", e.Code, e.Message)
}

func (c *Client) Query(ctx context.Context, collection string, where docstore.Where, opts *docstore.Options) ([]docstore.Record, error) {
	params := url.Values{}
	if len(where) > 0 {
		filter, err := json.Marshal(where)
		if err != nil {
			return nil, fmt.Errorf("leancloud: encode where filter: %w", err)
		}
		params.Set("where", string(filter))
	}
	if opts != nil {
		if opts.Limit > 0 {
			params.Set("limit", strconv.Itoa(opts.Limit))
		}
		if opts.Order != "" {
			params.Set("order", opts.Order)
		}
	}

	endpoint := c.classURL(collection)
	if encoded := params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	body, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		var remote *remoteError
		if errors.As(err, &remote) && remote.Code == codeClassNotFound {
			return []docstore.Record{}, nil
		}
		return nil, err
	}

	var payload struct {
		Results []map[string]any `json:"results"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("leancloud: decode query response: %w", err)
	}

	records := make([]docstore.Record, 0, len(payload.Results))
	for _, raw := range payload.Results {
		records = append(records, toRecord(raw))
	}
	return records, nil
}

func (c *Client) Create(ctx context.Context, collection string, fields map[string]any) (*docstore.Record, error) {
	body, err := c.do(ctx, http.MethodPost, c.classURL(collection), fields)
	if err != nil {
		return nil, err
	}

	var created struct {
		ObjectID  string `json:"objectId"`
		CreatedAt string `json:"createdAt"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("leancloud: decode create response: %w", err)
	}

	createdAt := parseTime(created.CreatedAt)
	return &docstore.Record{
		ID:        created.ObjectID,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
		Fields:    fields,
	}, nil
}

func (c *Client) Update(ctx context.Context, collection, id string, fields map[string]any) (*docstore.Record, error) {
	body, err := c.do(ctx, http.MethodPut, c.objectURL(collection, id), fields)
	if err != nil {
		var remote *remoteError
		if errors.As(err, &remote) && remote.Code == codeClassNotFound {
			return nil, docstore.ErrNotFound
		}
		return nil, err
	}

	var updated struct {
		UpdatedAt string `json:"updatedAt"`
	}
	if err := json.Unmarshal(body, &updated); err != nil {
		return nil, fmt.Errorf("leancloud: decode update response: %w", err)
	}

	return &docstore.Record{
		ID:        id,
		UpdatedAt: parseTime(updated.UpdatedAt),
		Fields:    fields,
	}, nil
}

func (c *Client) Delete(ctx context.Context, collection, id string) error {
	_, err := c.do(ctx, http.MethodDelete, c.objectURL(collection, id), nil)
	return err
}

func (c *Client) classURL(collection string) string {
	return c.serverURL + "/1.1/classes/" + collection
}

func (c *Client) objectURL(collection, id string) string {
	return c.classURL(collection) + "/" + id
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload map[string]any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("leancloud: encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("leancloud: create request: %w", err)
	}
	req.Header.Set("X-LC-Id", c.appID)
	req.Header.Set("X-LC-Key", c.appKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("leancloud: %s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("leancloud: read response: %w", err)
	}

	// The store reports logical failures in the body even on some 2xx
	// responses, so check the envelope before the status code.
	var remote remoteError
	if err := json.Unmarshal(body, &remote); err == nil && remote.Message != "" {
		return nil, &remote
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("leancloud: %s %s: unexpected status %d", method, endpoint, resp.StatusCode)
	}
	return body, nil
}

func toRecord(raw map[string]any) docstore.Record {
	rec := docstore.Record{
		ID:        docstore.String(raw, "objectId"),
		CreatedAt: parseTime(docstore.String(raw, "createdAt")),
		UpdatedAt: parseTime(docstore.String(raw, "updatedAt")),
		Fields:    raw,
	}
	delete(raw, "objectId")
	delete(raw, "createdAt")
	delete(raw, "updatedAt")
	return rec
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

