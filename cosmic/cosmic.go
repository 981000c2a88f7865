package cosmic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

const DefaultAPIURL = "https://api.cosmicjs.com/v3"

// ErrNotFound is returned for single-object lookups that miss. Collection
// queries normalize the store's 404 into an empty result instead.
var ErrNotFound = errors.New("object not found")

// Client talks to the hosted object store bucket holding all persistent
// state. The application has no storage engine of its own.
type Client struct {
	baseURL  string
	bucket   string
	readKey  string
	writeKey string
	http     *http.Client
}

// NewClient builds a client from the environment: COSMIC_BUCKET_SLUG,
// COSMIC_READ_KEY, COSMIC_WRITE_KEY and optionally COSMIC_API_URL.
func NewClient() *Client {
	baseURL := os.Getenv("COSMIC_API_URL")
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}
	return NewClientWithBase(
		baseURL,
		os.Getenv("COSMIC_BUCKET_SLUG"),
		os.Getenv("COSMIC_READ_KEY"),
		os.Getenv("COSMIC_WRITE_KEY"),
	)
}

func NewClientWithBase(baseURL, bucket, readKey, writeKey string) *Client {
	return &Client{
		baseURL:  baseURL,
		bucket:   bucket,
		readKey:  readKey,
		writeKey: writeKey,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

// findObjects runs a query against the bucket's objects endpoint and returns
// the raw response body. A 404 from the store maps to ErrNotFound.
func (c *Client) findObjects(ctx context.Context, query map[string]interface{}, props string, depth int) ([]byte, error) {
	queryJSON, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("read_key", c.readKey)
	params.Set("query", string(queryJSON))
	params.Set("limit", "1000")
	if props != "" {
		params.Set("props", props)
	}
	if depth > 0 {
		params.Set("depth", fmt.Sprintf("%d", depth))
	}

	endpoint := fmt.Sprintf("%s/buckets/%s/objects?%s", c.baseURL, c.bucket, params.Encode())
	return c.do(ctx, http.MethodGet, endpoint, nil)
}

// getObject fetches a single object by id.
func (c *Client) getObject(ctx context.Context, id string, depth int) ([]byte, error) {
	params := url.Values{}
	params.Set("read_key", c.readKey)
	if depth > 0 {
		params.Set("depth", fmt.Sprintf("%d", depth))
	}
	endpoint := fmt.Sprintf("%s/buckets/%s/objects/%s?%s", c.baseURL, c.bucket, url.PathEscape(id), params.Encode())
	return c.do(ctx, http.MethodGet, endpoint, nil)
}

// insertObject creates a single object. Writes authenticate with the bucket
// write key.
func (c *Client) insertObject(ctx context.Context, payload interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("%s/buckets/%s/objects", c.baseURL, c.bucket)
	return c.do(ctx, http.MethodPost, endpoint, body)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.writeKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("store responded %d: %s", resp.StatusCode, string(data))
	}
	return data, nil
}
