package fetch

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Object is one listed bucket entry.
type Object struct {
	Key          string    `xml:"Key"`
	Size         int64     `xml:"Size"`
	LastModified time.Time `xml:"LastModified"`
}

// listResult is the ListBucketResult document bucket endpoints return.
type listResult struct {
	Contents    []Object `xml:"Contents"`
	IsTruncated bool     `xml:"IsTruncated"`
	NextToken   string   `xml:"NextContinuationToken"`
}

// BucketClient lists and downloads objects from an S3-compatible bucket over
// plain HTTP. Only the two read operations the fetcher needs are implemented.
type BucketClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewBucketClient creates a client for the bucket at baseURL.
func NewBucketClient(baseURL string, timeout time.Duration, logger *slog.Logger) *BucketClient {
	return &BucketClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// ListObjects returns every object under the prefix, following continuation
// tokens until the listing is complete.
func (c *BucketClient) ListObjects(ctx context.Context, prefix string) ([]Object, error) {
	var objects []Object
	token := ""

	for {
		page, err := c.listPage(ctx, prefix, token)
		if err != nil {
			return nil, err
		}
		objects = append(objects, page.Contents...)

		if !page.IsTruncated || page.NextToken == "" {
			return objects, nil
		}
		token = page.NextToken
	}
}

func (c *BucketClient) listPage(ctx context.Context, prefix, token string) (listResult, error) {
	params := url.Values{
		"list-type": {"2"},
		"prefix":    {prefix},
	}
	if token != "" {
		params.Set("continuation-token", token)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/?"+params.Encode(), nil)
	if err != nil {
		return listResult{}, fmt.Errorf("create list request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return listResult{}, fmt.Errorf("list %q: %w", prefix, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)

		return listResult{}, fmt.Errorf("list %q: status %d: %s", prefix, resp.StatusCode, body)
	}

	var page listResult
	if err := xml.NewDecoder(resp.Body).Decode(&page); err != nil {
		return listResult{}, fmt.Errorf("decode listing: %w", err)
	}

	return page, nil
}

// GetObject downloads one object body.
func (c *BucketClient) GetObject(ctx context.Context, key string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+key, nil)
	if err != nil {
		return nil, fmt.Errorf("create get request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)

		return nil, fmt.Errorf("get %q: status %d: %s", key, resp.StatusCode, body)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %q body: %w", key, err)
	}
	c.logger.Debug("object downloaded", "key", key, "bytes", len(data))

	return data, nil
}
