package fanbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fanboxdl/pkg/config"
	apperrors "fanboxdl/pkg/errors"
	"fanboxdl/pkg/logger"
)

// Client is an authenticated client for the fanbox web API
type Client struct {
	httpClient *http.Client
	headers    map[string]string
	baseURL    string
	cookieName string
	session    string
	pageSize   int
	logger     logger.Logger
}

// NewClient creates a client that authenticates every request with the
// given session credential. A zero RequestTimeout keeps the net/http
// default of no timeout.
func NewClient(cfg *config.FanboxConfig, session string, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}

	headers := map[string]string{
		"Origin": cfg.Origin,
	}
	if cfg.UserAgent != "" {
		headers["User-Agent"] = cfg.UserAgent
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		headers:    headers,
		baseURL:    cfg.APIBaseURL,
		cookieName: cfg.CookieName,
		session:    session,
		pageSize:   pageSize,
		logger:     log,
	}
}

// PageSize returns the number of posts requested per listing
func (c *Client) PageSize() int {
	return c.pageSize
}

// Get issues an authenticated GET request. The caller must close the
// response body. Non-success statuses are not treated as errors here.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrorTypeUnknown, err, "failed to create request")
	}

	for key, value := range c.headers {
		req.Header.Set(key, value)
	}
	req.AddCookie(&http.Cookie{Name: c.cookieName, Value: c.session})

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.logger.DebugWithFields("HTTP request failed", map[string]interface{}{
			"url":      url,
			"error":    err.Error(),
			"duration": duration,
		})
		return nil, apperrors.Wrap(apperrors.ErrorTypeNetwork, err, "GET %s", url)
	}

	logger.LogRequest(c.logger, req.Method, url, resp.StatusCode, float64(duration.Milliseconds()))
	return resp, nil
}

// getBody fetches url and returns the body of a successful response
func (c *Client) getBody(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := apperrors.FromStatus(resp.StatusCode, url); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrorTypeNetwork, err, "failed to read response body")
	}
	return body, nil
}

// ListPosts fetches the first page of a creator's posts. A non-success
// status is returned as a typed error; a body that is not JSON or lacks
// body.items yields an error of type malformed.
func (c *Client) ListPosts(ctx context.Context, creatorID string) (*PostPage, error) {
	url := ListCreatorURL(c.baseURL, creatorID, c.pageSize)

	c.logger.DebugWithFields("listing creator posts", map[string]interface{}{
		"creator": creatorID,
		"url":     url,
	})

	body, err := c.getBody(ctx, url)
	if err != nil {
		return nil, err
	}

	var response listResponse
	if err := json.Unmarshal(body, &response); err != nil {
		c.logger.DebugWithFields("failed to parse listing", map[string]interface{}{
			"creator":      creatorID,
			"error":        err.Error(),
			"body_preview": preview(body),
		})
		return nil, &apperrors.Error{
			Type:    apperrors.ErrorTypeMalformed,
			Message: fmt.Sprintf("listing is not valid JSON: %v", err),
			Err:     err,
		}
	}
	if response.Body == nil {
		return nil, apperrors.Malformed("body")
	}
	if response.Body.Items == nil {
		return nil, apperrors.Malformed("body.items")
	}

	page := &PostPage{
		Items:   *response.Body.Items,
		NextURL: response.Body.NextURL,
	}

	c.logger.DebugWithFields("listed creator posts", map[string]interface{}{
		"creator":  creatorID,
		"count":    len(page.Items),
		"has_more": page.HasMore(),
	})

	return page, nil
}

// GetPost fetches a post's detail. A non-success status is returned as an
// error. A body that is not JSON or has no body field yields (nil, nil).
func (c *Client) GetPost(ctx context.Context, postID string) (*Post, error) {
	url := PostInfoURL(c.baseURL, postID)

	body, err := c.getBody(ctx, url)
	if err != nil {
		return nil, err
	}

	var response infoResponse
	if err := json.Unmarshal(body, &response); err != nil {
		c.logger.DebugWithFields("post detail is not valid JSON", map[string]interface{}{
			"post_id":      postID,
			"error":        err.Error(),
			"body_preview": preview(body),
		})
		return nil, nil
	}

	return response.Body, nil
}

// DownloadMedia opens the content at url. The caller must close the
// returned reader.
func (c *Client) DownloadMedia(ctx context.Context, url string) (io.ReadCloser, error) {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	if err := apperrors.FromStatus(resp.StatusCode, url); err != nil {
		resp.Body.Close()
		return nil, err
	}

	return resp.Body, nil
}

func preview(body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) > 200 {
		return string(body[:200]) + "..."
	}
	return string(body)
}
