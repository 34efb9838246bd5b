// Package client 提供调用展开服务的 HTTP 客户端。
//
// 连接失败、超时与 5xx 响应会按配置重试；其余错误立即返回。
package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/lwmacct/251207-go-pkg-contraction/internal/api"
	"github.com/lwmacct/251207-go-pkg-contraction/pkg/contraction"
)

var (
	// ErrUnavailable 无法连接服务或请求超时。
	ErrUnavailable = errors.New("client: service unavailable")
	// ErrBadResponse 服务返回了无法解析的响应。
	ErrBadResponse = errors.New("client: malformed response")
)

// StatusError 服务返回非 2xx 状态码。
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("client: unexpected status %d", e.Code)
	}

	return fmt.Sprintf("client: unexpected status %d: %s", e.Code, e.Message)
}

// Client 展开服务客户端。
type Client struct {
	baseURL string
	http    *http.Client
	retries int
	backoff time.Duration
}

// Option 客户端选项函数。
type Option func(*Client)

// WithTimeout 设置单次请求超时。
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithRetries 设置失败后的重试次数。
func WithRetries(n int) Option {
	return func(c *Client) {
		c.retries = max(n, 0)
	}
}

// WithBackoff 设置重试间隔基数，第 n 次重试前等待 n*d。
func WithBackoff(d time.Duration) Option {
	return func(c *Client) {
		c.backoff = d
	}
}

// WithHTTPClient 替换底层 http.Client，需在 [WithTimeout] 之前使用。
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// New 创建客户端。baseURL 缺少 scheme 时补全为 http。
func New(baseURL string, opts ...Option) *Client {
	if !strings.Contains(baseURL, "://") {
		baseURL = "http://" + baseURL
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Expand 请求服务展开 text。
func (c *Client) Expand(ctx context.Context, text string) (*api.ExpandResponse, error) {
	body, err := sonic.Marshal(api.ExpandRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("client: marshal request: %w", err)
	}

	var resp api.ExpandResponse
	if err := c.do(ctx, http.MethodPost, api.PathExpand, body, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// Health 检查服务健康状态。
func (c *Client) Health(ctx context.Context) error {
	var resp api.HealthResponse
	if err := c.do(ctx, http.MethodGet, api.PathHealth, nil, &resp); err != nil {
		return err
	}
	if resp.Status != "ok" {
		return fmt.Errorf("%w: status %q", ErrBadResponse, resp.Status)
	}

	return nil
}

// Contractions 获取服务端使用的映射表。
func (c *Client) Contractions(ctx context.Context) ([]contraction.Entry, error) {
	var resp api.ContractionsResponse
	if err := c.do(ctx, http.MethodGet, api.PathContractions, nil, &resp); err != nil {
		return nil, err
	}

	return resp.Entries, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("%w: %w", ErrUnavailable, ctx.Err())
			case <-time.After(time.Duration(attempt) * c.backoff):
			}
		}

		retry, err := c.once(ctx, method, path, body, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retry {
			break
		}
	}

	return lastErr
}

// once 发送单次请求，返回值 retry 表示该错误是否值得重试。
func (c *Client) once(ctx context.Context, method, path string, body []byte, out any) (bool, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return false, fmt.Errorf("client: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return ctx.Err() == nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return true, fmt.Errorf("%w: read body: %w", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr api.ErrorResponse
		_ = sonic.Unmarshal(data, &apiErr)
		return resp.StatusCode >= 500, &StatusError{Code: resp.StatusCode, Message: apiErr.Error}
	}

	if err := sonic.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("%w: %w", ErrBadResponse, err)
	}

	return false, nil
}
