package apiclient

import (
	"Revamp/internal/favorites"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const DefaultTimeout = 30 * time.Second

// Client revAMP API 客户端
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// NewWithHTTPClient 使用调用方提供的 http.Client
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

func (c *Client) BaseURL() string { return c.baseURL }

// do 发送 JSON 请求。非 2xx 返回 *favorites.RemoteError，网络和解析失败返回 *favorites.TransportError。
func (c *Client) do(ctx context.Context, method, path, token string, body any, out any) error {
	op := method + " " + path

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &favorites.TransportError{Op: op, Err: err}
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &favorites.TransportError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &favorites.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &favorites.TransportError{Op: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &favorites.RemoteError{Status: resp.StatusCode, Message: errorMessage(data)}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &favorites.TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// errorMessage 从错误响应中取出可展示的信息：
// {"detail": "..."}、{"detail": [{"msg": ...}]}、{"detail": {"msg": ...}}、{"message": ...}、{"error": ...}
func errorMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	detail := gjson.GetBytes(body, "detail")
	switch {
	case detail.Type == gjson.String:
		return detail.String()
	case detail.IsArray():
		msgs := make([]string, 0)
		for _, item := range detail.Array() {
			if m := item.Get("msg"); m.Exists() {
				msgs = append(msgs, m.String())
			} else {
				msgs = append(msgs, "Validation error")
			}
		}
		return strings.Join(msgs, ", ")
	case detail.IsObject():
		if m := detail.Get("msg"); m.Exists() {
			return m.String()
		}
		if m := detail.Get("error"); m.Exists() {
			return m.String()
		}
		return "Validation error"
	}
	for _, key := range []string{"message", "error"} {
		if m := gjson.GetBytes(body, key); m.Type == gjson.String {
			return m.String()
		}
	}
	return ""
}
