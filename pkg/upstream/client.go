package upstream

import (
	"Revamp/config"
	"Revamp/pkg/log"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const (
	cmdZonesInFrame = "get_zones_in_frame"
	userAgent       = "revamp/1.0 (+contact@example.com)"
	baseBackoff     = 500 * time.Millisecond
	maxBackoff      = 8 * time.Second
	maxBody         = 8 << 20
)

// Result 一次成功的上游响应
type Result struct {
	Data      []byte
	FetchedAt time.Time
}

type microEntry struct {
	result  *Result
	expires time.Time
}

// Client 上游区域接口，带重试、熔断和进程内短缓存
type Client struct {
	conf    *config.Upstream
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	micro   cmap.ConcurrentMap[string, microEntry]
	now     func() time.Time
	// timer 重试等待用的定时器，nil 时使用 backoff 自带的实现
	timer backoff.Timer
}

func New(conf *config.Config) *Client {
	return NewWithHTTPClient(conf.Upstream, &http.Client{Timeout: conf.Upstream.Timeout()})
}

func NewWithHTTPClient(conf *config.Upstream, hc *http.Client) *Client {
	return &Client{
		conf: conf,
		http: hc,
		breaker: newBreaker("upstream-zones",
			conf.CircuitThreshold,
			time.Duration(conf.CircuitWindowSeconds)*time.Second,
			time.Duration(conf.CircuitCooldownSeconds)*time.Second,
		),
		micro: cmap.New[microEntry](),
		now:   time.Now,
	}
}

// FetchZones 请求 bounds 范围内的区域，返回原始 JSON
func (c *Client) FetchZones(ctx context.Context, b Bounds) (*Result, error) {
	key := b.Key()
	if e, ok := c.micro.Get(key); ok {
		if c.now().Before(e.expires) {
			log.L.Debug("upstream microcache hit", zap.String("bounds", key))
			return e.result, nil
		}
		c.micro.Remove(key)
	}

	var (
		res     *Result
		lastErr error
	)
	op := func() error {
		out, err := c.breaker.Execute(func() (interface{}, error) {
			return c.fetchOnce(ctx, b)
		})
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			if lastErr != nil {
				return backoff.Permanent(lastErr)
			}
			return backoff.Permanent(ErrCircuitOpen)
		}
		if err != nil {
			lastErr = err
			// 本次失败触发熔断，不再等待重试
			if c.breaker.State() == gobreaker.StateOpen {
				return backoff.Permanent(err)
			}
			return err
		}
		res = out.(*Result)
		return nil
	}
	notify := func(err error, wait time.Duration) {
		log.L.Warn("upstream attempt failed", zap.Duration("backoff", wait), zap.Error(err))
	}

	if err := backoff.RetryNotifyWithTimer(op, c.retryPolicy(ctx), notify, c.timer); err != nil {
		log.L.Error("upstream failed after retries", zap.String("bounds", key), zap.Error(err))
		return nil, err
	}

	c.micro.Set(key, microEntry{
		result:  res,
		expires: c.now().Add(time.Duration(c.conf.MicroCacheSeconds) * time.Second),
	})
	return res, nil
}

// retryPolicy 0.5s 起每次翻倍，共 Attempts 次，最后一次失败后不再等待
func (c *Client) retryPolicy(ctx context.Context) backoff.BackOffContext {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = baseBackoff
	eb.RandomizationFactor = 0
	eb.Multiplier = 2
	eb.MaxInterval = maxBackoff
	eb.MaxElapsedTime = 0

	attempts := c.conf.Attempts
	if attempts < 1 {
		attempts = 1
	}
	return backoff.WithContext(backoff.WithMaxRetries(eb, uint64(attempts-1)), ctx)
}

func (c *Client) fetchOnce(ctx context.Context, b Bounds) (*Result, error) {
	req, err := c.newRequest(ctx, b)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, err
	}
	ct := strings.ToLower(resp.Header.Get("Content-Type"))

	if resp.StatusCode != http.StatusOK {
		return nil, &BlockedError{Status: resp.StatusCode, ContentType: ct, Preview: preview(body)}
	}
	if len(body) == 0 {
		return nil, ErrEmpty
	}
	if !strings.Contains(ct, "application/json") {
		return nil, &InvalidError{Reason: "upstream returned non-JSON", ContentType: ct, Preview: preview(body)}
	}
	if _, err := ParseZones(body); err != nil {
		return nil, err
	}
	return &Result{Data: body, FetchedAt: c.now().UTC()}, nil
}

// 配置了代理时走 GET + x-proxy-token，否则直接表单 POST 上游
func (c *Client) newRequest(ctx context.Context, b Bounds) (*http.Request, error) {
	form := url.Values{}
	form.Set("cmd", cmdZonesInFrame)
	form.Set("left_long", formatFloat(b.LeftLong))
	form.Set("right_long", formatFloat(b.RightLong))
	form.Set("top_lat", formatFloat(b.TopLat))
	form.Set("bottom_lat", formatFloat(b.BottomLat))

	target := c.conf.Target()
	if c.conf.ProxyURL != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target+"?"+form.Encode(), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("x-proxy-token", c.conf.ProxyToken)
		return req, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json,text/plain,*/*")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
