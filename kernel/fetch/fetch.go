package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	units "github.com/docker/go-units"
	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/time/rate"

	xcom "github.com/xuperchain/xdapps/kernel/common"
	"github.com/xuperchain/xdapps/lib/logs"
	"github.com/xuperchain/xdapps/lib/metrics"
)

const SubModName = "fetch"

// Response is a fully read http response body
type Response struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        []byte
}

// Fetcher downloads content for the dapps server
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Response, error)
}

// Client is a size bounded, rate limited fetcher with an lru cache of good responses
type Client struct {
	conf     *FetchConf
	maxBytes int64
	http     *http.Client
	limiter  *rate.Limiter
	cache    *lru.Cache
	log      logs.Logger
}

func NewClient(conf *FetchConf) (*Client, error) {
	if conf == nil {
		conf = GetDefFetchConf()
	}
	maxBytes, err := conf.MaxBytes()
	if err != nil {
		return nil, xcom.ErrParameter.More("invalid fetch maxSize.err:%v", err)
	}

	limit := rate.Inf
	if conf.RateLimit > 0 {
		limit = rate.Limit(conf.RateLimit)
	}
	burst := conf.Burst
	if burst <= 0 {
		burst = 1
	}

	var c *lru.Cache
	if conf.CacheSize > 0 {
		c, err = lru.New(conf.CacheSize)
		if err != nil {
			return nil, xcom.ErrParameter.More("new fetch cache failed.err:%v", err)
		}
	}

	log, _ := logs.NewLogger("", SubModName)
	return &Client{
		conf:     conf,
		maxBytes: maxBytes,
		http:     &http.Client{Timeout: conf.Timeout},
		limiter:  rate.NewLimiter(limit, burst),
		cache:    c,
		log:      log,
	}, nil
}

func (t *Client) Fetch(ctx context.Context, url string) (*Response, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil, xcom.ErrParameter.More("unsupported url:%s", url)
	}
	if t.cache != nil {
		if v, ok := t.cache.Get(url); ok {
			return v.(*Response), nil
		}
	}

	resp, err := t.fetch(ctx, url)
	metrics.FetchCounter.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		t.log.Warn("fetch content failed", "url", url, "err", err)
		return nil, err
	}

	metrics.FetchBytesCounter.Add(float64(len(resp.Body)))
	if t.cache != nil && resp.StatusCode == http.StatusOK {
		t.cache.Add(url, resp)
	}
	t.log.Debug("fetch content", "url", url, "status", resp.StatusCode,
		"size", units.HumanSize(float64(len(resp.Body))))

	return resp, nil
}

func (t *Client) fetch(ctx context.Context, url string) (*Response, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, xcom.ErrFetchFailed.More("rate limit wait failed.err:%v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, xcom.ErrParameter.More("%v", err)
	}
	if t.conf.UserAgent != "" {
		req.Header.Set("User-Agent", t.conf.UserAgent)
	}

	resp, err := t.http.Do(req)
	if err != nil {
		return nil, xcom.ErrFetchFailed.More("%v", err)
	}
	defer resp.Body.Close()

	if resp.ContentLength > t.maxBytes {
		return nil, xcom.ErrFetchTooLarge.More("content length %d exceeds %s",
			resp.ContentLength, t.conf.MaxSize)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, t.maxBytes+1))
	if err != nil {
		return nil, xcom.ErrFetchFailed.More("read body failed.err:%v", err)
	}
	if int64(len(body)) > t.maxBytes {
		return nil, xcom.ErrFetchTooLarge.More("body exceeds %s", t.conf.MaxSize)
	}

	return &Response{
		URL:         url,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

func (t *Client) String() string {
	return fmt.Sprintf("fetch.Client(max=%s,cache=%d)", t.conf.MaxSize, t.conf.CacheSize)
}
