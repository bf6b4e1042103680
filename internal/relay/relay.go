// Package relay implements the CORS relay: it fetches an arbitrary URL server-side and
// returns the upstream body with permissive cross-origin headers.
package relay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/sync/singleflight"

	"github.com/preston-bernstein/nba-schedule-service/internal/logging"
	"github.com/preston-bernstein/nba-schedule-service/internal/metrics"
	"github.com/preston-bernstein/nba-schedule-service/internal/store"
)

const (
	// DefaultUserAgent is sent upstream; several feeds reject non-browser clients.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	cacheControl   = "max-age=15"
	allowMethods   = "GET,HEAD,POST,OPTIONS"
	maxBodyBytes   = 16 << 20
	headerCache    = "X-Relay-Cache"
	defaultTimeout = 10 * time.Second
)

// ErrBodyTooLarge is returned when an upstream body exceeds the relay limit.
var ErrBodyTooLarge = errors.New("upstream body too large")

// forwardedHeaders are copied from the inbound request to the upstream one.
var forwardedHeaders = []string{"Accept", "Referer", "Origin"}

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// Options configures a Handler.
type Options struct {
	Client    *http.Client
	UserAgent string
	// Cache is optional; a nil cache disables response caching.
	Cache    store.ByteStore
	CacheTTL time.Duration
	Logger   *slog.Logger
	Metrics  *metrics.Recorder
}

// Handler serves GET /?url=<target>.
type Handler struct {
	client    *http.Client
	userAgent string
	cache     store.ByteStore
	cacheTTL  time.Duration
	logger    *slog.Logger
	metrics   *metrics.Recorder
	group     singleflight.Group
	maxBody   int64
	// joined runs when a caller starts waiting on a shared fetch.
	joined func()
}

type upstreamResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType,omitempty"`
	Body        []byte `json:"body"`
}

// NewHandler builds a relay handler.
func NewHandler(opts Options) *Handler {
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	ua := strings.TrimSpace(opts.UserAgent)
	if ua == "" {
		ua = DefaultUserAgent
	}
	return &Handler{
		client:    client,
		userAgent: ua,
		cache:     opts.Cache,
		cacheTTL:  opts.CacheTTL,
		logger:    opts.Logger,
		metrics:   opts.Metrics,
		maxBody:   maxBodyBytes,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		writeCORS(w.Header())
		w.WriteHeader(http.StatusNoContent)
		return
	}

	target := strings.TrimSpace(r.URL.Query().Get("url"))
	if target == "" {
		writeText(w, http.StatusBadRequest, "Missing url parameter")
		return
	}

	logger := logging.FromContext(r.Context(), h.logger)
	resp, cached, err := h.fetch(r.Context(), target, r.Header)
	if err != nil {
		logging.Warn(logger, "relay fetch failed", logging.FieldURL, target, "err", err)
		writeText(w, http.StatusBadGateway, "Proxy fetch failed: "+err.Error())
		return
	}

	hdr := w.Header()
	if resp.ContentType != "" {
		hdr.Set("Content-Type", resp.ContentType)
	}
	writeCORS(hdr)
	hdr.Set("Cache-Control", cacheControl)
	if h.cache != nil {
		if cached {
			hdr.Set(headerCache, "HIT")
		} else {
			hdr.Set(headerCache, "MISS")
		}
	}
	w.WriteHeader(resp.Status)
	if r.Method != http.MethodHead {
		_, _ = w.Write(resp.Body)
	}
}

// fetch serves target from the cache when possible and otherwise collapses concurrent
// requests for the same target into one upstream call. The shared call outlives any
// single caller; each caller stops waiting when its own request ends.
func (h *Handler) fetch(ctx context.Context, target string, inbound http.Header) (upstreamResponse, bool, error) {
	if resp, ok := h.lookup(ctx, target); ok {
		return resp, true, nil
	}

	ch := h.group.DoChan(target, func() (any, error) {
		shared, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.fetchTimeout())
		defer cancel()
		resp, err := h.doUpstream(shared, target, inbound)
		if err != nil {
			return upstreamResponse{}, err
		}
		h.remember(shared, target, resp)
		return resp, nil
	})
	if h.joined != nil {
		h.joined()
	}

	select {
	case <-ctx.Done():
		return upstreamResponse{}, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return upstreamResponse{}, false, res.Err
		}
		return res.Val.(upstreamResponse), false, nil
	}
}

func (h *Handler) fetchTimeout() time.Duration {
	if h.client.Timeout > 0 {
		return h.client.Timeout
	}
	return defaultTimeout
}

func (h *Handler) doUpstream(ctx context.Context, target string, inbound http.Header) (upstreamResponse, error) {
	start := time.Now()
	host := hostOf(target)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		h.metrics.RecordRelayFetch(host, 0, time.Since(start), err)
		return upstreamResponse{}, err
	}
	req.Header.Set("User-Agent", h.userAgent)
	for _, name := range forwardedHeaders {
		if v := inbound.Get(name); v != "" {
			req.Header.Set(name, v)
		}
	}

	res, err := h.client.Do(req)
	if err != nil {
		h.metrics.RecordRelayFetch(host, 0, time.Since(start), err)
		return upstreamResponse{}, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, h.maxBody+1))
	if err != nil {
		err = fmt.Errorf("read upstream body: %w", err)
	} else if int64(len(body)) > h.maxBody {
		err = fmt.Errorf("%w: limit %d bytes", ErrBodyTooLarge, h.maxBody)
	}
	if err != nil {
		h.metrics.RecordRelayFetch(host, res.StatusCode, time.Since(start), err)
		return upstreamResponse{}, err
	}
	h.metrics.RecordRelayFetch(host, res.StatusCode, time.Since(start), nil)
	return upstreamResponse{
		Status:      res.StatusCode,
		ContentType: res.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

func (h *Handler) lookup(ctx context.Context, target string) (upstreamResponse, bool) {
	if h.cache == nil {
		return upstreamResponse{}, false
	}
	raw, ok, err := h.cache.Get(ctx, target)
	if err != nil {
		logging.Warn(h.logger, "relay cache read failed", logging.FieldURL, target, "err", err)
	}
	if !ok || err != nil {
		h.metrics.RecordRelayCache(false)
		return upstreamResponse{}, false
	}
	var resp upstreamResponse
	if err := jsonAPI.Unmarshal(raw, &resp); err != nil {
		h.metrics.RecordRelayCache(false)
		return upstreamResponse{}, false
	}
	h.metrics.RecordRelayCache(true)
	return resp, true
}

// remember caches 2xx responses only.
func (h *Handler) remember(ctx context.Context, target string, resp upstreamResponse) {
	if h.cache == nil || h.cacheTTL <= 0 || resp.Status < 200 || resp.Status > 299 {
		return
	}
	raw, err := jsonAPI.Marshal(resp)
	if err != nil {
		return
	}
	if err := h.cache.Set(ctx, target, raw, h.cacheTTL); err != nil {
		logging.Warn(h.logger, "relay cache write failed", logging.FieldURL, target, "err", err)
	}
}

func writeCORS(h http.Header) {
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", allowMethods)
	h.Set("Access-Control-Allow-Headers", "*")
}

func writeText(w http.ResponseWriter, status int, body string) {
	writeCORS(w.Header())
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func hostOf(target string) string {
	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		return "invalid"
	}
	return u.Host
}
