// Package httpfetch loads JSON resources over HTTP and publishes the decoded
// result into an observable value, falling back to a caller default on failure.
package httpfetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/bnema/zerowrap"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/bnema/citybike/internal/boundaries/out"
	"github.com/bnema/citybike/internal/domain"
	"github.com/bnema/citybike/pkg/observable"
)

// DefaultTimeout matches the usual per-request timeout of platform HTTP stacks.
const DefaultTimeout = 60 * time.Second

// DefaultUserAgent is sent when no user agent is configured.
const DefaultUserAgent = "citybike/dev"

// maxBodySize caps how much of a response body is read.
const maxBodySize = 32 << 20

// retryAttempts is the number of extra attempts after a transport failure.
const retryAttempts = 1

// Dispatcher runs apply on the goroutine that owns the presentation state.
type Dispatcher func(apply func())

// Inline applies results on the fetching goroutine.
func Inline(apply func()) { apply() }

type config struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	dispatch  Dispatcher
	log       zerowrap.Logger
	hasLog    bool
}

// Option configures a Fetcher.
type Option func(*config)

// WithHTTPClient sets a custom HTTP client. The timeout option is ignored.
func WithHTTPClient(client *http.Client) Option {
	return func(c *config) {
		c.client = client
	}
}

// WithTimeout sets the per-request timeout of the default client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *config) {
		c.timeout = timeout
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *config) {
		c.userAgent = userAgent
	}
}

// WithDispatcher sets how completions are handed to the presentation goroutine.
func WithDispatcher(dispatch Dispatcher) Option {
	return func(c *config) {
		c.dispatch = dispatch
	}
}

// WithLogger sets the logger.
func WithLogger(log zerowrap.Logger) Option {
	return func(c *config) {
		c.log = log
		c.hasLog = true
	}
}

// Fetcher issues GET requests and holds the last published value of T.
type Fetcher[T any] struct {
	client    *http.Client
	userAgent string
	dispatch  Dispatcher
	log       zerowrap.Logger

	value observable.Value[T]

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	issued   uint64
	applied  uint64
	closed   bool
	inflight int
	// idle is closed when inflight drops back to zero.
	idle chan struct{}
}

// New creates a Fetcher.
func New[T any](opts ...Option) *Fetcher[T] {
	cfg := config{
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
		dispatch:  Inline,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.client == nil {
		cfg.client = &http.Client{
			Timeout:   cfg.timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if !cfg.hasLog {
		cfg.log = zerowrap.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Fetcher[T]{
		client:    cfg.client,
		userAgent: cfg.userAgent,
		dispatch:  cfg.dispatch,
		log:       cfg.log,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Value returns the last published value, or false if no fetch completed yet.
func (f *Fetcher[T]) Value() (T, bool) {
	return f.value.Current()
}

// Subscribe registers fn to run right before the published value changes.
// fn runs on the dispatcher's goroutine and must not call Fetch or Close.
func (f *Fetcher[T]) Subscribe(fn observable.WillChangeFunc[T]) func() {
	return f.value.Subscribe(fn)
}

// Fetch loads rawURL in the background. On success the decoded body is
// published; on transport failure (after one retry) or decode failure
// defaultValue is published instead. Fetch never blocks on I/O.
//
// Completions are ordered by call: a result is dropped when a later Fetch has
// already published.
func (f *Fetcher[T]) Fetch(rawURL string, defaultValue T) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.issued++
	seq := f.issued
	if f.inflight == 0 {
		f.idle = make(chan struct{})
	}
	f.inflight++
	f.mu.Unlock()

	requestID := uuid.NewString()

	go func() {
		defer f.done()

		start := time.Now()
		value, attempts, err := f.load(f.ctx, rawURL, requestID)
		if f.ctx.Err() != nil {
			f.log.Debug().
				Str(zerowrap.FieldLayer, "adapter").
				Str(zerowrap.FieldAdapter, "httpfetch").
				Str("request_id", requestID).
				Msg("fetch cancelled")
			return
		}

		if err != nil {
			f.log.Warn().
				Str(zerowrap.FieldLayer, "adapter").
				Str(zerowrap.FieldAdapter, "httpfetch").
				Str("request_id", requestID).
				Str("url", rawURL).
				Int("attempts", attempts).
				Bool("decode_failure", errors.Is(err, domain.ErrDecode)).
				Err(err).
				Msg("fetch failed, publishing default value")
			value = defaultValue
		} else {
			f.log.Debug().
				Str(zerowrap.FieldLayer, "adapter").
				Str(zerowrap.FieldAdapter, "httpfetch").
				Str("request_id", requestID).
				Str("url", rawURL).
				Int("attempts", attempts).
				Dur(zerowrap.FieldDuration, time.Since(start)).
				Msg("fetch succeeded")
		}

		f.dispatch(func() { f.apply(seq, requestID, value) })
	}()
}

// Wait blocks until every outstanding fetch has handed its result to the
// dispatcher, or ctx is done. Fetches issued while Wait is blocked extend the
// wait; it returns at the first moment nothing is in flight.
func (f *Fetcher[T]) Wait(ctx context.Context) error {
	f.mu.Lock()
	if f.inflight == 0 {
		f.mu.Unlock()
		return nil
	}
	idle := f.idle
	f.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// done marks one fetch as finished.
func (f *Fetcher[T]) done() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.inflight--
	if f.inflight == 0 {
		close(f.idle)
	}
}

// Close cancels every outstanding fetch. Nothing is published afterwards,
// including results already queued in the dispatcher.
func (f *Fetcher[T]) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()

	f.cancel()
	return nil
}

// apply publishes value unless the fetcher is closed or a newer fetch already
// published. The lock is held across the publish so Close cannot interleave.
func (f *Fetcher[T]) apply(seq uint64, requestID string, value T) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	if seq <= f.applied {
		f.log.Debug().
			Str(zerowrap.FieldLayer, "adapter").
			Str(zerowrap.FieldAdapter, "httpfetch").
			Str("request_id", requestID).
			Uint64("sequence", seq).
			Uint64("applied", f.applied).
			Msg("dropping stale fetch result")
		return
	}

	f.applied = seq
	f.value.Set(value)
}

// load performs the GET with one retry on transport failure, then decodes.
func (f *Fetcher[T]) load(ctx context.Context, rawURL, requestID string) (T, int, error) {
	var zero T

	if err := validateURL(rawURL); err != nil {
		return zero, 0, err
	}

	var (
		body     []byte
		err      error
		attempts int
	)
	for attempt := 0; attempt <= retryAttempts; attempt++ {
		attempts++
		body, err = f.get(ctx, rawURL, requestID)
		if err == nil || ctx.Err() != nil {
			break
		}
		f.log.Debug().
			Str(zerowrap.FieldLayer, "adapter").
			Str(zerowrap.FieldAdapter, "httpfetch").
			Str("request_id", requestID).
			Int("attempt", attempts).
			Err(err).
			Msg("request failed")
	}
	if err != nil {
		return zero, attempts, err
	}

	value, err := decode[T](body)
	return value, attempts, err
}

// get sends a single GET request and returns the response body.
func (f *Fetcher[T]) get(ctx context.Context, rawURL, requestID string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", domain.ErrTransport, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("X-Request-ID", requestID)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: unexpected status %s", domain.ErrTransport, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read body: %w", domain.ErrTransport, err)
	}
	if len(body) > maxBodySize {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", domain.ErrTransport, maxBodySize)
	}

	return body, nil
}

// decode unmarshals the whole body into a fresh T.
func decode[T any](body []byte) (T, error) {
	var value T
	if err := json.Unmarshal(body, &value); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %w", domain.ErrDecode, err)
	}
	return value, nil
}

func validateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: invalid url: %w", domain.ErrTransport, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%w: url %q is not absolute", domain.ErrTransport, rawURL)
	}
	return nil
}

var (
	_ out.Fetcher[struct{}]        = (*Fetcher[struct{}])(nil)
	_ out.ValueHolder[struct{}]    = (*Fetcher[struct{}])(nil)
	_ out.ChangeNotifier[struct{}] = (*Fetcher[struct{}])(nil)
)
