package statestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ErrNotFound is returned by a Reader when no payload is stored under the key.
var ErrNotFound = errors.New("snapshot not found")

// Codec converts an aggregate to and from its persisted payload.
type Codec[S any] interface {
	Encode(state S) ([]byte, error)
	Decode(payload []byte) (S, error)
}

// Reader loads a persisted payload.
type Reader interface {
	Get(ctx context.Context, key string) ([]byte, error)
}

// Writer stores a persisted payload. Implementations must not let a write
// replace a stored payload that carries a higher revision.
type Writer interface {
	Put(ctx context.Context, key string, revision int64, payload []byte) error
}

// Load restores the aggregate stored under key. Missing or malformed payloads
// yield empty. Read failures are returned so callers never start from an empty
// aggregate that would later overwrite the stored one.
func Load[S any](ctx context.Context, r Reader, key string, codec Codec[S], empty S, logger *slog.Logger) (S, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if r == nil {
		return empty, nil
	}
	payload, err := r.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return empty, nil
		}
		return empty, fmt.Errorf("read snapshot %s: %w", key, err)
	}
	state, err := codec.Decode(payload)
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelWarn, "snapshot malformed, starting empty",
			slog.String("snapshot.key", key), slog.String("error", err.Error()))
		return empty, nil
	}
	return state, nil
}

// DefaultWriteTimeout bounds a single background write.
const DefaultWriteTimeout = 5 * time.Second

// Persister writes every observed snapshot to a Writer on a background goroutine.
// Only the newest pending payload is kept, so a burst of transitions collapses
// into one write of the final state. Each write carries a revision that grows
// strictly, seeded from the wall clock so a restarted process outranks the
// snapshots written before it.
type Persister[S any] struct {
	key     string
	codec   Codec[S]
	writer  Writer
	logger  *slog.Logger
	timeout time.Duration
	metrics persistMetrics
	now     func() time.Time

	mu       sync.Mutex
	cond     *sync.Cond
	pending  []byte
	queued   uint64
	settled  uint64
	revision int64
	closed   bool
	done     chan struct{}
}

type PersisterOption func(*persisterConfig)

type persisterConfig struct {
	logger  *slog.Logger
	meter   metric.Meter
	timeout time.Duration
	now     func() time.Time
}

func WithLogger(logger *slog.Logger) PersisterOption {
	return func(c *persisterConfig) {
		c.logger = logger
	}
}

func WithMeter(m metric.Meter) PersisterOption {
	return func(c *persisterConfig) {
		c.meter = m
	}
}

func WithWriteTimeout(d time.Duration) PersisterOption {
	return func(c *persisterConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRevisionClock overrides the time source that seeds write revisions.
func WithRevisionClock(now func() time.Time) PersisterOption {
	return func(c *persisterConfig) {
		if now != nil {
			c.now = now
		}
	}
}

// NewPersister starts the background writer for key.
func NewPersister[S any](key string, codec Codec[S], writer Writer, opts ...PersisterOption) *Persister[S] {
	cfg := persisterConfig{timeout: DefaultWriteTimeout, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	p := &Persister[S]{
		key:     key,
		codec:   codec,
		writer:  writer,
		logger:  cfg.logger,
		timeout: cfg.timeout,
		metrics: newPersistMetrics(cfg.meter),
		now:     cfg.now,
		done:    make(chan struct{}),
	}
	p.cond = sync.NewCond(&p.mu)
	go p.run()
	return p
}

// Observe is a Listener: it encodes state and schedules the write.
func (p *Persister[S]) Observe(state S, version uint64) {
	payload, err := p.codec.Encode(state)
	if err != nil {
		p.logger.Error("snapshot encode failed", slog.String("snapshot.key", p.key), slog.String("error", err.Error()))
		p.metrics.recordFailure(p.key)
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || version <= p.queued {
		return
	}
	p.pending = payload
	p.queued = version
	p.cond.Broadcast()
}

// Flush blocks until every observed version has been written or attempted.
func (p *Persister[S]) Flush(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		p.mu.Lock()
		p.cond.Broadcast()
		p.mu.Unlock()
	})
	defer stop()

	p.mu.Lock()
	defer p.mu.Unlock()
	target := p.queued
	for p.settled < target {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.cond.Wait()
	}
	return nil
}

// Close flushes pending work and stops the background goroutine.
func (p *Persister[S]) Close(ctx context.Context) error {
	flushErr := p.Flush(ctx)
	p.mu.Lock()
	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()
	select {
	case <-p.done:
		return flushErr
	case <-ctx.Done():
		return errors.Join(flushErr, ctx.Err())
	}
}

func (p *Persister[S]) run() {
	defer close(p.done)
	p.mu.Lock()
	for {
		for p.pending == nil && !p.closed {
			p.cond.Wait()
		}
		if p.pending == nil {
			p.mu.Unlock()
			return
		}
		payload, version := p.pending, p.queued
		p.pending = nil
		p.revision = max(p.revision+1, p.now().UnixNano())
		revision := p.revision
		p.mu.Unlock()

		p.write(payload, version, revision)

		p.mu.Lock()
		p.settled = version
		p.cond.Broadcast()
	}
}

func (p *Persister[S]) write(payload []byte, version uint64, revision int64) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	if err := p.writer.Put(ctx, p.key, revision, payload); err != nil {
		p.metrics.recordFailure(p.key)
		p.logger.LogAttrs(ctx, slog.LevelError, "snapshot write failed",
			slog.String("snapshot.key", p.key),
			slog.Uint64("snapshot.version", version),
			slog.Int64("snapshot.revision", revision),
			slog.String("error", err.Error()))
		return
	}
	p.metrics.recordWrite(p.key)
}

type persistMetrics struct {
	writes   metric.Int64Counter
	failures metric.Int64Counter
}

func newPersistMetrics(m metric.Meter) persistMetrics {
	if m == nil {
		return persistMetrics{}
	}
	writes, _ := m.Int64Counter("statestore.persist.writes", metric.WithDescription("Snapshots written to the backend"))
	failures, _ := m.Int64Counter("statestore.persist.failures", metric.WithDescription("Snapshots that failed to encode or write"))
	return persistMetrics{writes: writes, failures: failures}
}

func (m persistMetrics) recordWrite(key string) {
	if m.writes != nil {
		m.writes.Add(context.Background(), 1, metric.WithAttributes(attribute.String("snapshot.key", key)))
	}
}

func (m persistMetrics) recordFailure(key string) {
	if m.failures != nil {
		m.failures.Add(context.Background(), 1, metric.WithAttributes(attribute.String("snapshot.key", key)))
	}
}
