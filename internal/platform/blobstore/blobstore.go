// Package blobstore defines the opaque key-value backend that item stores persist their snapshots to.
package blobstore

import (
	"context"
	"errors"
	"strings"

	"github.com/Apurer/go-gin-storefront/internal/shared/statestore"
)

// ErrNotFound aliases the statestore sentinel so callers can test either.
var ErrNotFound = statestore.ErrNotFound

// Backend stores whole snapshot payloads under string keys. Put keeps the
// stored payload when it carries a higher revision than the incoming one.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, revision int64, payload []byte) error
	Delete(ctx context.Context, key string) error
}

// KeySeparator joins a scope and a store key.
const KeySeparator = ":"

// Scoped namespaces every key under scope, mirroring a per-browser storage area.
func Scoped(backend Backend, scope string) Backend {
	scope = strings.TrimSpace(scope)
	if scope == "" {
		return backend
	}
	return scopedBackend{inner: backend, prefix: scope + KeySeparator}
}

// ScopedKey returns the fully qualified key used by Scoped.
func ScopedKey(scope, key string) string {
	scope = strings.TrimSpace(scope)
	if scope == "" {
		return key
	}
	return scope + KeySeparator + key
}

type scopedBackend struct {
	inner  Backend
	prefix string
}

func (s scopedBackend) Get(ctx context.Context, key string) ([]byte, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s scopedBackend) Put(ctx context.Context, key string, revision int64, payload []byte) error {
	return s.inner.Put(ctx, s.prefix+key, revision, payload)
}

func (s scopedBackend) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

// ScopedWriter namespaces keys for a write-only sink such as a durable dispatcher.
func ScopedWriter(w statestore.Writer, scope string) statestore.Writer {
	scope = strings.TrimSpace(scope)
	if scope == "" {
		return w
	}
	return scopedWriter{inner: w, prefix: scope + KeySeparator}
}

type scopedWriter struct {
	inner  statestore.Writer
	prefix string
}

func (s scopedWriter) Put(ctx context.Context, key string, revision int64, payload []byte) error {
	return s.inner.Put(ctx, s.prefix+key, revision, payload)
}

// ValidateKey rejects empty keys before they reach a driver.
func ValidateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("snapshot key is required")
	}
	return nil
}

var (
	_ statestore.Reader = Backend(nil)
	_ statestore.Writer = Backend(nil)
)
