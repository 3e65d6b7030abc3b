// Package memory provides in-memory implementations of storage.KV and
// storage.Store for the degraded-mode path where no durable database is
// available. Values last only for the life of the process.
package memory

import (
	"context"
	"sync"

	"github.com/evanwills/firing-pricing-adjuster/internal/storage"
)

var _ storage.KV = (*KV)(nil)

// KV is a process-local string cache.
type KV struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewKV creates an empty in-memory cache.
func NewKV() *KV {
	return &KV{values: make(map[string]string)}
}

// Get returns the cached value for key.
func (k *KV) Get(_ context.Context, key string) (string, bool, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	v, ok := k.values[key]
	return v, ok, nil
}

// Set stores value under key.
func (k *KV) Set(_ context.Context, key, value string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.values[key] = value
	return nil
}
