// Package cooldown throttles repeat actions per key, backed by Redis
// in production and an in-process map otherwise.
package cooldown

import (
	"context"
	"time"
)

// Store tracks per-key cooldown windows.
type Store interface {
	// Acquire starts a cooldown for key if none is active. It returns
	// false with the remaining wait when the key is still cooling down.
	Acquire(ctx context.Context, key string, window time.Duration) (bool, time.Duration, error)

	// Clear drops an active cooldown.
	Clear(ctx context.Context, key string) error
}
