package usecase

import (
	"context"
	"time"
)

// JSONCache is the best-effort cache the services read through. A miss and
// an unreachable backend look the same to callers.
type JSONCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	InvalidateIndustry(ctx context.Context, industry string) error
}

// EventPublisher emits integration events; a disabled broker is a no-op.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, event any) error
}
