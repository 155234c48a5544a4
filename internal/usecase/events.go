package usecase

import (
	"context"
	"time"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
)

// EventPublisher emits domain events once the change is committed.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, payload any) error
}

// publishTimeout bounds how long a response waits on the event broker.
var publishTimeout = 3 * time.Second

// publish は失敗してもリクエストは失敗させない（ログのみ）。
func publish(ctx context.Context, p EventPublisher, topic, key string, payload any) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := p.Publish(ctx, topic, key, payload); err != nil {
		zctx.From(ctx).Warn("Publish event",
			zap.String("topic", topic),
			zap.String("key", key),
			zap.Error(err),
		)
	}
}
