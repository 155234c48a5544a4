package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// ブローカーが応答しない状態を真似る
type stalledPublisher struct {
	hadDeadline bool
}

func (p *stalledPublisher) Publish(ctx context.Context, _, _ string, _ any) error {
	_, p.hadDeadline = ctx.Deadline()
	<-ctx.Done()
	return ctx.Err()
}

func TestPublish_BoundedByTimeout(t *testing.T) {
	prev := publishTimeout
	publishTimeout = 20 * time.Millisecond
	t.Cleanup(func() { publishTimeout = prev })

	p := &stalledPublisher{}
	start := time.Now()
	publish(context.Background(), p, "order.created", "o1", struct{}{})

	assert.True(t, p.hadDeadline)
	assert.Less(t, time.Since(start), time.Second)
}

func TestPublish_NilPublisher(t *testing.T) {
	assert.NotPanics(t, func() {
		publish(context.Background(), nil, "order.created", "o1", struct{}{})
	})
}
