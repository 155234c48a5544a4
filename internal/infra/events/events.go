// Package events publishes domain events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-faster/errors"
	"github.com/segmentio/kafka-go"
)

const (
	TopicOrderCreated       = "order.created"
	TopicOrderStatusChanged = "order.status_changed"
	TopicPaymentCompleted   = "payment.completed"
	TopicPaymentRefunded    = "payment.refunded"
)

// 書き込みは同期なので、ブローカー障害時に待つ時間を抑える
const (
	writeTimeout = 2 * time.Second
	maxAttempts  = 3
	batchTimeout = 10 * time.Millisecond
)

// Publisher emits an event keyed by the aggregate id.
type Publisher interface {
	Publish(ctx context.Context, topic string, key string, payload any) error
	Close() error
}

// Nop discards every event. Used when no brokers are configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, string, any) error { return nil }
func (Nop) Close() error                                       { return nil }

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes JSON-encoded events. The topic of each message is
// prefix + "." + topic.
type KafkaPublisher struct {
	w      messageWriter
	prefix string
	now    func() time.Time
}

func NewKafkaPublisher(brokers []string, prefix string) *KafkaPublisher {
	return &KafkaPublisher{
		w: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.LeastBytes{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
			WriteTimeout:           writeTimeout,
			MaxAttempts:            maxAttempts,
			BatchTimeout:           batchTimeout,
		},
		prefix: prefix,
		now:    time.Now,
	}
}

// New returns a Kafka publisher, or Nop when brokers is empty.
func New(brokers []string, prefix string) Publisher {
	if len(brokers) == 0 {
		return Nop{}
	}
	return NewKafkaPublisher(brokers, prefix)
}

func (p *KafkaPublisher) topic(name string) string {
	if p.prefix == "" {
		return name
	}
	return p.prefix + "." + name
}

func (p *KafkaPublisher) Publish(ctx context.Context, topic string, key string, payload any) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}
	msg := kafka.Message{
		Topic: p.topic(topic),
		Key:   []byte(key),
		Value: value,
		Time:  p.now(),
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return errors.Wrapf(err, "write %s", msg.Topic)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.w.Close()
}
