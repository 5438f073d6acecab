// Package events publishes order lifecycle events to Kafka.
package events

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/xenking/pos-admin/internal/domain/order"
	"github.com/xenking/pos-admin/internal/wire"
	"github.com/xenking/pos-admin/pkg/httpmiddleware"
)

// TypeOrderPlaced is the event type of a completed sale.
const TypeOrderPlaced = "order.placed"

// DefaultTopic receives order events when no topic is configured.
const DefaultTopic = "pos.orders"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

var _ order.Publisher = (*KafkaPublisher)(nil)

// KafkaPublisher writes order events keyed by order ID so that all events
// of one order land on the same partition.
type KafkaPublisher struct {
	writer messageWriter
	now    func() time.Time
}

// NewKafkaPublisher creates a publisher writing to topic on brokers.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return newKafkaPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		WriteTimeout:           10 * time.Second,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	})
}

func newKafkaPublisher(w messageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: w, now: time.Now}
}

// OrderPlaced publishes a TypeOrderPlaced event carrying the full order.
func (p *KafkaPublisher) OrderPlaced(ctx context.Context, o *order.Order) error {
	eventID := uuid.NewString()

	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(eventID) })
		e.Field("type", func(e *jx.Encoder) { e.Str(TypeOrderPlaced) })
		e.Field("occurredAt", func(e *jx.Encoder) {
			e.Str(p.now().UTC().Format(time.RFC3339Nano))
		})
		if id := httpmiddleware.RequestIDFromContext(ctx); id != "" {
			e.Field("correlationId", func(e *jx.Encoder) { e.Str(id) })
		}
		e.Field("order", func(e *jx.Encoder) { wire.EncodeOrder(e, o) })
	})

	msg := kafka.Message{
		Key:   []byte(o.ID),
		Value: e.Bytes(),
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(TypeOrderPlaced)},
			{Key: "event_id", Value: []byte(eventID)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return errors.Wrapf(err, "publish %s", TypeOrderPlaced)
	}

	zctx.From(ctx).Debug("Event published",
		zap.String("event_id", eventID),
		zap.String("event_type", TypeOrderPlaced),
		zap.String("order_id", o.ID),
	)
	return nil
}

// Close flushes pending writes and releases the broker connections.
func (p *KafkaPublisher) Close() error {
	if err := p.writer.Close(); err != nil {
		return errors.Wrap(err, "close kafka writer")
	}
	return nil
}

// Noop discards events. It is used when no brokers are configured.
type Noop struct{}

var _ order.Publisher = Noop{}

func (Noop) OrderPlaced(context.Context, *order.Order) error { return nil }
