package events

import (
	"context"
	"testing"
	"time"

	"github.com/go-faster/jx"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/pos-admin/internal/domain/order"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestKafkaPublisher_OrderPlaced(t *testing.T) {
	w := &fakeWriter{}
	p := newKafkaPublisher(w)
	p.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	o := &order.Order{
		ID:            "o-1",
		ReceiptNumber: "RCP-20260301-0001",
		Total:         decimal.RequireFromString("32.55"),
		Status:        order.StatusCompleted,
	}
	require.NoError(t, p.OrderPlaced(context.Background(), o))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, []byte("o-1"), msg.Key)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, TypeOrderPlaced, string(msg.Headers[0].Value))
	assert.True(t, jx.Valid(msg.Value))

	var eventType, occurredAt, orderID, receipt string
	err := jx.DecodeBytes(msg.Value).Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "type":
			eventType, err = d.Str()
		case "occurredAt":
			occurredAt, err = d.Str()
		case "order":
			return d.Obj(func(d *jx.Decoder, key string) error {
				var err error
				switch key {
				case "id":
					orderID, err = d.Str()
				case "receiptNumber":
					receipt, err = d.Str()
				default:
					err = d.Skip()
				}
				return err
			})
		default:
			err = d.Skip()
		}
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, TypeOrderPlaced, eventType)
	assert.Equal(t, "2026-03-01T12:00:00Z", occurredAt)
	assert.Equal(t, "o-1", orderID)
	assert.Equal(t, "RCP-20260301-0001", receipt)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	w := &fakeWriter{err: assert.AnError}
	p := newKafkaPublisher(w)

	err := p.OrderPlaced(context.Background(), &order.Order{ID: "o-1"})
	require.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), TypeOrderPlaced)
}

func TestKafkaPublisher_Close(t *testing.T) {
	w := &fakeWriter{}
	require.NoError(t, newKafkaPublisher(w).Close())
	assert.True(t, w.closed)
}

func TestNoop(t *testing.T) {
	assert.NoError(t, Noop{}.OrderPlaced(context.Background(), &order.Order{}))
}
