package mq

import (
	"context"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	sent   []published
	closed bool
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	f.sent = append(f.sent, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	stamp := time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC)
	p := &Publisher{ch: ch, exchange: "venue.events", now: func() time.Time { return stamp }}

	err := p.Publish(context.Background(), "booking.created", map[string]string{"bookingId": "b1"})

	require.NoError(t, err)
	require.Len(t, ch.sent, 1)
	got := ch.sent[0]
	assert.Equal(t, "venue.events", got.exchange)
	assert.Equal(t, "booking.created", got.key)
	assert.Equal(t, "application/json", got.msg.ContentType)
	assert.Equal(t, amqp.Persistent, got.msg.DeliveryMode)
	assert.Equal(t, stamp, got.msg.Timestamp)
	assert.NotEmpty(t, got.msg.MessageId)
	assert.JSONEq(t, `{"bookingId":"b1"}`, string(got.msg.Body))

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestPublisher_RejectsUnencodablePayload(t *testing.T) {
	ch := &fakeChannel{}
	p := &Publisher{ch: ch, exchange: "venue.events", now: time.Now}

	err := p.Publish(context.Background(), "booking.created", make(chan int))

	assert.Error(t, err)
	assert.Empty(t, ch.sent)
}
