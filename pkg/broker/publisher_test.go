package broker

import (
	"context"
	"errors"
	"io"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	declared   []string
	published  []amqp.Publishing
	keys       []string
	publishErr error
	closed     bool
}

func (f *fakeChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	f.declared = append(f.declared, name)
	return amqp.Queue{Name: name}, nil
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func TestPublisherDeclaresQueueOnce(t *testing.T) {
	ch := &fakeChannel{}
	dials := 0
	pub := NewPublisherWithDialer("amqp://test", func(string) (Channel, io.Closer, error) {
		dials++
		return ch, nopCloser{}, nil
	}, nil)

	require.NoError(t, pub.Publish(context.Background(), "seating.published", []byte(`{"a":1}`)))
	require.NoError(t, pub.Publish(context.Background(), "seating.published", []byte(`{"a":2}`)))

	assert.Equal(t, 1, dials)
	assert.Equal(t, []string{"seating.published"}, ch.declared)
	require.Len(t, ch.published, 2)
	assert.Equal(t, amqp.Persistent, ch.published[0].DeliveryMode)
	assert.Equal(t, "application/json", ch.published[0].ContentType)
	assert.Equal(t, []string{"seating.published", "seating.published"}, ch.keys)
}

func TestPublisherRedialsAfterFailure(t *testing.T) {
	broken := &fakeChannel{publishErr: errors.New("channel closed")}
	healthy := &fakeChannel{}
	channels := []*fakeChannel{broken, healthy}
	pub := NewPublisherWithDialer("amqp://test", func(string) (Channel, io.Closer, error) {
		next := channels[0]
		channels = channels[1:]
		return next, nopCloser{}, nil
	}, nil)

	err := pub.Publish(context.Background(), "seating.published", []byte("{}"))
	require.Error(t, err)
	assert.True(t, broken.closed)

	require.NoError(t, pub.Publish(context.Background(), "seating.published", []byte("{}")))
	assert.Len(t, healthy.published, 1)
}

func TestPublisherRequiresQueue(t *testing.T) {
	pub := NewPublisherWithDialer("amqp://test", func(string) (Channel, io.Closer, error) {
		return nil, nil, errors.New("unexpected dial")
	}, nil)
	assert.Error(t, pub.Publish(context.Background(), "", nil))
}
