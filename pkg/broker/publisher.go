package broker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Channel is the subset of an AMQP channel used for publishing.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// DialFunc opens a channel and returns the connection that owns it.
type DialFunc func(url string) (Channel, io.Closer, error)

// Publisher sends persistent JSON messages to durable queues over a lazily opened,
// shared connection. A failed publish drops the connection so the next call redials.
type Publisher struct {
	url    string
	dial   DialFunc
	logger *zap.Logger

	mu       sync.Mutex
	conn     io.Closer
	ch       Channel
	declared map[string]struct{}
}

// NewPublisher builds a publisher for the given broker URL.
func NewPublisher(url string, logger *zap.Logger) *Publisher {
	return NewPublisherWithDialer(url, DialAMQP, logger)
}

// NewPublisherWithDialer allows replacing the transport, mainly for tests.
func NewPublisherWithDialer(url string, dial DialFunc, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{url: url, dial: dial, logger: logger, declared: make(map[string]struct{})}
}

// DialAMQP connects to RabbitMQ and opens one channel.
func DialAMQP(url string) (Channel, io.Closer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("dial broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("open channel: %w", err)
	}
	return ch, conn, nil
}

// Publish declares the queue once per connection and publishes body to it through
// the default exchange.
func (p *Publisher) Publish(ctx context.Context, queue string, body []byte) error {
	if queue == "" {
		return errors.New("queue name is required")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ensureChannel(); err != nil {
		return err
	}
	if _, ok := p.declared[queue]; !ok {
		if _, err := p.ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			p.reset()
			return fmt.Errorf("declare queue %s: %w", queue, err)
		}
		p.declared[queue] = struct{}{}
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := p.ch.PublishWithContext(ctx, "", queue, false, false, msg); err != nil {
		p.reset()
		return fmt.Errorf("publish to %s: %w", queue, err)
	}
	return nil
}

// Close releases the broker connection.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
	return nil
}

func (p *Publisher) ensureChannel() error {
	if p.ch != nil {
		return nil
	}
	ch, conn, err := p.dial(p.url)
	if err != nil {
		p.logger.Warn("broker unavailable", zap.Error(err))
		return err
	}
	p.ch = ch
	p.conn = conn
	p.declared = make(map[string]struct{})
	return nil
}

func (p *Publisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.ch = nil
	p.conn = nil
}
