// Package rabbitmq wraps the AMQP connection used for outbound notification
// events. The API only persists the triggering record (contact message,
// password reset request) and publishes an event; the actual mail delivery is
// a downstream consumer's job.
package rabbitmq

import (
	"fmt"
	"time"

	amqp "github.com/streadway/amqp"

	"phonetech/pkg/logx"
)

// NotificationQueue is the durable queue notification events land on.
const NotificationQueue = "notification_queue"

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient connects to RabbitMQ, opens a channel, and declares the
// notification queue.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		NotificationQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s: %w", NotificationQueue, err)
	}

	logx.Info().Str("queue", NotificationQueue).Msg("RabbitMQ client connected")

	return &Client{
		conn:    conn,
		channel: ch,
	}, nil
}

// Close closes the RabbitMQ channel and connection.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors during RabbitMQ client close: %v", errs)
	}
	return nil
}

// Publish sends a persistent JSON message to the notification queue. The
// routing key names the event type (e.g. "contact.received").
func (c *Client) Publish(routingKey string, body []byte) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	err := c.channel.Publish(
		"",                // default exchange
		NotificationQueue, // routing key: the queue name
		false,             // mandatory
		false,             // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         routingKey,
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	logx.Debug().Str("event", routingKey).Msg("published notification event")
	return nil
}

// ConsumeNotificationEvents registers a consumer on the notification queue
// and dispatches each delivery to handler in a background goroutine.
// Deliveries are acked on success and nacked (requeued) on handler error.
func (c *Client) ConsumeNotificationEvents(handler func(msg amqp.Delivery) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		NotificationQueue,
		"",    // consumer tag
		false, // auto-ack off; ack manually below
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for msg := range msgs {
			if err := handler(msg); err != nil {
				logx.Error().Err(err).Uint64("tag", msg.DeliveryTag).Msg("notification handler failed")
				if requeueErr := msg.Nack(false, true); requeueErr != nil {
					logx.Error().Err(requeueErr).Uint64("tag", msg.DeliveryTag).Msg("nack failed")
				}
				continue
			}
			if ackErr := msg.Ack(false); ackErr != nil {
				logx.Error().Err(ackErr).Uint64("tag", msg.DeliveryTag).Msg("ack failed")
			}
		}
	}()

	return nil
}
