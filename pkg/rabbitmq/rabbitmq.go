package rabbitmq

import (
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/streadway/amqp"
)

// InventoryExchange is the topic exchange all inventory events go through.
// Routing keys follow the "<entity>.<verb>" pattern (e.g. "product.created",
// "stock.low"), so consumers can bind with patterns like "product.*" or "#".
const InventoryExchange = "inventory"

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *slog.Logger
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient connects to RabbitMQ, opens a channel and declares the
// inventory topic exchange.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		InventoryExchange, // name
		"topic",           // kind
		true,              // durable
		false,             // auto-delete
		false,             // internal
		false,             // no-wait
		nil,               // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s exchange: %w", InventoryExchange, err)
	}

	logger.Info("RabbitMQ client connected", "exchange", InventoryExchange)

	return &Client{
		conn:    conn,
		channel: ch,
		logger:  logger,
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

// Publish sends a JSON-encoded event body to the given exchange with the
// given routing key. Messages are persistent.
func (c *Client) Publish(exchange, routingKey string, body []byte) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	err := c.channel.Publish(
		exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.logger.Debug("published event", "exchange", exchange, "routingKey", routingKey)
	return nil
}

// ConsumeInventoryEvents binds a fresh queue to the inventory exchange with
// the given binding pattern and feeds deliveries to the handler in a
// background goroutine. Messages are acked on success and nacked with
// requeue on handler error.
func (c *Client) ConsumeInventoryEvents(pattern string, handler func(msg amqp.Delivery) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	queue, err := c.channel.QueueDeclare(
		"",    // name: let the broker generate one
		true,  // durable
		false, // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue for consuming: %w", err)
	}

	if err := c.channel.QueueBind(queue.Name, pattern, InventoryExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue to %s: %w", InventoryExchange, err)
	}

	msgs, err := c.channel.Consume(
		queue.Name,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("consuming inventory events", "pattern", pattern, "queue", queue.Name)

	go func() {
		for msg := range msgs {
			if err := handler(msg); err != nil {
				c.logger.Error("error processing message", "deliveryTag", msg.DeliveryTag, "error", err)
				if nackErr := msg.Nack(false, true); nackErr != nil {
					c.logger.Error("error nacking message", "deliveryTag", msg.DeliveryTag, "error", nackErr)
				}
				continue
			}
			if ackErr := msg.Ack(false); ackErr != nil {
				c.logger.Error("error acking message", "deliveryTag", msg.DeliveryTag, "error", ackErr)
			}
		}
	}()

	return nil
}
