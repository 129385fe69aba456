package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"

	"resumematch/internal/domain"
)

// DefaultExchange receives match events when none is configured.
const DefaultExchange = "match_updates"

// AMQPPublisher publishes events to a topic exchange with routing key match.<request id>.
type AMQPPublisher struct {
	conn     *amqp.Connection
	exchange string
}

// NewAMQPPublisher dials url and declares the exchange.
func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("error connecting to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("error opening rabbitmq channel: %w", err)
	}
	defer ch.Close()
	err = ch.ExchangeDeclare(
		exchange, // name
		"topic",  // kind
		true,     // durable
		false,    // auto-delete
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}
	return &AMQPPublisher{conn: conn, exchange: exchange}, nil
}

// Publish sends the result as JSON.
func (p *AMQPPublisher) Publish(ctx context.Context, result *domain.MatchResult) error {
	body, err := json.Marshal(NewEvent(result))
	if err != nil {
		return err
	}
	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	return ch.Publish(
		p.exchange,
		RoutingKey(result.RequestID),
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			MessageId:   result.RequestID,
			Timestamp:   result.CreatedAt,
			Body:        body,
		},
	)
}

// Close closes the broker connection.
func (p *AMQPPublisher) Close() error {
	return p.conn.Close()
}

// RoutingKey returns the routing key used for a request.
func RoutingKey(requestID string) string {
	return fmt.Sprintf("match.%s", requestID)
}
