package notify

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// AMQPNotifier publishes checkout events as JSON to a durable fanout
// exchange so downstream consumers (mailers, dashboards) can react.
type AMQPNotifier struct {
	ch       *amqp.Channel
	exchange string
	logger   *zap.Logger
}

func NewAMQPNotifier(conn *amqp.Connection, exchange string, logger *zap.Logger) (*AMQPNotifier, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "fanout", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	return &AMQPNotifier{ch: ch, exchange: exchange, logger: logger}, nil
}

func (n *AMQPNotifier) Notify(ctx context.Context, event Event) {
	body, err := json.Marshal(event)
	if err != nil {
		n.logger.Error("marshal checkout event", zap.Error(err))
		return
	}

	err = n.ch.PublishWithContext(ctx, n.exchange, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		n.logger.Error("publish checkout event",
			zap.String("exchange", n.exchange), zap.Error(err))
	}
}

func (n *AMQPNotifier) Close() error {
	return n.ch.Close()
}
