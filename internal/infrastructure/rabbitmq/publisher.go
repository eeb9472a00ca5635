package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"pizzabot/internal/domain"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const DefaultExchange = "orders_topic"

// KitchenTicket is the message the kitchen receives for a placed order. It
// carries no phone or payment data.
type KitchenTicket struct {
	OrderID        string            `json:"order_id"`
	CustomerName   string            `json:"customer_name"`
	DeliveryMethod string            `json:"delivery_method"`
	Address        *string           `json:"address,omitempty"`
	Pizzas         []domain.Pizza    `json:"pizzas"`
	Beverages      []domain.Beverage `json:"beverages"`
	Extras         []string          `json:"extras"`
	OrderTime      *time.Time        `json:"order_time,omitempty"`
}

func NewKitchenTicket(order domain.Order) KitchenTicket {
	d := order.Details
	return KitchenTicket{
		OrderID:        order.ID,
		CustomerName:   order.CustomerName,
		DeliveryMethod: d.DeliveryMethod,
		Address:        d.Address,
		Pizzas:         d.Pizzas,
		Beverages:      d.Beverages,
		Extras:         d.Extras,
		OrderTime:      d.OrderTime,
	}
}

// RoutingKey is kitchen.<delivery|pickup>.
func RoutingKey(order domain.Order) string {
	method := order.Details.DeliveryMethod
	if method == "" {
		method = "unknown"
	}
	return "kitchen." + method
}

// Publisher sends kitchen tickets to a durable topic exchange and waits for
// the broker's confirm.
type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	acks     <-chan amqp.Confirmation
	exchange string
	logger   *zap.Logger
	mu       sync.Mutex
}

func Dial(url, exchange string, logger *zap.Logger) (*Publisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dialing rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("opening channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declaring exchange %s: %w", exchange, err)
	}

	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("enabling publisher confirms: %w", err)
	}
	acks := ch.NotifyPublish(make(chan amqp.Confirmation, 1))

	return &Publisher{
		conn:     conn,
		ch:       ch,
		acks:     acks,
		exchange: exchange,
		logger:   logger,
	}, nil
}

func (p *Publisher) PublishOrder(ctx context.Context, order domain.Order) error {
	body, err := json.Marshal(NewKitchenTicket(order))
	if err != nil {
		return fmt.Errorf("encoding kitchen ticket: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn.IsClosed() {
		return errors.New("rabbitmq connection is closed")
	}

	key := RoutingKey(order)
	err = p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		MessageId:    order.ID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publishing order %s: %w", order.ID, err)
	}

	select {
	case conf := <-p.acks:
		if !conf.Ack {
			return fmt.Errorf("broker rejected order %s", order.ID)
		}
	case <-ctx.Done():
		return ctx.Err()
	}

	p.logger.Debug("kitchen ticket published", zap.String("orderId", order.ID), zap.String("routingKey", key))
	return nil
}

func (p *Publisher) Close() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
