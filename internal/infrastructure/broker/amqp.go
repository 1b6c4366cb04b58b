package broker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"career-portal/internal/domain/activity"
	"career-portal/internal/pkg/logger"

	"github.com/streadway/amqp"
)

// ActivityEvent is the message body published for every recorded activity.
type ActivityEvent struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id"`
	Action      string         `json:"action"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	Timestamp   time.Time      `json:"timestamp"`
}

// AMQP publishes activity events to a durable topic exchange with routing key
// "activity.<action>".
type AMQP struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	logger   *logger.Logger
}

func DialAMQP(url, exchange string, log *logger.Logger) (*AMQP, error) {
	if url == "" {
		return nil, errors.New("empty amqp url")
	}
	if log == nil {
		log = logger.Nop()
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return &AMQP{conn: conn, ch: ch, exchange: exchange, logger: log}, nil
}

func (p *AMQP) NotifyActivity(_ context.Context, a activity.Activity) {
	if p == nil {
		return
	}
	key, msg, err := activityMessage(a)
	if err != nil {
		p.logger.Warn("[Broker] encode activity failed", "action", a.Action, "error", err)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ch.Publish(p.exchange, key, false, false, msg); err != nil {
		p.logger.Warn("[Broker] publish activity failed", "action", a.Action, "error", err)
	}
}

func activityRoutingKey(action string) string {
	return "activity." + action
}

// activityMessage builds the routing key and persistent JSON publishing for a.
func activityMessage(a activity.Activity) (string, amqp.Publishing, error) {
	ts := a.Timestamp.UTC()
	body, err := json.Marshal(ActivityEvent{
		ID:          a.ID.String(),
		UserID:      a.UserID.String(),
		Action:      a.Action,
		Description: a.Description,
		Metadata:    a.Metadata,
		Timestamp:   ts,
	})
	if err != nil {
		return "", amqp.Publishing{}, err
	}
	return activityRoutingKey(a.Action), amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    ts,
		Body:         body,
	}, nil
}

func (p *AMQP) Close() error {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	var firstErr error
	if p.ch != nil {
		if err := p.ch.Close(); err != nil {
			firstErr = err
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
