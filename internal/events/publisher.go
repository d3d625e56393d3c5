// README: Domain event publisher on the RabbitMQ topic exchange.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"lagosride/internal/infra"
	"lagosride/internal/modules/pricing"
	"lagosride/internal/types"
)

const (
	RoutingZonesTicked   = "pricing.zones.ticked"
	RoutingPolicyUpdated = "pricing.policy.updated"
)

const defaultPublishTimeout = 5 * time.Second

var ErrNotAcknowledged = errors.New("event publish not acknowledged")

// Envelope wraps every payload on the wire.
type Envelope struct {
	ID         types.ID        `json:"id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Data       json.RawMessage `json:"data"`
}

type ZonesTicked struct {
	Zones []pricing.ZoneSurge `json:"zones"`
}

type channel interface {
	PublishWithDeferredConfirmWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) (*amqp.DeferredConfirmation, error)
}

type Publisher struct {
	mu       sync.Mutex
	ch       channel
	exchange string
	timeout  time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

func NewPublisher(conn *infra.AMQP, logger *zap.Logger) *Publisher {
	return newPublisher(conn.Channel, conn.Exchange, logger)
}

func newPublisher(ch channel, exchange string, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{
		ch:       ch,
		exchange: exchange,
		timeout:  defaultPublishTimeout,
		now:      time.Now,
		logger:   logger.Named("events"),
	}
}

// Publish sends payload as a persistent JSON message and waits for the broker confirm.
func (p *Publisher) Publish(ctx context.Context, routingKey string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", routingKey, err)
	}
	env := Envelope{
		ID:         types.NewID("evt"),
		Type:       routingKey,
		OccurredAt: p.now().UTC(),
		Data:       data,
	}
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()
	confirm, err := p.ch.PublishWithDeferredConfirmWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		MessageId:    string(env.ID),
		Timestamp:    env.OccurredAt,
		Type:         routingKey,
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}
	// nil when the channel is not in confirm mode
	if confirm != nil {
		acked, err := confirm.WaitContext(ctx)
		if err != nil {
			return fmt.Errorf("confirm %s: %w", routingKey, err)
		}
		if !acked {
			return fmt.Errorf("%w: %s", ErrNotAcknowledged, routingKey)
		}
	}

	p.logger.Debug("event published",
		zap.String("routing_key", routingKey),
		zap.String("event_id", string(env.ID)),
	)
	return nil
}

func (p *Publisher) ZonesUpdated(ctx context.Context, zones []pricing.ZoneSurge) error {
	return p.Publish(ctx, RoutingZonesTicked, ZonesTicked{Zones: zones})
}

func (p *Publisher) PolicyUpdated(ctx context.Context, policy pricing.Policy) error {
	return p.Publish(ctx, RoutingPolicyUpdated, policy)
}

// Discard drops every event. Used when no broker is configured.
type Discard struct{}

func (Discard) Publish(context.Context, string, any) error { return nil }
