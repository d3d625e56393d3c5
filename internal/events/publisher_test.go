package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lagosride/internal/modules/pricing"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	sent []published
	err  error
}

func (f *fakeChannel) PublishWithDeferredConfirmWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) (*amqp.DeferredConfirmation, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, published{exchange: exchange, key: key, msg: msg})
	return nil, nil
}

func newTestPublisher(ch *fakeChannel) *Publisher {
	p := newPublisher(ch, "lagosride.events", nil)
	p.now = func() time.Time { return time.Date(2025, 5, 20, 8, 0, 0, 0, time.UTC) }
	return p
}

func decode(t *testing.T, msg amqp.Publishing) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(msg.Body, &env))
	return env
}

func TestPublisher_PolicyUpdated(t *testing.T) {
	ch := &fakeChannel{}
	p := newTestPublisher(ch)

	require.NoError(t, p.PolicyUpdated(context.Background(), pricing.Policy{MaxSurgeCap: 3, PeakHourMultiplier: 1.2}))
	require.Len(t, ch.sent, 1)

	got := ch.sent[0]
	assert.Equal(t, "lagosride.events", got.exchange)
	assert.Equal(t, RoutingPolicyUpdated, got.key)
	assert.Equal(t, amqp.Persistent, got.msg.DeliveryMode)
	assert.Equal(t, "application/json", got.msg.ContentType)

	env := decode(t, got.msg)
	assert.Equal(t, RoutingPolicyUpdated, env.Type)
	assert.Equal(t, got.msg.MessageId, string(env.ID))
	assert.JSONEq(t, `{"max_surge_cap":3,"peak_hour_multiplier":1.2}`, string(env.Data))
}

func TestPublisher_ZonesUpdated(t *testing.T) {
	ch := &fakeChannel{}
	p := newTestPublisher(ch)

	zones := []pricing.ZoneSurge{{Name: "Yaba", Demand: 30, Supply: 25, Multiplier: 1}}
	require.NoError(t, p.ZonesUpdated(context.Background(), zones))

	env := decode(t, ch.sent[0].msg)
	assert.Equal(t, RoutingZonesTicked, ch.sent[0].key)
	var payload ZonesTicked
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Equal(t, zones, payload.Zones)
}

func TestPublisher_PropagatesChannelErrors(t *testing.T) {
	p := newTestPublisher(&fakeChannel{err: amqp.ErrClosed})
	err := p.Publish(context.Background(), "ride.requested", map[string]string{"ride_id": "r1"})
	assert.True(t, errors.Is(err, amqp.ErrClosed))
}

func TestPublisher_RejectsUnencodablePayload(t *testing.T) {
	ch := &fakeChannel{}
	err := newTestPublisher(ch).Publish(context.Background(), "x", make(chan int))
	assert.Error(t, err)
	assert.Empty(t, ch.sent)
}
