package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packtrack/stock-api/internal/config"
	"github.com/packtrack/stock-api/internal/domain"
)

func TestNewMessage(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	msg, err := newMessage(domain.StockEvent{
		Type:          domain.EventSaleCreated,
		ItemID:        7,
		ReferenceID:   31,
		QuantityDelta: -4,
	}, now)
	require.NoError(t, err)

	assert.Equal(t, "7", string(msg.Key))
	assert.Equal(t, now, msg.Time)

	var got message
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, "sale.created", got.Type)
	assert.Equal(t, uint(31), got.ReferenceID)
	assert.Equal(t, -4, got.QuantityDelta)
	assert.True(t, now.Equal(got.OccurredAt))
	_, err = uuid.Parse(got.ID)
	assert.NoError(t, err)
}

func TestNewWriter(t *testing.T) {
	assert.Nil(t, NewWriter(&config.KafkaConfig{}))

	w := NewWriter(&config.KafkaConfig{Brokers: []string{"localhost:9092"}})
	require.NotNil(t, w)
	assert.Equal(t, defaultTopic, w.Topic)
	assert.IsType(t, &kafka.Hash{}, w.Balancer)

	transport, ok := w.Transport.(*kafka.Transport)
	require.True(t, ok)
	assert.Nil(t, transport.SASL)
}

func TestNewWriter_SASL(t *testing.T) {
	w := NewWriter(&config.KafkaConfig{
		Brokers:  []string{"localhost:9092"},
		Topic:    "ledger",
		Username: "user",
		Password: "pass",
	})
	require.NotNil(t, w)

	transport := w.Transport.(*kafka.Transport)
	assert.NotNil(t, transport.SASL)
	assert.NotNil(t, transport.TLS)
	assert.Equal(t, "ledger", w.Topic)
}

func TestNop(t *testing.T) {
	assert.NoError(t, Nop{}.Publish(context.Background(), domain.StockEvent{}))
	assert.NoError(t, Nop{}.Close())
}
