package events

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
	"go.uber.org/zap"

	"github.com/packtrack/stock-api/internal/config"
	"github.com/packtrack/stock-api/internal/domain"
)

const defaultTopic = "stock-events"

type message struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	ItemID        uint      `json:"item_id"`
	ReferenceID   uint      `json:"reference_id"`
	QuantityDelta int       `json:"quantity_delta"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Publisher writes stock events to Kafka keyed by item id, so events of one
// item stay ordered within a partition.
type Publisher struct {
	writer *kafka.Writer
}

// NewWriter returns nil when no broker is configured.
func NewWriter(conf *config.KafkaConfig) *kafka.Writer {
	if conf == nil || len(conf.Brokers) == 0 {
		return nil
	}

	topic := conf.Topic
	if topic == "" {
		topic = defaultTopic
	}

	return &kafka.Writer{
		Addr:         kafka.TCP(conf.Brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		Async:        true,
		RequiredAcks: kafka.RequireOne,
		Transport:    newTransport(conf),
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				zap.L().Error("failed to publish stock events", zap.Int("count", len(messages)), zap.Error(err))
			}
		},
	}
}

func newTransport(conf *config.KafkaConfig) *kafka.Transport {
	transport := &kafka.Transport{DialTimeout: 10 * time.Second}
	if conf.Username == "" || conf.Password == "" {
		return transport
	}

	transport.SASL = plain.Mechanism{
		Username: conf.Username,
		Password: conf.Password,
	}

	tlsConfig := &tls.Config{MinVersion: tls.VersionTLS12}
	if conf.CACert != "" {
		pool := x509.NewCertPool()
		if pool.AppendCertsFromPEM([]byte(conf.CACert)) {
			tlsConfig.RootCAs = pool
		} else {
			zap.L().Warn("could not parse kafka CA certificate, using system roots")
		}
	}
	transport.TLS = tlsConfig

	return transport
}

func NewPublisher(writer *kafka.Writer) *Publisher {
	return &Publisher{
		writer: writer,
	}
}

func (p *Publisher) Publish(ctx context.Context, event domain.StockEvent) error {
	msg, err := newMessage(event, time.Now())
	if err != nil {
		return err
	}

	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("p.writer.WriteMessages -> %w", err)
	}

	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func newMessage(event domain.StockEvent, now time.Time) (kafka.Message, error) {
	value, err := json.Marshal(message{
		ID:            uuid.NewString(),
		Type:          string(event.Type),
		ItemID:        event.ItemID,
		ReferenceID:   event.ReferenceID,
		QuantityDelta: event.QuantityDelta,
		OccurredAt:    now.UTC(),
	})
	if err != nil {
		return kafka.Message{}, fmt.Errorf("json.Marshal -> %w", err)
	}

	return kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(event.ItemID), 10)),
		Value: value,
		Time:  now,
	}, nil
}

// Nop drops events. Used when Kafka is not configured.
type Nop struct{}

func (Nop) Publish(context.Context, domain.StockEvent) error { return nil }

func (Nop) Close() error { return nil }
