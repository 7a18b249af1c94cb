package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"sitterhub/config"
	"sitterhub/infras/otel"
	"sitterhub/shared/constant"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const (
	otelAttrTopic = "topic"
	otelAttrCount = "count"

	writeTimeout = 10 * time.Second
)

type Message struct {
	Key   string
	Value any
}

func (m Message) encode() (kafkaGo.Message, error) {
	value, err := json.Marshal(m.Value)
	if err != nil {
		return kafkaGo.Message{}, fmt.Errorf("failed to marshal message value: %w", err)
	}

	return kafkaGo.Message{
		Key:   []byte(m.Key),
		Value: value,
		Time:  time.Now(),
	}, nil
}

// Publisher writes JSON encoded messages. Messages that share a key land on the same partition.
// Close waits for every PublishAsync that started before it.
type Publisher interface {
	Publish(ctx context.Context, topic string, messages ...Message) (err error)
	PublishAsync(ctx context.Context, topic string, messages ...Message)
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkaGo.Message) error
	Close() error
}

type publisherImpl struct {
	writer messageWriter
	otel   otel.Otel

	mu       sync.Mutex
	closed   bool
	inFlight sync.WaitGroup
}

func New(cfg *config.Config, otel otel.Otel) Publisher {
	transport := &kafkaGo.Transport{}
	if cfg.Kafka.SASL.Username != "" {
		transport.SASL = plain.Mechanism{
			Username: cfg.Kafka.SASL.Username,
			Password: cfg.Kafka.SASL.Password,
		}
	}

	writer := &kafkaGo.Writer{
		Addr:                   kafkaGo.TCP(cfg.Kafka.Brokers...),
		Balancer:               &kafkaGo.Hash{},
		Transport:              transport,
		RequiredAcks:           kafkaGo.RequireOne,
		AllowAutoTopicCreation: true,
		WriteTimeout:           writeTimeout,
	}

	log.Info().Strs("brokers", cfg.Kafka.Brokers).Msg("Kafka publisher initialized")

	return &publisherImpl{
		writer: writer,
		otel:   otel,
	}
}

func (p *publisherImpl) Publish(ctx context.Context, topic string, messages ...Message) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelKafkaScopeName, constant.OtelKafkaScopeName+".Publish")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{
		otelAttrTopic: topic,
		otelAttrCount: len(messages),
	})

	if len(messages) == 0 {
		return nil
	}

	msgs := make([]kafkaGo.Message, 0, len(messages))

	for _, message := range messages {
		msg, encodeErr := message.encode()
		if encodeErr != nil {
			err = encodeErr
			log.Error().Err(err).Str("topic", topic).Str("key", message.Key).Msg("Failed to encode Kafka message")

			return err
		}

		msg.Topic = topic
		msgs = append(msgs, msg)
	}

	err = p.writer.WriteMessages(ctx, msgs...)
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Failed to publish Kafka messages")

		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}

	log.Debug().Str("topic", topic).Int("count", len(msgs)).Msg("Published Kafka messages")

	return nil
}

// PublishAsync publishes in the background and only logs failures. Messages offered after Close are dropped.
func (p *publisherImpl) PublishAsync(ctx context.Context, topic string, messages ...Message) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		log.Warn().Str("topic", topic).Int("count", len(messages)).Msg("Kafka publisher closed, dropping messages")

		return
	}

	p.inFlight.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.inFlight.Done()

		if err := p.Publish(context.WithoutCancel(ctx), topic, messages...); err != nil {
			log.Error().Err(err).Str("topic", topic).Int("count", len(messages)).Msg("Failed to publish Kafka messages in background")
		}
	}()
}

func (p *publisherImpl) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	p.inFlight.Wait()

	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka writer: %w", err)
	}

	return nil
}
