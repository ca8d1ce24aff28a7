package bus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

// Kafka is a Bus over Kafka topics, one topic per channel. Each subscription
// joins its own consumer group and starts at the end of the topic, so it sees
// messages published after it joined, like a pub/sub subscriber.
type Kafka struct {
	brokers  []string
	group    string
	producer *kgo.Client
	logger   *slog.Logger
}

type KafkaOption func(*Kafka)

func WithKafkaLogger(logger *slog.Logger) KafkaOption {
	return func(k *Kafka) {
		k.logger = logger
	}
}

// NewKafka connects a producer to brokers. group prefixes the consumer group
// of every subscription.
func NewKafka(brokers []string, group string, opts ...KafkaOption) (*Kafka, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers are required")
	}
	if group == "" {
		return nil, errors.New("kafka consumer group is required")
	}
	producer, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.AllowAutoTopicCreation(),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	k := &Kafka{brokers: brokers, group: group, producer: producer, logger: slog.Default()}
	for _, opt := range opts {
		opt(k)
	}
	return k, nil
}

// EnsureTopics creates the topics backing channels. Topics that already exist
// are left alone.
func (k *Kafka) EnsureTopics(ctx context.Context, channels ...string) error {
	adm := kadm.NewClient(k.producer)
	resp, err := adm.CreateTopics(ctx, 1, 1, nil, channels...)
	if err != nil {
		return fmt.Errorf("create kafka topics: %w", err)
	}
	for _, r := range resp.Sorted() {
		if r.Err != nil && !errors.Is(r.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create kafka topic %s: %w", r.Topic, r.Err)
		}
	}
	return nil
}

func (k *Kafka) Publish(ctx context.Context, channel, text string) error {
	record := &kgo.Record{Topic: channel, Value: []byte(text)}
	if err := k.producer.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("kafka produce to %s: %w", channel, err)
	}
	return nil
}

func (k *Kafka) Subscribe(ctx context.Context, channel string, handler Handler) error {
	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(k.brokers...),
		kgo.ConsumerGroup(k.group+"."+channel),
		kgo.ConsumeTopics(channel),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtEnd()),
	)
	if err != nil {
		return fmt.Errorf("create kafka consumer for %s: %w", channel, err)
	}
	defer consumer.Close()

	for {
		fetches := consumer.PollFetches(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if fetches.IsClientClosed() {
			return ErrClosed
		}
		fetches.EachError(func(topic string, partition int32, err error) {
			k.logger.Warn("kafka fetch error",
				"topic", topic,
				"partition", partition,
				"error", err,
			)
		})
		fetches.EachRecord(func(r *kgo.Record) {
			handler(ctx, string(r.Value))
		})
	}
}

func (k *Kafka) Close() error {
	k.producer.Close()
	return nil
}
