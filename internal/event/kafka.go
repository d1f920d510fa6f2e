package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/IBM/sarama"
)

// KafkaPublisher forwards changes to a Kafka topic keyed by table, so all
// changes of one table land on the same partition in order.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	// sendTimeout bounds how long Emit waits for the broker ack.
	sendTimeout time.Duration
}

const defaultSendTimeout = 2 * time.Second

func NewKafkaPublisher(producer sarama.SyncProducer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic, sendTimeout: defaultSendTimeout}
}

// DialKafka connects a synchronous producer to the brokers.
func DialKafka(brokers []string, topic string) (*KafkaPublisher, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5
	cfg.Producer.Return.Successes = true
	cfg.Producer.Timeout = defaultSendTimeout

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to start kafka producer: %w", err)
	}
	return NewKafkaPublisher(producer, topic), nil
}

func (p *KafkaPublisher) Emit(ctx context.Context, c Change) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(c.Table),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("op"), Value: []byte(c.Op)},
			{Key: []byte("row_id"), Value: []byte(strconv.FormatUint(uint64(c.RowID), 10))},
		},
	}

	type result struct {
		partition int32
		offset    int64
		err       error
	}
	done := make(chan result, 1)
	go func() {
		partition, offset, err := p.producer.SendMessage(msg)
		done <- result{partition, offset, err}
	}()

	ctx, cancel := context.WithTimeout(ctx, p.sendTimeout)
	defer cancel()
	select {
	case r := <-done:
		if r.err != nil {
			return fmt.Errorf("failed to push change to kafka: %w", r.err)
		}
		log.Printf("kafka: %s %s #%d -> partition %d offset %d", c.Table, c.Op, c.RowID, r.partition, r.offset)
		return nil
	case <-ctx.Done():
		// The send keeps running; only the caller stops waiting.
		return fmt.Errorf("failed to push change to kafka: %w", ctx.Err())
	}
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
