package kafka

import (
	"context"
	"encoding/json"
	"github.com/segmentio/kafka-go"
	"strconv"
	"time"
	"tower_backend/internal/events"
)

// batchTimeout - сколько writer копит пачку перед отправкой
const batchTimeout = 10 * time.Millisecond

type Publisher struct {
	writer *kafka.Writer
}

var _ events.Publisher = (*Publisher)(nil)

func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: batchTimeout,
		},
	}
}

// Publish - события одного пользователя попадают в одну партицию
func (p *Publisher) Publish(ctx context.Context, event events.Event) error {
	msg, err := message(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func message(event events.Event) (kafka.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, err
	}

	return kafka.Message{
		Key:   []byte(strconv.Itoa(event.UserID)),
		Value: data,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	}, nil
}
