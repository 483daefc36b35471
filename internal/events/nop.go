package events

import "context"

// Nop - публикатор для запуска без Kafka
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

func (Nop) Close() error { return nil }
