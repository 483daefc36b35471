package env

import (
	"os"
	"strings"
	"tower_backend/internal/config"
)

const (
	kafkaBrokersEnvName = "KAFKA_BROKERS"
	kafkaTopicEnvName   = "KAFKA_TOPIC"

	defaultKafkaTopic = "tower_ledger"
)

type kafkaConfig struct {
	brokers []string
	topic   string
}

// NewKafkaConfig Брокеры через запятую. Пустой список выключает публикацию событий
func NewKafkaConfig() (config.KafkaConfig, error) {
	var brokers []string
	for _, b := range strings.Split(os.Getenv(kafkaBrokersEnvName), ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}

	topic := strings.TrimSpace(os.Getenv(kafkaTopicEnvName))
	if topic == "" {
		topic = defaultKafkaTopic
	}

	return &kafkaConfig{
		brokers: brokers,
		topic:   topic,
	}, nil
}

func (cfg *kafkaConfig) Brokers() []string {
	return cfg.brokers
}

func (cfg *kafkaConfig) Topic() string {
	return cfg.topic
}

func (cfg *kafkaConfig) Enabled() bool {
	return len(cfg.brokers) > 0
}
