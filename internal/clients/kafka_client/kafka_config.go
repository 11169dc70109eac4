package kafka_client

import "github.com/feedsight/feedsight/config"

type KafkaConfig struct {
	Broker  string
	GroupID string
	Topic   string
}

// GetKafkaConfig reads broker settings from the environment with local-dev
// defaults. Each binary overrides Topic with the topic it consumes.
func GetKafkaConfig() KafkaConfig {
	return KafkaConfig{
		Broker:  config.EnvOr("KAFKA_BROKER", "localhost:29092"),
		GroupID: config.EnvOr("KAFKA_CONSUMER_GROUP_ID", "feedsight-consumer-group"),
		Topic:   config.EnvOr("KAFKA_CONSUMER_TOPIC", KAFKA_TOPIC_FEEDBACK_INTAKE),
	}
}
