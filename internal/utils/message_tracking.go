package utils

import (
	"sync"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

var messageMap sync.Map

// TrackMessage remembers the Kafka message a feedback item arrived on so its
// offset can be committed after the batch it joined is flushed.
func TrackMessage(feedbackID string, msg *kafka.Message) {
	messageMap.Store(feedbackID, msg)
}

func GetMessageForFeedback(feedbackID string) (*kafka.Message, bool) {
	msg, ok := messageMap.Load(feedbackID)
	if !ok {
		return nil, false
	}
	messageMap.Delete(feedbackID)
	return msg.(*kafka.Message), true
}
