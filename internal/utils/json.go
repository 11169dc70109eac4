package utils

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

func DeserializeFromJSON(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to deserialize message: %w", err)
	}
	return nil
}

func HandleConsumerError(err error) {
	if err == nil {
		return
	}
	slog.Warn("[Consumer] Error while consuming",
		slog.String("error", err.Error()))
}
