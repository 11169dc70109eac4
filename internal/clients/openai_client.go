package clients

import (
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const openAIRequestTimeout = 60 * time.Second

var (
	openAIClientInstance *openai.Client
	openAIOnce           sync.Once
)

// GetOpenAIClient returns the process-wide OpenAI client. Callers should
// still take it as an explicit dependency so tests can substitute a fake at
// the invoker boundary.
func GetOpenAIClient() *openai.Client {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		slog.Error("[OpenAIClient] Missing OPENAI_API_KEY in environment variables")
		panic("[OpenAIClient] Missing OPENAI_API_KEY in environment variables")
	}
	openAIOnce.Do(func() {
		client := openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithRequestTimeout(openAIRequestTimeout),
		)
		openAIClientInstance = &client
		slog.Info("[OpenAIClient] OpenAI client initialized with custom HTTP timeout",
			slog.Duration("timeout", openAIRequestTimeout))
	})
	return openAIClientInstance
}
