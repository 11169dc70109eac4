package classify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/responses"
)

// Invoker issues one structured-output model call. The pipeline depends on
// this interface so tests can swap in a fake.
type Invoker interface {
	Invoke(ctx context.Context, req InvokeRequest) (string, error)
}

// InvokeRequest carries everything one structured call needs.
type InvokeRequest struct {
	Instructions string
	Input        string
	SchemaName   string
	Schema       map[string]interface{}
	MaxTokens    int64
}

// OpenAIInvoker calls the Responses API with strict JSON-schema output and
// tiered retries.
type OpenAIInvoker struct {
	client *openai.Client
	model  string
}

func NewOpenAIInvoker(client *openai.Client, model string) *OpenAIInvoker {
	return &OpenAIInvoker{client: client, model: model}
}

func (o *OpenAIInvoker) Invoke(ctx context.Context, req InvokeRequest) (string, error) {
	if o.client == nil {
		return "", fmt.Errorf("OpenAIInvoker: client is nil")
	}
	if o.model == "" {
		return "", fmt.Errorf("OpenAIInvoker: model is empty")
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 2500
	}

	params := responses.ResponseNewParams{
		Model:           o.model,
		MaxOutputTokens: openai.Int(maxTokens),
		Instructions:    openai.String(req.Instructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(req.Input, responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Name:   req.SchemaName,
					Schema: req.Schema,
					Strict: openai.Bool(true),
					Type:   "json_schema",
				},
			},
		},
	}

	resp, err := callWithRetry(ctx, o.client, params)
	if err != nil {
		return "", err
	}
	return resp.OutputText(), nil
}

func callWithRetry(ctx context.Context, client *openai.Client, params responses.ResponseNewParams) (*responses.Response, error) {
	const maxRetries = 3
	rateLimitWaitTimes := []time.Duration{65 * time.Second, 100 * time.Second, 135 * time.Second}
	serverErrorWaitTimes := []time.Duration{5 * time.Second, 30 * time.Second, 60 * time.Second}

	for attempt := 0; attempt < maxRetries; attempt++ {
		resp, err := client.Responses.New(ctx, params)
		if err != nil {
			if isRateLimitError(err) {
				if attempt < maxRetries-1 {
					time.Sleep(rateLimitWaitTimes[attempt])
					continue
				}
			} else if isServerError(err) {
				if attempt < maxRetries-1 {
					time.Sleep(serverErrorWaitTimes[attempt])
					continue
				}
			}
			return nil, err
		}
		return resp, nil
	}
	return nil, fmt.Errorf("failed after %d attempts due to model API issues", maxRetries)
}

func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests")
}

func isServerError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "500") ||
		strings.Contains(errStr, "internal server error") ||
		strings.Contains(errStr, "server_error")
}
