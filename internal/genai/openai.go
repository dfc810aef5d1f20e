package genai

// #region imports
import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// #endregion

// #region client
// OpenAIClient adapts the OpenAI chat completions API to ChatCompleter.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient builds a client for the given API key and model.
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	cli := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIClient{client: &cli, model: model}
}

// #endregion client

// #region complete
// Complete sends one chat completion request, retrying briefly on rate
// limits and server errors. The caller's context deadline bounds the whole
// attempt sequence.
func (c *OpenAIClient) Complete(ctx context.Context, messages []Message, maxTokens int, temperature float32) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    toParams(messages),
		MaxTokens:   openai.Int(int64(maxTokens)),
		Temperature: openai.Float(float64(temperature)),
	}

	const maxAttempts = 3
	waits := []time.Duration{2 * time.Second, 5 * time.Second}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		resp, err := c.client.Chat.Completions.New(ctx, params)
		if err == nil {
			if len(resp.Choices) == 0 {
				return "", fmt.Errorf("completion returned no choices")
			}
			return resp.Choices[0].Message.Content, nil
		}
		lastErr = err
		if !isRetryable(err) || attempt == maxAttempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(waits[attempt]):
		}
	}
	return "", fmt.Errorf("chat completion: %w", lastErr)
}

func toParams(messages []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case "system":
			out = append(out, openai.SystemMessage(m.Content))
		case "assistant":
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}

// isRetryable matches rate-limit and server-side failures by error text.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "too many requests") ||
		strings.Contains(msg, "500") ||
		strings.Contains(msg, "502") ||
		strings.Contains(msg, "503") ||
		strings.Contains(msg, "server_error") ||
		strings.Contains(msg, "internal server error")
}

// #endregion complete
