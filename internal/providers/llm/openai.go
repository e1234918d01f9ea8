package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rcsuperstore/partspro/internal/config"
	"github.com/rcsuperstore/partspro/internal/core"
)

// OpenAI is the chat-completions planner provider. Any OpenAI-compatible
// endpoint works via OPENAI_BASE_URL.
type OpenAI struct {
	baseProvider
}

func NewOpenAI(cfg *config.OpenAIConfig) *OpenAI {
	return &OpenAI{
		baseProvider: newBaseProvider(cfg.BaseURL, cfg.APIKey, cfg.Model),
	}
}

func (o *OpenAI) headers() map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + o.apiKey,
		"User-Agent":    core.AppUserAgent,
	}
}

func (o *OpenAI) Chat(ctx context.Context, history []core.Message, tools []core.Tool) (core.Message, error) {
	payload := map[string]any{
		"model":    o.model,
		"messages": history,
	}
	if len(tools) > 0 {
		payload["tools"] = tools
	}

	resp, err := o.doRequest(ctx, http.MethodPost, "/v1/chat/completions", payload, o.headers())
	if err != nil {
		return core.Message{}, err
	}
	defer resp.Body.Close()

	return parseChatResponse(resp)
}

// ChatStream runs a streaming chat completion. Content deltas are forwarded
// to onDelta in arrival order; the assembled message (content plus any tool
// calls) is returned once the stream ends.
func (o *OpenAI) ChatStream(ctx context.Context, history []core.Message, tools []core.Tool, onDelta func(string)) (core.Message, error) {
	payload := map[string]any{
		"model":    o.model,
		"messages": history,
		"stream":   true,
	}
	if len(tools) > 0 {
		payload["tools"] = tools
	}

	resp, err := o.doRequest(ctx, http.MethodPost, "/v1/chat/completions", payload, o.headers())
	if err != nil {
		return core.Message{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return core.Message{}, fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
	}

	return parseChatStream(resp.Body, onDelta)
}

func parseChatResponse(resp *http.Response) (core.Message, error) {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return core.Message{}, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return core.Message{}, fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
	}

	var result struct {
		Choices []struct {
			Message core.Message `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return core.Message{}, fmt.Errorf("decode: %w", err)
	}
	if len(result.Choices) == 0 {
		return core.Message{}, fmt.Errorf("empty choices: %s", string(data))
	}
	return result.Choices[0].Message, nil
}
