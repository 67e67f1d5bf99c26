package generator

import (
	"context"
	"errors"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAILLM implements LLMClient using the official openai-go SDK (chat completions).
type OpenAILLM struct {
	Model   string
	client  openai.Client
	decoder ResponseDecoder
}

func NewOpenAILLM(cfg LLMSettings) *OpenAILLM {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultOpenAIModel
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(cfg.httpClient()),
		// 单次调用，失败直接回退到模板内容。
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAILLM{
		Model:   model,
		client:  openai.NewClient(opts...),
		decoder: OpenAIDecoder,
	}
}

func (o *OpenAILLM) Name() string { return ProviderOpenAI }

func (o *OpenAILLM) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(o.Model),
		Messages:    []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt)},
		Temperature: openai.Float(0.2),
		MaxTokens:   openai.Int(512),
	})
	if err != nil {
		perr := &ProviderError{Provider: o.Name(), Err: err}
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			perr.Status = apiErr.StatusCode
		}
		return "", perr
	}
	text, err := o.decoder.Decode([]byte(resp.RawJSON()))
	if err != nil {
		return "", &ProviderError{Provider: o.Name(), Err: err}
	}
	return text, nil
}
