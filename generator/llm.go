package generator

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// LLMClient 抽象大模型客户端，便于替换/Mock。
type LLMClient interface {
	// Name is the provider name reported as aiProvider.
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

// LLMSettings 提供给具体实现的基础配置。
type LLMSettings struct {
	APIKey  string
	Model   string
	BaseURL string
	// Timeout 为 0 时使用 http.Client 默认行为。
	Timeout time.Duration
}

// Configured reports whether a usable credential is present.
func (s LLMSettings) Configured() bool {
	key := strings.TrimSpace(s.APIKey)
	return key != "" && !strings.HasPrefix(key, "your_")
}

func (s LLMSettings) httpClient() *http.Client {
	return &http.Client{Timeout: s.Timeout}
}

// SelectLLM 按凭据优先级选择模型：先 Gemini，再 OpenAI；都没有时返回 nil，调用方直接使用模板内容。
func SelectLLM(gemini, openai LLMSettings) LLMClient {
	switch {
	case gemini.Configured():
		return NewGeminiLLM(gemini)
	case openai.Configured():
		return NewOpenAILLM(openai)
	default:
		return nil
	}
}
