package generator

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strconv"
	"sync"
	"time"

	"ai_content_generator/logger"
	"ai_content_generator/metrics"
	"ai_content_generator/render"
)

// Recorder 保存生成结果（历史记录）。
type Recorder interface {
	Add(Result)
}

// Options wires the Agent's collaborators.
type Options struct {
	History Recorder
	Metrics *metrics.Metrics
	Logger  *logger.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Agent 负责一次生成的完整流程：提示词 → 模型 → 失败回退模板 → 记录历史。
type Agent struct {
	mu  sync.RWMutex
	llm LLMClient

	history Recorder
	metrics *metrics.Metrics
	log     *logger.Logger
	now     func() time.Time
}

// NewAgent builds an Agent. llm may be nil, in which case every request uses mock content.
func NewAgent(llm LLMClient, opts Options) (*Agent, error) {
	if opts.History == nil {
		return nil, errors.New("history recorder is required")
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Agent{
		llm:     llm,
		history: opts.History,
		metrics: opts.Metrics,
		log:     opts.Logger,
		now:     opts.Now,
	}, nil
}

// SetLLM swaps the provider, e.g. after a config reload. nil switches to mock content.
func (a *Agent) SetLLM(llm LLMClient) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.llm = llm
}

// Provider returns the name of the configured provider, or ProviderMock when none is configured.
func (a *Agent) Provider() string {
	if llm := a.currentLLM(); llm != nil {
		return llm.Name()
	}
	return ProviderMock
}

func (a *Agent) currentLLM() LLMClient {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.llm
}

// Generate 校验请求并生成内容。模型错误不会返回给调用方，而是回退到模板内容；只有校验失败或内部错误会返回 error。
func (a *Agent) Generate(ctx context.Context, req Request) (Result, error) {
	if err := Validate(req); err != nil {
		return Result{}, err
	}
	start := a.now()

	content, provider := a.complete(ctx, req)

	html, err := render.ToHTML(content)
	if err != nil {
		return Result{}, fmt.Errorf("render content: %w", err)
	}

	created := a.now()
	res := Result{
		ID:        strconv.FormatInt(created.UnixMilli(), 10),
		Type:      req.Type,
		Data:      maps.Clone(req.Data),
		Content:   content,
		HTML:      html,
		Digest:    render.Digest(content, 120),
		CreatedAt: created,
		Provider:  provider,
	}
	a.history.Add(res)
	a.metrics.ObserveGeneration(string(res.Type), res.Provider)

	a.log.Info("content generated",
		"id", res.ID,
		"type", res.Type,
		"ai_provider", res.Provider,
		"duration_ms", created.Sub(start).Milliseconds(),
	)
	return res, nil
}

// complete tries the configured provider once and falls back to mock content.
func (a *Agent) complete(ctx context.Context, req Request) (string, string) {
	llm := a.currentLLM()
	if llm == nil {
		return MockContent(req.Type, req.Data, a.now()), ProviderMock
	}

	start := time.Now()
	raw, err := llm.Complete(ctx, BuildPrompt(req.Type, req.Data))
	var content string
	if err == nil {
		content, err = PostProcess(raw)
		if err != nil {
			err = &ProviderError{Provider: llm.Name(), Err: err}
		}
	}
	a.metrics.ObserveProviderCall(llm.Name(), err == nil, time.Since(start))

	if err != nil {
		a.log.Warn("provider failed, using mock content", "ai_provider", llm.Name(), "error", err)
		return MockContent(req.Type, req.Data, a.now()), FallbackProvider(llm.Name())
	}
	return content, llm.Name()
}
