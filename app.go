package main

import (
	"ai_content_generator/config"
	"ai_content_generator/generator"
	"ai_content_generator/history"
	"ai_content_generator/logger"
	"ai_content_generator/metrics"
)

// app holds the components shared by the serve and generate commands.
type app struct {
	cfg     *config.Manager
	log     *logger.Logger
	metrics *metrics.Metrics
	store   *history.Store
	agent   *generator.Agent
}

func newApp() (*app, error) {
	cm, err := config.NewManager(cfgFile)
	if err != nil {
		return nil, err
	}
	cfg := cm.Get()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	store := history.NewStore(cfg.HistoryLimit)
	agent, err := generator.NewAgent(cfg.SelectLLM(), generator.Options{
		History: store,
		Metrics: m,
		Logger:  log,
	})
	if err != nil {
		return nil, err
	}

	return &app{cfg: cm, log: log, metrics: m, store: store, agent: agent}, nil
}

// logProvider reports which provider is active, warning when only mock content is available.
func (a *app) logProvider() {
	provider := a.agent.Provider()
	if provider == generator.ProviderMock {
		a.log.Warn("no AI provider key configured, using mock data as fallback",
			"hint", "set GEMINI_API_KEY or OPENAI_API_KEY")
		return
	}
	a.log.Info("AI provider configured", "ai_provider", provider)
}
