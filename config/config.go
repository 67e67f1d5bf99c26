package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"ai_content_generator/generator"
	"ai_content_generator/history"
)

// Config is the runtime configuration. Every key can come from the config file or the
// environment variable listed in envBindings.
type Config struct {
	Host            string         `mapstructure:"host"`
	Port            string         `mapstructure:"port"`
	Gemini          ProviderConfig `mapstructure:"gemini"`
	OpenAI          ProviderConfig `mapstructure:"openai"`
	HistoryLimit    int            `mapstructure:"history_limit"`
	ProviderTimeout time.Duration  `mapstructure:"provider_timeout"`
	LogMode         string         `mapstructure:"log_mode"`
	// CORSOrigins is a comma separated list; "*" allows any origin.
	CORSOrigins string `mapstructure:"cors_origins"`
}

// ProviderConfig holds one external provider's credential and overrides.
type ProviderConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

var envBindings = map[string][]string{
	"host":             {"HOST"},
	"port":             {"PORT"},
	"gemini.api_key":   {"GEMINI_API_KEY", "GEMINI_KEY"},
	"gemini.model":     {"GEMINI_MODEL"},
	"gemini.base_url":  {"GEMINI_BASE_URL"},
	"openai.api_key":   {"OPENAI_API_KEY"},
	"openai.model":     {"OPENAI_MODEL"},
	"openai.base_url":  {"OPENAI_BASE_URL"},
	"history_limit":    {"HISTORY_LIMIT"},
	"provider_timeout": {"PROVIDER_TIMEOUT"},
	"log_mode":         {"LOG_MODE"},
	"cors_origins":     {"CORS_ORIGINS"},
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Host:         "0.0.0.0",
		Port:         "3000",
		HistoryLimit: history.DefaultLimit,
		LogMode:      "dev",
		CORSOrigins:  "*",
	}
}

// Manager handles loading and hot-reloading configuration.
type Manager struct {
	v         *viper.Viper
	mu        sync.RWMutex
	config    *Config
	callbacks []func(*Config)
}

// NewManager creates a config manager and loads the initial config. cfgFile may be empty, in
// which case ./config.yaml and $HOME/.ai-content-generator/config.yaml are tried.
func NewManager(cfgFile string) (*Manager, error) {
	cm := &Manager{v: viper.New()}
	if err := cm.initViper(cfgFile); err != nil {
		return nil, err
	}
	cfg, err := cm.load()
	if err != nil {
		return nil, err
	}
	cm.config = cfg
	return cm, nil
}

func (cm *Manager) initViper(cfgFile string) error {
	v := cm.v
	d := DefaultConfig()
	v.SetDefault("host", d.Host)
	v.SetDefault("port", d.Port)
	v.SetDefault("history_limit", d.HistoryLimit)
	v.SetDefault("provider_timeout", d.ProviderTimeout)
	v.SetDefault("log_mode", d.LogMode)
	v.SetDefault("cors_origins", d.CORSOrigins)

	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return fmt.Errorf("bind env for %s: %w", key, err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.ai-content-generator")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

func (cm *Manager) load() (*Config, error) {
	var cfg Config
	if err := cm.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Get returns the current configuration (thread-safe).
func (cm *Manager) Get() *Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config
}

// ConfigFile returns the file in use, or "" when running from env/defaults only.
func (cm *Manager) ConfigFile() string {
	return cm.v.ConfigFileUsed()
}

// OnChange registers a callback for config changes.
func (cm *Manager) OnChange(fn func(*Config)) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.callbacks = append(cm.callbacks, fn)
}

// WatchConfig enables hot-reloading. Invalid edits are ignored and the previous config stays.
func (cm *Manager) WatchConfig() {
	if cm.v.ConfigFileUsed() == "" {
		return
	}
	cm.v.OnConfigChange(func(e fsnotify.Event) {
		cm.reload()
	})
	cm.v.WatchConfig()
}

func (cm *Manager) reload() {
	cfg, err := cm.load()
	if err != nil {
		return
	}

	cm.mu.Lock()
	cm.config = cfg
	callbacks := make([]func(*Config), len(cm.callbacks))
	copy(callbacks, cm.callbacks)
	cm.mu.Unlock()

	for _, fn := range callbacks {
		fn(cfg)
	}
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return errors.New("port must not be empty")
	}
	if c.HistoryLimit < 1 {
		return fmt.Errorf("history_limit must be at least 1, got %d", c.HistoryLimit)
	}
	if c.ProviderTimeout < 0 {
		return fmt.Errorf("provider_timeout must not be negative, got %s", c.ProviderTimeout)
	}
	return nil
}

// Origins splits CORSOrigins into a list.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// GeminiSettings converts the primary provider block for the generator package.
func (c *Config) GeminiSettings() generator.LLMSettings {
	return c.Gemini.settings(c.ProviderTimeout)
}

// OpenAISettings converts the secondary provider block for the generator package.
func (c *Config) OpenAISettings() generator.LLMSettings {
	return c.OpenAI.settings(c.ProviderTimeout)
}

// SelectLLM picks the provider for this config, nil when no credential is set.
func (c *Config) SelectLLM() generator.LLMClient {
	return generator.SelectLLM(c.GeminiSettings(), c.OpenAISettings())
}

func (p ProviderConfig) settings(timeout time.Duration) generator.LLMSettings {
	return generator.LLMSettings{
		APIKey:  strings.TrimSpace(p.APIKey),
		Model:   strings.TrimSpace(p.Model),
		BaseURL: strings.TrimSpace(p.BaseURL),
		Timeout: timeout,
	}
}
