// Package config loads the server configuration from defaults, an optional
// file and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	Generation GenerationConfig `mapstructure:"generation"`
	Images     ImagesConfig     `mapstructure:"images"`
	Completion CompletionConfig `mapstructure:"completion"`
	Storage    StorageConfig    `mapstructure:"storage"`
}

type ServerConfig struct {
	Port        string   `mapstructure:"port"`
	Mode        string   `mapstructure:"mode"` // gin mode: debug, release or test
	CORSOrigins []string `mapstructure:"cors_origins"`
	PublicURL   string   `mapstructure:"public_url"` // advertised in the agent card
}

// Address is the listen address for the HTTP server.
func (s ServerConfig) Address() string {
	if strings.Contains(s.Port, ":") {
		return s.Port
	}
	return ":" + s.Port
}

type LogConfig struct {
	Mode string `mapstructure:"mode"` // production or development
}

type GenerationConfig struct {
	Timeout    time.Duration `mapstructure:"timeout"`
	ImageSlots int           `mapstructure:"image_slots"`
}

type ImagesConfig struct {
	UnsplashAccessKey string        `mapstructure:"unsplash_access_key"`
	UnsplashBaseURL   string        `mapstructure:"unsplash_base_url"`
	SearchProvider    string        `mapstructure:"search_provider"`
	SerperAPIKey      string        `mapstructure:"serper_api_key"`
	BraveAPIKey       string        `mapstructure:"brave_api_key"`
	SearchBaseURL     string        `mapstructure:"search_base_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	SecondaryBatch    int           `mapstructure:"secondary_batch"`
}

// SearchAPIKey returns the key of the selected web search provider.
func (c ImagesConfig) SearchAPIKey() string {
	if c.SearchProvider == "brave" {
		return c.BraveAPIKey
	}
	return c.SerperAPIKey
}

type ProviderConfig struct {
	Name    string  `mapstructure:"name"`
	Type    string  `mapstructure:"type"` // gemini or openai
	APIKey  string  `mapstructure:"api_key"`
	BaseURL string  `mapstructure:"base_url"`
	Model   string  `mapstructure:"model"`
	Weight  float64 `mapstructure:"weight"`
}

type CompletionConfig struct {
	Providers      []ProviderConfig `mapstructure:"providers"`
	GeminiAPIKey   string           `mapstructure:"gemini_api_key"`
	OpenAIAPIKey   string           `mapstructure:"openai_api_key"`
	DeepSeekAPIKey string           `mapstructure:"deepseek_api_key"`
	MaxRetries     uint             `mapstructure:"max_retries"`
	RetryDelay     time.Duration    `mapstructure:"retry_delay"`
	Timeout        time.Duration    `mapstructure:"timeout"`
	Temperature    float64          `mapstructure:"temperature"`
	MaxTokens      int              `mapstructure:"max_tokens"`
}

type StorageConfig struct {
	History       string        `mapstructure:"history"` // memory, redis, sqlite or postgres
	Sessions      string        `mapstructure:"sessions"` // memory or redis
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	SQLitePath    string        `mapstructure:"sqlite_path"`
	PostgresDSN   string        `mapstructure:"postgres_dsn"`
	SessionTTL    time.Duration `mapstructure:"session_ttl"`
}

var defaults = map[string]any{
	"server.port":                 "8080",
	"server.mode":                 "release",
	"server.cors_origins":         []string{"*"},
	"server.public_url":           "http://localhost:8080",
	"log.mode":                    "production",
	"generation.timeout":          120 * time.Second,
	"generation.image_slots":      8,
	"images.unsplash_access_key":  "",
	"images.unsplash_base_url":    "",
	"images.search_provider":      "serper",
	"images.serper_api_key":       "",
	"images.brave_api_key":        "",
	"images.search_base_url":      "",
	"images.timeout":              8 * time.Second,
	"images.secondary_batch":      10,
	"completion.gemini_api_key":   "",
	"completion.openai_api_key":   "",
	"completion.deepseek_api_key": "",
	"completion.max_retries":      2,
	"completion.retry_delay":      500 * time.Millisecond,
	"completion.timeout":          60 * time.Second,
	"completion.temperature":      0.7,
	"completion.max_tokens":       800,
	"storage.history":             "memory",
	"storage.sessions":            "memory",
	"storage.redis_addr":          "",
	"storage.redis_password":      "",
	"storage.redis_db":            0,
	"storage.sqlite_path":         "landing.db",
	"storage.postgres_dsn":        "",
	"storage.session_ttl":         24 * time.Hour,
}

// Unprefixed variable names kept from earlier deployments.
var legacyEnv = map[string]string{
	"server.port":                 "PORT",
	"completion.gemini_api_key":   "GEMINI_API_KEY",
	"completion.openai_api_key":   "OPENAI_API_KEY",
	"completion.deepseek_api_key": "DEEPSEEK_API_KEY",
	"images.unsplash_access_key":  "UNSPLASH_ACCESS_KEY",
	"images.serper_api_key":       "SERPER_API_KEY",
	"images.brave_api_key":        "BRAVE_API_KEY",
	"storage.redis_addr":          "REDIS_ADDR",
	"storage.postgres_dsn":        "DATABASE_URL",
}

// LoadConfig reads path when it is non-empty, then overlays LANDING_*
// variables and the legacy names.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	v.SetEnvPrefix("LANDING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range legacyEnv {
		prefixed := "LANDING_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Normalize() {
	c.Server = c.Server.Normalize()
	c.Log.Mode = strings.ToLower(strings.TrimSpace(c.Log.Mode))
	c.Generation = c.Generation.Normalize()
	c.Images = c.Images.Normalize()
	c.Completion = c.Completion.Normalize()
	c.Storage = c.Storage.Normalize()
}

func (c *Config) Validate() error {
	return errors.Join(
		c.Server.Validate(),
		c.Generation.Validate(),
		c.Images.Validate(),
		c.Completion.Validate(),
		c.Storage.Validate(),
	)
}

func (s ServerConfig) Normalize() ServerConfig {
	s.Port = strings.TrimSpace(s.Port)
	if s.Port == "" {
		s.Port = "8080"
	}
	s.Mode = strings.ToLower(strings.TrimSpace(s.Mode))
	var origins []string
	for _, o := range s.CORSOrigins {
		// env values arrive as one comma separated string
		for _, part := range strings.Split(o, ",") {
			if part = strings.TrimSpace(part); part != "" {
				origins = append(origins, part)
			}
		}
	}
	s.CORSOrigins = origins
	s.PublicURL = strings.TrimRight(s.PublicURL, "/")
	return s
}

func (s ServerConfig) Validate() error {
	switch s.Mode {
	case "debug", "release", "test":
		return nil
	}
	return fmt.Errorf("server.mode must be debug, release or test, got %q", s.Mode)
}

func (g GenerationConfig) Normalize() GenerationConfig {
	if g.Timeout <= 0 {
		g.Timeout = 120 * time.Second
	}
	if g.ImageSlots <= 0 {
		g.ImageSlots = 8
	}
	return g
}

func (g GenerationConfig) Validate() error {
	if g.ImageSlots > 30 {
		return fmt.Errorf("generation.image_slots cannot exceed 30")
	}
	return nil
}

func (c ImagesConfig) Normalize() ImagesConfig {
	c.SearchProvider = strings.ToLower(strings.TrimSpace(c.SearchProvider))
	// a lone brave key selects brave even when the provider is left at its default
	if c.SearchProvider == "serper" && c.SerperAPIKey == "" && c.BraveAPIKey != "" {
		c.SearchProvider = "brave"
	}
	if c.Timeout <= 0 {
		c.Timeout = 8 * time.Second
	}
	if c.SecondaryBatch <= 0 {
		c.SecondaryBatch = 10
	}
	return c
}

func (c ImagesConfig) Validate() error {
	switch c.SearchProvider {
	case "serper", "brave":
		return nil
	}
	return fmt.Errorf("images.search_provider must be serper or brave, got %q", c.SearchProvider)
}

// Normalize derives the provider list from the single-key settings when no
// explicit list is configured: DeepSeek 80 / OpenAI 20, Gemini as backup.
func (c CompletionConfig) Normalize() CompletionConfig {
	if len(c.Providers) == 0 {
		if c.DeepSeekAPIKey != "" {
			c.Providers = append(c.Providers, ProviderConfig{Name: "deepseek", Type: "openai", APIKey: c.DeepSeekAPIKey, Weight: 80})
		}
		if c.OpenAIAPIKey != "" {
			c.Providers = append(c.Providers, ProviderConfig{Name: "openai", Type: "openai", APIKey: c.OpenAIAPIKey, Weight: 20})
		}
		if c.GeminiAPIKey != "" {
			c.Providers = append(c.Providers, ProviderConfig{Name: "gemini", Type: "gemini", APIKey: c.GeminiAPIKey, Weight: 10})
		}
	}
	for i := range c.Providers {
		p := &c.Providers[i]
		p.Type = strings.ToLower(strings.TrimSpace(p.Type))
		if p.Type == "" {
			p.Type = "openai"
			if p.Name == "gemini" {
				p.Type = "gemini"
			}
		}
		if p.Name == "" {
			p.Name = p.Type
		}
		if p.Weight <= 0 {
			p.Weight = 1
		}
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 2
	}
	if c.Timeout <= 0 {
		c.Timeout = 60 * time.Second
	}
	if c.Temperature <= 0 {
		c.Temperature = 0.7
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = 800
	}
	return c
}

func (c CompletionConfig) Validate() error {
	var errs []error
	seen := map[string]bool{}
	for _, p := range c.Providers {
		if p.Type != "gemini" && p.Type != "openai" {
			errs = append(errs, fmt.Errorf("completion provider %s: type must be gemini or openai, got %q", p.Name, p.Type))
		}
		if p.APIKey == "" {
			errs = append(errs, fmt.Errorf("completion provider %s: api_key is required", p.Name))
		}
		if seen[p.Name] {
			errs = append(errs, fmt.Errorf("completion provider %s: duplicate name", p.Name))
		}
		seen[p.Name] = true
	}
	if c.Temperature > 2 {
		errs = append(errs, fmt.Errorf("completion.temperature must be at most 2"))
	}
	return errors.Join(errs...)
}

func (s StorageConfig) Normalize() StorageConfig {
	s.History = strings.ToLower(strings.TrimSpace(s.History))
	s.Sessions = strings.ToLower(strings.TrimSpace(s.Sessions))
	if s.History == "" {
		s.History = "memory"
	}
	if s.Sessions == "" {
		s.Sessions = "memory"
	}
	if s.SessionTTL <= 0 {
		s.SessionTTL = 24 * time.Hour
	}
	return s
}

func (s StorageConfig) Validate() error {
	var errs []error
	switch s.History {
	case "memory":
	case "redis":
		if s.RedisAddr == "" {
			errs = append(errs, fmt.Errorf("storage.redis_addr is required for redis history"))
		}
	case "sqlite":
		if s.SQLitePath == "" {
			errs = append(errs, fmt.Errorf("storage.sqlite_path is required for sqlite history"))
		}
	case "postgres":
		if s.PostgresDSN == "" {
			errs = append(errs, fmt.Errorf("storage.postgres_dsn is required for postgres history"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.history must be memory, redis, sqlite or postgres, got %q", s.History))
	}
	switch s.Sessions {
	case "memory":
	case "redis":
		if s.RedisAddr == "" {
			errs = append(errs, fmt.Errorf("storage.redis_addr is required for redis sessions"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.sessions must be memory or redis, got %q", s.Sessions))
	}
	return errors.Join(errs...)
}

// UsesRedis reports whether any store needs a redis client.
func (s StorageConfig) UsesRedis() bool {
	return s.History == "redis" || s.Sessions == "redis"
}
