package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv    = "BLOG_AUDITOR_CONFIG"
	databaseDSNEnv   = "DATABASE_DSN"
	queuePathEnv     = "QUEUE_PATH"
	siteDomainEnv    = "SITE_DOMAIN"
	minWordsEnv      = "AUDIT_MIN_WORDS"
	rewriterKeyEnv   = "REWRITER_API_KEY"
	rewriterModelEnv = "REWRITER_MODEL"
	telegramTokenEnv = "TELEGRAM_BOT_TOKEN"
	telegramChatEnv  = "TELEGRAM_CHAT_ID"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Audit         AuditConfig        `yaml:"audit"`
	Queue         QueueConfig        `yaml:"queue"`
	Database      DatabaseConfig     `yaml:"database"`
	Source        SourceConfig       `yaml:"source"`
	Rewriter      RewriterConfig     `yaml:"rewriter"`
	Notifications NotificationConfig `yaml:"notifications"`
	Runner        RunnerConfig       `yaml:"runner"`
}

// LoggingConfig selects handler level and format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// AuditConfig carries the editorial gate thresholds and pattern lists.
type AuditConfig struct {
	MinWords        int      `yaml:"minWords"`
	MinImages       int      `yaml:"minImages"`
	SiteDomain      string   `yaml:"siteDomain"`
	GenericPhrases  []string `yaml:"genericPhrases"`
	ValuedHosts     []string `yaml:"valuedHosts"`
	TitleStopwords  []string `yaml:"titleStopwords"`
	SourcesKeywords []string `yaml:"sourcesKeywords"`
}

// QueueConfig locates the remediation queue document.
type QueueConfig struct {
	Path        string `yaml:"path"`
	MaxAttempts int    `yaml:"maxAttempts"`
}

// DatabaseConfig describes the optional Postgres audit-history connection.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// SourceConfig points at exported article JSON documents.
type SourceConfig struct {
	Dir string `yaml:"dir"`
}

// RewriterConfig defines how to reach the OpenAI-compatible rewrite API used
// by the remediation side.
type RewriterConfig struct {
	Endpoint     string `yaml:"endpoint"`
	Model        string `yaml:"model"`
	APIKey       string `yaml:"apiKey"`
	SystemPrompt string `yaml:"systemPrompt"`
}

// NotificationConfig encapsulates outbound channels.
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// RunnerConfig defines how often the remediation pass runs in daemon mode.
type RunnerConfig struct {
	IntervalMinutes int `yaml:"intervalMinutes"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	return LoadFrom(os.Getenv(configPathEnv))
}

// LoadFrom behaves like Load but reads the YAML file at an explicit path
// instead of consulting the environment for its location.
func LoadFrom(path string) Config {
	cfg := defaultConfig()

	if path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(queuePathEnv); v != "" {
		c.Queue.Path = v
	}

	if v := os.Getenv(siteDomainEnv); v != "" {
		c.Audit.SiteDomain = v
	}

	if v := os.Getenv(minWordsEnv); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Audit.MinWords = n
		} else {
			log.Printf("config: invalid %s=%q, keeping %d", minWordsEnv, v, c.Audit.MinWords)
		}
	}

	if v := os.Getenv(rewriterKeyEnv); v != "" {
		c.Rewriter.APIKey = v
	}

	if v := os.Getenv(rewriterModelEnv); v != "" {
		c.Rewriter.Model = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}

	if override.Audit.MinWords > 0 {
		base.Audit.MinWords = override.Audit.MinWords
	}
	if override.Audit.MinImages > 0 {
		base.Audit.MinImages = override.Audit.MinImages
	}
	if override.Audit.SiteDomain != "" {
		base.Audit.SiteDomain = override.Audit.SiteDomain
	}
	if len(override.Audit.GenericPhrases) > 0 {
		base.Audit.GenericPhrases = override.Audit.GenericPhrases
	}
	if len(override.Audit.ValuedHosts) > 0 {
		base.Audit.ValuedHosts = override.Audit.ValuedHosts
	}
	if len(override.Audit.TitleStopwords) > 0 {
		base.Audit.TitleStopwords = override.Audit.TitleStopwords
	}
	if len(override.Audit.SourcesKeywords) > 0 {
		base.Audit.SourcesKeywords = override.Audit.SourcesKeywords
	}

	if override.Queue.Path != "" {
		base.Queue.Path = override.Queue.Path
	}
	if override.Queue.MaxAttempts > 0 {
		base.Queue.MaxAttempts = override.Queue.MaxAttempts
	}

	if override.Database.DSN != "" {
		base.Database = override.Database
	}

	if override.Source.Dir != "" {
		base.Source = override.Source
	}

	if override.Rewriter.Endpoint != "" {
		base.Rewriter.Endpoint = override.Rewriter.Endpoint
	}
	if override.Rewriter.Model != "" {
		base.Rewriter.Model = override.Rewriter.Model
	}
	if override.Rewriter.APIKey != "" {
		base.Rewriter.APIKey = override.Rewriter.APIKey
	}
	if override.Rewriter.SystemPrompt != "" {
		base.Rewriter.SystemPrompt = override.Rewriter.SystemPrompt
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	if override.Runner.IntervalMinutes > 0 {
		base.Runner.IntervalMinutes = override.Runner.IntervalMinutes
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Audit: AuditConfig{
			MinWords:   1600,
			MinImages:  3,
			SiteDomain: "",
			GenericPhrases: []string{
				"comprehensive guide", "in this guide", "this guide",
				"in today's world", "in today's fast-paced",
				"you will learn", "by the end", "throughout this article",
				"we'll explore", "let's dive", "let's explore",
				"in conclusion", "to sum up", "in summary",
				"thank you for reading", "happy growing", "happy gardening",
				"whether you're a beginner", "whether you are new",
				"game-changer", "unlock the potential", "master the art",
				"elevate your", "transform your", "empower yourself",
				"crucial to understand", "it's essential", "it is essential",
			},
			ValuedHosts:     []string{"cdn.shopify.com", "pinimg.com"},
			TitleStopwords:  []string{"this", "that", "with", "from", "your", "guide", "comprehensive"},
			SourcesKeywords: []string{"sources", "references", "further reading"},
		},
		Queue:    QueueConfig{Path: "remediation_queue.json", MaxAttempts: 5},
		Database: DatabaseConfig{DSN: ""},
		Source:   SourceConfig{Dir: "articles"},
		Rewriter: RewriterConfig{
			Endpoint:     "https://api.openai.com/v1/chat/completions",
			Model:        "gpt-4o-mini",
			APIKey:       "",
			SystemPrompt: "You rewrite blog sections to remove boilerplate while keeping facts intact.",
		},
		Notifications: NotificationConfig{
			Telegram: TelegramConfig{BotToken: "", ChatID: ""},
		},
		Runner: RunnerConfig{IntervalMinutes: 60},
	}
}
