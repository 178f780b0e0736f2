package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	AppPort  int    `mapstructure:"APP_PORT"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// StoreDriver selects where the history blob lives: sqlite, redis or memory.
	StoreDriver          string `mapstructure:"STORE_DRIVER"`
	DatabasePath         string `mapstructure:"DATABASE_PATH"`
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	HistoryNamespace     string `mapstructure:"HISTORY_NAMESPACE"`
	MaxPersistedSessions int    `mapstructure:"MAX_PERSISTED_SESSIONS"`

	OpenAIAPIKey  string `mapstructure:"OPENAI_API_KEY"`
	OpenAIBaseURL string `mapstructure:"OPENAI_BASE_URL"`

	// UseReasoningModel switches the chat endpoint from the fallback model to
	// BaseModel with a reasoning suffix.
	UseReasoningModel bool   `mapstructure:"USE_REASONING_MODEL"`
	BaseModel         string `mapstructure:"BASE_MODEL"`
	FallbackModel     string `mapstructure:"FALLBACK_MODEL"`
	DefaultModel      string `mapstructure:"DEFAULT_MODEL"`
	// AutoTitle renames a session with a model-written title after its first exchange.
	AutoTitle bool `mapstructure:"AUTO_TITLE"`

	ChatTimeout   time.Duration `mapstructure:"CHAT_TIMEOUT"`
	ChatRateLimit float64       `mapstructure:"CHAT_RATE_LIMIT"`
	ChatRateBurst int           `mapstructure:"CHAT_RATE_BURST"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", 8000)
	v.SetDefault("LOG_LEVEL", "INFO")
	v.SetDefault("STORE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_PATH", "/data/reasonchat.db")
	v.SetDefault("REDIS_ADDR", "redis:6379")
	v.SetDefault("HISTORY_NAMESPACE", "chat-history-storage")
	v.SetDefault("MAX_PERSISTED_SESSIONS", 50)
	v.SetDefault("OPENAI_API_KEY", "")
	v.SetDefault("OPENAI_BASE_URL", "")
	v.SetDefault("USE_REASONING_MODEL", false)
	v.SetDefault("BASE_MODEL", "gpt-5-mini")
	v.SetDefault("FALLBACK_MODEL", "gpt-4o")
	v.SetDefault("DEFAULT_MODEL", "gpt-5-mini")
	v.SetDefault("AUTO_TITLE", false)
	v.SetDefault("CHAT_TIMEOUT", 60*time.Second)
	v.SetDefault("CHAT_RATE_LIMIT", 2.0)
	v.SetDefault("CHAT_RATE_BURST", 5)
}

// LoadConfig reads ./.env (if present) and the environment on top of the
// defaults. The returned viper instance reports which file, if any, was used.
func LoadConfig() (*Config, *viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./backend")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, nil, err
	}

	return &cfg, v, nil
}
