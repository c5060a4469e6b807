package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"

	"github.com/healthline/voice-agent/internal/notifier"
	"github.com/healthline/voice-agent/internal/repository/postgres"
	"github.com/healthline/voice-agent/internal/telephony"
)

type Config struct {
	Server    ServerConfig     `mapstructure:"server"`
	Log       LogConfig        `mapstructure:"log"`
	Agent     AgentConfig      `mapstructure:"agent"`
	Auth      AuthConfig       `mapstructure:"auth"`
	Storage   StorageConfig    `mapstructure:"storage"`
	Telephony telephony.Config `mapstructure:"telephony"`
	Redis     RedisConfig      `mapstructure:"redis"`
	Notifier  notifier.Config  `mapstructure:"notifier"`
}

type ServerConfig struct {
	Port           int     `mapstructure:"port"`
	TimeoutSeconds int     `mapstructure:"timeoutSeconds"`
	RateLimit      float64 `mapstructure:"rate_limit"`
	RateBurst      int     `mapstructure:"rate_burst"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type AgentConfig struct {
	Name string `mapstructure:"name"`
	// TransferTo is the human agent destination, "tel:+1..." or a SIP URI.
	TransferTo string `mapstructure:"transfer_to"`
}

type AuthConfig struct {
	// TokenHash is the bcrypt hash of the tool-surface bearer token. Empty
	// disables authentication.
	TokenHash string `mapstructure:"token_hash" envconfig:"AUTH_TOKEN_HASH"`
}

type StorageConfig struct {
	// Driver selects the repository backend: file, postgres or memory.
	Driver   string          `mapstructure:"driver"`
	File     FileConfig      `mapstructure:"file"`
	Postgres postgres.Config `mapstructure:"postgres"`
	// DirectoryCacheTTL bounds how stale a cached doctor listing may be.
	DirectoryCacheTTL time.Duration `mapstructure:"directory_cache_ttl"`
}

type FileConfig struct {
	DoctorsPath      string `mapstructure:"doctors_path"`
	AppointmentsPath string `mapstructure:"appointments_path"`
	RefillsPath      string `mapstructure:"refills_path"`
	SummariesPath    string `mapstructure:"summaries_path"`
}

type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	URL          string        `mapstructure:"url" envconfig:"REDIS_URL"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
}

// LoadConfig reads config.yaml through viper, then overlays secrets from the
// environment via envconfig (HEALTHLINE_ prefix), so key material never has
// to live in the file.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Defaults plus environment are enough to run.
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := envconfig.Process("healthline", &config); err != nil {
		return nil, fmt.Errorf("failed to process environment overrides: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.timeoutSeconds", 30)
	viper.SetDefault("server.rate_limit", 50)
	viper.SetDefault("server.rate_burst", 100)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.pretty", true)
	viper.SetDefault("agent.transfer_to", "tel:+919515449838")
	viper.SetDefault("storage.driver", "file")
	viper.SetDefault("storage.directory_cache_ttl", "5s")
	// Legacy filenames, so existing datasets keep working.
	viper.SetDefault("storage.file.doctors_path", "doctors.json")
	viper.SetDefault("storage.file.appointments_path", "appointments.jsonl")
	viper.SetDefault("storage.file.refills_path", "prescriptions.jsonl")
	viper.SetDefault("storage.file.summaries_path", "call_summaries.log")
}
