package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	DB        DBConfig        `mapstructure:"db"`
	Gamma     GammaConfig     `mapstructure:"gamma"`
	DataAPI   DataAPIConfig   `mapstructure:"data_api"`
	Discovery DiscoveryConfig `mapstructure:"discovery"`
	Detector  DetectorConfig  `mapstructure:"detector"`
	Discord   DiscordConfig   `mapstructure:"discord"`
	Email     EmailConfig     `mapstructure:"email"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
	File              string `mapstructure:"file"`
	FileMaxSizeMB     int    `mapstructure:"file_max_size_mb"`
	FileMaxBackups    int    `mapstructure:"file_max_backups"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type GammaConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type DataAPIConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	RatePerSecond float64       `mapstructure:"rate_per_second"`
	RateBurst     int           `mapstructure:"rate_burst"`
}

type DiscoveryConfig struct {
	Interval             time.Duration `mapstructure:"interval"`
	PageLimit            int           `mapstructure:"page_limit"`
	ProbabilityThreshold float64       `mapstructure:"probability_threshold"`
	Categories           []string      `mapstructure:"categories"`
}

type DetectorConfig struct {
	Interval  time.Duration `mapstructure:"interval"`
	PageLimit int           `mapstructure:"page_limit"`
	MinSize   float64       `mapstructure:"min_size"`
	MaxSize   float64       `mapstructure:"max_size"`
}

type DiscordConfig struct {
	WebhookURL string `mapstructure:"webhook_url"`
}

type EmailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	SMTPHost string `mapstructure:"smtp_host"`
	SMTPPort int    `mapstructure:"smtp_port"`
	SMTPUser string `mapstructure:"smtp_user"`
	SMTPPass string `mapstructure:"smtp_pass"`
	To       string `mapstructure:"to"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("LW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("log.file", "")
	v.SetDefault("log.file_max_size_mb", 50)
	v.SetDefault("log.file_max_backups", 3)
	v.SetDefault("db.path", "polymarket_monitor.db")
	v.SetDefault("gamma.base_url", "https://gamma-api.polymarket.com")
	v.SetDefault("gamma.timeout", "30s")
	v.SetDefault("data_api.base_url", "https://data-api.polymarket.com")
	v.SetDefault("data_api.timeout", "30s")
	v.SetDefault("data_api.rate_per_second", 2.0)
	v.SetDefault("data_api.rate_burst", 2)
	v.SetDefault("discovery.interval", "360s")
	v.SetDefault("discovery.page_limit", 500)
	v.SetDefault("discovery.probability_threshold", 0.05)
	v.SetDefault("discovery.categories", []string{"sports", "politics"})
	v.SetDefault("detector.interval", "4s")
	v.SetDefault("detector.page_limit", 1000)
	v.SetDefault("detector.min_size", 50000)
	v.SetDefault("detector.max_size", 10000000)
	v.SetDefault("discord.webhook_url", "")
	v.SetDefault("email.enabled", false)
	v.SetDefault("email.smtp_host", "smtp.gmail.com")
	v.SetDefault("email.smtp_port", 587)
	v.SetDefault("email.smtp_user", "")
	v.SetDefault("email.smtp_pass", "")
	v.SetDefault("email.to", "")

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Warnings reports non-fatal configuration problems. The process still
// starts; a misconfigured channel just never delivers.
func (c Config) Warnings() []string {
	var out []string
	if c.Discord.WebhookURL == "" && !c.Email.Enabled {
		out = append(out, "no alert channel configured, detections will only be logged")
	}
	if c.Email.Enabled && c.Email.SMTPPass == "" {
		out = append(out, "email enabled but smtp_pass not set, email channel will always fail")
	}
	if c.Detector.MinSize > c.Detector.MaxSize {
		out = append(out, "detector.min_size is greater than detector.max_size, no trade can qualify")
	}
	return out
}
