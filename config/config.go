package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Type            string        `mapstructure:"type"`
	DSN             string        `mapstructure:"dsn"`
	ReplicaDSNs     []string      `mapstructure:"replica_dsns"`
	MaxOpen         int           `mapstructure:"max_open"`
	MaxIdle         int           `mapstructure:"max_idle"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	SlowThreshold   time.Duration `mapstructure:"slow_threshold"`
}

// SupabaseConfig keeps the SUPABASE_DB_* variables used by DATABASE_TYPE=supa.
type SupabaseConfig struct {
	DBHost     string `mapstructure:"db_host"`
	DBUser     string `mapstructure:"db_user"`
	DBPassword string `mapstructure:"db_password"`
	DBName     string `mapstructure:"db_name"`
	DBPort     string `mapstructure:"db_port"`
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
}

type StorageConfig struct {
	Backend   string `mapstructure:"backend"`
	LocalRoot string `mapstructure:"local_root"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	PublicURL string `mapstructure:"public_url"`
}

type ResendConfig struct {
	APIKey    string `mapstructure:"api_key"`
	FromEmail string `mapstructure:"from_email"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type TwilioConfig struct {
	AccountSID string `mapstructure:"account_sid"`
	AuthToken  string `mapstructure:"auth_token"`
	FromNumber string `mapstructure:"from_number"`
}

// NotifyConfig selects which channels receive contact form alerts.
type NotifyConfig struct {
	Channels []string      `mapstructure:"channels"`
	EmailTo  []string      `mapstructure:"email_to"`
	SMSTo    string        `mapstructure:"sms_to"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type DemoMonitorConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Schedule string        `mapstructure:"schedule"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// AdminConfig is the account created by INIT_PORTFOLIO.
type AdminConfig struct {
	Username string `mapstructure:"username"`
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

type SSMConfig struct {
	ParameterPath string `mapstructure:"parameter_path"`
	Region        string `mapstructure:"region"`
}

type AppConfig struct {
	Environment          string            `mapstructure:"app_env"`
	LogLevel             string            `mapstructure:"log_level"`
	SiteURL              string            `mapstructure:"site_url"`
	MediaURL             string            `mapstructure:"media_url"`
	AcceptedOrigins      []string          `mapstructure:"accepted_origins"`
	GenerateModels       bool              `mapstructure:"generate_models"`
	GenerateColumnReport bool              `mapstructure:"generate_column_report"`
	InitPortfolio        bool              `mapstructure:"init_portfolio"`
	HTTP                 HTTPConfig        `mapstructure:"http"`
	Database             DatabaseConfig    `mapstructure:"database"`
	Supabase             SupabaseConfig    `mapstructure:"supabase"`
	JWT                  JWTConfig         `mapstructure:"jwt"`
	Storage              StorageConfig     `mapstructure:"storage"`
	Resend               ResendConfig      `mapstructure:"resend"`
	SMTP                 SMTPConfig        `mapstructure:"smtp"`
	Twilio               TwilioConfig      `mapstructure:"twilio"`
	Notify               NotifyConfig      `mapstructure:"notify"`
	DemoMonitor          DemoMonitorConfig `mapstructure:"demo_monitor"`
	Admin                AdminConfig       `mapstructure:"admin"`
	SSM                  SSMConfig         `mapstructure:"ssm"`
}

func (c AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// Load reads .env, an optional config.yaml and the environment, then overlays SSM parameters
// when SSM_PARAMETER_PATH is set.
func Load(ctx context.Context) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v, err := newViper()
	if err != nil {
		return nil, err
	}

	if path := v.GetString("ssm.parameter_path"); path != "" {
		client, err := newSSMClient(ctx, v.GetString("ssm.region"))
		if err != nil {
			return nil, err
		}
		if err := applySSMOverlay(ctx, v, client, path); err != nil {
			return nil, err
		}
	}

	cfg, err := unmarshal(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newViper() (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// PORT is what most hosting platforms inject.
	if err := v.BindEnv("http.port", "HTTP_PORT", "PORT"); err != nil {
		return nil, fmt.Errorf("bind port env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}
	return v, nil
}

func unmarshal(v *viper.Viper) (*AppConfig, error) {
	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.AcceptedOrigins = compact(cfg.AcceptedOrigins)
	cfg.Database.ReplicaDSNs = compact(cfg.Database.ReplicaDSNs)
	cfg.Notify.Channels = compact(cfg.Notify.Channels)
	cfg.Notify.EmailTo = compact(cfg.Notify.EmailTo)
	cfg.SiteURL = strings.TrimRight(cfg.SiteURL, "/")
	return &cfg, nil
}

func (c *AppConfig) validate() error {
	if c.HTTP.Port <= 0 {
		return fmt.Errorf("invalid http port %d", c.HTTP.Port)
	}
	if c.IsProduction() && c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required in production")
	}
	switch c.Database.Type {
	case "postgres", "supa", "sqlite":
	default:
		return fmt.Errorf("unsupported DATABASE_TYPE %q", c.Database.Type)
	}
	switch c.Storage.Backend {
	case "local", "s3", "minio":
	default:
		return fmt.Errorf("unsupported STORAGE_BACKEND %q", c.Storage.Backend)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("site_url", "http://localhost:8000")
	v.SetDefault("media_url", "/media/")
	v.SetDefault("accepted_origins", "http://localhost:3000")
	v.SetDefault("generate_models", false)
	v.SetDefault("generate_column_report", false)
	v.SetDefault("init_portfolio", false)

	v.SetDefault("http.port", 8000)
	v.SetDefault("http.read_timeout", "30s")
	v.SetDefault("http.write_timeout", "60s")
	v.SetDefault("http.idle_timeout", "120s")
	v.SetDefault("http.shutdown_timeout", "30s")

	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.dsn", "portfolio.db")
	v.SetDefault("database.replica_dsns", "")
	v.SetDefault("database.max_open", 25)
	v.SetDefault("database.max_idle", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.slow_threshold", "2s")

	v.SetDefault("supabase.db_host", "")
	v.SetDefault("supabase.db_user", "")
	v.SetDefault("supabase.db_password", "")
	v.SetDefault("supabase.db_name", "")
	v.SetDefault("supabase.db_port", "5432")

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.ttl", "24h")

	v.SetDefault("storage.backend", "local")
	v.SetDefault("storage.local_root", "media")
	v.SetDefault("storage.bucket", "portfolio-media")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.access_key", "")
	v.SetDefault("storage.secret_key", "")
	v.SetDefault("storage.use_ssl", true)
	v.SetDefault("storage.public_url", "")

	v.SetDefault("resend.api_key", "")
	v.SetDefault("resend.from_email", "")

	v.SetDefault("smtp.host", "")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.username", "")
	v.SetDefault("smtp.password", "")
	v.SetDefault("smtp.from", "")

	v.SetDefault("twilio.account_sid", "")
	v.SetDefault("twilio.auth_token", "")
	v.SetDefault("twilio.from_number", "")

	v.SetDefault("notify.channels", "")
	v.SetDefault("notify.email_to", "")
	v.SetDefault("notify.sms_to", "")
	v.SetDefault("notify.timeout", "15s")

	v.SetDefault("demo_monitor.enabled", false)
	v.SetDefault("demo_monitor.schedule", "@every 1m")
	v.SetDefault("demo_monitor.timeout", "10s")

	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.email", "admin@example.com")
	v.SetDefault("admin.password", "")

	v.SetDefault("ssm.parameter_path", "")
	v.SetDefault("ssm.region", "")
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			out = append(out, value)
		}
	}
	return out
}
