package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port         string   `yaml:"port"`
	StaticDir    string   `yaml:"static_dir"`
	BoundaryPath string   `yaml:"boundary_path"`
	AllowedOrig  []string `yaml:"allowed_origins"`

	// Asset upload is public unless this is set, in which case it needs an
	// admin session.
	AssetUploadRequiresAdmin bool `yaml:"asset_upload_requires_admin"`

	Database   DatabaseConfig   `yaml:"database"`
	Session    SessionConfig    `yaml:"session"`
	Redis      RedisConfig      `yaml:"redis"`
	Cloudinary CloudinaryConfig `yaml:"cloudinary"`
	Mail       MailConfig       `yaml:"mail"`
	NATS       NATSConfig       `yaml:"nats"`
	Log        LogConfig        `yaml:"log"`
}

type DatabaseConfig struct {
	URL          string `yaml:"url"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
}

type SessionConfig struct {
	Secret       string        `yaml:"secret"`
	TTL          time.Duration `yaml:"ttl"`
	CookieSecure bool          `yaml:"cookie_secure"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

func (r RedisConfig) Enabled() bool { return r.Addr != "" }

type CloudinaryConfig struct {
	CloudName string `yaml:"cloud_name"`
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
}

func (c CloudinaryConfig) Enabled() bool { return c.APIKey != "" }

type MailConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	NotifyTo string `yaml:"notify_to"`
	UseSSL   bool   `yaml:"use_ssl"`
}

func (m MailConfig) Enabled() bool { return m.Username != "" && m.Password != "" }

type NATSConfig struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

func (n NATSConfig) Enabled() bool { return n.URL != "" }

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

const devSessionSecret = "secret_dev"

func Default() Config {
	return Config{
		Port:         "3000",
		StaticDir:    "public",
		BoundaryPath: "public/data/NWP_BOUNDARY.geojson",
		AllowedOrig:  []string{"*"},
		Database: DatabaseConfig{
			MaxOpenConns: 25,
			MaxIdleConns: 10,
		},
		Session: SessionConfig{
			Secret: devSessionSecret,
			TTL:    7 * 24 * time.Hour,
		},
		Mail: MailConfig{
			Host: "smtp.gmail.com",
			Port: 587,
		},
		NATS: NATSConfig{
			Subject: "nwp.feedback.submitted",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load builds the runtime config: defaults, then the optional YAML file named
// by CONFIG_FILE, then environment variables (a .env file is honoured).
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.Port, "PORT")
	setString(&c.StaticDir, "STATIC_DIR")
	setString(&c.BoundaryPath, "BOUNDARY_PATH")
	if v := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS")); v != "" {
		c.AllowedOrig = strings.Split(v, ",")
	}

	setString(&c.Database.URL, "DATABASE_URL")
	setString(&c.Session.Secret, "SESSION_SECRET")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.Cloudinary.CloudName, "CLOUDINARY_CLOUD_NAME")
	setString(&c.Cloudinary.APIKey, "CLOUDINARY_API_KEY")
	setString(&c.Cloudinary.APISecret, "CLOUDINARY_API_SECRET")
	setString(&c.Mail.Host, "SMTP_HOST")
	setString(&c.Mail.Username, "EMAIL_USER")
	setString(&c.Mail.Password, "EMAIL_PASS")
	setString(&c.Mail.NotifyTo, "NOTIFY_TO")
	setString(&c.NATS.URL, "NATS_URL")
	setString(&c.NATS.Subject, "NATS_SUBJECT")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")

	var errs []error
	errs = append(errs,
		setInt(&c.Database.MaxOpenConns, "PG_MAX_OPEN_CONNS"),
		setInt(&c.Database.MaxIdleConns, "PG_MAX_IDLE_CONNS"),
		setInt(&c.Redis.DB, "REDIS_DB"),
		setInt(&c.Mail.Port, "SMTP_PORT"),
		setBool(&c.Session.CookieSecure, "SESSION_COOKIE_SECURE"),
		setBool(&c.Mail.UseSSL, "SMTP_USE_SSL"),
		setBool(&c.AssetUploadRequiresAdmin, "ASSET_UPLOAD_REQUIRES_ADMIN"),
	)
	if v := strings.TrimSpace(os.Getenv("SESSION_TTL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("SESSION_TTL: %w", err))
		} else {
			c.Session.TTL = d
		}
	}
	if os.Getenv("NODE_ENV") == "production" || os.Getenv("APP_ENV") == "production" {
		c.Session.CookieSecure = true
	}

	if c.Mail.NotifyTo == "" {
		c.Mail.NotifyTo = c.Mail.Username
	}
	return errors.Join(errs...)
}

func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("port must be set")
	}
	if c.Session.TTL <= 0 {
		return errors.New("session ttl must be positive")
	}
	if c.Session.Secret == "" {
		return errors.New("session secret must be set")
	}
	return nil
}

// UsingDevSecret reports whether the built-in development session secret is
// still in effect.
func (c Config) UsingDevSecret() bool {
	return c.Session.Secret == devSessionSecret
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key string) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = b
	return nil
}
