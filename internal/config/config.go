package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	JWT struct {
		Secret   string `yaml:"secret"`
		TTLHours int    `yaml:"ttl_hours"`
	} `yaml:"jwt"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	Storage struct {
		Type      string `yaml:"type"` // local or s3
		BasePath  string `yaml:"base_path"`
		BaseURL   string `yaml:"base_url"`
		Bucket    string `yaml:"bucket"`
		Region    string `yaml:"region"`
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
		Endpoint  string `yaml:"endpoint"`
	} `yaml:"storage"`

	Upload struct {
		MaxSize      int64 `yaml:"max_size"`
		ImageQuality int   `yaml:"image_quality"`
	} `yaml:"upload"`

	Reset struct {
		CodeTTLSeconds  int `yaml:"code_ttl_seconds"`
		CooldownSeconds int `yaml:"cooldown_seconds"`
	} `yaml:"reset"`

	RateLimit struct {
		AuthPerMinute int `yaml:"auth_per_minute"`
	} `yaml:"rate_limit"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

var AppConfig *Config

// LoadConfig reads config/config.yaml unless DATABASE_URL is set, in
// which case everything comes from environment variables (test mode and
// container deployments).
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		cfg.applyDefaults()
		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTLHours = 1
	cfg.Redis.Addr = os.Getenv("REDIS_ADDR")

	cfg.Email.SMTPHost = os.Getenv("MAIL_SERVER")
	cfg.Email.SMTPPort, _ = strconv.Atoi(os.Getenv("MAIL_PORT"))
	cfg.Email.SMTPUsername = os.Getenv("MAIL_USERNAME")
	cfg.Email.SMTPPassword = os.Getenv("MAIL_PASSWORD")
	cfg.Email.FromEmail = os.Getenv("MAIL_DEFAULT_SENDER")

	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = "./uploads"
	cfg.Storage.BaseURL = "/api/v1/uploads"

	cfg.FirstAdminEmail = os.Getenv("FIRST_ADMIN_EMAIL")
	cfg.FirstAdminPassword = os.Getenv("FIRST_ADMIN_PASSWORD")

	cfg.applyDefaults()
	AppConfig = &cfg
}

func (c *Config) applyDefaults() {
	if c.JWT.TTLHours <= 0 {
		c.JWT.TTLHours = 1
	}
	if c.Upload.MaxSize <= 0 {
		c.Upload.MaxSize = 16 * 1024 * 1024
	}
	if c.Upload.ImageQuality <= 0 {
		c.Upload.ImageQuality = 85
	}
	if c.Reset.CodeTTLSeconds <= 0 {
		c.Reset.CodeTTLSeconds = 600
	}
	if c.Reset.CooldownSeconds <= 0 {
		c.Reset.CooldownSeconds = 60
	}
	if c.RateLimit.AuthPerMinute <= 0 {
		c.RateLimit.AuthPerMinute = 10
	}
	if c.Storage.Type == "" {
		c.Storage.Type = "local"
	}
}

func (c *Config) ResetCodeTTL() time.Duration {
	return time.Duration(c.Reset.CodeTTLSeconds) * time.Second
}

func (c *Config) ResetCooldown() time.Duration {
	return time.Duration(c.Reset.CooldownSeconds) * time.Second
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
