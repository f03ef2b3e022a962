package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
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

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"`
	} `yaml:"jwt"`

	Identity struct {
		Provider string `yaml:"provider"` // http, dev
		BaseURL  string `yaml:"base_url"`
		APIKey   string `yaml:"api_key"`
	} `yaml:"identity"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	Seed struct {
		TenantName      string `yaml:"tenant_name"`
		AdminEmail      string `yaml:"admin_email"`
		AdminIdentityID string `yaml:"admin_identity_id"`
	} `yaml:"seed"`

	Workers struct {
		ReminderDays int `yaml:"reminder_days"` // days before end_date to send renewal reminders
	} `yaml:"workers"`
}

var AppConfig *Config

// LoadConfig reads config.yaml, or falls back to environment variables when
// DATABASE_URL is set (test/container mode). A .env file is honored first.
func LoadConfig() {
	var cfg Config

	// Optional .env for local runs; missing file is fine.
	_ = godotenv.Load()

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

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTL = 60

	cfg.Identity.Provider = os.Getenv("IDENTITY_PROVIDER")
	cfg.Identity.BaseURL = os.Getenv("IDENTITY_BASE_URL")
	cfg.Identity.APIKey = os.Getenv("IDENTITY_API_KEY")

	cfg.Email.SMTPHost = os.Getenv("SMTP_HOST")
	cfg.Email.SMTPPort, _ = strconv.Atoi(os.Getenv("SMTP_PORT"))
	cfg.Email.SMTPUsername = os.Getenv("SMTP_USER")
	cfg.Email.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	cfg.Email.FromEmail = os.Getenv("SMTP_FROM")

	cfg.Seed.TenantName = os.Getenv("SEED_TENANT_NAME")
	cfg.Seed.AdminEmail = os.Getenv("SEED_ADMIN_EMAIL")
	cfg.Seed.AdminIdentityID = os.Getenv("SEED_ADMIN_IDENTITY_ID")

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Identity.Provider == "" {
		cfg.Identity.Provider = "dev"
	}
	if cfg.Workers.ReminderDays <= 0 {
		cfg.Workers.ReminderDays = 3
	}
	if cfg.Email.FromName == "" {
		cfg.Email.FromName = "GymDesk"
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
