package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type GitHubConfig struct {
	APIBaseURL  string `yaml:"api_base_url"`
	DefaultRepo string `yaml:"default_repo"`
	BackupPath  string `yaml:"backup_path"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Storage struct {
		Path string `yaml:"path"`
	} `yaml:"storage"`
	Admin struct {
		Email           string `yaml:"email"`
		InitialPassword string `yaml:"initial_password"`
		JWTSecret       string `yaml:"jwt_secret"`
	} `yaml:"admin"`
	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		NotifyEmail  string `yaml:"notify_email"`
	} `yaml:"email"`
	GitHub   GitHubConfig   `yaml:"github"`
	Gemini   GeminiConfig   `yaml:"gemini"`
	Telegram TelegramConfig `yaml:"telegram"`
}

func LoadConfig() *Config {
	f, err := os.Open("config/config.yaml")
	if err != nil {
		panic("Failed to open config.yaml: " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse config.yaml: " + err.Error())
	}

	cfg.applyDefaults()
	return &cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = "./data/hungers.db"
	}
	if cfg.Admin.Email == "" {
		cfg.Admin.Email = "admin@hungers.com"
	}
	if cfg.Admin.JWTSecret == "" {
		cfg.Admin.JWTSecret = os.Getenv("HUNGERS_JWT_SECRET")
	}
	if cfg.GitHub.APIBaseURL == "" {
		cfg.GitHub.APIBaseURL = "https://api.github.com"
	}
	if cfg.GitHub.DefaultRepo == "" {
		cfg.GitHub.DefaultRepo = "hungerscol/CRM"
	}
	if cfg.GitHub.BackupPath == "" {
		cfg.GitHub.BackupPath = "deals.json"
	}
	if cfg.Gemini.APIKey == "" {
		cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = "gemini-3-flash-preview"
	}
	if cfg.Telegram.BotToken == "" {
		cfg.Telegram.BotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	}
	if cfg.Email.SMTPPassword == "" {
		cfg.Email.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	}
}
