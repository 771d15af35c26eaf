package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Discord holds the directory (identity provider) settings. Everything the
// adapter needs is explicit here; nothing is read from ambient globals.
type Discord struct {
	ClientID      string `env:"CLIENT_ID"`
	ClientSecret  string `env:"CLIENT_SECRET"`
	RedirectURI   string `env:"REDIRECT_URI"`
	BotToken      string `env:"BOT_TOKEN"`
	GuildID       string `env:"GUILD_ID"`
	CurrentCohort string `env:"CURRENT_COHORT" envDefault:"0"`
}

// S3 holds S3-compatible object storage settings for ledger backups.
// Backups are disabled when Bucket or credentials are empty.
type S3 struct {
	Endpoint   string `env:"ENDPOINT"`
	Bucket     string `env:"BUCKET"`
	Region     string `env:"REGION" envDefault:"auto"`
	AccessKey  string `env:"ACCESS_KEY"`
	SecretKey  string `env:"SECRET_KEY"`
	Passphrase string `env:"PASSPHRASE"`
}

// Config is the full service configuration, parsed from PODPOINTS_* env vars.
type Config struct {
	Port        string        `env:"PORT" envDefault:"8080"`
	DBPath      string        `env:"DB_PATH" envDefault:"podpoints.db"`
	LogLevel    string        `env:"LOG_LEVEL" envDefault:"info"`
	FrontendURL string        `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
	JWTSecret   string        `env:"JWT_SECRET"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" envDefault:"720h"`

	VAPIDPublicKey  string `env:"VAPID_PUBLIC_KEY"`
	VAPIDPrivateKey string `env:"VAPID_PRIVATE_KEY"`

	BackupInterval time.Duration `env:"BACKUP_INTERVAL" envDefault:"24h"`

	Discord Discord `envPrefix:"DISCORD_"`
	S3      S3      `envPrefix:"S3_"`
}

// Load parses configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "PODPOINTS_"}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
