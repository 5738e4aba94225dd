package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

var ErrMissingVaultName = errors.New("VAULT_NAME is required")

const defaultRegion = "us-east-1"

type Configuration struct {
	VaultName   string
	AccountID   string // empty means resolve through STS
	Region      string
	RoleARN     string
	SNSTopicARN string
	LogLevel    string
	LogFormat   string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is honoured when present.
func Load() (Configuration, error) {
	_ = godotenv.Load()

	cfg := Configuration{
		VaultName:   getenv("VAULT_NAME", ""),
		AccountID:   getenv("AWS_ACCOUNT_ID", ""),
		Region:      getenv("AWS_REGION", defaultRegion),
		RoleARN:     getenv("BACKUP_ROLE_ARN", ""),
		SNSTopicARN: getenv("SNS_TOPIC_ARN", ""),
		LogLevel:    strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogFormat:   strings.ToLower(getenv("LOG_FORMAT", "json")),
	}

	if cfg.VaultName == "" {
		return Configuration{}, ErrMissingVaultName
	}

	log.Debug().
		Str("component", "configuration").
		Str("vault", cfg.VaultName).
		Str("account", cfg.AccountID).
		Str("region", cfg.Region).
		Str("role_arn", cfg.RoleARN).
		Bool("notifications", cfg.SNSTopicARN != "").
		Msg("Configuration loaded")

	return cfg, nil
}

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}
