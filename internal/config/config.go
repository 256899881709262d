// Package config provides configuration utilities for the application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/Veraticus/billfold/internal/common"
)

// Account binds an account key to the environment variable holding
// that account's billing-provider secret.
type Account struct {
	Key       string
	SecretEnv string
}

// Secret resolves the account's provider secret from the environment.
func (a Account) Secret() (string, error) {
	secret := os.Getenv(a.SecretEnv)
	if secret == "" {
		return "", fmt.Errorf("%w: environment variable %s is not set for account %q",
			common.ErrMissingConfig, a.SecretEnv, a.Key)
	}
	return secret, nil
}

// SMTPConfig holds the mail transport settings.
type SMTPConfig struct {
	Host     string
	Username string
	Password string
	From     string
	Port     int
}

// S3Config holds the object storage settings.
type S3Config struct {
	Bucket string
	Region string
}

// Config is the static process configuration, loaded once at startup.
type Config struct {
	SMTP           SMTPConfig
	S3             S3Config
	AdminEmail     string
	ScratchRoot    string
	ListenAddr     string
	Accounts       []Account
	FetchRateLimit float64
}

// Load builds the configuration with this precedence:
// 1. Viper configuration (config file or BILLFOLD_ env vars)
// 2. Direct environment variables (SMTP_*, S3_*, ...)
// 3. Default values
func Load() (*Config, error) {
	cfg := &Config{
		ScratchRoot:    filepath.Join(os.TempDir(), "billfold"),
		ListenAddr:     ":8080",
		FetchRateLimit: 10,
		SMTP:           SMTPConfig{Port: 587},
	}

	cfg.Accounts = loadAccounts()

	if v := viper.GetString("scratch_root"); v != "" {
		cfg.ScratchRoot = v
	}
	if v := viper.GetString("listen_addr"); v != "" {
		cfg.ListenAddr = v
	}
	if v := viper.GetFloat64("fetch_rate_limit"); v > 0 {
		cfg.FetchRateLimit = v
	}

	cfg.AdminEmail = firstNonEmpty(viper.GetString("admin_email"), os.Getenv("ADMIN_EMAIL"))

	cfg.SMTP.Host = firstNonEmpty(viper.GetString("smtp.host"), os.Getenv("SMTP_HOST"))
	cfg.SMTP.Username = firstNonEmpty(viper.GetString("smtp.username"), os.Getenv("SMTP_USERNAME"))
	cfg.SMTP.Password = firstNonEmpty(viper.GetString("smtp.password"), os.Getenv("SMTP_PASSWORD"))
	cfg.SMTP.From = firstNonEmpty(viper.GetString("smtp.from"), os.Getenv("SMTP_FROM"), cfg.SMTP.Username)
	if v := viper.GetInt("smtp.port"); v > 0 {
		cfg.SMTP.Port = v
	} else if v := os.Getenv("SMTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.SMTP.Port = port
		}
	}

	cfg.S3.Bucket = firstNonEmpty(viper.GetString("s3.bucket"), os.Getenv("S3_BUCKET"))
	cfg.S3.Region = firstNonEmpty(viper.GetString("s3.region"), os.Getenv("AWS_REGION"))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadAccounts reads the ordered account mapping. Viper config takes a
// list of {key, secret_env} entries so configuration order is
// preserved; the ACCOUNTS env variable fallback is a comma-separated
// list of key=ENV_VAR pairs.
func loadAccounts() []Account {
	var accounts []Account

	if raw, ok := viper.Get("accounts").([]any); ok {
		for _, entry := range raw {
			m, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			key, _ := m["key"].(string)
			env, _ := m["secret_env"].(string)
			if key != "" && env != "" {
				accounts = append(accounts, Account{Key: key, SecretEnv: env})
			}
		}
	}
	if len(accounts) > 0 {
		return accounts
	}

	for _, pair := range strings.Split(os.Getenv("ACCOUNTS"), ",") {
		key, env, found := strings.Cut(strings.TrimSpace(pair), "=")
		if found && key != "" && env != "" {
			accounts = append(accounts, Account{Key: key, SecretEnv: env})
		}
	}

	return accounts
}

// Validate ensures all required fields are present and that every
// account's secret is actually resolvable.
func (c *Config) Validate() error {
	if len(c.Accounts) == 0 {
		return fmt.Errorf("%w: at least one account is required", common.ErrMissingConfig)
	}
	seen := make(map[string]bool, len(c.Accounts))
	for _, a := range c.Accounts {
		if seen[a.Key] {
			return fmt.Errorf("%w: duplicate account key %q", common.ErrInvalidConfig, a.Key)
		}
		seen[a.Key] = true
		if _, err := a.Secret(); err != nil {
			return err
		}
	}
	if c.AdminEmail == "" {
		return fmt.Errorf("%w: admin email is required", common.ErrMissingConfig)
	}
	if c.SMTP.Host == "" {
		return fmt.Errorf("%w: SMTP host is required", common.ErrMissingConfig)
	}
	if c.S3.Bucket == "" {
		return fmt.Errorf("%w: S3 bucket is required", common.ErrMissingConfig)
	}
	if c.S3.Region == "" {
		return fmt.Errorf("%w: S3 region is required", common.ErrMissingConfig)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
