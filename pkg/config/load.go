package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment keys.
const (
	EnvConfigFile       = "PRIORITYWATCH_CONFIG"
	EnvURL              = "URL"
	EnvPassword         = "PASSWORD"
	EnvTwilioAccountSID = "TWILIO_ACCOUNT_SID"
	EnvTwilioAuthToken  = "TWILIO_AUTH_TOKEN"
	EnvTwilioFrom       = "TWILIO_PHONE_NUMBER"
	EnvTwilioTo         = "OUTBOUND_PHONE_NUMBER"
	EnvIntervalMinutes  = "POLL_INTERVAL_MINUTES"
	EnvWaitTimeout      = "WAIT_TIMEOUT_SECONDS"
	EnvOptionMatch      = "OPTION_MATCH"
	EnvAlertMessage     = "ALERT_MESSAGE"
	EnvLogLevel         = "LOG_LEVEL"
	defaultDotEnvFile   = ".env"
)

// Load builds and validates the configuration.
func Load() (*Config, error) {
	// A missing .env file is normal; any other read problem is not.
	if err := godotenv.Load(defaultDotEnvFile); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load %s: %w", defaultDotEnvFile, err)
	}

	cfg := DefaultConfig()

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	fillDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadFile decodes a YAML file over cfg.
func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// fillDefaults restores defaults for optional values a config file left blank.
func fillDefaults(cfg *Config) {
	if cfg.Poll.AlertMessage == "" {
		cfg.Poll.AlertMessage = DefaultAlertMessage
	}
	if strings.TrimSpace(cfg.Logging.Level) == "" {
		cfg.Logging.Level = "info"
	}
}

// applyEnv overrides cfg with any environment values that are set.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	strs := []struct {
		key string
		dst *string
	}{
		{EnvURL, &cfg.Target.URL},
		{EnvPassword, &cfg.Target.Password},
		{EnvTwilioAccountSID, &cfg.Twilio.AccountSID},
		{EnvTwilioAuthToken, &cfg.Twilio.AuthToken},
		{EnvTwilioFrom, &cfg.Twilio.From},
		{EnvTwilioTo, &cfg.Twilio.To},
		{EnvOptionMatch, &cfg.Poll.OptionMatch},
		{EnvAlertMessage, &cfg.Poll.AlertMessage},
		{EnvLogLevel, &cfg.Logging.Level},
	}
	for _, s := range strs {
		if v, ok := lookup(s.key); ok && v != "" {
			*s.dst = v
		}
	}

	ints := []struct {
		key string
		dst *int
	}{
		{EnvIntervalMinutes, &cfg.Poll.IntervalMinutes},
		{EnvWaitTimeout, &cfg.Browser.WaitTimeoutSeconds},
	}
	for _, i := range ints {
		v, ok := lookup(i.key)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s must be an integer, got %q", i.key, v)
		}
		*i.dst = n
	}

	cfg.Logging.Level = strings.ToLower(cfg.Logging.Level)
	return nil
}
