// Package config builds the single configuration value that every
// prioritywatch component receives at startup.
//
// Values are layered: defaults, then an optional YAML file named by
// PRIORITYWATCH_CONFIG, then environment variables (a .env file in the
// working directory is loaded into the environment first).
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/entrhq/prioritywatch/pkg/logging"
)

// Config is the complete runtime configuration.
type Config struct {
	Target  TargetConfig  `yaml:"target"`
	Twilio  TwilioConfig  `yaml:"twilio"`
	Poll    PollConfig    `yaml:"poll"`
	Browser BrowserConfig `yaml:"browser"`
	Logging LoggingConfig `yaml:"logging"`
}

// TargetConfig describes the page being watched.
type TargetConfig struct {
	URL              string `yaml:"url"`
	Password         string `yaml:"password"`
	PasswordSelector string `yaml:"password_selector"`
	SubmitSelector   string `yaml:"submit_selector"`
	ServiceSelector  string `yaml:"service_selector"`
}

// TwilioConfig holds the telephony account and the call endpoints.
type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	From       string `yaml:"from"`
	To         string `yaml:"to"`
}

// PollConfig controls the scheduler and the detection predicate.
type PollConfig struct {
	IntervalMinutes int    `yaml:"interval_minutes"`
	OptionMatch     string `yaml:"option_match"`
	AlertMessage    string `yaml:"alert_message"`
}

// BrowserConfig controls the automation driver.
type BrowserConfig struct {
	WaitTimeoutSeconds int `yaml:"wait_timeout_seconds"`
}

// LoggingConfig defines logging configuration
type LoggingConfig struct {
	// Level is one of debug, info, warn (or warning), error
	Level string `yaml:"level"`
}

const (
	DefaultIntervalMinutes    = 1
	DefaultWaitTimeoutSeconds = 30
	DefaultOptionMatch        = "super priority"
	DefaultAlertMessage       = "Super priority service is available."
	DefaultPasswordSelector   = "#password"
	DefaultSubmitSelector     = "#submit"
	DefaultServiceSelector    = "#serviceOption"
)

// DefaultConfig returns a configuration with every optional value filled in.
func DefaultConfig() *Config {
	return &Config{
		Target: TargetConfig{
			PasswordSelector: DefaultPasswordSelector,
			SubmitSelector:   DefaultSubmitSelector,
			ServiceSelector:  DefaultServiceSelector,
		},
		Poll: PollConfig{
			IntervalMinutes: DefaultIntervalMinutes,
			OptionMatch:     DefaultOptionMatch,
			AlertMessage:    DefaultAlertMessage,
		},
		Browser: BrowserConfig{
			WaitTimeoutSeconds: DefaultWaitTimeoutSeconds,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Interval returns the wait between unsuccessful poll cycles.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.Poll.IntervalMinutes) * time.Minute
}

// WaitTimeout returns the bounded wait window for page surfaces.
func (c *Config) WaitTimeout() time.Duration {
	return time.Duration(c.Browser.WaitTimeoutSeconds) * time.Second
}

// Validate validates the configuration. It never modifies c.
func (c *Config) Validate() error {
	if c.Target.URL == "" {
		return fmt.Errorf("target url is required (%s)", EnvURL)
	}
	u, err := url.Parse(c.Target.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid target url: %q", c.Target.URL)
	}

	if c.Target.Password == "" {
		return fmt.Errorf("password is required (%s)", EnvPassword)
	}

	if c.Target.PasswordSelector == "" || c.Target.SubmitSelector == "" || c.Target.ServiceSelector == "" {
		return fmt.Errorf("target selectors cannot be empty")
	}

	required := []struct {
		value string
		key   string
	}{
		{c.Twilio.AccountSID, EnvTwilioAccountSID},
		{c.Twilio.AuthToken, EnvTwilioAuthToken},
		{c.Twilio.From, EnvTwilioFrom},
		{c.Twilio.To, EnvTwilioTo},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%s is required", r.key)
		}
	}

	if c.Poll.IntervalMinutes <= 0 {
		return fmt.Errorf("poll interval must be positive, got %d minutes", c.Poll.IntervalMinutes)
	}

	if c.Browser.WaitTimeoutSeconds <= 0 {
		return fmt.Errorf("wait timeout must be positive, got %d seconds", c.Browser.WaitTimeoutSeconds)
	}

	if c.Poll.OptionMatch == "" {
		return fmt.Errorf("option match pattern cannot be empty")
	}

	if c.Poll.AlertMessage == "" {
		return fmt.Errorf("alert message cannot be empty")
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid logging level: %w", err)
	}

	return nil
}
