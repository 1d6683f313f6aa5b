package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
	"mti.co.id/attreport/core"
)

// WhatsAppConfig points at the internal message gateway.
type WhatsAppConfig struct {
	APIURL string `yaml:"api_url" validate:"omitempty,url"`
	ChatID string `yaml:"chat_id"`
}

// Config holds everything the batch needs. DSNs come from the
// environment by preference; the rest lives in the YAML file.
type Config struct {
	// Workflow DB holds transactions, schedules and the staging table.
	WorkflowDSN string `yaml:"workflow_dsn" validate:"required"`
	// Clocking DB receives the second-stage entries. Only required
	// when forwarding is enabled.
	ClockingDSN string `yaml:"clocking_dsn"`

	Controllers      []string `yaml:"controllers"`
	StaffPrefix      string   `yaml:"staff_prefix" validate:"required"`
	ValidStatus      string   `yaml:"valid_status" validate:"required"`
	ToleranceSeconds int      `yaml:"tolerance_seconds" validate:"gt=0"`

	// Optional fixed schedule applied to every employee; both must be
	// set (HH:MM) to take effect.
	ManualTimeIn  string `yaml:"manual_time_in"`
	ManualTimeOut string `yaml:"manual_time_out"`

	WhatsApp WhatsAppConfig `yaml:"whatsapp"`

	// Daemon-mode schedules for the rolling last-24h run.
	CronSpecs []string `yaml:"cron_specs"`
}

func Default() *Config {
	return &Config{
		StaffPrefix:      "MTI",
		ValidStatus:      "Valid Entry Access",
		ToleranceSeconds: 3600,
		CronSpecs:        []string{"0 1 * * *", "0 13 * * *"},
	}
}

// Load reads the optional YAML file on top of the defaults, then
// applies environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if v := os.Getenv("WORKFLOW_DSN"); v != "" {
		cfg.WorkflowDSN = v
	}
	if v := os.Getenv("CLOCKING_DSN"); v != "" {
		cfg.ClockingDSN = v
	}
	if v := os.Getenv("WHATSAPP_API_URL"); v != "" {
		cfg.WhatsApp.APIURL = v
	}
	if v := os.Getenv("WHATSAPP_CHAT_ID"); v != "" {
		cfg.WhatsApp.ChatID = v
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) Tolerance() time.Duration {
	return time.Duration(c.ToleranceSeconds) * time.Second
}

// Manual returns the process-wide override window, or nil when the
// schedule lookup should be used.
func (c *Config) Manual() *core.ManualWindow {
	if c.ManualTimeIn == "" || c.ManualTimeOut == "" {
		return nil
	}
	return &core.ManualWindow{TimeIn: c.ManualTimeIn, TimeOut: c.ManualTimeOut}
}
