// Package config loads the duotasks configuration: compiled-in defaults
// overlaid with an optional YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the config file; unset means defaults only.
const EnvConfigPath = "DUOTASKS_CONFIG"

// DefaultTimezone is the reference zone all streak dates are bucketed in.
const DefaultTimezone = "Europe/Belgrade"

// Duration wraps time.Duration so the YAML file can say "2s" or "500ms".
type Duration time.Duration

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

type Config struct {
	DBPath             string   `yaml:"db_path"`
	Timezone           string   `yaml:"timezone"`
	Debounce           Duration `yaml:"debounce"`
	WriteWait          Duration `yaml:"write_wait"`
	StreakReminderHour int      `yaml:"streak_reminder_hour"`
	EmptyReminderHour  int      `yaml:"empty_reminder_hour"`
}

func Default() Config {
	return Config{
		Timezone:           DefaultTimezone,
		Debounce:           Duration(2 * time.Second),
		WriteWait:          Duration(5 * time.Second),
		StreakReminderHour: 20,
		EmptyReminderHour:  11,
	}
}

// Load reads the YAML file at path over the defaults. An empty path falls
// back to $DUOTASKS_CONFIG; no file at all means pure defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.StreakReminderHour < 0 || c.StreakReminderHour > 23 {
		return fmt.Errorf("streak_reminder_hour %d out of range", c.StreakReminderHour)
	}
	if c.EmptyReminderHour < 0 || c.EmptyReminderHour > 23 {
		return fmt.Errorf("empty_reminder_hour %d out of range", c.EmptyReminderHour)
	}
	if c.Debounce < 0 {
		return fmt.Errorf("debounce must not be negative")
	}
	return nil
}

// Location resolves the configured reference zone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
