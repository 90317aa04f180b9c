// Package config loads the watcher configuration from a YAML file, applies
// defaults, and overlays secrets from environment variables so tokens never
// have to live in the file.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// SourceKind selects the fetch implementation at configuration time.
const (
	SourceHTML = "html"
	SourceAPI  = "api"
)

type SourceConfig struct {
	Kind   string `yaml:"kind"`    // html | api
	URL    string `yaml:"url"`     // tour page or feed endpoint
	APIKey string `yaml:"api_key"` // api kind only; env TOURWATCH_API_KEY
}

type DatabaseConfig struct {
	Path string `yaml:"path"` // sqlite file, ~ expands to the home dir
}

type DiscordConfig struct {
	Enabled           bool     `yaml:"enabled"`
	Token             string   `yaml:"token"`          // env DISCORD_BOT_TOKEN
	ApplicationID     string   `yaml:"application_id"` // env DISCORD_APPLICATION_ID
	PublicKey         string   `yaml:"public_key"`     // env DISCORD_PUBLIC_KEY; verifies interaction requests
	ChannelID         string   `yaml:"channel_id"`     // env DISCORD_CHANNEL_ID; announcement destination
	GuildID           string   `yaml:"guild_id"`       // command registration scope; empty registers globally
	AuthorizedUserIDs []string `yaml:"authorized_user_ids"` // may run /scrape and /replay
	AllowedRoleIDs    []string `yaml:"allowed_role_ids"`    // may run /tourdates
}

type TwitterConfig struct {
	Enabled bool `yaml:"enabled"` // credentials come from the TWITTER_* env vars
}

type HTTPConfig struct {
	Addr string `yaml:"addr"` // listen address; env PORT overrides the port
}

type ScheduleConfig struct {
	Interval time.Duration `yaml:"interval"` // time between checks
}

type CooldownConfig struct {
	Scrape time.Duration `yaml:"scrape"` // min gap between /scrape invocations
	Status time.Duration `yaml:"status"` // min gap between /status invocations
}

type Config struct {
	Artist    string         `yaml:"artist"`   // act name used in announcements
	Timezone  string         `yaml:"timezone"` // reference timezone for event identity
	Source    SourceConfig   `yaml:"source"`
	Database  DatabaseConfig `yaml:"database"`
	Discord   DiscordConfig  `yaml:"discord"`
	Twitter   TwitterConfig  `yaml:"twitter"`
	HTTP      HTTPConfig     `yaml:"http"`
	Schedule  ScheduleConfig `yaml:"schedule"`
	Cooldowns CooldownConfig `yaml:"cooldowns"`
}

// Default returns a config with every optional knob at its default value.
func Default() Config {
	return Config{
		Timezone: "America/New_York",
		Database: DatabaseConfig{
			Path: "~/.local/share/tourwatch/tourwatch.db",
		},
		HTTP: HTTPConfig{
			Addr: ":8080",
		},
		Schedule: ScheduleConfig{
			Interval: 6 * time.Hour,
		},
		Cooldowns: CooldownConfig{
			Scrape: 5 * time.Minute,
			Status: time.Minute,
		},
	}
}

// Load reads the YAML file at path, applies defaults and environment
// overrides, and validates the result.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	c := Default()
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	c.applyEnv()

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// applyEnv overlays secrets and deploy-platform settings from the
// environment. Set values win over file values.
func (c *Config) applyEnv() {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	setString(&c.Source.APIKey, "TOURWATCH_API_KEY")
	setString(&c.Discord.Token, "DISCORD_BOT_TOKEN")
	setString(&c.Discord.ApplicationID, "DISCORD_APPLICATION_ID")
	setString(&c.Discord.PublicKey, "DISCORD_PUBLIC_KEY")
	setString(&c.Discord.ChannelID, "DISCORD_CHANNEL_ID")
	setString(&c.Discord.GuildID, "DISCORD_GUILD_ID")

	// Hosting platforms hand out the listen port via PORT
	if port := os.Getenv("PORT"); port != "" {
		c.HTTP.Addr = ":" + port
	}
}

// Validate checks the parts of the config every mode depends on, plus the
// Discord block when it is enabled.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Artist) == "" {
		return fmt.Errorf("artist is required")
	}

	switch c.Source.Kind {
	case SourceHTML, SourceAPI:
	case "":
		return fmt.Errorf("source.kind is required (%q or %q)", SourceHTML, SourceAPI)
	default:
		return fmt.Errorf("unknown source.kind %q (want %q or %q)", c.Source.Kind, SourceHTML, SourceAPI)
	}

	if strings.TrimSpace(c.Source.URL) == "" {
		return fmt.Errorf("source.url is required")
	}

	if c.Schedule.Interval <= 0 {
		return fmt.Errorf("schedule.interval must be positive")
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}

	if c.Discord.Enabled {
		for _, f := range []struct{ name, value string }{
			{"discord.token", c.Discord.Token},
			{"discord.application_id", c.Discord.ApplicationID},
			{"discord.public_key", c.Discord.PublicKey},
			{"discord.channel_id", c.Discord.ChannelID},
		} {
			if strings.TrimSpace(f.value) == "" {
				return fmt.Errorf("%s is required when discord is enabled", f.name)
			}
		}
	}

	return nil
}

// Location resolves the configured reference timezone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}
