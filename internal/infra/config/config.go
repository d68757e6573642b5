package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogDevelopment bool   `env:"LOG_DEVELOPMENT"`

	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`
	DatabaseURL string `env:"DATABASE_URL"` // vacío = sin interaction log

	// NATS; vacío = no se publican eventos
	CommsURL           string `env:"COMMS_URL"`
	CommsSubjectPrefix string `env:"COMMS_SUBJECT_PREFIX" envDefault:"interactions"`

	CronSchedules     []string `env:"CRON_SCHEDULES" envSeparator:"|"`
	RegistryMode      string   `env:"REGISTRY_MODE" envDefault:"exact"`
	CustomIDSeparator string   `env:"CUSTOM_ID_SEPARATOR" envDefault:"/"`

	InteractionLogRetention time.Duration `env:"INTERACTION_LOG_RETENTION" envDefault:"168h"`
	MenuRateLimit           time.Duration `env:"MENU_RATE_LIMIT" envDefault:"2s"`

	// solo para `register`
	DiscordApplicationID string `env:"DISCORD_APPLICATION_ID"`
	DiscordToken         string `env:"DISCORD_TOKEN"`
	DiscordGuildID       string `env:"DISCORD_GUILD_ID"` // opcional: registra en un guild en vez de global
}

// Load lee la config del entorno del proceso.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom lee la config de un mapa (bindings, tests).
func LoadFrom(vars map[string]string) (Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.RegistryMode {
	case "exact", "pattern":
	default:
		return fmt.Errorf("config: REGISTRY_MODE %q (exact|pattern)", c.RegistryMode)
	}
	if c.CustomIDSeparator == "" {
		return fmt.Errorf("config: CUSTOM_ID_SEPARATOR vacío")
	}
	if c.InteractionLogRetention < 0 {
		return fmt.Errorf("config: INTERACTION_LOG_RETENTION negativo")
	}
	return nil
}

// RegisterReady: credenciales mínimas para subir comandos.
func (c Config) RegisterReady() error {
	if c.DiscordApplicationID == "" {
		return fmt.Errorf("config: faltante env DISCORD_APPLICATION_ID")
	}
	if c.DiscordToken == "" {
		return fmt.Errorf("config: faltante env DISCORD_TOKEN")
	}
	return nil
}
