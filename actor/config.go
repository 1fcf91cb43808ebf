package actor

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the tunables of an Actor
type Config struct {
	Name        string `env:"ACTORFSM_ACTOR_NAME" envDefault:"actor"`
	MailboxSize int    `env:"ACTORFSM_MAILBOX_SIZE" envDefault:"100"`
}

// DefaultConfig returns the configuration used when no options are given,
// taken from the envDefault tags
func DefaultConfig() Config {
	var cfg Config
	// An empty environment leaves only the defaults
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{}}); err != nil {
		panic(fmt.Sprintf("actor: invalid config defaults: %v", err))
	}
	return cfg
}

// LoadConfig reads the configuration from the environment
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse actor config: %w", err)
	}
	if cfg.MailboxSize < 0 {
		return Config{}, fmt.Errorf("parse actor config: negative mailbox size %d", cfg.MailboxSize)
	}
	return cfg, nil
}
