package bot

import "github.com/caarlos0/env/v11"

// Config holds the process-wide bot configuration. Module-specific settings
// live with their modules; only the gateway credentials belong here.
type Config struct {
	DiscordToken string `env:"DISCORD_TOKEN,notEmpty"`
}

// LoadConfig reads the configuration from the environment. A missing token
// is an error; the bot cannot start without one.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
