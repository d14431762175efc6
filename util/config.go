package util

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/judgegodwins/wikirace/game"
)

type Config struct {
	Port           string   `env:"PORT" envDefault:"8080" validate:"required,number"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	GinMode        string   `env:"GIN_MODE" envDefault:"release" validate:"oneof=debug release test"`
	LogLevel       string   `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=trace debug info warn error"`
	LogPretty      bool     `env:"LOG_PRETTY" envDefault:"false"`

	MaxPlayers        int `env:"MAX_PLAYERS" envDefault:"4" validate:"min=2,max=10"`
	ContinuousTurns   int `env:"CONTINUOUS_TURNS" envDefault:"3" validate:"min=0"`
	CoopMaxTotalTurns int `env:"COOP_MAX_TOTAL_TURNS" envDefault:"10" validate:"min=1"`

	WikipediaBaseURL        string        `env:"WIKIPEDIA_BASE_URL" envDefault:"https://ja.wikipedia.org" validate:"required,url"`
	WikipediaTimeout        time.Duration `env:"WIKIPEDIA_TIMEOUT" envDefault:"5s" validate:"gt=0"`
	FallbackPageTitle       string        `env:"FALLBACK_PAGE_TITLE" envDefault:"JavaScript" validate:"required"`
	FallbackPageDescription string        `env:"FALLBACK_PAGE_DESCRIPTION" envDefault:"プログラミング言語"`

	// RedisAddress enables the prefetched page pool when set.
	RedisAddress   string        `env:"REDIS_ADDR" validate:"omitempty,hostname_port"`
	RedisPassword  string        `env:"REDIS_PW"`
	PagePoolSize   int           `env:"PAGE_POOL_SIZE" envDefault:"16" validate:"min=1"`
	PagePoolRefill time.Duration `env:"PAGE_POOL_REFILL" envDefault:"30s" validate:"gt=0"`

	EventRate  float64 `env:"EVENT_RATE" envDefault:"5" validate:"gt=0"`
	EventBurst int     `env:"EVENT_BURST" envDefault:"10" validate:"min=1"`
}

func LoadConfig() (*Config, error) {
	godotenv.Load()

	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := Validate.Struct(config); err != nil {
		return nil, err
	}

	return config, nil
}

// GameSettings returns the room limits described by the config.
func (c *Config) GameSettings() game.Settings {
	return game.Settings{
		MaxPlayers:      c.MaxPlayers,
		ContinuousTurns: c.ContinuousTurns,
		MaxTotalTurns:   c.CoopMaxTotalTurns,
		Fallback: game.Page{
			Title:       c.FallbackPageTitle,
			Description: c.FallbackPageDescription,
		},
	}
}
