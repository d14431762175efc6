package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/judgegodwins/wikirace/api"
	"github.com/judgegodwins/wikirace/game"
	"github.com/judgegodwins/wikirace/logger"
	"github.com/judgegodwins/wikirace/util"
	"github.com/judgegodwins/wikirace/wikipedia"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func main() {
	util.InitValidator()

	config, err := util.LoadConfig()

	if err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	if err := logger.Setup(config.LogLevel, config.LogPretty); err != nil {
		log.Fatal().Err(err).Msg("logger setup")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var provider game.PageProvider = wikipedia.NewClient(config.WikipediaBaseURL, config.WikipediaTimeout)

	if config.RedisAddress != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     config.RedisAddress,
			Password: config.RedisPassword,
			DB:       0,
		})
		defer rdb.Close()

		// check redis connection status
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Str("addr", config.RedisAddress).Msg("redis unreachable")
		}

		pool := wikipedia.NewPool(rdb, provider, config.PagePoolSize)
		go pool.Run(ctx, config.PagePoolRefill)
		provider = pool
	}

	registry := game.NewRegistry(config.GameSettings(), provider)

	server := api.NewServer(config, registry)

	if err := server.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
