package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/judgegodwins/wikirace/game"
	"github.com/judgegodwins/wikirace/util"
	"github.com/judgegodwins/wikirace/ws"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	config    *util.Config
	wsManager *ws.Manager
	router    *gin.Engine
	registry  *game.Registry
}

func NewServer(config *util.Config, registry *game.Registry) *Server {
	gin.SetMode(config.GinMode)

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger)

	server := &Server{
		config:    config,
		wsManager: ws.NewManager(config, registry),
		router:    router,
		registry:  registry,
	}

	router.GET("/ws", server.wsManager.ServeWS)
	router.GET("/health", server.Health)
	router.GET("/rooms/:id", server.CheckRoom)

	return server
}

// Handler returns the router wrapped with CORS handling.
func (s *Server) Handler() http.Handler {
	return withCORS(s.config.AllowedOrigins, s.router)
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%v", s.config.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
