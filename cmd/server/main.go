package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/voxmeet/signal/internal/adapter/driven/gateway/ws"
	repo "github.com/voxmeet/signal/internal/adapter/driven/persistence/memory"
	handler "github.com/voxmeet/signal/internal/adapter/driving/http"
	"github.com/voxmeet/signal/internal/config"
	"github.com/voxmeet/signal/internal/core/service"
)

func main() {
	w := zerolog.ConsoleWriter{Out: os.Stdout}
	l := zerolog.New(w).With().Timestamp().Caller().Logger()
	zlog.Logger = l

	cfg := config.Load()
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	registry := repo.NewConnectionRegistry()
	rooms := repo.NewRoomStore()
	messages := repo.NewMessageRepository(cfg.ChatHistoryLimit)
	hub := ws.NewHub()

	chatService := service.NewChatService(messages, rooms, registry, hub, cfg.ChatHistoryLimit)
	sessionService := service.NewSessionService(registry, rooms, hub, chatService)
	relayService := service.NewRelayService(registry, hub)

	h := handler.NewHandler(sessionService, relayService, chatService, rooms, hub, cfg)

	srv := &http.Server{
		Addr:    cfg.Port,
		Handler: h.NewRouter(),
	}

	go func() {
		l.Info().Str("port", cfg.Port).Msg("Starting signaling server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	l.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		l.Error().Err(err).Msg("Server forced to shutdown")
	}

	hub.Stop()
	l.Info().Msg("Server exited")
}
