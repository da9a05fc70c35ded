package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/keshon/partykit/internal/command"
	"github.com/keshon/partykit/internal/config"
	"github.com/keshon/partykit/internal/discord"
	"github.com/keshon/partykit/internal/storage"
	"github.com/keshon/partykit/pkg/commands"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.New()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open storage")
	}
	defer store.Close()

	bot := commands.NewBot(cfg.CommandPrefix,
		commands.WithOwners(cfg.OwnerIDs...),
	)
	if err := command.RegisterAll(bot, store); err != nil {
		log.Fatal().Err(err).Msg("failed to register commands")
	}

	adapter := discord.NewBot(cfg, bot, store)

	errCh := make(chan error, 1)
	go func() {
		if err := adapter.Run(ctx); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Info().Stringer("signal", s).Msg("shutting down")
		cancel()
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("bot error")
		}
		cancel()
	case <-ctx.Done():
	}

	log.Info().Msg("bot exited cleanly")
}
