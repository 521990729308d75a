package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-solo/internal/config"
	"github.com/rocketscienceinc/tictactoe-solo/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-solo/internal/repository"
	"github.com/rocketscienceinc/tictactoe-solo/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-solo/internal/telemetry"
	"github.com/rocketscienceinc/tictactoe-solo/internal/transport/console"
	"github.com/rocketscienceinc/tictactoe-solo/internal/usecase"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	shutdownTracing, err := telemetry.InitTracing(conf.Telemetry.TraceFile)
	if err != nil {
		return fmt.Errorf("could not init tracing: %w", err)
	}

	defer func() {
		if err = shutdownTracing(context.Background()); err != nil {
			log.Error("could not shutdown tracing", "error", err)
		}
	}()

	moveRepo, closeRepo, err := newMoveRepository(ctx, conf.MoveCache)
	if err != nil {
		return err
	}

	defer func() {
		if err = closeRepo.Close(); err != nil {
			log.Error("could not close move cache", "error", err)
		}
	}()

	var options []minimax.Option
	if !conf.Search.DisableTranspositionTable {
		options = append(options, minimax.WithTranspositionTable())
	}

	gameManager := usecase.NewGameManager(logger, moveRepo, minimax.New(options...))
	consoleServer := console.New(logger, gameManager, os.Stdout, conf.Presentation.ComputerDelay)

	log.Info("Starting console", "moveCache", conf.MoveCache.Backend)
	if err = consoleServer.Start(ctx, os.Stdin); err != nil {
		return fmt.Errorf("console error: %w", err)
	}

	return nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func newMoveRepository(ctx context.Context, conf config.MoveCache) (repository.MoveRepository, io.Closer, error) {
	switch conf.Backend {
	case config.MoveCacheRedis:
		redisStorage, err := storage.New(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewMoveRepository(redisStorage, conf.TTL), redisStorage, nil
	case config.MoveCacheNone:
		return repository.NewNoopMoveRepository(), nopCloser{}, nil
	default:
		return repository.NewMemoryMoveRepository(), nopCloser{}, nil
	}
}
