package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-solo/internal/repository"
	"github.com/rocketscienceinc/tictactoe-solo/internal/tictactoe"
)

const instrumentationName = "github.com/rocketscienceinc/tictactoe-solo/internal/usecase"

var tracer = otel.Tracer(instrumentationName)

type moveRepo interface {
	Save(ctx context.Context, board *entity.Board, move entity.Move) error
	GetByBoard(ctx context.Context, board *entity.Board) (entity.Move, error)
}

type searcher interface {
	Search(board *entity.Board) (minimax.Result, error)
}

// GameManager owns the single game of a session: the board and whose turn it is.
type GameManager struct {
	logger   *slog.Logger
	moveRepo moveRepo
	searcher searcher

	game *entity.Game
}

func NewGameManager(logger *slog.Logger, moveRepo moveRepo, searcher searcher) *GameManager {
	manager := &GameManager{
		logger: logger.With("component", "game_manager"),

		moveRepo: moveRepo,
		searcher: searcher,
	}
	manager.game = manager.newGame()

	return manager
}

func (that *GameManager) Game() *entity.Game {
	return that.game
}

// NewGame drops the current game and starts an empty one with the human to move.
func (that *GameManager) NewGame(ctx context.Context) *entity.Game {
	_, span := tracer.Start(ctx, "game.NewGame")
	defer span.End()

	that.game = that.newGame()
	span.SetAttributes(attribute.String("game.id", that.game.ID))

	return that.game
}

// LoadGame replaces the current game with one resumed at the position encoded by key.
// The current game is kept when key is malformed or the position cannot arise in play.
func (that *GameManager) LoadGame(ctx context.Context, key string) (*entity.Game, error) {
	_, span := tracer.Start(ctx, "game.LoadGame", trace.WithAttributes(attribute.String("board", key)))
	defer span.End()

	board, err := entity.ParseBoard(key)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "bad board key")
		return that.game, fmt.Errorf("failed to load game: %w", err)
	}

	game, err := entity.GameFromBoard(uuid.NewString(), board)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "unreachable position")
		return that.game, fmt.Errorf("failed to load game: %w", err)
	}

	that.game = game
	span.SetAttributes(attribute.String("game.id", game.ID))
	that.logger.Info("game loaded", "gameID", game.ID, "board", key, "turn", game.Turn.String())

	return game, nil
}

func (that *GameManager) newGame() *entity.Game {
	game := entity.NewGame(uuid.NewString())
	that.logger.Info("new game", "gameID", game.ID)

	return game
}

// HumanTurn applies the human's move. A rejected move leaves the game as it was.
func (that *GameManager) HumanTurn(ctx context.Context, move entity.Move) (*entity.Game, error) {
	log := that.logger.With("method", "HumanTurn", "gameID", that.game.ID)

	_, span := tracer.Start(ctx, "game.HumanTurn", trace.WithAttributes(
		attribute.String("game.id", that.game.ID),
		attribute.Int("move.row", move.Row),
		attribute.Int("move.col", move.Col),
	))
	defer span.End()

	if err := tictactoe.MakeTurn(that.game, entity.HumanMark, move); err != nil {
		log.Debug("move rejected", "move", move.String(), "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "move rejected")
		return that.game, fmt.Errorf("failed to make turn: %w", err)
	}

	log.Debug("human moved", "move", move.String(), "board", that.game.Board.Key())
	that.logOutcome(log)

	return that.game, nil
}

// ComputerTurn picks the computer's move, from the move cache when it has one, and applies it.
func (that *GameManager) ComputerTurn(ctx context.Context) (entity.Move, error) {
	log := that.logger.With("method", "ComputerTurn", "gameID", that.game.ID)

	ctx, span := tracer.Start(ctx, "game.ComputerTurn", trace.WithAttributes(
		attribute.String("game.id", that.game.ID),
		attribute.String("board", that.game.Board.Key()),
	))
	defer span.End()

	if that.game.IsFinished() {
		span.SetStatus(codes.Error, "game finished")
		return entity.Move{}, apperror.ErrGameFinished
	}

	if that.game.Turn != entity.ComputerMark {
		span.SetStatus(codes.Error, "out of turn")
		return entity.Move{}, fmt.Errorf("%w: %s to move", apperror.ErrNotYourTurn, that.game.Turn)
	}

	move, err := that.chooseMove(ctx, log, span)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "no move")
		return entity.Move{}, err
	}

	if err = tictactoe.MakeTurn(that.game, entity.ComputerMark, move); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "move rejected")
		return entity.Move{}, fmt.Errorf("computer failed to make turn: %w", err)
	}

	span.SetAttributes(attribute.Int("move.row", move.Row), attribute.Int("move.col", move.Col))
	that.logOutcome(log)

	return move, nil
}

func (that *GameManager) chooseMove(ctx context.Context, log *slog.Logger, span trace.Span) (entity.Move, error) {
	board := &that.game.Board

	move, err := that.moveRepo.GetByBoard(ctx, board)
	switch {
	case err == nil && move.InRange() && board.At(move) == entity.Empty:
		span.SetAttributes(attribute.Bool("cache.hit", true))
		log.Debug("cached move", "move", move.String())
		return move, nil
	case err == nil:
		log.Warn("ignoring cached move on occupied cell", "move", move.String(), "board", board.Key())
	case !errors.Is(err, repository.ErrMoveNotFound):
		log.Error("failed to read move cache", "error", err)
	}

	span.SetAttributes(attribute.Bool("cache.hit", false))

	result, err := that.searcher.Search(board)
	if err != nil {
		return entity.Move{}, fmt.Errorf("failed to search move: %w", err)
	}

	span.SetAttributes(attribute.Int("search.nodes", result.Nodes), attribute.Int("search.score", result.Score))
	log.Debug("searched move", "move", result.Move.String(), "score", result.Score, "nodes", result.Nodes)

	if err = that.moveRepo.Save(ctx, board, result.Move); err != nil {
		log.Error("failed to save move", "error", err)
	}

	return result.Move, nil
}

func (that *GameManager) logOutcome(log *slog.Logger) {
	switch outcome := that.game.Outcome(); outcome.State {
	case entity.StateWin:
		log.Info("game won", "winner", outcome.Winner.String(), "board", that.game.Board.Key())
	case entity.StateDraw:
		log.Info("game drawn", "board", that.game.Board.Key())
	}
}
