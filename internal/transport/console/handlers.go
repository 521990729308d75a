package console

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

var errInvalidInput = errors.New("invalid input")

const helpText = `Commands:
  <row> <col>       place X, rows and columns are numbered 1 to 3
  move <row> <col>  same as above
  board             show the board
  new               start a new game
  load <board>      resume from nine cells row by row, e.g. X...O.... ("." is empty)
  help              show this help
  quit              leave
`

func (that *Server) handleMove(ctx context.Context, args []string) error {
	log := that.logger.With("method", "handleMove")

	move, err := parseMove(args)
	if err != nil {
		that.printf("%v. Type a row and a column, for example: 2 3\n", err)
		return nil
	}

	game, err := that.uGame.HumanTurn(ctx, move)
	switch {
	case errors.Is(err, apperror.ErrGameFinished):
		that.printf("The game is over. Type 'new' to play again.\n")
		return nil
	case errors.Is(err, apperror.ErrInvalidMove):
		that.printf("That cell is taken or off the board, try another.\n")
		return nil
	case err != nil:
		log.Error("failed to make turn", "error", err)
		that.printf("Move rejected: %v\n", err)
		return nil
	}

	that.printf("\n")
	that.render(game)

	if game.IsFinished() {
		that.reportOutcome(game)
		return nil
	}

	if game.IsComputerTurn() {
		return that.computerTurn(ctx)
	}

	return nil
}

func (that *Server) computerTurn(ctx context.Context) error {
	if that.delay > 0 {
		timer := time.NewTimer(that.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}
	}

	move, err := that.uGame.ComputerTurn(ctx)
	if err != nil {
		return fmt.Errorf("computer failed to make turn: %w", err)
	}

	game := that.uGame.Game()
	that.printf("Computer plays %d %d\n\n", move.Row+1, move.Col+1)
	that.render(game)

	if game.IsFinished() {
		that.reportOutcome(game)
	}

	return nil
}

func (that *Server) handleBoard(_ context.Context, _ []string) error {
	game := that.uGame.Game()
	that.render(game)

	if game.IsFinished() {
		that.reportOutcome(game)
	}

	return nil
}

func (that *Server) handleNewGame(ctx context.Context, _ []string) error {
	game := that.uGame.NewGame(ctx)
	that.printf("New game.\n\n")
	that.render(game)

	return nil
}

func (that *Server) handleLoad(ctx context.Context, args []string) error {
	if len(args) != 1 {
		that.printf("Type the board as nine cells, for example: load X...O....\n")
		return nil
	}

	game, err := that.uGame.LoadGame(ctx, strings.ToUpper(args[0]))
	switch {
	case errors.Is(err, apperror.ErrInvalidBoardKey):
		that.printf("A board is nine cells of X, O or '.', for example: X...O....\n")
		return nil
	case errors.Is(err, apperror.ErrUnreachablePosition):
		that.printf("That position cannot come up in a game: %v\n", err)
		return nil
	case err != nil:
		that.printf("Could not load the board: %v\n", err)
		return nil
	}

	that.printf("Board loaded.\n\n")
	that.render(game)

	if game.IsFinished() {
		that.reportOutcome(game)
		return nil
	}

	if game.IsComputerTurn() {
		return that.computerTurn(ctx)
	}

	return nil
}

func (that *Server) handleHelp(_ context.Context, _ []string) error {
	that.printf("%s", helpText)
	return nil
}

func (that *Server) handleQuit(_ context.Context, _ []string) error {
	that.printf("Bye.\n")
	return errQuit
}

// parseMove turns "row col" (1-based) into a zero-based Move. Range is checked by the board.
func parseMove(args []string) (entity.Move, error) {
	if len(args) != 2 {
		return entity.Move{}, fmt.Errorf("%w: expected 2 numbers, got %d", errInvalidInput, len(args))
	}

	row, err := strconv.Atoi(args[0])
	if err != nil {
		return entity.Move{}, fmt.Errorf("%w: row %q", errInvalidInput, args[0])
	}

	col, err := strconv.Atoi(args[1])
	if err != nil {
		return entity.Move{}, fmt.Errorf("%w: column %q", errInvalidInput, args[1])
	}

	return entity.Move{Row: row - 1, Col: col - 1}, nil
}

func isNumber(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}
