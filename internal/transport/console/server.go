package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

var errQuit = errors.New("quit")

type uGame interface {
	Game() *entity.Game
	NewGame(ctx context.Context) *entity.Game
	LoadGame(ctx context.Context, key string) (*entity.Game, error)

	HumanTurn(ctx context.Context, move entity.Move) (*entity.Game, error)
	ComputerTurn(ctx context.Context) (entity.Move, error)
}

// Server is the terminal front end: it reads commands line by line and draws the board as text.
type Server struct {
	logger *slog.Logger
	uGame  uGame
	out    io.Writer
	delay  time.Duration

	handlers map[string]func(ctx context.Context, args []string) error
}

func New(logger *slog.Logger, uGame uGame, out io.Writer, delay time.Duration) *Server {
	server := &Server{
		logger: logger.With("component", "console"),
		uGame:  uGame,
		out:    out,
		delay:  delay,

		handlers: make(map[string]func(context.Context, []string) error),
	}

	server.handlers["move"] = server.handleMove
	server.handlers["board"] = server.handleBoard
	server.handlers["new"] = server.handleNewGame
	server.handlers["load"] = server.handleLoad
	server.handlers["help"] = server.handleHelp
	server.handlers["quit"] = server.handleQuit
	server.handlers["exit"] = server.handleQuit

	return server
}

// Start - runs the read loop until quit, end of input or ctx cancellation.
func (that *Server) Start(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	that.printf("Tic-Tac-Toe: you are X, the computer is O. Type 'help' for commands.\n\n")
	that.render(that.uGame.Game())
	that.prompt()

	for {
		select {
		case <-ctx.Done():
			that.logger.Info("console stopped", "reason", ctx.Err())
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					if err != nil {
						return fmt.Errorf("failed to read input: %w", err)
					}
				default:
				}
				return nil
			}

			if err := that.handleLine(ctx, line); err != nil {
				if errors.Is(err, errQuit) {
					return nil
				}
				return err
			}
			that.prompt()
		}
	}
}

func (that *Server) handleLine(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	fields[0] = strings.ToLower(fields[0])

	// "2 3" is shorthand for "move 2 3"
	if len(fields) == 2 && isNumber(fields[0]) {
		fields = append([]string{"move"}, fields...)
	}

	handler, ok := that.handlers[fields[0]]
	if !ok {
		that.printf("Unknown command %q. Type 'help' for commands.\n", fields[0])
		return nil
	}

	return handler(ctx, fields[1:])
}

func (that *Server) prompt() {
	game := that.uGame.Game()
	if game.IsFinished() {
		that.printf("> ")
		return
	}

	that.printf("Your move (row col)> ")
}

func (that *Server) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(that.out, format, args...); err != nil {
		that.logger.Error("failed to write output", "error", err)
	}
}
