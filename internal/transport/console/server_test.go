package console

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-solo/internal/repository"
	"github.com/rocketscienceinc/tictactoe-solo/internal/usecase"
)

func newTestServer(out io.Writer) *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager := usecase.NewGameManager(logger, repository.NewMemoryMoveRepository(), minimax.New())

	return New(logger, manager, out, 0)
}

func run(t *testing.T, input ...string) string {
	t.Helper()

	var out bytes.Buffer
	server := newTestServer(&out)

	err := server.Start(context.Background(), strings.NewReader(strings.Join(input, "\n")+"\n"))
	require.NoError(t, err)

	return out.String()
}

func TestServer_Start(t *testing.T) {
	t.Run("Help and quit", func(t *testing.T) {
		out := run(t, "help", "quit")

		assert.Contains(t, out, "Tic-Tac-Toe")
		assert.Contains(t, out, "Commands:")
		assert.Contains(t, out, "Bye.")
	})

	t.Run("Computer replies to a move", func(t *testing.T) {
		// Given: X in the corner
		out := run(t, "1 1", "quit")

		// Then: O takes the center, printed 1-based
		assert.Contains(t, out, "Computer plays 2 2")
		assert.Contains(t, out, "1   X |   |  ")
		assert.Contains(t, out, "2     | O |  ")
	})

	t.Run("Move command form", func(t *testing.T) {
		out := run(t, "move 1 1", "quit")

		assert.Contains(t, out, "Computer plays 2 2")
	})

	t.Run("Bad input keeps the session going", func(t *testing.T) {
		out := run(t, "dance", "1 x", "move 1 2 3", "4 4", "1 1", "2 2", "quit")

		assert.Contains(t, out, `Unknown command "dance"`)
		assert.Contains(t, out, `invalid input: column "x"`)
		assert.Contains(t, out, "invalid input: expected 2 numbers, got 3")
		assert.Contains(t, out, "That cell is taken or off the board")
		assert.Equal(t, 2, strings.Count(out, "That cell is taken or off the board"))
		assert.Contains(t, out, "Computer plays 2 2")
		assert.Contains(t, out, "Bye.")
	})

	t.Run("Computer wins against first free cell", func(t *testing.T) {
		// Given: the human tries every cell in row-major order
		var input []string
		for r := 1; r <= 3; r++ {
			for c := 1; c <= 3; c++ {
				input = append(input, string(rune('0'+r))+" "+string(rune('0'+c)))
			}
		}

		// Then: the computer wins and later moves are refused
		out := run(t, input...)

		assert.Contains(t, out, "Computer wins on")
		assert.NotContains(t, out, "You win")
		assert.Contains(t, out, "The game is over")
	})

	t.Run("New game clears the board", func(t *testing.T) {
		out := run(t, "1 1", "new", "1 1", "quit")

		assert.Contains(t, out, "New game.")
		assert.Equal(t, 2, strings.Count(out, "Computer plays 2 2"))
		assert.NotContains(t, out, "That cell is taken")
	})

	t.Run("Load hands the move to the computer", func(t *testing.T) {
		// Given: a board with X in the corner, typed in lower case
		out := run(t, "load x........", "quit")

		// Then: the computer replies from the loaded position
		assert.Contains(t, out, "Board loaded.")
		assert.Contains(t, out, "Computer plays 2 2")
	})

	t.Run("Load a finished board", func(t *testing.T) {
		out := run(t, "load XXXOO....", "1 3", "quit")

		assert.Contains(t, out, "You win on row 1!")
		assert.Contains(t, out, "The game is over")
		assert.NotContains(t, out, "Computer plays")
	})

	t.Run("Load rejects bad boards", func(t *testing.T) {
		out := run(t, "load", "load X.O", "load O........", "quit")

		assert.Contains(t, out, "Type the board as nine cells")
		assert.Contains(t, out, "A board is nine cells of X, O or '.'")
		assert.Contains(t, out, "That position cannot come up in a game")
	})

	t.Run("End of input", func(t *testing.T) {
		out := run(t, "board")

		assert.Contains(t, out, "    1   2   3")
	})

	t.Run("Cancelled context", func(t *testing.T) {
		// Given: input that never arrives
		reader, writer := io.Pipe()
		defer writer.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// Then: Start returns without error
		var out bytes.Buffer
		err := newTestServer(&out).Start(ctx, reader)
		require.NoError(t, err)
	})
}

func TestRenderBoard(t *testing.T) {
	board := entity.Board{
		{entity.MarkX, entity.Empty, entity.MarkO},
		{entity.Empty, entity.MarkX, entity.Empty},
		{entity.MarkO, entity.Empty, entity.Empty},
	}

	expected := "    1   2   3\n" +
		"1   X |   | O\n" +
		"   ---+---+---\n" +
		"2     | X |  \n" +
		"   ---+---+---\n" +
		"3   O |   |  \n"

	assert.Equal(t, expected, renderBoard(&board))
}

func TestLineName(t *testing.T) {
	names := []string{
		"row 1", "row 2", "row 3",
		"column 1", "column 2", "column 3",
		"the diagonal", "the anti-diagonal",
	}

	for i, line := range entity.WinLines {
		t.Run(names[i], func(t *testing.T) {
			assert.Equal(t, names[i], lineName(line))
		})
	}
}
