package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReversiOpeningMoves(t *testing.T) {
	b := NewReversiBoard()

	require.Equal(t, []int{19, 26, 37, 44}, b.ValidMoves(PlayerOne))
	require.Len(t, b.ValidMoves(PlayerTwo), 4)
}

func TestReversiMakeMove(t *testing.T) {
	t.Run("opening placement flips one piece", func(t *testing.T) {
		b := NewReversiBoard()

		require.Equal(t, 1, b.MakeMove(26, PlayerOne))
		require.Equal(t, PlayerOne, b.Cells[26])
		require.Equal(t, PlayerOne, b.Cells[27], "the bracketed white piece flips")

		p1, p2 := b.CountPieces()
		require.Equal(t, 4, p1)
		require.Equal(t, 1, p2)
	})

	t.Run("occupied or unbracketed cells are rejected", func(t *testing.T) {
		b := NewReversiBoard()

		require.Equal(t, 0, b.MakeMove(27, PlayerOne), "occupied")
		require.Equal(t, 0, b.MakeMove(0, PlayerOne), "no bracket")
		require.Equal(t, 0, b.MakeMove(64, PlayerOne), "out of range")
		require.Empty(t, b.Moves)
	})

	t.Run("placement resets the pass streak", func(t *testing.T) {
		b := NewReversiBoard()
		b.Pass()
		require.Equal(t, uint8(1), b.ConsecutivePasses)

		require.NotZero(t, b.MakeMove(19, PlayerOne))
		require.Equal(t, uint8(0), b.ConsecutivePasses)
	})
}

func TestReversiGameOver(t *testing.T) {
	t.Run("two passes end the game", func(t *testing.T) {
		b := NewReversiBoard()
		require.False(t, b.IsGameOver())

		b.Pass()
		require.False(t, b.IsGameOver())

		b.Pass()
		require.True(t, b.IsGameOver())
	})

	t.Run("winner by count", func(t *testing.T) {
		b := NewReversiBoard()
		require.NotZero(t, b.MakeMove(26, PlayerOne))
		b.Pass()
		b.Pass()

		winner := b.Winner()
		require.NotNil(t, winner)
		require.Equal(t, PlayerOne, *winner)
	})

	t.Run("tie has no winner", func(t *testing.T) {
		require.Nil(t, NewReversiBoard().Winner())
	})
}
