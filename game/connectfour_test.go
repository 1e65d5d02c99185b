package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConnectFourDrop(t *testing.T) {
	b := NewConnectFourBoard()

	require.Equal(t, 0, b.DropPiece(3, PlayerOne))
	require.Equal(t, 1, b.DropPiece(3, PlayerTwo))
	require.Equal(t, 2, b.DropPiece(3, PlayerOne))

	require.Equal(t, PlayerOne, b.Cells[0*7+3])
	require.Equal(t, PlayerTwo, b.Cells[1*7+3])
	require.Equal(t, []uint8{3, 3, 3}, b.Moves)
}

func TestConnectFourFullColumn(t *testing.T) {
	b := NewConnectFourBoard()

	for i := 0; i < 6; i++ {
		require.GreaterOrEqual(t, b.DropPiece(0, PlayerOne), 0)
	}
	require.Equal(t, -1, b.DropPiece(0, PlayerTwo))
	require.Equal(t, -1, b.DropPiece(-1, PlayerOne))
	require.Equal(t, -1, b.DropPiece(7, PlayerOne))

	require.NotContains(t, b.ValidColumns(), 0)
	require.Len(t, b.ValidColumns(), 6)
}

func TestConnectFourWinners(t *testing.T) {
	t.Run("horizontal", func(t *testing.T) {
		b := NewConnectFourBoard()
		for col := 0; col < 4; col++ {
			b.DropPiece(col, PlayerOne)
		}
		winner := b.CheckWinner()
		require.NotNil(t, winner)
		require.Equal(t, PlayerOne, *winner)
	})

	t.Run("vertical", func(t *testing.T) {
		b := NewConnectFourBoard()
		for i := 0; i < 4; i++ {
			b.DropPiece(5, PlayerTwo)
		}
		winner := b.CheckWinner()
		require.NotNil(t, winner)
		require.Equal(t, PlayerTwo, *winner)
	})

	t.Run("rising diagonal", func(t *testing.T) {
		b := NewConnectFourBoard()
		// Build the staircase under the diagonal with opponent filler.
		heights := []int{0, 1, 2, 3}
		for col, h := range heights {
			for i := 0; i < h; i++ {
				b.DropPiece(col, PlayerTwo)
			}
			b.DropPiece(col, PlayerOne)
		}
		winner := b.CheckWinner()
		require.NotNil(t, winner)
		require.Equal(t, PlayerOne, *winner)
	})

	t.Run("no winner on a fresh board", func(t *testing.T) {
		require.Nil(t, NewConnectFourBoard().CheckWinner())
	})
}

func TestConnectFourDraw(t *testing.T) {
	b := NewConnectFourBoard()

	// Fill the board in a pattern that never lines up four: columns are
	// filled in pairs with the pair owner alternating every two rows.
	for col := 0; col < 7; col++ {
		for row := 0; row < 6; row++ {
			player := PlayerOne
			if (row/2+col)%2 == 0 {
				player = PlayerTwo
			}
			require.GreaterOrEqual(t, b.DropPiece(col, player), 0)
		}
	}

	require.True(t, b.IsFull())
	require.Empty(t, b.ValidColumns())
	require.Nil(t, b.CheckWinner())
}
