package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const testFleet = "1,0,h;2,10,h;3,20,h;4,30,h;5,40,h"

func TestBattleshipPlaceShips(t *testing.T) {
	t.Run("full fleet accepted", func(t *testing.T) {
		b := NewBattleshipBoard()

		require.True(t, b.PlaceShips(PlayerOne, testFleet))
		require.True(t, b.P1Ready)
		require.True(t, b.SetupPhase, "setup continues until both fleets are in")

		require.True(t, b.PlaceShips(PlayerTwo, testFleet))
		require.False(t, b.SetupPhase)
	})

	t.Run("partial fleet rejected", func(t *testing.T) {
		b := NewBattleshipBoard()
		require.False(t, b.PlaceShips(PlayerOne, "1,0,h;2,10,h"))
		require.False(t, b.P1Ready)
	})

	t.Run("duplicate ship id rejected", func(t *testing.T) {
		b := NewBattleshipBoard()
		require.False(t, b.PlaceShips(PlayerOne, "1,0,h;1,10,h;3,20,h;4,30,h;5,40,h"))
	})

	t.Run("overlap rejected", func(t *testing.T) {
		b := NewBattleshipBoard()
		require.False(t, b.PlaceShips(PlayerOne, "1,0,h;2,4,h;3,20,h;4,30,h;5,40,h"))
	})

	t.Run("out of bounds rejected", func(t *testing.T) {
		b := NewBattleshipBoard()
		require.False(t, b.PlaceShips(PlayerOne, "1,6,h;2,10,h;3,20,h;4,30,h;5,40,h"))
		require.False(t, b.PlaceShips(PlayerOne, "1,60,v;2,10,h;3,20,h;4,30,h;5,40,h"))
	})

	t.Run("vertical placement", func(t *testing.T) {
		b := NewBattleshipBoard()
		require.True(t, b.PlaceShips(PlayerOne, "1,0,v;2,1,v;3,2,v;4,3,v;5,4,v"))
		require.Equal(t, uint8(1), b.P1Ships[0])
		require.Equal(t, uint8(1), b.P1Ships[40])
	})
}

func TestBattleshipAttack(t *testing.T) {
	newStartedBoard := func(t *testing.T) *BattleshipBoard {
		t.Helper()
		b := NewBattleshipBoard()
		require.True(t, b.PlaceShips(PlayerOne, testFleet))
		require.True(t, b.PlaceShips(PlayerTwo, testFleet))
		return b
	}

	t.Run("rejected during setup", func(t *testing.T) {
		b := NewBattleshipBoard()
		ok, _, _ := b.Attack(PlayerOne, 0)
		require.False(t, ok)
	})

	t.Run("hit, miss and repeat", func(t *testing.T) {
		b := newStartedBoard(t)

		ok, hit, sunk := b.Attack(PlayerOne, 40)
		require.True(t, ok)
		require.True(t, hit)
		require.Zero(t, sunk)

		ok, hit, _ = b.Attack(PlayerOne, 90)
		require.True(t, ok)
		require.False(t, hit)

		ok, _, _ = b.Attack(PlayerOne, 40)
		require.False(t, ok, "already attacked")

		require.Equal(t, []uint8{40, 90}, b.Moves)
	})

	t.Run("sinking the destroyer", func(t *testing.T) {
		b := newStartedBoard(t)

		_, _, sunk := b.Attack(PlayerOne, 40)
		require.Zero(t, sunk)

		ok, hit, sunk := b.Attack(PlayerOne, 41)
		require.True(t, ok)
		require.True(t, hit)
		require.Equal(t, uint8(5), sunk)
		require.Equal(t, uint8(1), b.ShipsSunk[1])
	})

	t.Run("sinking the fleet wins", func(t *testing.T) {
		b := newStartedBoard(t)

		// The test fleet occupies positions 0-4, 10-13, 20-22, 30-32, 40-41.
		cells := [][]int{
			{0, 1, 2, 3, 4},
			{10, 11, 12, 13},
			{20, 21, 22},
			{30, 31, 32},
			{40, 41},
		}
		for _, ship := range cells {
			for _, pos := range ship {
				ok, hit, _ := b.Attack(PlayerOne, pos)
				require.True(t, ok)
				require.True(t, hit)
			}
		}

		require.Equal(t, uint8(5), b.ShipsSunk[1])
		winner := b.CheckWinner()
		require.NotNil(t, winner)
		require.Equal(t, PlayerOne, *winner)
	})
}
