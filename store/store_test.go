package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openarcade/arcade-server/game"
)

func TestPushRecentRoom(t *testing.T) {
	t.Run("prepends new entries", func(t *testing.T) {
		rooms := PushRecentRoom(nil, "a:1")
		rooms = PushRecentRoom(rooms, "b:2")
		require.Equal(t, []string{"b:2", "a:1"}, rooms)
	})

	t.Run("a known host keeps its position", func(t *testing.T) {
		rooms := []string{"b:2", "a:1", "c:3"}
		require.Equal(t, []string{"b:2", "a:1", "c:3"}, PushRecentRoom(rooms, "a:1"))
	})

	t.Run("caps at ten", func(t *testing.T) {
		var rooms []string
		for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"} {
			rooms = PushRecentRoom(rooms, id)
		}
		require.Len(t, rooms, 10)
		require.Equal(t, "k", rooms[0])
		require.NotContains(t, rooms, "a")
	})
}

func TestMemoryRoomRoundTrip(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	_, err := mem.Room(ctx)
	require.ErrorIs(t, err, ErrNotFound)

	room := game.NewRoom("host:9001", "wallet-a", "alice", game.Battleship, 1000)
	require.NoError(t, mem.SetRoom(ctx, room))

	loaded, err := mem.Room(ctx)
	require.NoError(t, err)
	require.Equal(t, game.Battleship, loaded.GameType)
	require.Equal(t, game.Battleship, loaded.Board.Type())
	require.True(t, loaded.InSetupPhase())

	require.NoError(t, mem.ClearRoom(ctx))
	_, err = mem.Room(ctx)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryProfiles(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	_, err := mem.Profile(ctx, "wallet-a")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, mem.SaveProfile(ctx, &game.PlayerProfile{Wallet: "wallet-a", Username: "alice", Coins: 100}))

	profile, err := mem.Profile(ctx, "wallet-a")
	require.NoError(t, err)
	require.Equal(t, "alice", profile.Username)

	// Loaded profiles are copies, not aliases into the store.
	profile.Coins = 0
	again, err := mem.Profile(ctx, "wallet-a")
	require.NoError(t, err)
	require.Equal(t, uint64(100), again.Coins)
}
