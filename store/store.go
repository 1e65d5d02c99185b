// Package store persists one chain's registry: the single room slot, the
// hosting flag, the joined-host reference, the recent-rooms list and the
// wallet-keyed player profiles. Implementations must be safe for
// concurrent readers; writers are serialized by the node executor.
package store

import (
	"context"
	"errors"

	"github.com/samber/lo"

	"github.com/openarcade/arcade-server/game"
)

// ErrNotFound reports an absent room or profile.
var ErrNotFound = errors.New("store: not found")

const maxRecentRooms = 10

type Store interface {
	// Room returns the current room snapshot, or ErrNotFound.
	Room(ctx context.Context) (*game.Room, error)
	// SetRoom replaces the room slot with the given snapshot.
	SetRoom(ctx context.Context, room *game.Room) error
	// ClearRoom empties the room slot.
	ClearRoom(ctx context.Context) error

	Hosting(ctx context.Context) (bool, error)
	SetHosting(ctx context.Context, hosting bool) error

	// JoinedHost is the host chain id this chain has joined, "" if none.
	JoinedHost(ctx context.Context) (string, error)
	SetJoinedHost(ctx context.Context, hostID string) error

	RecentRooms(ctx context.Context) ([]string, error)
	SetRecentRooms(ctx context.Context, rooms []string) error

	// Profile returns the profile for a wallet, or ErrNotFound.
	Profile(ctx context.Context, wallet string) (*game.PlayerProfile, error)
	SaveProfile(ctx context.Context, profile *game.PlayerProfile) error
}

// PushRecentRoom prepends a host id to the recent-rooms list, keeping at
// most ten entries. A host already on the list keeps its position.
func PushRecentRoom(rooms []string, hostID string) []string {
	if lo.Contains(rooms, hostID) {
		return rooms
	}
	rooms = append([]string{hostID}, rooms...)
	if len(rooms) > maxRecentRooms {
		rooms = rooms[:maxRecentRooms]
	}
	return rooms
}
