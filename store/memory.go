package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/openarcade/arcade-server/game"
)

// Memory is an in-process Store used by tests. It round-trips rooms and
// profiles through JSON so tests exercise the same snapshot encoding the
// redis store ships over the wire.
type Memory struct {
	mu          sync.RWMutex
	room        []byte
	hosting     bool
	joinedHost  string
	recentRooms []string
	profiles    map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{profiles: make(map[string][]byte)}
}

func (m *Memory) Room(ctx context.Context) (*game.Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.room == nil {
		return nil, ErrNotFound
	}
	var room game.Room
	if err := json.Unmarshal(m.room, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (m *Memory) SetRoom(ctx context.Context, room *game.Room) error {
	data, err := json.Marshal(room)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.room = data
	return nil
}

func (m *Memory) ClearRoom(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.room = nil
	return nil
}

func (m *Memory) Hosting(ctx context.Context) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hosting, nil
}

func (m *Memory) SetHosting(ctx context.Context, hosting bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hosting = hosting
	return nil
}

func (m *Memory) JoinedHost(ctx context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.joinedHost, nil
}

func (m *Memory) SetJoinedHost(ctx context.Context, hostID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.joinedHost = hostID
	return nil
}

func (m *Memory) RecentRooms(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rooms := make([]string, len(m.recentRooms))
	copy(rooms, m.recentRooms)
	return rooms, nil
}

func (m *Memory) SetRecentRooms(ctx context.Context, rooms []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recentRooms = append([]string(nil), rooms...)
	return nil
}

func (m *Memory) Profile(ctx context.Context, wallet string) (*game.PlayerProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.profiles[wallet]
	if !ok {
		return nil, ErrNotFound
	}
	var profile game.PlayerProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (m *Memory) SaveProfile(ctx context.Context, profile *game.PlayerProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[profile.Wallet] = data
	return nil
}
