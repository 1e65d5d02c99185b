package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/openarcade/arcade-server/game"
)

// Redis key layout, namespaced per node so several nodes can share one
// redis in development.
const (
	roomKey        = "room"
	hostingKey     = "hosting"
	joinedHostKey  = "joined_host"
	recentRoomsKey = "recent_rooms"
	profilesKey    = "profiles"
)

// RedisStore keeps the chain registry in redis. Snapshots are stored as
// JSON strings; profiles live in one hash keyed by wallet.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisStore(rdb *redis.Client, nodeID string) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: "node:" + nodeID + ":"}
}

func (s *RedisStore) key(name string) string {
	return s.prefix + name
}

func (s *RedisStore) Room(ctx context.Context) (*game.Room, error) {
	data, err := s.rdb.Get(ctx, s.key(roomKey)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading room: %w", err)
	}

	var room game.Room
	if err := json.Unmarshal([]byte(data), &room); err != nil {
		return nil, fmt.Errorf("decoding room snapshot: %w", err)
	}
	return &room, nil
}

func (s *RedisStore) SetRoom(ctx context.Context, room *game.Room) error {
	data, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("encoding room snapshot: %w", err)
	}
	return s.rdb.Set(ctx, s.key(roomKey), string(data), 0).Err()
}

func (s *RedisStore) ClearRoom(ctx context.Context) error {
	return s.rdb.Del(ctx, s.key(roomKey)).Err()
}

func (s *RedisStore) Hosting(ctx context.Context) (bool, error) {
	val, err := s.rdb.Get(ctx, s.key(hostingKey)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return val == "1", nil
}

func (s *RedisStore) SetHosting(ctx context.Context, hosting bool) error {
	val := "0"
	if hosting {
		val = "1"
	}
	return s.rdb.Set(ctx, s.key(hostingKey), val, 0).Err()
}

func (s *RedisStore) JoinedHost(ctx context.Context) (string, error) {
	val, err := s.rdb.Get(ctx, s.key(joinedHostKey)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return val, err
}

func (s *RedisStore) SetJoinedHost(ctx context.Context, hostID string) error {
	if hostID == "" {
		return s.rdb.Del(ctx, s.key(joinedHostKey)).Err()
	}
	return s.rdb.Set(ctx, s.key(joinedHostKey), hostID, 0).Err()
}

func (s *RedisStore) RecentRooms(ctx context.Context) ([]string, error) {
	data, err := s.rdb.Get(ctx, s.key(recentRoomsKey)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var rooms []string
	if err := json.Unmarshal([]byte(data), &rooms); err != nil {
		return nil, fmt.Errorf("decoding recent rooms: %w", err)
	}
	return rooms, nil
}

func (s *RedisStore) SetRecentRooms(ctx context.Context, rooms []string) error {
	data, err := json.Marshal(rooms)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.key(recentRoomsKey), string(data), 0).Err()
}

func (s *RedisStore) Profile(ctx context.Context, wallet string) (*game.PlayerProfile, error) {
	data, err := s.rdb.HGet(ctx, s.key(profilesKey), wallet).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}

	var profile game.PlayerProfile
	if err := json.Unmarshal([]byte(data), &profile); err != nil {
		return nil, fmt.Errorf("decoding profile: %w", err)
	}
	return &profile, nil
}

func (s *RedisStore) SaveProfile(ctx context.Context, profile *game.PlayerProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return s.rdb.HSet(ctx, s.key(profilesKey), profile.Wallet, string(data)).Err()
}
