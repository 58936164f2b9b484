package preferences

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Flag keys. Each flag is stored independently as "true"/"false".
const (
	SidebarCollapsed  = "sidebar-collapsed"
	SettingsOpen      = "settings-open"
	SettingsCollapsed = "settings-collapsed"
)

const keyPrefix = "obralog:prefs:" // obralog:prefs:{client}:{flag}

// Store persists per-client UI flags.
type Store interface {
	Get(ctx context.Context, client, key string) (bool, error)
	Set(ctx context.Context, client, key string, value bool) error
}

// RedisStore keeps flags in Redis, one string key per client and flag.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a store. A zero ttl keeps flags forever.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Get reads a flag. Absent or unparsable values read as false.
func (s *RedisStore) Get(ctx context.Context, client, key string) (bool, error) {
	raw, err := s.client.Get(ctx, s.key(client, key)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get preference %s: %w", key, err)
	}
	return ParseFlag(raw), nil
}

func (s *RedisStore) Set(ctx context.Context, client, key string, value bool) error {
	if err := s.client.Set(ctx, s.key(client, key), strconv.FormatBool(value), s.ttl).Err(); err != nil {
		return fmt.Errorf("set preference %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) key(client, key string) string {
	return keyPrefix + client + ":" + key
}

// ParseFlag accepts only the exact strings written by Set; anything else is false.
func ParseFlag(raw string) bool {
	return raw == "true"
}

// Flags is the persisted bundle for one client.
type Flags struct {
	SidebarCollapsed  bool `json:"sidebar_collapsed"`
	SettingsOpen      bool `json:"settings_open"`
	SettingsCollapsed bool `json:"settings_collapsed"`
}

// Load reads all persisted flags for a client. A failing read leaves that
// flag false and the first error is returned alongside the partial result.
func Load(ctx context.Context, store Store, client string) (Flags, error) {
	var f Flags
	var firstErr error

	read := func(key string, dst *bool) {
		v, err := store.Get(ctx, client, key)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return
		}
		*dst = v
	}

	read(SidebarCollapsed, &f.SidebarCollapsed)
	read(SettingsOpen, &f.SettingsOpen)
	read(SettingsCollapsed, &f.SettingsCollapsed)

	return f, firstErr
}
