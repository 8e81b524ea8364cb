package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/tomaszchojnowski/heatcalc/pkg/climate"
)

// ErrNotFound is returned for an unknown or expired session.
var ErrNotFound = errors.New("session not found")

// Session is an editing session on one building.
type Session struct {
	ID            string             `json:"id"`
	Postcode      string             `json:"postcode"`
	Conditions    climate.Conditions `json:"conditions"`
	IncludeGrants bool               `json:"includeGrants"`
	History       *Log               `json:"history"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// Building returns the current building snapshot.
func (s *Session) Building() ([]byte, bool) {
	if s.History == nil {
		return nil, false
	}
	return s.History.Current()
}

// Store persists sessions. Implementations hand out independent copies, so
// callers may modify a loaded session freely until they Put it back.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Put(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

func encode(s *Session) (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encoding session %s: %w", s.ID, err)
	}
	return string(data), nil
}

func decode(id, data string) (*Session, error) {
	var s Session
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, fmt.Errorf("decoding session %s: %w", id, err)
	}
	if s.History == nil {
		s.History = NewLog(DefaultLimit)
	}
	return &s, nil
}

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	data, ok := m.data[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return decode(id, data)
}

func (m *MemoryStore) Put(_ context.Context, s *Session) error {
	data, err := encode(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[s.ID] = data
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.data, id)
	m.mu.Unlock()
	return nil
}

// ErrCacheMiss is returned by a KVStore for a missing key.
var ErrCacheMiss = errors.New("cache miss")

// KVStore is the key-value subset of Redis the session store needs.
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// RedisKVStore is a KVStore on a go-redis client.
type RedisKVStore struct {
	client *redis.Client
}

func NewRedisKVStore(client *redis.Client) *RedisKVStore {
	return &RedisKVStore{client: client}
}

func (r *RedisKVStore) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrCacheMiss
		}
		return "", err
	}
	return val, nil
}

func (r *RedisKVStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *RedisKVStore) Del(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// NewRedisClient connects to Redis and checks the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", addr, err)
	}
	return client, nil
}

// KeyPrefix namespaces session keys.
const KeyPrefix = "heatcalc:session:"

// RedisStore keeps JSON-encoded sessions in a KVStore. Each Put refreshes
// the session TTL.
type RedisStore struct {
	kv  KVStore
	ttl time.Duration
}

// NewRedisStore returns a session store over kv. A zero ttl keeps
// sessions forever.
func NewRedisStore(kv KVStore, ttl time.Duration) *RedisStore {
	return &RedisStore{kv: kv, ttl: ttl}
}

func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := r.kv.Get(ctx, KeyPrefix+id)
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("loading session %s: %w", id, err)
	}
	return decode(id, data)
}

func (r *RedisStore) Put(ctx context.Context, s *Session) error {
	data, err := encode(s)
	if err != nil {
		return err
	}
	if err := r.kv.Set(ctx, KeyPrefix+s.ID, data, r.ttl); err != nil {
		return fmt.Errorf("saving session %s: %w", s.ID, err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.kv.Del(ctx, KeyPrefix+id)
}
