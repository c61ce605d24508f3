package albums

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces album keys in Redis.
const KeyPrefix = "album:"

var (
	// ErrAlbumNotFound is returned when no album is stored under a key.
	ErrAlbumNotFound = errors.New("album not found")
	// ErrInvalidSeed is returned when seed data is not a JSON object of albums.
	ErrInvalidSeed = errors.New("seed data must be a JSON object keyed by album id")
)

// Album is one stored album.
type Album struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Year   int    `json:"year,omitempty"`
	Genre  string `json:"genre,omitempty"`
}

// Store reads albums from Redis.
type Store struct {
	client redis.UniversalClient
}

// NewStore wraps a Redis client.
func NewStore(client redis.UniversalClient) *Store {
	return &Store{client: client}
}

// Ping checks that Redis answers.
func (s *Store) Ping(ctx context.Context) error {
	err := s.client.Ping(ctx).Err()
	if err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}

	return nil
}

// Get returns the album stored under key.
func (s *Store) Get(ctx context.Context, key string) (*Album, error) {
	raw, err := s.client.Get(ctx, KeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrAlbumNotFound, key)
	}

	if err != nil {
		return nil, fmt.Errorf("get album %s: %w", key, err)
	}

	var album Album

	err = json.Unmarshal(raw, &album)
	if err != nil {
		return nil, fmt.Errorf("decode album %s: %w", key, err)
	}

	if album.ID == "" {
		album.ID = key
	}

	return &album, nil
}

// ParseSeed decodes seed data: a JSON object mapping album keys to albums.
func ParseSeed(data []byte) (map[string]Album, error) {
	var albums map[string]Album

	err := json.Unmarshal(data, &albums)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSeed, err)
	}

	return albums, nil
}

// Seed parses data and stores it with SeedAlbums.
func (s *Store) Seed(ctx context.Context, data []byte) (int, error) {
	albums, err := ParseSeed(data)
	if err != nil {
		return 0, err
	}

	return s.SeedAlbums(ctx, albums)
}

// SeedAlbums stores every album that is not stored yet and returns how many were added.
// Existing keys are left untouched so edits made at runtime survive a restart.
func (s *Store) SeedAlbums(ctx context.Context, albums map[string]Album) (int, error) {
	added := 0

	for key, album := range albums {
		album.ID = key

		encoded, err := json.Marshal(album)
		if err != nil {
			return added, fmt.Errorf("encode album %s: %w", key, err)
		}

		ok, err := s.client.SetNX(ctx, KeyPrefix+key, encoded, 0).Result()
		if err != nil {
			return added, fmt.Errorf("seed album %s: %w", key, err)
		}

		if ok {
			added++
		}
	}

	return added, nil
}
