// Package redisdoc keeps the item collection as one JSON array stored under
// a single Redis key. It lets several server instances share a collection
// without a shared filesystem.
package redisdoc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/sakif/itembox/internal/model"
	"github.com/sakif/itembox/internal/repository"
	"github.com/sakif/itembox/internal/repository/jsonfile"
)

var _ repository.Document = (*Store)(nil)

// DefaultKey is used when no key is configured.
const DefaultKey = "itembox:items"

// Store is a repository.Document backed by a Redis string value.
type Store struct {
	client *redis.Client
	key    string
}

// New wraps an existing client. The caller owns the client's lifecycle.
func New(client *redis.Client, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{client: client, key: key}
}

// Load returns the stored collection, or an empty one when the key is unset.
func (s *Store) Load(ctx context.Context) ([]model.Item, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []model.Item{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redisdoc: get %s: %w", s.key, err)
	}

	var items []model.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("redisdoc: decoding %s: %w", s.key, err)
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

// Save overwrites the key with the full collection. SET replaces the value
// in one command, so readers see either the old or the new array.
func (s *Store) Save(ctx context.Context, items []model.Item) error {
	data, err := jsonfile.Encode(items)
	if err != nil {
		return fmt.Errorf("redisdoc: encoding: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redisdoc: set %s: %w", s.key, err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
