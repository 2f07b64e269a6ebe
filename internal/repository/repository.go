// Package repository declares the storage contracts the service layer
// depends on. Concrete backends live in the sub-packages.
package repository

import (
	"context"

	"github.com/sakif/itembox/internal/model"
)

// ItemRepository is what the service layer talks to.
//
// Ids are NOT durable counters: Create assigns len(collection)+1, so after a
// delete a new item can share an id with an existing one. Update touches the
// first item with a matching id; Delete removes every match.
type ItemRepository interface {
	List(ctx context.Context) ([]model.Item, error)
	Create(ctx context.Context, item *model.Item) error
	Update(ctx context.Context, id int, patch model.ItemPatch) error
	Delete(ctx context.Context, id int) error
	Ping(ctx context.Context) error
}

// Document is a whole-collection store: one JSON array, read and written
// in full. A missing document loads as an empty collection.
type Document interface {
	Load(ctx context.Context) ([]model.Item, error)
	Save(ctx context.Context, items []model.Item) error
}
