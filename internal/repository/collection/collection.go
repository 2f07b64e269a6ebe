// Package collection implements repository.ItemRepository on top of any
// repository.Document: every operation loads the full collection, mutates it
// in memory and saves it back.
package collection

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/sakif/itembox/internal/apperror"
	"github.com/sakif/itembox/internal/model"
	"github.com/sakif/itembox/internal/repository"
)

var _ repository.ItemRepository = (*Repository)(nil)

// pinger is implemented by documents that can check their backend without
// reading the whole collection (e.g. Redis PING).
type pinger interface {
	Ping(ctx context.Context) error
}

// Repository serialises load→mutate→save cycles with a mutex, so writers in
// this process never lose each other's updates. Another process writing the
// same document is still last-write-wins.
type Repository struct {
	mu  sync.Mutex
	doc repository.Document
}

func New(doc repository.Document) *Repository {
	return &Repository{doc: doc}
}

func (r *Repository) List(ctx context.Context) ([]model.Item, error) {
	items, err := r.doc.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading collection: %w", err)
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

func (r *Repository) Create(ctx context.Context, item *model.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.doc.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading collection: %w", err)
	}

	item.ID = len(items) + 1
	items = append(items, *item)

	if err := r.doc.Save(ctx, items); err != nil {
		return fmt.Errorf("saving collection: %w", err)
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, id int, patch model.ItemPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.doc.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading collection: %w", err)
	}

	i := slices.IndexFunc(items, func(it model.Item) bool { return it.ID == id })
	if i < 0 {
		return apperror.NotFound("item", id)
	}
	patch.Apply(&items[i])

	if err := r.doc.Save(ctx, items); err != nil {
		return fmt.Errorf("saving collection: %w", err)
	}
	return nil
}

// Delete is idempotent: the collection is rewritten even when nothing
// matched.
func (r *Repository) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.doc.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading collection: %w", err)
	}

	items = slices.DeleteFunc(items, func(it model.Item) bool { return it.ID == id })
	if items == nil {
		items = []model.Item{}
	}

	if err := r.doc.Save(ctx, items); err != nil {
		return fmt.Errorf("saving collection: %w", err)
	}
	return nil
}

func (r *Repository) Ping(ctx context.Context) error {
	if p, ok := r.doc.(pinger); ok {
		return p.Ping(ctx)
	}
	_, err := r.doc.Load(ctx)
	return err
}
