// Package service contains the business rules for items.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)      → parses requests, writes responses
//	Service (business layer)  → validates, stamps timestamps, logs events
//	Repository (data layer)   → reads/writes the collection
//
// ItemService takes a repository.ItemRepository (interface), never a concrete
// backend, so the JSON file, Redis and SQLite stores are interchangeable and
// tests can inject a fake.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sakif/itembox/internal/apperror"
	"github.com/sakif/itembox/internal/model"
	"github.com/sakif/itembox/internal/repository"
)

// ItemService handles business logic for items.
type ItemService struct {
	repo   repository.ItemRepository
	logger *slog.Logger
	now    func() time.Time
}

// Option customises an ItemService.
type Option func(*ItemService)

// WithClock replaces time.Now, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(s *ItemService) { s.now = now }
}

// NewItemService creates a new ItemService.
func NewItemService(repo repository.ItemRepository, logger *slog.Logger, opts ...Option) *ItemService {
	s := &ItemService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateInput is the validated shape of a create request. Actor names who
// asked for the change and only appears in logs; it may be empty.
type CreateInput struct {
	Name        string
	Description string
	Actor       string
}

// UpdateInput carries optional fields; nil means "leave as is".
type UpdateInput struct {
	Name        *string
	Description *string
	Actor       string
}

// List returns the whole collection in insertion order.
func (s *ItemService) List(ctx context.Context) ([]model.Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list items", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing items: %w", err)
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

// Create validates and appends a new item. The repository assigns the id.
//
// A whitespace-only name is reported as a missing field, the same as an
// absent one. name and description are otherwise stored as given.
func (s *ItemService) Create(ctx context.Context, in CreateInput) (*model.Item, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperror.MissingField("name")
	}

	item := &model.Item{
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   model.NewTimestamp(s.now()),
	}

	if err := s.repo.Create(ctx, item); err != nil {
		s.logger.Error("failed to create item",
			slog.String("name", in.Name),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating item: %w", err)
	}

	s.logger.Info("item created",
		slog.Int("id", item.ID),
		slog.String("name", item.Name),
		actorAttr(in.Actor),
	)
	return item, nil
}

// Update overwrites the provided fields of the first item with id and sets
// its updated_at. Returns apperror.ErrNotFound if no item has that id.
func (s *ItemService) Update(ctx context.Context, id int, in UpdateInput) error {
	patch := model.ItemPatch{
		Description: in.Description,
		UpdatedAt:   model.NewTimestamp(s.now()),
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return apperror.ValidationFailed("name", "name must not be blank")
		}
		patch.Name = in.Name
	}

	if err := s.repo.Update(ctx, id, patch); err != nil {
		// A miss is an expected outcome, not a storage failure.
		if !errors.Is(err, apperror.ErrNotFound) {
			s.logger.Error("failed to update item",
				slog.Int("id", id),
				slog.String("error", err.Error()),
			)
		}
		return fmt.Errorf("updating item: %w", err)
	}

	s.logger.Info("item updated", slog.Int("id", id), actorAttr(in.Actor))
	return nil
}

// Delete removes every item with id. Deleting an absent id succeeds.
// actor is logged alongside the event and may be empty.
func (s *ItemService) Delete(ctx context.Context, id int, actor string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete item",
			slog.Int("id", id),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("deleting item: %w", err)
	}

	s.logger.Info("item deleted", slog.Int("id", id), actorAttr(actor))
	return nil
}

// actorAttr renders an empty actor as "anonymous", the case when write
// auth is disabled.
func actorAttr(actor string) slog.Attr {
	if actor == "" {
		actor = "anonymous"
	}
	return slog.String("actor", actor)
}

// Ping reports whether the backing store is reachable.
func (s *ItemService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
