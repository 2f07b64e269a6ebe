package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/itembox/internal/apperror"
	"github.com/sakif/itembox/internal/auth"
	"github.com/sakif/itembox/internal/service"
)

// ItemHandler serves the /api/items endpoints.
//
// Each request is independent: the handler parses HTTP, calls the service,
// and shapes the response. No state lives here between requests.
type ItemHandler struct {
	svc    *service.ItemService
	logger *slog.Logger
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(svc *service.ItemService, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{svc: svc, logger: logger}
}

// HandleList returns the whole collection.
//
// HTTP: GET /api/items → 200 [{"id":1,"name":"..."}, ...]
func (h *ItemHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// HandleCreate appends a new item.
//
// HTTP: POST /api/items
// REQUEST BODY: {"name": "Widget", "description": "optional"}
// RESPONSE: 201 with the stored item, including its id and created_at.
func (h *ItemHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		if errors.Is(err, errEmptyBody) {
			err = apperror.MissingField("name")
		}
		h.logger.Warn("rejected create request", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}
	if req.Name == nil {
		writeError(w, apperror.MissingField("name"))
		return
	}

	in := service.CreateInput{Name: *req.Name, Actor: actor(r)}
	if req.Description != nil {
		in.Description = *req.Description
	}

	item, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Location", "/api/items/"+strconv.Itoa(item.ID))
	writeJSON(w, http.StatusCreated, item)
}

// HandleUpdate overwrites the provided fields of an item.
//
// HTTP: PUT /api/items/{id}
// REQUEST BODY: {"name"?: "...", "description"?: "..."}
// RESPONSE: 200 {"message": "item updated"}, or 404 when no item has id.
func (h *ItemHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	var req updateItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		if errors.Is(err, errEmptyBody) {
			err = apperror.ValidationFailed("body", "request body must be a JSON object")
		}
		h.logger.Warn("rejected update request",
			slog.Int("id", id),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	err := h.svc.Update(r.Context(), id, service.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Actor:       actor(r),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "item updated"})
}

// HandleDelete removes every item with the given id.
//
// HTTP: DELETE /api/items/{id}
// RESPONSE: 200 {"message": "item deleted"}, whether or not the id existed.
func (h *ItemHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id, actor(r)); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "item deleted"})
}

// actor is the bearer token subject, or "" when write auth is disabled.
func actor(r *http.Request) string {
	if c, ok := auth.ClaimsFromContext(r.Context()); ok {
		return c.Subject
	}
	return ""
}

// itemID parses the {id} URL parameter. The route pattern only admits
// digits, so a parse failure means the value overflows int; no item can
// have such an id, which makes it a 404.
func (h *ItemHandler) itemID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 0 {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "item not found with id " + raw})
		return 0, false
	}
	return id, true
}
