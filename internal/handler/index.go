package handler

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/sakif/itembox/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

// IndexHandler renders the landing page.
//
// Templates are parsed once at startup. base.html holds the page shell
// with a {{template "content" .}} slot; index.html fills it in.
type IndexHandler struct {
	templates *template.Template
	svc       *service.ItemService
	logger    *slog.Logger
}

// NewIndexHandler parses the embedded templates.
func NewIndexHandler(svc *service.ItemService, logger *slog.Logger) (*IndexHandler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/base.html", "templates/index.html")
	if err != nil {
		return nil, err
	}
	return &IndexHandler{templates: tmpl, svc: svc, logger: logger}, nil
}

// HandleIndex serves GET /. A storage failure still renders the page, with
// the error shown in place of the item list.
func (h *IndexHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{
		"Title": "itembox",
	}

	items, err := h.svc.List(r.Context())
	if err != nil {
		data["Error"] = err.Error()
	} else {
		data["Items"] = items
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, "base", data); err != nil {
		h.logger.Error("failed to render template", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
