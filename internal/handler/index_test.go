package handler_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/itembox/internal/handler"
	"github.com/sakif/itembox/internal/repository/collection"
	"github.com/sakif/itembox/internal/repository/jsonfile"
	"github.com/sakif/itembox/internal/service"
)

func TestIndexHandler_HandleIndex(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	f, err := jsonfile.New(filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, err)
	svc := service.NewItemService(collection.New(f), logger)

	h, err := handler.NewIndexHandler(svc, logger)
	require.NoError(t, err)

	t.Run("empty collection", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.HandleIndex(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
		assert.Contains(t, rr.Body.String(), "No items yet.")
	})

	t.Run("writes carry the token and surface failures", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.HandleIndex(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		body := rr.Body.String()
		assert.Contains(t, body, `id="token"`)
		assert.Contains(t, body, `headers["Authorization"] = "Bearer " + token`)
		assert.Contains(t, body, `if (res.ok)`)
		assert.Contains(t, body, `id="status"`)
	})

	t.Run("lists items escaped", func(t *testing.T) {
		_, err := svc.Create(context.Background(), service.CreateInput{Name: "<script>x</script>"})
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		h.HandleIndex(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "&lt;script&gt;x&lt;/script&gt;")
	})
}
