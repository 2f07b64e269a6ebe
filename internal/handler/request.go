package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"

	"github.com/sakif/itembox/internal/apperror"
)

// maxBodyBytes caps request bodies; items are small.
const maxBodyBytes = 1 << 20

// errEmptyBody is returned by decodeJSON when the body has no content.
// Each handler decides what an empty body means for its operation.
var errEmptyBody = errors.New("empty request body")

// createItemRequest is the POST /api/items schema. Pointers distinguish an
// absent key from an empty string.
type createItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// updateItemRequest is the PUT /api/items/{id} schema. Every field is
// optional.
type updateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// decodeJSON decodes exactly one JSON value from the body into dst and
// turns decoder failures into typed validation errors:
//
//	{"name": 42}     → apperror.InvalidType("name", "string")
//	[1, 2]           → apperror.InvalidType("body", "JSON object")
//	{"name":         → apperror.ValidationFailed("body", "invalid JSON ...")
//
// Unknown keys are ignored.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))

	if err := dec.Decode(dst); err != nil {
		var (
			typeErr   *json.UnmarshalTypeError
			syntaxErr *json.SyntaxError
			maxErr    *http.MaxBytesError
		)
		switch {
		case errors.Is(err, io.EOF):
			return errEmptyBody
		case errors.As(err, &typeErr):
			if typeErr.Field == "" {
				return apperror.InvalidType("body", "JSON object")
			}
			return apperror.InvalidType(typeErr.Field, typeName(typeErr.Type))
		case errors.As(err, &syntaxErr):
			return apperror.ValidationFailed("body",
				fmt.Sprintf("invalid JSON at offset %d: %v", syntaxErr.Offset, err))
		case errors.As(err, &maxErr):
			return apperror.ValidationFailed("body",
				fmt.Sprintf("request body must be at most %d bytes", maxErr.Limit))
		default:
			return apperror.ValidationFailed("body", fmt.Sprintf("invalid JSON: %v", err))
		}
	}

	if err := ensureSingleJSON(dec); err != nil {
		return err
	}
	return nil
}

// ensureSingleJSON rejects bodies with anything after the first value.
func ensureSingleJSON(dec *json.Decoder) error {
	if _, err := dec.Token(); err != io.EOF {
		return apperror.ValidationFailed("body", "request body must only contain a single JSON object")
	}
	return nil
}

func typeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind().String()
}
