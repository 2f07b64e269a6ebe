package apperror

import (
	"errors"
	"fmt"
	"testing"
)

// Table-driven: each case checks that errors.Is() sees the right sentinel,
// including through a fmt.Errorf %w wrap like the service layer produces.
func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound("item", 7),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "MissingField wraps ErrValidation",
			err:       MissingField("name"),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "InvalidType wraps ErrValidation",
			err:       InvalidType("name", "string"),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "wrapped NotFound still matches",
			err:       fmt.Errorf("updating item: %w", NotFound("item", 3)),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "NotFound does NOT match ErrValidation",
			err:       NotFound("item", 1),
			target:    ErrValidation,
			wantMatch: false,
		},
		{
			name:      "ValidationFailed does NOT match ErrNotFound",
			err:       ValidationFailed("body", "invalid JSON"),
			target:    ErrNotFound,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.target)
			if got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		err         *AppError
		wantMessage string
		wantReason  string
	}{
		{
			name:        "NotFound message includes resource and id",
			err:         NotFound("item", 9999),
			wantMessage: "item not found with id 9999",
		},
		{
			name:        "MissingField names the field",
			err:         MissingField("name"),
			wantMessage: "missing required field: name",
			wantReason:  ReasonMissingField,
		},
		{
			name:        "InvalidType names field and expected type",
			err:         InvalidType("description", "string"),
			wantMessage: "field description must be a string",
			wantReason:  ReasonInvalidType,
		},
		{
			name:        "ValidationFailed uses custom message",
			err:         ValidationFailed("name", "name must not be blank"),
			wantMessage: "name must not be blank",
			wantReason:  ReasonInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMessage {
				t.Errorf("Error() = %q, want %q", got, tt.wantMessage)
			}
			if tt.err.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", tt.err.Reason, tt.wantReason)
			}
		})
	}
}

func TestErrorsAs_ExposesField(t *testing.T) {
	err := fmt.Errorf("decoding request: %w", InvalidType("name", "string"))

	var appErr *AppError
	if !errors.As(err, &appErr) {
		t.Fatal("errors.As() should find the *AppError in the chain")
	}
	if appErr.Field != "name" {
		t.Errorf("Field = %q, want %q", appErr.Field, "name")
	}
}

func TestUnwrap(t *testing.T) {
	err := NotFound("item", 1)
	if err.Unwrap() != ErrNotFound {
		t.Errorf("Unwrap() = %v, want %v", err.Unwrap(), ErrNotFound)
	}
}
