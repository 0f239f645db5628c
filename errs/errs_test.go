package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsCarryStatusAndKind(t *testing.T) {
	tests := []struct {
		name   string
		err    *ApiErr
		status int
		text   string
		is     func(error) bool
	}{
		{"not found", NewNotFound("Blog post"), http.StatusNotFound, "Blog post not found", IsNotFound},
		{"already exists", NewAlreadyExists("A region with this name already exists"), http.StatusBadRequest, "A region with this name already exists", IsAlreadyExists},
		{"fk missing", NewForeignKeyMissing("Region"), http.StatusNotFound, "Region not found", IsForeignKeyMissing},
		{"dependents", NewDependentsExist("Category", 3, "blog post"), http.StatusBadRequest,
			"Cannot delete category: it has 3 blog post(s). Please reassign or delete them first.", IsDependentsExist},
		{"invalid id", NewInvalidIDError("id"), http.StatusBadRequest, "Invalid id", IsInvalidIDError},
		{"validation", NewValidationError([]FieldError{{Field: "title", Message: "title is required"}}), http.StatusBadRequest, "Validation failed", IsValidationError},
		{"bad token", NewInvalidTokenError(), http.StatusUnauthorized, "", IsInvalidTokenError},
		{"too large", NewPayloadTooLargeError(1 << 20), http.StatusRequestEntityTooLarge, "request body too large",
			func(err error) bool { return errors.Is(err, ErrPayloadTooLarge) }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, tc.err.StatusCode)
			assert.Equal(t, tc.status, StatusOf(tc.err))
			if tc.text != "" {
				assert.Equal(t, tc.text, tc.err.Error())
			}
			assert.True(t, tc.is(tc.err))
			assert.True(t, tc.is(fmt.Errorf("wrapped: %w", tc.err)))
		})
	}
}

func TestForeignKeyMissingNamesField(t *testing.T) {
	assert.Equal(t, "categoryId", NewForeignKeyMissing("Category").Field)
	assert.Equal(t, "title", NewValidationError([]FieldError{{Field: "title"}}).Field)
	assert.Empty(t, NewValidationError([]FieldError{{Field: "a"}, {Field: "b"}}).Field)
}

func TestStatusOfPlainError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("boom")))
}

func TestNewDatabaseErrorClassifies(t *testing.T) {
	dup := NewDatabaseError("create", "Subscription", errors.New(`ERROR: duplicate key value violates unique constraint "idx_subscriptions_email"`))
	assert.Equal(t, http.StatusBadRequest, dup.StatusCode)
	assert.True(t, IsAlreadyExists(dup))
	assert.Equal(t, "Subscription already exists", dup.Error())

	fk := NewDatabaseError("create", "University", errors.New("violates foreign key constraint"))
	assert.Equal(t, http.StatusBadRequest, fk.StatusCode)
	assert.True(t, IsForeignKeyConstraintError(fk))

	conn := NewDatabaseError("list", "Region", errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"))
	assert.Equal(t, http.StatusServiceUnavailable, conn.StatusCode)

	generic := NewDatabaseError("list", "Region", errors.New("syntax error at or near"))
	assert.Equal(t, http.StatusInternalServerError, generic.StatusCode)
	assert.Equal(t, ErrDatabaseQuery.Error(), generic.Error())
}

func TestGetFullErrorChainsCauses(t *testing.T) {
	inner := NewInternalErrorWithCause("inner", errors.New("root cause"))
	outer := NewDatabaseError("update", "Category", inner)

	full := outer.GetFullError()
	assert.Contains(t, full, "Failed to update Category")
	assert.Contains(t, full, "root cause")

	var apiErr *ApiErr
	require.ErrorAs(t, fmt.Errorf("ctx: %w", outer), &apiErr)
	assert.Same(t, outer, apiErr)
}
