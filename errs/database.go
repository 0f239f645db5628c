package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrDatabaseQuery      = errors.New("database query failed")
	ErrDatabaseConnection = errors.New("database connection failed")
)

// Database & Storage Specific Errors
var (
	ErrForeignKeyMissing    = errors.New("referenced entity missing")
	ErrDependentsExist      = errors.New("dependent records exist")
	ErrForeignKeyConstraint = errors.New("foreign key constraint violation")
)

// NewAlreadyExists is the DuplicateKey error. It is a 400, not a 409, to keep
// the response codes the site's forms already handle.
func NewAlreadyExists(message string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        withKind(ErrAlreadyExists, "%s", message),
	}
}

func NewNotFound(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        withKind(ErrNotFound, "%s not found", entity),
	}
}

// NewForeignKeyMissing reports a create/update that references a missing
// parent, e.g. "Category not found".
func NewForeignKeyMissing(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        withKind(ErrForeignKeyMissing, "%s not found", entity),
		Field:      strings.ToLower(entity[:1]) + entity[1:] + "Id",
	}
}

// NewDependentsExist blocks a delete while count dependents still reference the row.
func NewDependentsExist(entity string, count int64, dependent string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err: withKind(ErrDependentsExist,
			"Cannot delete %s: it has %d %s(s). Please reassign or delete them first.",
			strings.ToLower(entity), count, dependent),
	}
}

// NewDatabaseError creates a new database error with details about the operation
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	details := fmt.Sprintf("Failed to %s %s", operation, entity)

	// Check for common database errors and provide more specific messages
	if cause != nil {
		errStr := strings.ToLower(cause.Error())
		switch {
		case strings.Contains(errStr, "duplicate key"), strings.Contains(errStr, "unique constraint"):
			return &ApiErr{
				StatusCode: http.StatusBadRequest,
				err:        withKind(ErrAlreadyExists, "%s already exists", entity),
				Details:    details,
				Cause:      cause,
			}
		case strings.Contains(errStr, "foreign key constraint"):
			return &ApiErr{
				StatusCode: http.StatusBadRequest,
				err:        withKind(ErrForeignKeyConstraint, "invalid reference in %s", entity),
				Details:    "The referenced resource does not exist or cannot be linked",
				Cause:      cause,
			}
		case strings.Contains(errStr, "connection"), strings.Contains(errStr, "dial tcp"):
			return &ApiErr{
				StatusCode: http.StatusServiceUnavailable,
				err:        ErrDatabaseConnection,
				Details:    "Unable to connect to database",
				Cause:      cause,
			}
		}
	}

	// Generic database error
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrDatabaseQuery,
		Details:    details,
		Cause:      cause,
	}
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

func IsForeignKeyMissing(err error) bool {
	return errors.Is(err, ErrForeignKeyMissing)
}

func IsDependentsExist(err error) bool {
	return errors.Is(err, ErrDependentsExist)
}

func IsForeignKeyConstraintError(err error) bool {
	return errors.Is(err, ErrForeignKeyConstraint)
}
