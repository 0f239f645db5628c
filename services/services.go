// Package services holds the create/read/update/delete rules of every entity.
// Storage errors are classified here into the errs taxonomy before they reach
// a handler.
package services

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gbur-rwanda/gbur-backend/cache"
	"github.com/gbur-rwanda/gbur-backend/database"
	"github.com/gbur-rwanda/gbur-backend/errs"
)

// Services bundles every orchestration service over one Database.
type Services struct {
	Blog         *BlogService
	Categories   *CategoryService
	Organization *OrganizationService
	Contact      *ContactService
	Subscription *SubscriptionService
	Health       *HealthService
}

// New wires the services. c and notifier may be nil.
func New(db database.Database, c cache.Cache, notifier Notifier) Services {
	return Services{
		Blog:         NewBlogService(db, c),
		Categories:   NewCategoryService(db, c),
		Organization: NewOrganizationService(db, c),
		Contact:      NewContactService(db, notifier),
		Subscription: NewSubscriptionService(db),
		Health:       NewHealthService(db),
	}
}

func serviceLogger(name string) zerolog.Logger {
	return log.With().Str("service", name).Logger()
}

// listResult applies the degraded-empty policy: a missing table is an empty
// list, any other failure is a storage error.
func listResult[T any](logger zerolog.Logger, entity string, items []T, err error) ([]T, error) {
	if err == nil {
		if items == nil {
			items = []T{}
		}
		return items, nil
	}
	if database.IsMissingTable(err) {
		logger.Warn().Err(err).Str("entity", entity).Msg("table missing, returning empty list")
		return []T{}, nil
	}
	return nil, errs.NewDatabaseError("list", entity, err)
}

// writeError classifies a failed insert or update. Unique violations caught
// here are the ones that lost a race with a concurrent writer.
func writeError(op, entity, duplicateMsg string, err error) error {
	switch {
	case database.IsDuplicateKey(err):
		return errs.NewAlreadyExists(duplicateMsg)
	case database.IsForeignKeyViolation(err):
		return errs.NewForeignKeyMissing(entity)
	default:
		return errs.NewDatabaseError(op, entity, err)
	}
}

// findError maps a single-row lookup failure to NotFound or a storage error.
func findError(entity string, err error) error {
	if database.IsRecordNotFound(err) || database.IsMissingTable(err) {
		return errs.NewNotFound(entity)
	}
	return errs.NewDatabaseError("find", entity, err)
}

// deleteError turns a delete that removed nothing into NotFound.
func deleteError(entity string, removed int64, err error) error {
	switch {
	case err != nil && database.IsMissingTable(err):
		return errs.NewNotFound(entity)
	case err != nil:
		return errs.NewDatabaseError("delete", entity, err)
	case removed == 0:
		return errs.NewNotFound(entity)
	}
	return nil
}

type clock func() time.Time

func (c clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c()
}
