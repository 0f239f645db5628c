package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/gbur-rwanda/gbur-backend/database"
)

const pingTimeout = 2 * time.Second

// HealthService reports whether the database answers.
type HealthService struct {
	db     database.Database
	logger zerolog.Logger
}

func NewHealthService(db database.Database) *HealthService {
	return &HealthService{db: db, logger: serviceLogger("health")}
}

// Database pings the primary with a short timeout.
func (s *HealthService) Database(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.db.Ping(ctx); err != nil {
		s.logger.Error().Err(err).Msg("database ping failed")
		return err
	}
	return nil
}
