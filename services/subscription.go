package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/gbur-rwanda/gbur-backend/database"
	"github.com/gbur-rwanda/gbur-backend/errs"
	"github.com/gbur-rwanda/gbur-backend/models"
	"github.com/gbur-rwanda/gbur-backend/validation"
)

const duplicateSubscription = "This email is already subscribed"

type SubscriptionService struct {
	subscriptions *database.SubscriptionRepo
	logger        zerolog.Logger
	clock         clock
}

func NewSubscriptionService(db database.Database) *SubscriptionService {
	return &SubscriptionService{
		subscriptions: db.SubscriptionRepo(),
		logger:        serviceLogger("subscription"),
	}
}

// Subscribe is idempotent per email: an active subscription is returned as is,
// an inactive one is reactivated, and only an unknown email inserts a row.
// created reports whether a row was inserted.
func (s *SubscriptionService) Subscribe(ctx context.Context, in validation.SubscriptionInput) (sub models.Subscription, created bool, err error) {
	if err := in.ValidateCreate(); err != nil {
		return models.Subscription{}, false, err
	}

	existing, err := s.subscriptions.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return s.reactivate(ctx, existing, in)
	case !database.IsRecordNotFound(err):
		return models.Subscription{}, false, errs.NewDatabaseError("find", "subscription", err)
	}

	sub = models.Subscription{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		IsActive:     true,
		SubscribedAt: s.clock.now(),
	}
	if err := s.subscriptions.Add(ctx, &sub); err != nil {
		if !database.IsDuplicateKey(err) {
			return models.Subscription{}, false, writeError("create", "subscription", duplicateSubscription, err)
		}
		// A concurrent request inserted the same email first.
		existing, findErr := s.subscriptions.FindByEmail(ctx, in.Email)
		if findErr != nil {
			return models.Subscription{}, false, errs.NewDatabaseError("find", "subscription", findErr)
		}
		return s.reactivate(ctx, existing, in)
	}

	s.logger.Info().Uint("subscriptionId", sub.ID).Msg("subscription created")
	return sub, true, nil
}

func (s *SubscriptionService) reactivate(ctx context.Context, sub *models.Subscription, in validation.SubscriptionInput) (models.Subscription, bool, error) {
	if sub.IsActive {
		return *sub, false, nil
	}

	sub.IsActive = true
	sub.FirstName = in.FirstName
	sub.LastName = in.LastName
	sub.SubscribedAt = s.clock.now()
	sub.UnsubscribedAt = nil
	if err := s.subscriptions.Update(ctx, sub); err != nil {
		return models.Subscription{}, false, errs.NewDatabaseError("update", "subscription", err)
	}
	s.logger.Info().Uint("subscriptionId", sub.ID).Msg("subscription reactivated")
	return *sub, false, nil
}

// Unsubscribe keeps the row and marks it inactive.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, in validation.UnsubscribeInput) (models.Subscription, error) {
	if err := in.ValidateCreate(); err != nil {
		return models.Subscription{}, err
	}

	sub, err := s.subscriptions.FindByEmail(ctx, in.Email)
	if err != nil {
		return models.Subscription{}, findError("Subscription", err)
	}
	if !sub.IsActive {
		return *sub, nil
	}

	now := s.clock.now()
	sub.IsActive = false
	sub.UnsubscribedAt = &now
	if err := s.subscriptions.Update(ctx, sub); err != nil {
		return models.Subscription{}, errs.NewDatabaseError("update", "subscription", err)
	}
	s.logger.Info().Uint("subscriptionId", sub.ID).Msg("subscription cancelled")
	return *sub, nil
}
