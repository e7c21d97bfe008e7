package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/admissions/internal/admissions/domain"
	"github.com/aussiebroadwan/admissions/internal/admissions/policy"
	"github.com/aussiebroadwan/admissions/internal/admissions/store"
	"github.com/aussiebroadwan/admissions/pkg/idx"
	"github.com/aussiebroadwan/admissions/pkg/slogx"
)

// ApplicationService owns application lifecycle operations.
type ApplicationService struct {
	Store  store.Store
	Policy *policy.Evaluator

	Now func() time.Time
}

func (s *ApplicationService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// CreateApplicationRequest carries raw request fields for application
// creation.
type CreateApplicationRequest struct {
	LeadID string
}

// CreateApplication opens a new application under a lead. The lead lookup,
// the authorization check, and the insert share one transaction so the
// tenant-chaining invariant holds against concurrent lead deletion.
func (s *ApplicationService) CreateApplication(ctx context.Context, actor domain.Actor, req CreateApplicationRequest) (domain.Application, error) {
	log := slogx.FromContext(ctx)
	now := s.now()

	// 1. Validate.
	var v validationCollector
	if !idx.IsValid(req.LeadID) {
		v.add("lead_id", "must be a valid identifier")
	}
	if err := v.err(); err != nil {
		return domain.Application{}, err
	}

	app := domain.Application{
		ID:            idx.New().String(),
		TenantID:      actor.TenantID,
		LeadID:        req.LeadID,
		Status:        domain.ApplicationStatusOpen,
		PaymentStatus: domain.PaymentStatusUnpaid,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// 2. Check-then-insert inside one transaction.
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		lead, err := tx.Leads().GetLeadByID(ctx, req.LeadID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrLeadNotFound
		}
		if err != nil {
			return err
		}

		if lead.TenantID != actor.TenantID {
			return ErrForbidden
		}

		pol := &policy.Evaluator{Store: tx}
		if !pol.CanCreateApplication(actor, lead) {
			return ErrForbidden
		}

		return tx.Applications().CreateApplication(ctx, app)
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrLeadNotFound), errors.Is(err, ErrForbidden):
		default:
			log.Error("failed to create application", slog.Any("error", err))
		}
		return domain.Application{}, err
	}

	log.Debug("application created",
		slog.String("application_id", app.ID),
		slog.String("lead_id", app.LeadID),
	)
	return app, nil
}

// ListApplications returns the non-deleted applications in the actor's
// tenant the actor may read.
func (s *ApplicationService) ListApplications(ctx context.Context, actor domain.Actor) ([]domain.Application, error) {
	apps, err := s.Store.Applications().ListApplicationsByTenant(ctx, actor.TenantID)
	if err != nil {
		return nil, err
	}
	return s.Policy.FilterApplications(ctx, actor, apps)
}
