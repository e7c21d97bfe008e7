package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/admissions/internal/admissions/domain"
	"github.com/aussiebroadwan/admissions/internal/admissions/policy"
	"github.com/aussiebroadwan/admissions/internal/admissions/store"
	"github.com/aussiebroadwan/admissions/pkg/idx"
	"github.com/aussiebroadwan/admissions/pkg/slogx"
)

// LeadService owns lead lifecycle operations, including the cascading soft
// delete that keeps applications and tasks consistent with their lead.
type LeadService struct {
	Store  store.Store
	Policy *policy.Evaluator

	Now func() time.Time
}

func (s *LeadService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// CreateLeadRequest carries raw request fields for lead creation. Ownership
// is optional: an unowned lead is visible only to admins until claimed.
type CreateLeadRequest struct {
	OwnerID *string
	TeamID  *string
}

// CreateLead inserts a new lead in the actor's tenant at the start of the
// funnel.
func (s *LeadService) CreateLead(ctx context.Context, actor domain.Actor, req CreateLeadRequest) (domain.Lead, error) {
	log := slogx.FromContext(ctx)
	now := s.now()

	// 1. Validate.
	var v validationCollector
	if req.OwnerID != nil && !idx.IsValid(*req.OwnerID) {
		v.add("owner_id", "must be a valid identifier")
	}
	if req.TeamID != nil && *req.TeamID == "" {
		v.add("team_id", "must not be empty when set")
	}
	if err := v.err(); err != nil {
		return domain.Lead{}, err
	}

	// 2. Authorize.
	if !s.Policy.CanCreateLead(actor) {
		return domain.Lead{}, ErrForbidden
	}

	// 3. Persist.
	lead := domain.Lead{
		ID:        idx.New().String(),
		TenantID:  actor.TenantID,
		Stage:     domain.LeadStageNew,
		OwnerID:   req.OwnerID,
		TeamID:    req.TeamID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.Leads().CreateLead(ctx, lead); err != nil {
		log.Error("failed to create lead", slog.Any("error", err))
		return domain.Lead{}, err
	}

	log.Debug("lead created", slog.String("lead_id", lead.ID))
	return lead, nil
}

// ListLeads returns the non-deleted leads in the actor's tenant the actor
// may read. Filtering is in-process and preserves store ordering.
func (s *LeadService) ListLeads(ctx context.Context, actor domain.Actor) ([]domain.Lead, error) {
	leads, err := s.Store.Leads().ListLeadsByTenant(ctx, actor.TenantID)
	if err != nil {
		return nil, err
	}
	return s.Policy.FilterLeads(actor, leads), nil
}

// UpdateLeadStage moves a lead to a new stage on behalf of the actor.
func (s *LeadService) UpdateLeadStage(ctx context.Context, actor domain.Actor, leadID string, stage domain.LeadStage) (domain.Lead, error) {
	log := slogx.FromContext(ctx)

	if !stage.Valid() {
		return domain.Lead{}, &ValidationError{Fields: []FieldError{
			{Field: "stage", Message: fmt.Sprintf("must be one of %s, %s, %s, %s, %s",
				domain.LeadStageNew, domain.LeadStageContacted, domain.LeadStageQualified,
				domain.LeadStageEnrolled, domain.LeadStageClosed)},
		}}
	}

	var updated domain.Lead
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		lead, err := tx.Leads().GetLeadByID(ctx, leadID)
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
		if !pol.CanAccessLead(actor, policy.ActionUpdate, lead) {
			return ErrForbidden
		}

		if err := tx.Leads().UpdateLeadStage(ctx, leadID, stage); err != nil {
			return err
		}

		updated, err = tx.Leads().GetLeadByID(ctx, leadID)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrLeadNotFound), errors.Is(err, ErrForbidden):
		default:
			log.Error("failed to update lead stage", slog.Any("error", err))
		}
		return domain.Lead{}, err
	}

	return updated, nil
}

// DeleteLead soft deletes a lead and cascades to its applications and tasks.
// The three soft deletes share one transaction and one timestamp so the
// cascade is atomic: either the whole subtree disappears from reads or none
// of it does.
func (s *LeadService) DeleteLead(ctx context.Context, actor domain.Actor, leadID string) error {
	log := slogx.FromContext(ctx)
	at := s.now()

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		lead, err := tx.Leads().GetLeadByID(ctx, leadID)
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
		if !pol.CanAccessLead(actor, policy.ActionUpdate, lead) {
			return ErrForbidden
		}

		// Leaf-first order: tasks resolve their lead through applications,
		// so the subquery must run before applications are marked deleted.
		if err := tx.Tasks().SoftDeleteTasksByLead(ctx, leadID, at); err != nil {
			return err
		}
		if err := tx.Applications().SoftDeleteApplicationsByLead(ctx, leadID, at); err != nil {
			return err
		}
		return tx.Leads().SoftDeleteLead(ctx, leadID, at)
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrLeadNotFound), errors.Is(err, ErrForbidden):
		default:
			log.Error("failed to delete lead", slog.Any("error", err))
		}
		return err
	}

	log.Info("lead deleted", slog.String("lead_id", leadID))
	return nil
}
