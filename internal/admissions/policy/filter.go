package policy

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/admissions/internal/admissions/domain"
	"github.com/aussiebroadwan/admissions/internal/admissions/store"
)

// FilterLeads keeps the leads the actor may read, preserving the input
// order. Listing the same set twice with no intervening writes therefore
// yields the same result in the same relative order.
func (e *Evaluator) FilterLeads(actor domain.Actor, leads []domain.Lead) []domain.Lead {
	out := make([]domain.Lead, 0, len(leads))
	for _, l := range leads {
		if e.CanAccessLead(actor, ActionRead, l) {
			out = append(out, l)
		}
	}
	return out
}

// FilterApplications keeps the applications the actor may read, preserving
// input order. Parent leads are resolved once per distinct lead, not once
// per row; lists are the hot path here.
func (e *Evaluator) FilterApplications(ctx context.Context, actor domain.Actor, apps []domain.Application) ([]domain.Application, error) {
	resolver := e.newLeadResolver(actor)

	out := make([]domain.Application, 0, len(apps))
	for _, a := range apps {
		ok, err := e.applicationAllowed(ctx, actor, a, resolver)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, a)
		}
	}
	return out, nil
}

// FilterTasks keeps the tasks the actor may read, preserving input order.
func (e *Evaluator) FilterTasks(ctx context.Context, actor domain.Actor, tasks []domain.Task) ([]domain.Task, error) {
	resolver := e.newLeadResolver(actor)

	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if !roleKnown(actor) || !sameTenant(actor, t.TenantID) || t.IsDeleted() {
			continue
		}
		if isAdmin(actor) || assignedTo(actor, t) {
			out = append(out, t)
			continue
		}

		app, err := e.Store.Applications().GetApplicationByID(ctx, t.ApplicationID)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}

		ok, err := e.applicationAllowed(ctx, actor, app, resolver)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, t)
		}
	}
	return out, nil
}

// leadResolver memoizes "may this actor access lead X" within a single
// filter pass, since many rows share a parent.
type leadResolver struct {
	actor   domain.Actor
	allowed map[string]bool
}

func (e *Evaluator) newLeadResolver(actor domain.Actor) *leadResolver {
	return &leadResolver{actor: actor, allowed: make(map[string]bool)}
}

func (e *Evaluator) applicationAllowed(ctx context.Context, actor domain.Actor, a domain.Application, resolver *leadResolver) (bool, error) {
	if !roleKnown(actor) || !sameTenant(actor, a.TenantID) || a.IsDeleted() {
		return false, nil
	}
	if isAdmin(actor) {
		return true, nil
	}

	if ok, seen := resolver.allowed[a.LeadID]; seen {
		return ok, nil
	}

	lead, err := e.Store.Leads().GetLeadByID(ctx, a.LeadID)
	if errors.Is(err, store.ErrNotFound) {
		resolver.allowed[a.LeadID] = false
		return false, nil
	}
	if err != nil {
		return false, err
	}

	ok := e.CanAccessLead(actor, ActionRead, lead)
	resolver.allowed[a.LeadID] = ok
	return ok, nil
}
