// Package policy decides, per request and per entity, whether an actor may
// read or mutate a record. Rules are a fixed set over three entity kinds;
// this is deliberately not a general-purpose policy language.
//
// Accessibility of applications and tasks is delegated: rather than copying
// owner/team fields onto every row, a check walks up to the owning lead, so
// sharing decisions have a single source of truth at the cost of one lookup
// per hop. The store is consulted only to resolve that ownership chain.
package policy

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/admissions/internal/admissions/domain"
	"github.com/aussiebroadwan/admissions/internal/admissions/store"
)

// Action is what the actor wants to do with the target entity.
type Action string

const (
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionInsert Action = "insert"
)

// Evaluator answers allow/deny questions. Every check fails closed: tenant
// mismatch, soft-deleted targets, and unknown roles all deny without error.
type Evaluator struct {
	Store store.Store
}

/* Composable predicates. Each one is small enough to test in isolation. */

func roleKnown(a domain.Actor) bool { return a.Role.Known() }

func isAdmin(a domain.Actor) bool { return a.Role == domain.RoleAdmin }

func sameTenant(a domain.Actor, tenantID string) bool {
	return a.TenantID != "" && a.TenantID == tenantID
}

func ownsLead(a domain.Actor, l domain.Lead) bool {
	return l.OwnerID != nil && *l.OwnerID == a.ID
}

func sharesTeam(a domain.Actor, l domain.Lead) bool {
	return l.TeamID != nil && a.InTeam(*l.TeamID)
}

func assignedTo(a domain.Actor, t domain.Task) bool {
	return t.AssignedTo != nil && *t.AssignedTo == a.ID
}

// CanAccessLead evaluates the lead rules. Pure: no store lookups, the lead
// is the root of its own ownership chain.
//
// Order matters: tenant first (always required, fails closed), then the
// soft-delete short-circuit, then the first applicable allow wins.
func (e *Evaluator) CanAccessLead(actor domain.Actor, _ Action, l domain.Lead) bool {
	if !roleKnown(actor) || !sameTenant(actor, l.TenantID) {
		return false
	}
	if l.IsDeleted() {
		return false
	}
	if isAdmin(actor) {
		return true
	}
	return ownsLead(actor, l) || sharesTeam(actor, l)
}

// CanAccessApplication delegates to the parent lead: one hop up the chain.
// A missing or soft-deleted parent denies non-admin access.
func (e *Evaluator) CanAccessApplication(ctx context.Context, actor domain.Actor, action Action, a domain.Application) (bool, error) {
	if !roleKnown(actor) || !sameTenant(actor, a.TenantID) {
		return false, nil
	}
	if a.IsDeleted() {
		return false, nil
	}
	if isAdmin(actor) {
		return true, nil
	}

	lead, err := e.Store.Leads().GetLeadByID(ctx, a.LeadID)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return e.CanAccessLead(actor, action, lead), nil
}

// CanAccessTask delegates two hops: task -> application -> lead. The only
// direct grant on a task itself is its assignee.
func (e *Evaluator) CanAccessTask(ctx context.Context, actor domain.Actor, action Action, t domain.Task) (bool, error) {
	if !roleKnown(actor) || !sameTenant(actor, t.TenantID) {
		return false, nil
	}
	if t.IsDeleted() {
		return false, nil
	}
	if isAdmin(actor) {
		return true, nil
	}
	if assignedTo(actor, t) {
		return true, nil
	}

	app, err := e.Store.Applications().GetApplicationByID(ctx, t.ApplicationID)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return e.CanAccessApplication(ctx, actor, action, app)
}

// CanCreateLead authorizes inserting a new lead into the actor's own tenant.
// Only admins and counselors may insert.
func (e *Evaluator) CanCreateLead(actor domain.Actor) bool {
	return roleKnown(actor)
}

// CanCreateApplication authorizes inserting an application under the given
// lead. Insert checks run against the target parent, not the not-yet-existing
// child.
func (e *Evaluator) CanCreateApplication(actor domain.Actor, l domain.Lead) bool {
	return roleKnown(actor) && e.CanAccessLead(actor, ActionInsert, l)
}

// CanCreateTask authorizes inserting a task under the given application.
func (e *Evaluator) CanCreateTask(ctx context.Context, actor domain.Actor, a domain.Application) (bool, error) {
	if !roleKnown(actor) {
		return false, nil
	}
	return e.CanAccessApplication(ctx, actor, ActionInsert, a)
}
