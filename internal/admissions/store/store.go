package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/admissions/internal/admissions/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrReferentialMismatch reports a write whose embedded tenant references
	// do not chain correctly, e.g. an application referencing a lead from a
	// different tenant. This is a data-integrity violation, not an
	// authorization outcome.
	ErrReferentialMismatch = errors.New("store: referential tenant mismatch")

	// ErrInvalidTransition reports a task status update the state machine
	// does not permit.
	ErrInvalidTransition = errors.New("store: invalid status transition")
)

// Store is the root data access interface. Concrete drivers (sqlite)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and to actively stop callers from accidentally nesting
// transactions.
//
// The store does not authorize: that is the policy evaluator's job. It does
// reject writes that break tenant chaining, because those are integrity
// violations regardless of who asks.
type Store interface {
	Leads() Leads
	Applications() Applications
	Tasks() Tasks

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// Use it for multi-step operations that must be atomic (e.g., the
	// check-then-insert in task creation, or a cascading soft delete).
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction. If fn returns an
	// error, the transaction is rolled back; otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Leads interface {
	// CreateLead inserts a new lead (id is provided by app via ULID).
	CreateLead(ctx context.Context, l domain.Lead) error

	// GetLeadByID returns a non-deleted lead by id.
	GetLeadByID(ctx context.Context, id string) (domain.Lead, error)

	// ListLeadsByTenant returns all non-deleted leads for a tenant, ordered
	// by id (creation order, since ids are ULIDs).
	ListLeadsByTenant(ctx context.Context, tenantID string) ([]domain.Lead, error)

	// UpdateLeadStage mutates the stage and bumps updated_at. Soft-deleted
	// leads are never updated.
	UpdateLeadStage(ctx context.Context, id string, stage domain.LeadStage) error

	// SoftDeleteLead sets deleted_at on the lead only. Callers wanting the
	// full cascade should run this together with the application and task
	// soft deletes inside one transaction.
	SoftDeleteLead(ctx context.Context, id string, at time.Time) error
}

type Applications interface {
	// CreateApplication inserts a new application. The parent lead must
	// exist, be non-deleted, and belong to the same tenant; a tenant
	// mismatch yields ErrReferentialMismatch.
	CreateApplication(ctx context.Context, a domain.Application) error

	// GetApplicationByID returns a non-deleted application by id.
	GetApplicationByID(ctx context.Context, id string) (domain.Application, error)

	// ListApplicationsByTenant returns all non-deleted applications for a
	// tenant, ordered by id.
	ListApplicationsByTenant(ctx context.Context, tenantID string) ([]domain.Application, error)

	// UpdateApplicationStatus mutates the status and bumps updated_at.
	UpdateApplicationStatus(ctx context.Context, id string, status domain.ApplicationStatus) error

	// SoftDeleteApplicationsByLead marks every application under a lead as
	// deleted. Part of the lead cascade.
	SoftDeleteApplicationsByLead(ctx context.Context, leadID string, at time.Time) error
}

type Tasks interface {
	// CreateTask inserts a new task. The parent application must exist, be
	// non-deleted, and belong to the same tenant; a tenant mismatch yields
	// ErrReferentialMismatch.
	CreateTask(ctx context.Context, t domain.Task) error

	// GetTaskByID returns a non-deleted task by id.
	GetTaskByID(ctx context.Context, id string) (domain.Task, error)

	// GetTaskByIDIncludeDeleted bypasses the soft-delete filter. Used for
	// integrity checks and verification, never by policy-governed reads.
	GetTaskByIDIncludeDeleted(ctx context.Context, id string) (domain.Task, error)

	// ListTasksByTenant returns all non-deleted tasks for a tenant, ordered
	// by id.
	ListTasksByTenant(ctx context.Context, tenantID string) ([]domain.Task, error)

	// ListTasksDueBefore returns non-deleted, non-terminal tasks for a
	// tenant due before the cutoff, ordered by due_at.
	ListTasksDueBefore(ctx context.Context, tenantID string, cutoff time.Time) ([]domain.Task, error)

	// UpdateTaskStatus moves a task through the status state machine,
	// setting completed_at when the task completes. Transitions the state
	// machine forbids yield ErrInvalidTransition.
	UpdateTaskStatus(ctx context.Context, id string, status domain.TaskStatus, at time.Time) error

	// SoftDeleteTasksByLead marks every task whose application belongs to
	// the lead as deleted. Part of the lead cascade.
	SoftDeleteTasksByLead(ctx context.Context, leadID string, at time.Time) error
}
