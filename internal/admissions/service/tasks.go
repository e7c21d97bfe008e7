package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/admissions/internal/admissions/broadcast"
	"github.com/aussiebroadwan/admissions/internal/admissions/domain"
	"github.com/aussiebroadwan/admissions/internal/admissions/policy"
	"github.com/aussiebroadwan/admissions/internal/admissions/store"
	"github.com/aussiebroadwan/admissions/pkg/idx"
	"github.com/aussiebroadwan/admissions/pkg/slogx"
)

// TaskService is the task-creation coordinator: it validates input,
// authorizes against policy, persists through the store, and publishes a
// task.created event once the write is durable.
type TaskService struct {
	Store  store.Store
	Policy *policy.Evaluator
	Events broadcast.Notifier[broadcast.TaskCreatedEvent]

	// Now is the coordinator's clock. Defaults to time.Now; tests pin it.
	Now func() time.Time
}

func (s *TaskService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// CreateTaskRequest carries raw request fields. due_at stays a string so a
// parse failure joins the collected validation errors instead of failing the
// decode step.
type CreateTaskRequest struct {
	ApplicationID string
	Type          string
	Title         string
	Description   string
	Priority      string
	DueAt         string // RFC3339
	AssignedTo    *string
}

// CreateTask validates, authorizes, persists, and notifies. Field failures
// are collected into a single ValidationError rather than returned one at a
// time. The existence/tenant/policy checks and the insert share one
// transaction so a concurrent soft-delete of the application cannot race a
// task being attached to it.
func (s *TaskService) CreateTask(ctx context.Context, actor domain.Actor, req CreateTaskRequest) (domain.Task, error) {
	log := slogx.FromContext(ctx)
	now := s.now()

	// 1. Validate every field, collecting failures.
	var v validationCollector

	if !idx.IsValid(req.ApplicationID) {
		v.add("application_id", "must be a valid identifier")
	}

	taskType := domain.TaskType(req.Type)
	if !taskType.Valid() {
		v.add("task_type", fmt.Sprintf("must be one of %s, %s, %s",
			domain.TaskTypeCall, domain.TaskTypeEmail, domain.TaskTypeReview))
	}

	var dueAt time.Time
	if parsed, err := time.Parse(time.RFC3339, req.DueAt); err != nil {
		v.add("due_at", "must be a valid RFC3339 timestamp")
	} else if !parsed.After(now) {
		v.add("due_at", "must be in the future")
	} else {
		dueAt = parsed.UTC()
	}

	priority := domain.TaskPriority(req.Priority)
	if req.Priority == "" {
		priority = domain.TaskPriorityMedium
	} else if !priority.Valid() {
		v.add("priority", fmt.Sprintf("must be one of %s, %s, %s",
			domain.TaskPriorityLow, domain.TaskPriorityMedium, domain.TaskPriorityHigh))
	}

	if req.AssignedTo != nil && !idx.IsValid(*req.AssignedTo) {
		v.add("assigned_to", "must be a valid identifier")
	}

	if err := v.err(); err != nil {
		return domain.Task{}, err
	}

	// 2. Apply defaults.
	title := req.Title
	if title == "" {
		title = fmt.Sprintf("%s task", taskType)
	}

	task := domain.Task{
		ID:            idx.New().String(),
		TenantID:      actor.TenantID,
		ApplicationID: req.ApplicationID,
		Type:          taskType,
		Title:         title,
		Description:   req.Description,
		Priority:      priority,
		DueAt:         dueAt,
		Status:        domain.TaskStatusPending,
		AssignedTo:    req.AssignedTo,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// 3. Check-then-insert inside one transaction.
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		app, err := tx.Applications().GetApplicationByID(ctx, req.ApplicationID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrApplicationNotFound
		}
		if err != nil {
			return err
		}

		// Wrong tenant is a distinct outcome from absence, so a caller
		// cannot confuse "someone else owns this" with "this id is free".
		if app.TenantID != actor.TenantID {
			log.Warn("task creation across tenants rejected",
				slog.String("application_id", app.ID),
				slog.String("application_tenant", app.TenantID),
			)
			return ErrForbidden
		}

		// Policy runs against the tx-scoped store so the ownership chain it
		// resolves is the same view the insert commits against.
		pol := &policy.Evaluator{Store: tx}
		allowed, err := pol.CanCreateTask(ctx, actor, app)
		if err != nil {
			return err
		}
		if !allowed {
			return ErrForbidden
		}

		return tx.Tasks().CreateTask(ctx, task)
	})
	if err != nil {
		if errors.Is(err, ErrApplicationNotFound) || errors.Is(err, ErrForbidden) {
			return domain.Task{}, err
		}
		log.Error("failed to create task", slog.Any("error", err))
		return domain.Task{}, err
	}

	// 4. Notify subscribers. The write is already the durable fact, so a
	// publish failure is logged and swallowed rather than reported as a
	// failed creation.
	event := broadcast.TaskCreatedEvent{
		TaskID:        task.ID,
		ApplicationID: task.ApplicationID,
		TenantID:      task.TenantID,
		TaskType:      string(task.Type),
		DueAt:         task.DueAt,
		CreatedAt:     task.CreatedAt,
	}
	if err := s.Events.Notify(ctx, event); err != nil {
		log.Error("task created but event publish failed",
			slog.String("task_id", task.ID),
			slog.Any("error", err),
		)
	}

	log.Debug("task created",
		slog.String("task_id", task.ID),
		slog.String("application_id", task.ApplicationID),
		slog.String("type", string(task.Type)),
		slog.Time("due_at", task.DueAt),
	)

	return task, nil
}

// ListTasks returns the non-deleted tasks in the actor's tenant the actor
// may read.
func (s *TaskService) ListTasks(ctx context.Context, actor domain.Actor) ([]domain.Task, error) {
	tasks, err := s.Store.Tasks().ListTasksByTenant(ctx, actor.TenantID)
	if err != nil {
		return nil, err
	}
	return s.Policy.FilterTasks(ctx, actor, tasks)
}

// ListTasksDueBefore returns the actor-visible open tasks due before cutoff,
// ordered by due date.
func (s *TaskService) ListTasksDueBefore(ctx context.Context, actor domain.Actor, cutoff time.Time) ([]domain.Task, error) {
	tasks, err := s.Store.Tasks().ListTasksDueBefore(ctx, actor.TenantID, cutoff)
	if err != nil {
		return nil, err
	}
	return s.Policy.FilterTasks(ctx, actor, tasks)
}

// UpdateTaskStatus moves a task through its state machine on behalf of the
// actor.
func (s *TaskService) UpdateTaskStatus(ctx context.Context, actor domain.Actor, taskID string, status domain.TaskStatus) (domain.Task, error) {
	log := slogx.FromContext(ctx)

	if !status.Valid() {
		return domain.Task{}, &ValidationError{Fields: []FieldError{
			{Field: "status", Message: "must be a known task status"},
		}}
	}

	var updated domain.Task
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		task, err := tx.Tasks().GetTaskByID(ctx, taskID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrTaskNotFound
		}
		if err != nil {
			return err
		}

		if task.TenantID != actor.TenantID {
			return ErrForbidden
		}

		pol := &policy.Evaluator{Store: tx}
		allowed, err := pol.CanAccessTask(ctx, actor, policy.ActionUpdate, task)
		if err != nil {
			return err
		}
		if !allowed {
			return ErrForbidden
		}

		if err := tx.Tasks().UpdateTaskStatus(ctx, taskID, status, s.now()); err != nil {
			if errors.Is(err, store.ErrInvalidTransition) {
				return ErrInvalidTransition
			}
			return err
		}

		updated, err = tx.Tasks().GetTaskByID(ctx, taskID)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrTaskNotFound), errors.Is(err, ErrForbidden), errors.Is(err, ErrInvalidTransition):
		default:
			log.Error("failed to update task status", slog.Any("error", err))
		}
		return domain.Task{}, err
	}

	return updated, nil
}
