package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/aussiebroadwan/admissions/internal/admissions/domain"
	"github.com/aussiebroadwan/admissions/internal/admissions/store"
)

type tasksRepo struct {
	db dbtx
}

const taskColumns = `id, tenant_id, application_id, type, title, description, priority, due_at, status, assigned_to, completed_at, deleted_at, created_at, updated_at`

func (r *tasksRepo) CreateTask(ctx context.Context, t domain.Task) error {
	// Same tenant-chaining rule as applications: the parent application must
	// exist, be live, and share the task's tenant.
	var (
		appTenant string
		deletedAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT tenant_id, deleted_at FROM applications WHERE id = ?`, t.ApplicationID,
	).Scan(&appTenant, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	if err != nil {
		return err
	}
	if deletedAt.Valid {
		return store.ErrNotFound
	}
	if appTenant != t.TenantID {
		return store.ErrReferentialMismatch
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO tasks (id, tenant_id, application_id, type, title, description, priority, due_at, status, assigned_to, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID,
		t.TenantID,
		t.ApplicationID,
		string(t.Type),
		t.Title,
		t.Description,
		string(t.Priority),
		t.DueAt,
		string(t.Status),
		mapOptionalString(t.AssignedTo),
		t.CreatedAt,
		t.UpdatedAt,
	)
	return err
}

func (r *tasksRepo) GetTaskByID(ctx context.Context, id string) (domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+taskColumns+` FROM tasks
		WHERE id = ? AND deleted_at IS NULL`, id)
	return scanTask(row)
}

func (r *tasksRepo) GetTaskByIDIncludeDeleted(ctx context.Context, id string) (domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+taskColumns+` FROM tasks
		WHERE id = ?`, id)
	return scanTask(row)
}

func (r *tasksRepo) ListTasksByTenant(ctx context.Context, tenantID string) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+taskColumns+` FROM tasks
		WHERE tenant_id = ? AND deleted_at IS NULL
		ORDER BY id`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTasks(rows)
}

func (r *tasksRepo) ListTasksDueBefore(ctx context.Context, tenantID string, cutoff time.Time) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+taskColumns+` FROM tasks
		WHERE tenant_id = ? AND deleted_at IS NULL
		  AND due_at < ?
		  AND status IN ('pending', 'in_progress')
		ORDER BY due_at`, tenantID, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTasks(rows)
}

func (r *tasksRepo) UpdateTaskStatus(ctx context.Context, id string, status domain.TaskStatus, at time.Time) error {
	var current string
	err := r.db.QueryRowContext(ctx,
		`SELECT status FROM tasks WHERE id = ? AND deleted_at IS NULL`, id,
	).Scan(&current)
	if err != nil {
		return mapNotFound(err)
	}

	if !domain.TaskStatus(current).CanTransitionTo(status) {
		return store.ErrInvalidTransition
	}

	var completedAt sql.NullTime
	if status == domain.TaskStatusCompleted {
		completedAt = sql.NullTime{Time: at, Valid: true}
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks SET status = ?, completed_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL AND status = ?`,
		string(status), completedAt, at, id, current)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *tasksRepo) SoftDeleteTasksByLead(ctx context.Context, leadID string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE tasks SET deleted_at = ?, updated_at = ?
		WHERE deleted_at IS NULL
		  AND application_id IN (SELECT id FROM applications WHERE lead_id = ?)`,
		at, at, leadID)
	return err
}

func collectTasks(rows *sql.Rows) ([]domain.Task, error) {
	var tasks []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func scanTask(s scanner) (domain.Task, error) {
	var (
		t           domain.Task
		taskType    string
		priority    string
		status      string
		assignedTo  sql.NullString
		completedAt sql.NullTime
		deletedAt   sql.NullTime
	)

	err := s.Scan(
		&t.ID, &t.TenantID, &t.ApplicationID,
		&taskType, &t.Title, &t.Description, &priority, &t.DueAt, &status,
		&assignedTo, &completedAt, &deletedAt,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return domain.Task{}, mapNotFound(err)
	}

	t.Type = domain.TaskType(taskType)
	t.Priority = domain.TaskPriority(priority)
	t.Status = domain.TaskStatus(status)
	t.AssignedTo = mapNullStringPtr(assignedTo)
	t.CompletedAt = mapNullTimePtr(completedAt)
	t.DeletedAt = mapNullTimePtr(deletedAt)
	return t, nil
}
