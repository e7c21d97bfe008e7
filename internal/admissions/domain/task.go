package domain

import "time"

// TaskType is the kind of follow-up a staff member performs.
type TaskType string

const (
	TaskTypeCall   TaskType = "call"
	TaskTypeEmail  TaskType = "email"
	TaskTypeReview TaskType = "review"
)

// TaskTypes lists the valid task types, in the order they are documented.
func TaskTypes() []TaskType {
	return []TaskType{TaskTypeCall, TaskTypeEmail, TaskTypeReview}
}

// Valid reports whether t is one of the enumerated task types.
func (t TaskType) Valid() bool {
	return t == TaskTypeCall || t == TaskTypeEmail || t == TaskTypeReview
}

// TaskPriority orders follow-up urgency.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Valid reports whether p is one of the enumerated priorities.
func (p TaskPriority) Valid() bool {
	return p == TaskPriorityLow || p == TaskPriorityMedium || p == TaskPriorityHigh
}

// TaskStatus is the task state machine:
//
//	pending -> in_progress -> completed (terminal)
//	pending/in_progress    -> cancelled (terminal)
//
// Soft delete is an orthogonal axis reachable from any status.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// Valid reports whether s is a known task status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status may move to next.
func (s TaskStatus) CanTransitionTo(next TaskStatus) bool {
	switch s {
	case TaskStatusPending:
		return next == TaskStatusInProgress || next == TaskStatusCancelled
	case TaskStatusInProgress:
		return next == TaskStatusCompleted || next == TaskStatusCancelled
	default:
		// completed and cancelled are terminal
		return false
	}
}

// Task is a staff follow-up item attached to an Application. Like
// applications, tasks derive lead/team accessibility from their ancestry;
// the only direct grant is AssignedTo.
type Task struct {
	ID            string
	TenantID      string
	ApplicationID string

	Type        TaskType
	Title       string
	Description string
	Priority    TaskPriority
	DueAt       time.Time
	Status      TaskStatus

	// AssignedTo is the actor responsible for the task (nullable).
	AssignedTo *string

	// CompletedAt is set when the task reaches completed.
	CompletedAt *time.Time

	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsDeleted reports whether the task has been soft-deleted.
func (t Task) IsDeleted() bool { return t.DeletedAt != nil }
