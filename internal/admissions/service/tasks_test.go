package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/admissions/internal/admissions/broadcast"
	"github.com/aussiebroadwan/admissions/internal/admissions/domain"
	"github.com/aussiebroadwan/admissions/internal/admissions/policy"
	"github.com/aussiebroadwan/admissions/internal/admissions/store"
	"github.com/aussiebroadwan/admissions/internal/admissions/store/drivers/sqlite"
	"github.com/aussiebroadwan/admissions/pkg/idx"
	"github.com/stretchr/testify/require"
)

var testClock = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func seedLead(t *testing.T, st store.Store, tenantID string, ownerID, teamID *string) domain.Lead {
	t.Helper()

	lead := domain.Lead{
		ID:        idx.New().String(),
		TenantID:  tenantID,
		OwnerID:   ownerID,
		TeamID:    teamID,
		Stage:     domain.LeadStageNew,
		CreatedAt: testClock,
		UpdatedAt: testClock,
	}
	require.NoError(t, st.Leads().CreateLead(context.Background(), lead))
	return lead
}

func seedApplication(t *testing.T, st store.Store, lead domain.Lead) domain.Application {
	t.Helper()

	app := domain.Application{
		ID:            idx.New().String(),
		TenantID:      lead.TenantID,
		LeadID:        lead.ID,
		Status:        domain.ApplicationStatusOpen,
		PaymentStatus: domain.PaymentStatusUnpaid,
		CreatedAt:     testClock,
		UpdatedAt:     testClock,
	}
	require.NoError(t, st.Applications().CreateApplication(context.Background(), app))
	return app
}

func newTaskService(st store.Store) (*TaskService, broadcast.Notifier[broadcast.TaskCreatedEvent]) {
	events := broadcast.NewMemoryNotifier[broadcast.TaskCreatedEvent](broadcast.MemoryNotifierOptions{Buffer: 8})
	return &TaskService{
		Store:  st,
		Policy: &policy.Evaluator{Store: st},
		Events: events,
		Now:    func() time.Time { return testClock },
	}, events
}

func fieldNames(t *testing.T, err error) []string {
	t.Helper()

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	names := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		names = append(names, f.Field)
	}
	return names
}

func TestCreateTask(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	ownerID := idx.New().String()
	counselor := domain.Actor{ID: ownerID, Role: domain.RoleCounselor, TenantID: "t1"}
	due := testClock.Add(48 * time.Hour)

	t.Run("owner of the lead creates a task", func(t *testing.T) {
		st := newTestStore(t)
		svc, _ := newTaskService(st)
		lead := seedLead(t, st, "t1", &ownerID, nil)
		app := seedApplication(t, st, lead)

		task, err := svc.CreateTask(ctx, counselor, CreateTaskRequest{
			ApplicationID: app.ID,
			Type:          "call",
			DueAt:         due.Format(time.RFC3339),
		})
		require.NoError(t, err)
		require.Equal(t, "t1", task.TenantID)
		require.Equal(t, domain.TaskStatusPending, task.Status)
		require.Equal(t, domain.TaskTypeCall, task.Type)
	})

	t.Run("applies defaults for title and priority", func(t *testing.T) {
		st := newTestStore(t)
		svc, _ := newTaskService(st)
		lead := seedLead(t, st, "t1", &ownerID, nil)
		app := seedApplication(t, st, lead)

		task, err := svc.CreateTask(ctx, counselor, CreateTaskRequest{
			ApplicationID: app.ID,
			Type:          "email",
			DueAt:         due.Format(time.RFC3339),
		})
		require.NoError(t, err)
		require.Equal(t, "email task", task.Title)
		require.Equal(t, domain.TaskPriorityMedium, task.Priority)
	})

	t.Run("round trip preserves fields", func(t *testing.T) {
		st := newTestStore(t)
		svc, _ := newTaskService(st)
		lead := seedLead(t, st, "t1", &ownerID, nil)
		app := seedApplication(t, st, lead)
		assignee := idx.New().String()

		created, err := svc.CreateTask(ctx, counselor, CreateTaskRequest{
			ApplicationID: app.ID,
			Type:          "review",
			Title:         "check transcripts",
			Description:   "verify semester two results",
			Priority:      "high",
			DueAt:         due.Format(time.RFC3339),
			AssignedTo:    &assignee,
		})
		require.NoError(t, err)

		got, err := st.Tasks().GetTaskByIDIncludeDeleted(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, domain.TaskTypeReview, got.Type)
		require.Equal(t, "check transcripts", got.Title)
		require.Equal(t, "verify semester two results", got.Description)
		require.Equal(t, domain.TaskPriorityHigh, got.Priority)
		require.Equal(t, domain.TaskStatusPending, got.Status)
		require.NotNil(t, got.AssignedTo)
		require.Equal(t, assignee, *got.AssignedTo)
		require.Nil(t, got.CompletedAt)
		require.True(t, got.DueAt.Equal(due))
	})

	t.Run("cross-tenant application is forbidden", func(t *testing.T) {
		st := newTestStore(t)
		svc, _ := newTaskService(st)
		lead := seedLead(t, st, "t2", nil, nil)
		app := seedApplication(t, st, lead)

		_, err := svc.CreateTask(ctx, counselor, CreateTaskRequest{
			ApplicationID: app.ID,
			Type:          "call",
			DueAt:         due.Format(time.RFC3339),
		})
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("policy denial without ownership is forbidden", func(t *testing.T) {
		st := newTestStore(t)
		svc, _ := newTaskService(st)
		other := idx.New().String()
		lead := seedLead(t, st, "t1", &other, nil)
		app := seedApplication(t, st, lead)

		_, err := svc.CreateTask(ctx, counselor, CreateTaskRequest{
			ApplicationID: app.ID,
			Type:          "call",
			DueAt:         due.Format(time.RFC3339),
		})
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("admin needs no ownership", func(t *testing.T) {
		st := newTestStore(t)
		svc, _ := newTaskService(st)
		lead := seedLead(t, st, "t1", nil, nil)
		app := seedApplication(t, st, lead)
		admin := domain.Actor{ID: idx.New().String(), Role: domain.RoleAdmin, TenantID: "t1"}

		_, err := svc.CreateTask(ctx, admin, CreateTaskRequest{
			ApplicationID: app.ID,
			Type:          "call",
			DueAt:         due.Format(time.RFC3339),
		})
		require.NoError(t, err)
	})

	t.Run("past due date fails validation", func(t *testing.T) {
		st := newTestStore(t)
		svc, _ := newTaskService(st)
		lead := seedLead(t, st, "t1", &ownerID, nil)
		app := seedApplication(t, st, lead)

		_, err := svc.CreateTask(ctx, counselor, CreateTaskRequest{
			ApplicationID: app.ID,
			Type:          "call",
			DueAt:         testClock.Add(-time.Hour).Format(time.RFC3339),
		})
		require.Contains(t, fieldNames(t, err), "due_at")
	})

	t.Run("invalid task type enumerates the valid values", func(t *testing.T) {
		st := newTestStore(t)
		svc, _ := newTaskService(st)
		lead := seedLead(t, st, "t1", &ownerID, nil)
		app := seedApplication(t, st, lead)

		_, err := svc.CreateTask(ctx, counselor, CreateTaskRequest{
			ApplicationID: app.ID,
			Type:          "invalid",
			DueAt:         due.Format(time.RFC3339),
		})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Len(t, verr.Fields, 1)
		require.Equal(t, "task_type", verr.Fields[0].Field)
		require.Contains(t, verr.Fields[0].Message, "call")
		require.Contains(t, verr.Fields[0].Message, "email")
		require.Contains(t, verr.Fields[0].Message, "review")
	})

	t.Run("collects every field failure at once", func(t *testing.T) {
		st := newTestStore(t)
		svc, _ := newTaskService(st)

		_, err := svc.CreateTask(ctx, counselor, CreateTaskRequest{
			ApplicationID: "not-a-ulid",
			Type:          "invalid",
			Priority:      "urgent",
			DueAt:         "yesterday",
		})
		names := fieldNames(t, err)
		require.ElementsMatch(t, []string{"application_id", "task_type", "priority", "due_at"}, names)
	})

	t.Run("soft-deleted application reads as not found", func(t *testing.T) {
		st := newTestStore(t)
		svc, _ := newTaskService(st)
		lead := seedLead(t, st, "t1", &ownerID, nil)
		app := seedApplication(t, st, lead)
		require.NoError(t, st.Applications().SoftDeleteApplicationsByLead(ctx, lead.ID, testClock))

		_, err := svc.CreateTask(ctx, counselor, CreateTaskRequest{
			ApplicationID: app.ID,
			Type:          "call",
			DueAt:         due.Format(time.RFC3339),
		})
		require.ErrorIs(t, err, ErrApplicationNotFound)
	})

	t.Run("absent application reads as not found", func(t *testing.T) {
		st := newTestStore(t)
		svc, _ := newTaskService(st)

		_, err := svc.CreateTask(ctx, counselor, CreateTaskRequest{
			ApplicationID: idx.New().String(),
			Type:          "call",
			DueAt:         due.Format(time.RFC3339),
		})
		require.ErrorIs(t, err, ErrApplicationNotFound)
	})

	t.Run("publishes exactly one event matching the created task", func(t *testing.T) {
		st := newTestStore(t)
		svc, events := newTaskService(st)
		lead := seedLead(t, st, "t1", &ownerID, nil)
		app := seedApplication(t, st, lead)

		ch, stop := events.Watch()
		defer stop()

		task, err := svc.CreateTask(ctx, counselor, CreateTaskRequest{
			ApplicationID: app.ID,
			Type:          "call",
			DueAt:         due.Format(time.RFC3339),
		})
		require.NoError(t, err)

		select {
		case ev := <-ch:
			require.Equal(t, task.ID, ev.TaskID)
			require.Equal(t, app.ID, ev.ApplicationID)
			require.Equal(t, "t1", ev.TenantID)
			require.Equal(t, "call", ev.TaskType)
		case <-time.After(time.Second):
			t.Fatal("expected a task.created event")
		}

		select {
		case ev := <-ch:
			t.Fatalf("unexpected second event: %+v", ev)
		default:
		}
	})

	t.Run("publish failure does not fail the creation", func(t *testing.T) {
		st := newTestStore(t)
		svc, _ := newTaskService(st)
		svc.Events = failingNotifier{}
		lead := seedLead(t, st, "t1", &ownerID, nil)
		app := seedApplication(t, st, lead)

		task, err := svc.CreateTask(ctx, counselor, CreateTaskRequest{
			ApplicationID: app.ID,
			Type:          "call",
			DueAt:         due.Format(time.RFC3339),
		})
		require.NoError(t, err)

		_, err = st.Tasks().GetTaskByID(ctx, task.ID)
		require.NoError(t, err)
	})
}

type failingNotifier struct{}

func (failingNotifier) Watch() (<-chan broadcast.TaskCreatedEvent, func()) {
	ch := make(chan broadcast.TaskCreatedEvent)
	return ch, func() {}
}

func (failingNotifier) Notify(context.Context, broadcast.TaskCreatedEvent) error {
	return errors.New("broker unavailable")
}

func TestUpdateTaskStatus(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	ownerID := idx.New().String()
	counselor := domain.Actor{ID: ownerID, Role: domain.RoleCounselor, TenantID: "t1"}
	due := testClock.Add(48 * time.Hour)

	create := func(t *testing.T, st store.Store, svc *TaskService) domain.Task {
		lead := seedLead(t, st, "t1", &ownerID, nil)
		app := seedApplication(t, st, lead)
		task, err := svc.CreateTask(ctx, counselor, CreateTaskRequest{
			ApplicationID: app.ID,
			Type:          "call",
			DueAt:         due.Format(time.RFC3339),
		})
		require.NoError(t, err)
		return task
	}

	t.Run("walks pending to completed and stamps completed_at", func(t *testing.T) {
		st := newTestStore(t)
		svc, _ := newTaskService(st)
		task := create(t, st, svc)

		updated, err := svc.UpdateTaskStatus(ctx, counselor, task.ID, domain.TaskStatusInProgress)
		require.NoError(t, err)
		require.Equal(t, domain.TaskStatusInProgress, updated.Status)
		require.Nil(t, updated.CompletedAt)

		updated, err = svc.UpdateTaskStatus(ctx, counselor, task.ID, domain.TaskStatusCompleted)
		require.NoError(t, err)
		require.Equal(t, domain.TaskStatusCompleted, updated.Status)
		require.NotNil(t, updated.CompletedAt)
	})

	t.Run("rejects skipping straight to completed", func(t *testing.T) {
		st := newTestStore(t)
		svc, _ := newTaskService(st)
		task := create(t, st, svc)

		_, err := svc.UpdateTaskStatus(ctx, counselor, task.ID, domain.TaskStatusCompleted)
		require.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("terminal statuses never move again", func(t *testing.T) {
		st := newTestStore(t)
		svc, _ := newTaskService(st)
		task := create(t, st, svc)

		_, err := svc.UpdateTaskStatus(ctx, counselor, task.ID, domain.TaskStatusCancelled)
		require.NoError(t, err)

		_, err = svc.UpdateTaskStatus(ctx, counselor, task.ID, domain.TaskStatusInProgress)
		require.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("actor outside the tenant is forbidden", func(t *testing.T) {
		st := newTestStore(t)
		svc, _ := newTaskService(st)
		task := create(t, st, svc)

		outsider := domain.Actor{ID: idx.New().String(), Role: domain.RoleAdmin, TenantID: "t2"}
		_, err := svc.UpdateTaskStatus(ctx, outsider, task.ID, domain.TaskStatusInProgress)
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("unknown task id is not found", func(t *testing.T) {
		st := newTestStore(t)
		svc, _ := newTaskService(st)

		_, err := svc.UpdateTaskStatus(ctx, counselor, idx.New().String(), domain.TaskStatusInProgress)
		require.ErrorIs(t, err, ErrTaskNotFound)
	})
}

func TestListTasksDueBefore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	ownerID := idx.New().String()
	counselor := domain.Actor{ID: ownerID, Role: domain.RoleCounselor, TenantID: "t1"}

	st := newTestStore(t)
	svc, _ := newTaskService(st)
	lead := seedLead(t, st, "t1", &ownerID, nil)
	app := seedApplication(t, st, lead)

	mk := func(offset time.Duration) domain.Task {
		task, err := svc.CreateTask(ctx, counselor, CreateTaskRequest{
			ApplicationID: app.ID,
			Type:          "call",
			DueAt:         testClock.Add(offset).Format(time.RFC3339),
		})
		require.NoError(t, err)
		return task
	}

	late := mk(72 * time.Hour)
	soon := mk(2 * time.Hour)
	mid := mk(24 * time.Hour)

	// The window closes out the latest task; cancelled tasks drop out too.
	_, err := svc.UpdateTaskStatus(ctx, counselor, late.ID, domain.TaskStatusCancelled)
	require.NoError(t, err)

	got, err := svc.ListTasksDueBefore(ctx, counselor, testClock.Add(48*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, soon.ID, got[0].ID)
	require.Equal(t, mid.ID, got[1].ID)
}
