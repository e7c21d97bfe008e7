package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/admissions/internal/admissions/domain"
	"github.com/aussiebroadwan/admissions/internal/admissions/store"
	"github.com/aussiebroadwan/admissions/internal/admissions/store/drivers/sqlite"
	"github.com/aussiebroadwan/admissions/pkg/idx"
)

var storeClock = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func insertLead(t *testing.T, st store.Store, tenantID string) domain.Lead {
	t.Helper()

	owner := idx.New().String()
	l := domain.Lead{
		ID:        idx.New().String(),
		TenantID:  tenantID,
		OwnerID:   &owner,
		Stage:     domain.LeadStageNew,
		CreatedAt: storeClock,
		UpdatedAt: storeClock,
	}
	require.NoError(t, st.Leads().CreateLead(context.Background(), l))
	return l
}

func insertApplication(t *testing.T, st store.Store, lead domain.Lead) domain.Application {
	t.Helper()

	a := domain.Application{
		ID:            idx.New().String(),
		TenantID:      lead.TenantID,
		LeadID:        lead.ID,
		Status:        domain.ApplicationStatusOpen,
		PaymentStatus: domain.PaymentStatusUnpaid,
		CreatedAt:     storeClock,
		UpdatedAt:     storeClock,
	}
	require.NoError(t, st.Applications().CreateApplication(context.Background(), a))
	return a
}

func insertTask(t *testing.T, st store.Store, app domain.Application, dueAt time.Time) domain.Task {
	t.Helper()

	tk := domain.Task{
		ID:            idx.New().String(),
		TenantID:      app.TenantID,
		ApplicationID: app.ID,
		Type:          domain.TaskTypeCall,
		Title:         "call task",
		Priority:      domain.TaskPriorityMedium,
		DueAt:         dueAt,
		Status:        domain.TaskStatusPending,
		CreatedAt:     storeClock,
		UpdatedAt:     storeClock,
	}
	require.NoError(t, st.Tasks().CreateTask(context.Background(), tk))
	return tk
}

func TestCreateApplicationReferentialChecks(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects a cross-tenant parent lead", func(t *testing.T) {
		st := newStore(t)
		lead := insertLead(t, st, "tenant-a")

		err := st.Applications().CreateApplication(ctx, domain.Application{
			ID:            idx.New().String(),
			TenantID:      "tenant-b",
			LeadID:        lead.ID,
			Status:        domain.ApplicationStatusOpen,
			PaymentStatus: domain.PaymentStatusUnpaid,
			CreatedAt:     storeClock,
			UpdatedAt:     storeClock,
		})
		assert.ErrorIs(t, err, store.ErrReferentialMismatch)
	})

	t.Run("rejects an absent parent lead", func(t *testing.T) {
		st := newStore(t)

		err := st.Applications().CreateApplication(ctx, domain.Application{
			ID:            idx.New().String(),
			TenantID:      "tenant-a",
			LeadID:        idx.New().String(),
			Status:        domain.ApplicationStatusOpen,
			PaymentStatus: domain.PaymentStatusUnpaid,
			CreatedAt:     storeClock,
			UpdatedAt:     storeClock,
		})
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("rejects a soft-deleted parent lead", func(t *testing.T) {
		st := newStore(t)
		lead := insertLead(t, st, "tenant-a")
		require.NoError(t, st.Leads().SoftDeleteLead(ctx, lead.ID, storeClock))

		err := st.Applications().CreateApplication(ctx, domain.Application{
			ID:            idx.New().String(),
			TenantID:      "tenant-a",
			LeadID:        lead.ID,
			Status:        domain.ApplicationStatusOpen,
			PaymentStatus: domain.PaymentStatusUnpaid,
			CreatedAt:     storeClock,
			UpdatedAt:     storeClock,
		})
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestCreateTaskReferentialChecks(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects a cross-tenant parent application", func(t *testing.T) {
		st := newStore(t)
		lead := insertLead(t, st, "tenant-a")
		app := insertApplication(t, st, lead)

		err := st.Tasks().CreateTask(ctx, domain.Task{
			ID:            idx.New().String(),
			TenantID:      "tenant-b",
			ApplicationID: app.ID,
			Type:          domain.TaskTypeEmail,
			Title:         "email task",
			Priority:      domain.TaskPriorityMedium,
			DueAt:         storeClock.Add(24 * time.Hour),
			Status:        domain.TaskStatusPending,
			CreatedAt:     storeClock,
			UpdatedAt:     storeClock,
		})
		assert.ErrorIs(t, err, store.ErrReferentialMismatch)
	})

	t.Run("rejects an absent parent application", func(t *testing.T) {
		st := newStore(t)

		err := st.Tasks().CreateTask(ctx, domain.Task{
			ID:            idx.New().String(),
			TenantID:      "tenant-a",
			ApplicationID: idx.New().String(),
			Type:          domain.TaskTypeEmail,
			Title:         "email task",
			Priority:      domain.TaskPriorityMedium,
			DueAt:         storeClock.Add(24 * time.Hour),
			Status:        domain.TaskStatusPending,
			CreatedAt:     storeClock,
			UpdatedAt:     storeClock,
		})
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestUpdateTaskStatusTransitions(t *testing.T) {
	ctx := context.Background()

	t.Run("enforces the transition table", func(t *testing.T) {
		st := newStore(t)
		lead := insertLead(t, st, "tenant-a")
		app := insertApplication(t, st, lead)
		task := insertTask(t, st, app, storeClock.Add(24*time.Hour))

		err := st.Tasks().UpdateTaskStatus(ctx, task.ID, domain.TaskStatusCompleted, storeClock)
		assert.ErrorIs(t, err, store.ErrInvalidTransition)

		require.NoError(t, st.Tasks().UpdateTaskStatus(ctx, task.ID, domain.TaskStatusInProgress, storeClock))
		require.NoError(t, st.Tasks().UpdateTaskStatus(ctx, task.ID, domain.TaskStatusCompleted, storeClock))

		got, err := st.Tasks().GetTaskByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusCompleted, got.Status)
		require.NotNil(t, got.CompletedAt)
		assert.True(t, got.CompletedAt.Equal(storeClock))
	})

	t.Run("terminal states accept nothing", func(t *testing.T) {
		st := newStore(t)
		lead := insertLead(t, st, "tenant-a")
		app := insertApplication(t, st, lead)
		task := insertTask(t, st, app, storeClock.Add(24*time.Hour))

		require.NoError(t, st.Tasks().UpdateTaskStatus(ctx, task.ID, domain.TaskStatusCancelled, storeClock))

		err := st.Tasks().UpdateTaskStatus(ctx, task.ID, domain.TaskStatusInProgress, storeClock)
		assert.ErrorIs(t, err, store.ErrInvalidTransition)
	})

	t.Run("unknown task is not found", func(t *testing.T) {
		st := newStore(t)

		err := st.Tasks().UpdateTaskStatus(ctx, idx.New().String(), domain.TaskStatusInProgress, storeClock)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestListTasksDueBefore(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	lead := insertLead(t, st, "tenant-a")
	app := insertApplication(t, st, lead)

	soon := insertTask(t, st, app, storeClock.Add(2*time.Hour))
	mid := insertTask(t, st, app, storeClock.Add(24*time.Hour))
	insertTask(t, st, app, storeClock.Add(72*time.Hour))
	done := insertTask(t, st, app, storeClock.Add(1*time.Hour))
	require.NoError(t, st.Tasks().UpdateTaskStatus(ctx, done.ID, domain.TaskStatusCancelled, storeClock))

	got, err := st.Tasks().ListTasksDueBefore(ctx, "tenant-a", storeClock.Add(48*time.Hour))
	require.NoError(t, err)

	// Ordered by due date, open statuses only, cutoff exclusive.
	require.Len(t, got, 2)
	assert.Equal(t, soon.ID, got[0].ID)
	assert.Equal(t, mid.ID, got[1].ID)
}

func TestSoftDeleteCascade(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	lead := insertLead(t, st, "tenant-a")
	app := insertApplication(t, st, lead)
	task := insertTask(t, st, app, storeClock.Add(24*time.Hour))

	sibling := insertLead(t, st, "tenant-a")
	siblingApp := insertApplication(t, st, sibling)

	// Tasks resolve their lead through applications, so they go first.
	require.NoError(t, st.Tasks().SoftDeleteTasksByLead(ctx, lead.ID, storeClock))
	require.NoError(t, st.Applications().SoftDeleteApplicationsByLead(ctx, lead.ID, storeClock))
	require.NoError(t, st.Leads().SoftDeleteLead(ctx, lead.ID, storeClock))

	_, err := st.Leads().GetLeadByID(ctx, lead.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.Applications().GetApplicationByID(ctx, app.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.Tasks().GetTaskByID(ctx, task.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// The raw row keeps the deletion timestamp.
	raw, err := st.Tasks().GetTaskByIDIncludeDeleted(ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, raw.DeletedAt)
	assert.True(t, raw.DeletedAt.Equal(storeClock))

	// The sibling subtree is untouched.
	_, err = st.Applications().GetApplicationByID(ctx, siblingApp.ID)
	assert.NoError(t, err)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	lead := insertLead(t, st, "tenant-a")

	appID := idx.New().String()
	err := st.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Applications().CreateApplication(ctx, domain.Application{
			ID:            appID,
			TenantID:      lead.TenantID,
			LeadID:        lead.ID,
			Status:        domain.ApplicationStatusOpen,
			PaymentStatus: domain.PaymentStatusUnpaid,
			CreatedAt:     storeClock,
			UpdatedAt:     storeClock,
		}); err != nil {
			return err
		}
		return store.ErrInvalidTransition
	})
	require.ErrorIs(t, err, store.ErrInvalidTransition)

	_, err = st.Applications().GetApplicationByID(ctx, appID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
