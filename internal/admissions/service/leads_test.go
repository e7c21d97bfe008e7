package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/admissions/internal/admissions/domain"
	"github.com/aussiebroadwan/admissions/internal/admissions/policy"
	"github.com/aussiebroadwan/admissions/internal/admissions/store"
	"github.com/aussiebroadwan/admissions/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newLeadService(st store.Store) *LeadService {
	return &LeadService{
		Store:  st,
		Policy: &policy.Evaluator{Store: st},
		Now:    func() time.Time { return testClock },
	}
}

func TestCreateLead(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("counselor creates an owned lead at the start of the funnel", func(t *testing.T) {
		st := newTestStore(t)
		svc := newLeadService(st)
		ownerID := idx.New().String()
		counselor := domain.Actor{ID: ownerID, Role: domain.RoleCounselor, TenantID: "t1"}

		lead, err := svc.CreateLead(ctx, counselor, CreateLeadRequest{OwnerID: &ownerID})
		require.NoError(t, err)
		require.Equal(t, "t1", lead.TenantID)
		require.Equal(t, domain.LeadStageNew, lead.Stage)

		got, err := st.Leads().GetLeadByID(ctx, lead.ID)
		require.NoError(t, err)
		require.NotNil(t, got.OwnerID)
		require.Equal(t, ownerID, *got.OwnerID)
	})

	t.Run("unknown role may not create", func(t *testing.T) {
		st := newTestStore(t)
		svc := newLeadService(st)
		intruder := domain.Actor{ID: idx.New().String(), Role: "viewer", TenantID: "t1"}

		_, err := svc.CreateLead(ctx, intruder, CreateLeadRequest{})
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("malformed owner id fails validation", func(t *testing.T) {
		st := newTestStore(t)
		svc := newLeadService(st)
		counselor := domain.Actor{ID: idx.New().String(), Role: domain.RoleCounselor, TenantID: "t1"}
		bad := "u-123"

		_, err := svc.CreateLead(ctx, counselor, CreateLeadRequest{OwnerID: &bad})
		require.Contains(t, fieldNames(t, err), "owner_id")
	})
}

func TestUpdateLeadStage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	ownerID := idx.New().String()
	counselor := domain.Actor{ID: ownerID, Role: domain.RoleCounselor, TenantID: "t1"}

	t.Run("owner advances the funnel", func(t *testing.T) {
		st := newTestStore(t)
		svc := newLeadService(st)
		lead := seedLead(t, st, "t1", &ownerID, nil)

		updated, err := svc.UpdateLeadStage(ctx, counselor, lead.ID, domain.LeadStageContacted)
		require.NoError(t, err)
		require.Equal(t, domain.LeadStageContacted, updated.Stage)
	})

	t.Run("non-owner in the same tenant is forbidden", func(t *testing.T) {
		st := newTestStore(t)
		svc := newLeadService(st)
		other := idx.New().String()
		lead := seedLead(t, st, "t1", &other, nil)

		_, err := svc.UpdateLeadStage(ctx, counselor, lead.ID, domain.LeadStageContacted)
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("unknown stage fails validation", func(t *testing.T) {
		st := newTestStore(t)
		svc := newLeadService(st)
		lead := seedLead(t, st, "t1", &ownerID, nil)

		_, err := svc.UpdateLeadStage(ctx, counselor, lead.ID, "graduated")
		require.Contains(t, fieldNames(t, err), "stage")
	})

	t.Run("deleted lead reads as not found even for admins", func(t *testing.T) {
		st := newTestStore(t)
		svc := newLeadService(st)
		lead := seedLead(t, st, "t1", &ownerID, nil)
		require.NoError(t, st.Leads().SoftDeleteLead(ctx, lead.ID, testClock))

		admin := domain.Actor{ID: idx.New().String(), Role: domain.RoleAdmin, TenantID: "t1"}
		_, err := svc.UpdateLeadStage(ctx, admin, lead.ID, domain.LeadStageContacted)
		require.ErrorIs(t, err, ErrLeadNotFound)
	})
}

func TestDeleteLead(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	ownerID := idx.New().String()
	counselor := domain.Actor{ID: ownerID, Role: domain.RoleCounselor, TenantID: "t1"}

	t.Run("cascade hides the whole subtree", func(t *testing.T) {
		st := newTestStore(t)
		leads := newLeadService(st)
		tasks, _ := newTaskService(st)

		lead := seedLead(t, st, "t1", &ownerID, nil)
		app := seedApplication(t, st, lead)
		task, err := tasks.CreateTask(ctx, counselor, CreateTaskRequest{
			ApplicationID: app.ID,
			Type:          "call",
			DueAt:         testClock.Add(24 * time.Hour).Format(time.RFC3339),
		})
		require.NoError(t, err)

		require.NoError(t, leads.DeleteLead(ctx, counselor, lead.ID))

		_, err = st.Leads().GetLeadByID(ctx, lead.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
		_, err = st.Applications().GetApplicationByID(ctx, app.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
		_, err = st.Tasks().GetTaskByID(ctx, task.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		// Soft delete, not physical removal: the row is still there and the
		// whole subtree shares one deletion timestamp.
		raw, err := st.Tasks().GetTaskByIDIncludeDeleted(ctx, task.ID)
		require.NoError(t, err)
		require.NotNil(t, raw.DeletedAt)
		require.True(t, raw.DeletedAt.Equal(testClock))
	})

	t.Run("sibling leads are untouched", func(t *testing.T) {
		st := newTestStore(t)
		leads := newLeadService(st)

		doomed := seedLead(t, st, "t1", &ownerID, nil)
		kept := seedLead(t, st, "t1", &ownerID, nil)
		keptApp := seedApplication(t, st, kept)

		require.NoError(t, leads.DeleteLead(ctx, counselor, doomed.ID))

		_, err := st.Leads().GetLeadByID(ctx, kept.ID)
		require.NoError(t, err)
		_, err = st.Applications().GetApplicationByID(ctx, keptApp.ID)
		require.NoError(t, err)
	})

	t.Run("delete is forbidden across tenants", func(t *testing.T) {
		st := newTestStore(t)
		leads := newLeadService(st)
		lead := seedLead(t, st, "t2", nil, nil)

		err := leads.DeleteLead(ctx, counselor, lead.ID)
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("second delete reads as not found", func(t *testing.T) {
		st := newTestStore(t)
		leads := newLeadService(st)
		lead := seedLead(t, st, "t1", &ownerID, nil)

		require.NoError(t, leads.DeleteLead(ctx, counselor, lead.ID))
		err := leads.DeleteLead(ctx, counselor, lead.ID)
		require.ErrorIs(t, err, ErrLeadNotFound)
	})
}

func TestListLeads(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	ownerID := idx.New().String()
	counselor := domain.Actor{ID: ownerID, Role: domain.RoleCounselor, TenantID: "t1"}

	st := newTestStore(t)
	svc := newLeadService(st)

	mine := seedLead(t, st, "t1", &ownerID, nil)
	teamID := "team-7"
	shared := seedLead(t, st, "t1", nil, &teamID)
	seedLead(t, st, "t1", nil, nil)      // unowned, invisible to counselors
	seedLead(t, st, "t2", &ownerID, nil) // other tenant

	t.Run("counselor sees owned leads only", func(t *testing.T) {
		got, err := svc.ListLeads(ctx, counselor)
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, mine.ID, got[0].ID)
	})

	t.Run("team membership widens the view", func(t *testing.T) {
		teammate := domain.Actor{ID: idx.New().String(), Role: domain.RoleCounselor, TenantID: "t1", TeamIDs: []string{teamID}}
		got, err := svc.ListLeads(ctx, teammate)
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, shared.ID, got[0].ID)
	})

	t.Run("admin sees the whole tenant, in stable order", func(t *testing.T) {
		admin := domain.Actor{ID: idx.New().String(), Role: domain.RoleAdmin, TenantID: "t1"}

		first, err := svc.ListLeads(ctx, admin)
		require.NoError(t, err)
		require.Len(t, first, 3)

		second, err := svc.ListLeads(ctx, admin)
		require.NoError(t, err)
		require.Equal(t, first, second)
	})
}
