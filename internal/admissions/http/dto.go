package http

import (
	"time"

	"github.com/aussiebroadwan/admissions/internal/admissions/domain"
	"github.com/aussiebroadwan/admissions/pkg/admissionsdk"
)

func taskDTO(t domain.Task) admissionsdk.Task {
	out := admissionsdk.Task{
		ID:            t.ID,
		TenantID:      t.TenantID,
		ApplicationID: t.ApplicationID,
		TaskType:      string(t.Type),
		Title:         t.Title,
		Description:   t.Description,
		Priority:      string(t.Priority),
		DueAt:         t.DueAt.Format(time.RFC3339),
		Status:        string(t.Status),
		AssignedTo:    t.AssignedTo,
		CreatedAt:     t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     t.UpdatedAt.Format(time.RFC3339),
	}
	if t.CompletedAt != nil {
		s := t.CompletedAt.Format(time.RFC3339)
		out.CompletedAt = &s
	}
	return out
}

func taskDTOs(tasks []domain.Task) []admissionsdk.Task {
	out := make([]admissionsdk.Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskDTO(t))
	}
	return out
}

func leadDTO(l domain.Lead) admissionsdk.Lead {
	return admissionsdk.Lead{
		ID:        l.ID,
		TenantID:  l.TenantID,
		OwnerID:   l.OwnerID,
		TeamID:    l.TeamID,
		Stage:     string(l.Stage),
		CreatedAt: l.CreatedAt.Format(time.RFC3339),
		UpdatedAt: l.UpdatedAt.Format(time.RFC3339),
	}
}

func leadDTOs(leads []domain.Lead) []admissionsdk.Lead {
	out := make([]admissionsdk.Lead, 0, len(leads))
	for _, l := range leads {
		out = append(out, leadDTO(l))
	}
	return out
}

func applicationDTO(a domain.Application) admissionsdk.Application {
	return admissionsdk.Application{
		ID:            a.ID,
		TenantID:      a.TenantID,
		LeadID:        a.LeadID,
		Status:        string(a.Status),
		PaymentStatus: string(a.PaymentStatus),
		CreatedAt:     a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     a.UpdatedAt.Format(time.RFC3339),
	}
}

func applicationDTOs(apps []domain.Application) []admissionsdk.Application {
	out := make([]admissionsdk.Application, 0, len(apps))
	for _, a := range apps {
		out = append(out, applicationDTO(a))
	}
	return out
}
