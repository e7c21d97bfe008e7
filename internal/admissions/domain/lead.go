package domain

import "time"

// LeadStage tracks where a prospective student sits in the funnel.
type LeadStage string

const (
	LeadStageNew       LeadStage = "new"
	LeadStageContacted LeadStage = "contacted"
	LeadStageQualified LeadStage = "qualified"
	LeadStageEnrolled  LeadStage = "enrolled"
	LeadStageClosed    LeadStage = "closed"
)

// Valid reports whether the stage is one of the known funnel stages.
func (s LeadStage) Valid() bool {
	switch s {
	case LeadStageNew, LeadStageContacted, LeadStageQualified, LeadStageEnrolled, LeadStageClosed:
		return true
	}
	return false
}

// Lead is a prospective-student record. It is the root of the ownership
// hierarchy: applications and tasks derive their accessibility from it.
type Lead struct {
	ID       string
	TenantID string

	// OwnerID is the actor that owns this lead (nullable).
	OwnerID *string

	// TeamID shares the lead with a team (nullable).
	TeamID *string

	Stage LeadStage

	// DeletedAt marks a soft delete. Never physically removed, never unset.
	DeletedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsDeleted reports whether the lead has been soft-deleted.
func (l Lead) IsDeleted() bool { return l.DeletedAt != nil }
