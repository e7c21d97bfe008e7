package domain

import "time"

// ApplicationStatus tracks the formal application lifecycle.
type ApplicationStatus string

const (
	ApplicationStatusOpen      ApplicationStatus = "open"
	ApplicationStatusSubmitted ApplicationStatus = "submitted"
	ApplicationStatusAccepted  ApplicationStatus = "accepted"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
)

// PaymentStatus is recorded but the payment workflow itself lives outside
// this service.
type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// Application belongs to a Lead. It has no owner of its own: accessibility is
// derived by walking up to the owning lead. TenantID must always equal the
// parent lead's tenant, enforced at write time.
type Application struct {
	ID       string
	TenantID string
	LeadID   string

	Status        ApplicationStatus
	PaymentStatus PaymentStatus

	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsDeleted reports whether the application has been soft-deleted.
func (a Application) IsDeleted() bool { return a.DeletedAt != nil }
