package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/aussiebroadwan/admissions/internal/admissions/domain"
	"github.com/aussiebroadwan/admissions/internal/admissions/store"
)

type applicationsRepo struct {
	db dbtx
}

const applicationColumns = `id, tenant_id, lead_id, status, payment_status, deleted_at, created_at, updated_at`

func (r *applicationsRepo) CreateApplication(ctx context.Context, a domain.Application) error {
	// The parent lead's tenant must match before anything is written. A
	// foreign key alone cannot express this, so check it here in the same
	// transaction scope the caller runs in.
	var (
		leadTenant string
		deletedAt  sql.NullTime
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT tenant_id, deleted_at FROM leads WHERE id = ?`, a.LeadID,
	).Scan(&leadTenant, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	if err != nil {
		return err
	}
	if deletedAt.Valid {
		return store.ErrNotFound
	}
	if leadTenant != a.TenantID {
		return store.ErrReferentialMismatch
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO applications (id, tenant_id, lead_id, status, payment_status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID,
		a.TenantID,
		a.LeadID,
		string(a.Status),
		string(a.PaymentStatus),
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (r *applicationsRepo) GetApplicationByID(ctx context.Context, id string) (domain.Application, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+applicationColumns+` FROM applications
		WHERE id = ? AND deleted_at IS NULL`, id)
	return scanApplication(row)
}

func (r *applicationsRepo) ListApplicationsByTenant(ctx context.Context, tenantID string) ([]domain.Application, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+applicationColumns+` FROM applications
		WHERE tenant_id = ? AND deleted_at IS NULL
		ORDER BY id`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []domain.Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

func (r *applicationsRepo) UpdateApplicationStatus(ctx context.Context, id string, status domain.ApplicationStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE applications SET status = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`,
		string(status), time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *applicationsRepo) SoftDeleteApplicationsByLead(ctx context.Context, leadID string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE applications SET deleted_at = ?, updated_at = ?
		WHERE lead_id = ? AND deleted_at IS NULL`,
		at, at, leadID)
	return err
}

func scanApplication(s scanner) (domain.Application, error) {
	var (
		a             domain.Application
		status        string
		paymentStatus string
		deletedAt     sql.NullTime
	)

	err := s.Scan(&a.ID, &a.TenantID, &a.LeadID, &status, &paymentStatus, &deletedAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return domain.Application{}, mapNotFound(err)
	}

	a.Status = domain.ApplicationStatus(status)
	a.PaymentStatus = domain.PaymentStatus(paymentStatus)
	a.DeletedAt = mapNullTimePtr(deletedAt)
	return a, nil
}
