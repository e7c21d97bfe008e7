package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/admissions/internal/admissions/domain"
	"github.com/aussiebroadwan/admissions/internal/admissions/store"
)

type leadsRepo struct {
	db dbtx
}

const leadColumns = `id, tenant_id, owner_id, team_id, stage, deleted_at, created_at, updated_at`

func (r *leadsRepo) CreateLead(ctx context.Context, l domain.Lead) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO leads (id, tenant_id, owner_id, team_id, stage, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		l.ID,
		l.TenantID,
		mapOptionalString(l.OwnerID),
		mapOptionalString(l.TeamID),
		string(l.Stage),
		l.CreatedAt,
		l.UpdatedAt,
	)
	return err
}

func (r *leadsRepo) GetLeadByID(ctx context.Context, id string) (domain.Lead, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+leadColumns+` FROM leads
		WHERE id = ? AND deleted_at IS NULL`, id)
	return scanLead(row)
}

func (r *leadsRepo) ListLeadsByTenant(ctx context.Context, tenantID string) ([]domain.Lead, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+leadColumns+` FROM leads
		WHERE tenant_id = ? AND deleted_at IS NULL
		ORDER BY id`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []domain.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

func (r *leadsRepo) UpdateLeadStage(ctx context.Context, id string, stage domain.LeadStage) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE leads SET stage = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`,
		string(stage), time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *leadsRepo) SoftDeleteLead(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE leads SET deleted_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`,
		at, at, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

// requireRowAffected maps "no rows touched" onto ErrNotFound. Updates always
// carry a deleted_at IS NULL guard, so a soft-deleted target looks absent.
func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanLead(s scanner) (domain.Lead, error) {
	var (
		l         domain.Lead
		ownerID   sql.NullString
		teamID    sql.NullString
		stage     string
		deletedAt sql.NullTime
	)

	err := s.Scan(&l.ID, &l.TenantID, &ownerID, &teamID, &stage, &deletedAt, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return domain.Lead{}, mapNotFound(err)
	}

	l.OwnerID = mapNullStringPtr(ownerID)
	l.TeamID = mapNullStringPtr(teamID)
	l.Stage = domain.LeadStage(stage)
	l.DeletedAt = mapNullTimePtr(deletedAt)
	return l, nil
}
