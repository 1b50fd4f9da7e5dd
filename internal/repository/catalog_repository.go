package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/campus-admin-api/internal/models"
)

// childCountQueries maps each catalog table to the query counting rows that block its soft delete.
var childCountQueries = map[models.CatalogEntity]string{
	models.EntityCollege:        `SELECT COUNT(*) FROM courses WHERE college_id = $1`,
	models.EntityCourse:         `SELECT COUNT(*) FROM specializations WHERE course_id = $1`,
	models.EntitySpecialization: `SELECT COUNT(*) FROM applications WHERE specialization_id = $1`,
}

// CatalogRepository implements the status and featured operations shared by
// colleges, courses and specializations.
type CatalogRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewCatalogRepository constructs the shared catalog repository.
func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func tableFor(entity models.CatalogEntity) (string, error) {
	switch entity {
	case models.EntityCollege, models.EntityCourse, models.EntitySpecialization:
		return string(entity), nil
	}
	return "", fmt.Errorf("unknown catalog entity %q", entity)
}

// SetStatus updates the status of a single row. Returns sql.ErrNoRows when the id is unknown.
func (r *CatalogRepository) SetStatus(ctx context.Context, entity models.CatalogEntity, id string, status models.CatalogStatus) error {
	table, err := tableFor(entity)
	if err != nil {
		return err
	}
	query := fmt.Sprintf("UPDATE %s SET status = $1, updated_at = $2 WHERE id = $3", table)
	res, err := r.db.ExecContext(ctx, query, status, r.now(), id)
	if err != nil {
		return fmt.Errorf("set %s status: %w", table, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// BulkSetStatus updates the status of every row in ids and reports how many changed.
func (r *CatalogRepository) BulkSetStatus(ctx context.Context, entity models.CatalogEntity, ids []string, status models.CatalogStatus) (int, error) {
	table, err := tableFor(entity)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	query := fmt.Sprintf("UPDATE %s SET status = $1, updated_at = $2 WHERE id = ANY($3)", table)
	res, err := r.db.ExecContext(ctx, query, status, r.now(), pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("bulk set %s status: %w", table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("bulk set %s status: %w", table, err)
	}
	return int(affected), nil
}

// ToggleFeatured flips the featured flag in one statement and returns the new value.
func (r *CatalogRepository) ToggleFeatured(ctx context.Context, entity models.CatalogEntity, id string) (bool, error) {
	table, err := tableFor(entity)
	if err != nil {
		return false, err
	}
	query := fmt.Sprintf("UPDATE %s SET featured = NOT featured, updated_at = $1 WHERE id = $2 RETURNING featured", table)
	var featured bool
	if err := r.db.GetContext(ctx, &featured, query, r.now(), id); err != nil {
		if err == sql.ErrNoRows {
			return false, err
		}
		return false, fmt.Errorf("toggle %s featured: %w", table, err)
	}
	return featured, nil
}

// CountChildren returns how many dependent rows reference the entity, regardless of their status.
func (r *CatalogRepository) CountChildren(ctx context.Context, entity models.CatalogEntity, id string) (int, error) {
	query, ok := childCountQueries[entity]
	if !ok {
		return 0, fmt.Errorf("unknown catalog entity %q", entity)
	}
	var count int
	if err := r.db.GetContext(ctx, &count, query, id); err != nil {
		return 0, fmt.Errorf("count %s children: %w", entity, err)
	}
	return count, nil
}

// Stats returns status and featured counts across the whole table.
func (r *CatalogRepository) Stats(ctx context.Context, entity models.CatalogEntity) (models.CatalogStats, error) {
	table, err := tableFor(entity)
	if err != nil {
		return models.CatalogStats{}, err
	}
	query := fmt.Sprintf(`SELECT COUNT(*) AS total,
COUNT(*) FILTER (WHERE status = 'ACTIVE') AS active,
COUNT(*) FILTER (WHERE status = 'INACTIVE') AS inactive,
COUNT(*) FILTER (WHERE status = 'DRAFT') AS draft,
COUNT(*) FILTER (WHERE featured) AS featured
FROM %s`, table)
	var stats models.CatalogStats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return models.CatalogStats{}, fmt.Errorf("%s stats: %w", table, err)
	}
	return stats, nil
}
