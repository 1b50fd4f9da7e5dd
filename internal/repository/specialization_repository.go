package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-admin-api/internal/models"
)

const specializationColumns = "id, course_id, name, slug, description, status, featured, created_at, updated_at"

var specializationSorts = map[string]string{
	"name":      "s.name",
	"createdAt": "s.created_at",
	"updatedAt": "s.updated_at",
	"status":    "s.status",
}

// SpecializationRepository manages persistence for course specializations.
type SpecializationRepository struct {
	db *sqlx.DB
}

// NewSpecializationRepository constructs the repository.
func NewSpecializationRepository(db *sqlx.DB) *SpecializationRepository {
	return &SpecializationRepository{db: db}
}

func (r *SpecializationRepository) detailSelect() string {
	return fmt.Sprintf(`SELECT %s, co.name AS course_name, (SELECT COUNT(*) FROM applications a WHERE a.specialization_id = s.id) AS application_count
FROM specializations s JOIN courses co ON co.id = s.course_id`, qualify("s", specializationColumns))
}

// List returns specializations with their course name and application counts.
func (r *SpecializationRepository) List(ctx context.Context, filter models.SpecializationFilter) ([]models.SpecializationDetail, int, error) {
	var b conditionBuilder
	b.addSearch(filter.Search, "s.name", "co.name")
	if filter.CourseID != "" {
		b.add("s.course_id = $%d", filter.CourseID)
	}
	if filter.Status != "" {
		b.add("s.status = $%d", filter.Status)
	}
	if filter.Featured != nil {
		b.add("s.featured = $%d", *filter.Featured)
	}
	where := b.where()

	limit, offset := pageWindow(filter.Page, filter.PageSize)
	query := fmt.Sprintf("%s %s ORDER BY %s LIMIT %d OFFSET %d", r.detailSelect(), where,
		orderClause(filter.SortBy, filter.SortOrder, specializationSorts, "s.created_at"), limit, offset)
	var items []models.SpecializationDetail
	if err := r.db.SelectContext(ctx, &items, query, b.args...); err != nil {
		return nil, 0, fmt.Errorf("list specializations: %w", err)
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM specializations s JOIN courses co ON co.id = s.course_id " + where
	if err := r.db.GetContext(ctx, &total, countQuery, b.args...); err != nil {
		return nil, 0, fmt.Errorf("count specializations: %w", err)
	}
	return items, total, nil
}

// FindByID returns a specialization by ID.
func (r *SpecializationRepository) FindByID(ctx context.Context, id string) (*models.Specialization, error) {
	query := fmt.Sprintf("SELECT %s FROM specializations WHERE id = $1", specializationColumns)
	var item models.Specialization
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		return nil, err
	}
	return &item, nil
}

// FindDetailByID returns a specialization with course name and application count.
func (r *SpecializationRepository) FindDetailByID(ctx context.Context, id string) (*models.SpecializationDetail, error) {
	var detail models.SpecializationDetail
	if err := r.db.GetContext(ctx, &detail, r.detailSelect()+" WHERE s.id = $1", id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// ExistsBySlug checks slug uniqueness within a course.
func (r *SpecializationRepository) ExistsBySlug(ctx context.Context, courseID, slug, excludeID string) (bool, error) {
	query := "SELECT 1 FROM specializations WHERE course_id = $1 AND LOWER(slug) = LOWER($2)"
	args := []interface{}{courseID, slug}
	if excludeID != "" {
		query += " AND id <> $3"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check specialization slug: %w", err)
	}
	return true, nil
}

// Create persists a specialization.
func (r *SpecializationRepository) Create(ctx context.Context, item *models.Specialization) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	const query = `INSERT INTO specializations (id, course_id, name, slug, description, status, featured, created_at, updated_at)
VALUES (:id, :course_id, :name, :slug, :description, :status, :featured, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return writeError("create specialization", err, "specialization slug already exists")
	}
	return nil
}

// Update modifies a specialization.
func (r *SpecializationRepository) Update(ctx context.Context, item *models.Specialization) error {
	item.UpdatedAt = time.Now().UTC()
	const query = `UPDATE specializations SET course_id = :course_id, name = :name, slug = :slug, description = :description, status = :status, featured = :featured, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return writeError("update specialization", err, "specialization slug already exists")
	}
	return nil
}
