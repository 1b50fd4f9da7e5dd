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

const collegeColumns = "id, name, slug, short_name, description, city, state, country, address, website, email, phone, logo_url, established_year, accreditation, rankings, facilities, status, featured, created_at, updated_at"

var collegeSorts = map[string]string{
	"name":            "c.name",
	"createdAt":       "c.created_at",
	"updatedAt":       "c.updated_at",
	"establishedYear": "c.established_year",
	"status":          "c.status",
}

// CollegeRepository manages persistence for colleges.
type CollegeRepository struct {
	db *sqlx.DB
}

// NewCollegeRepository constructs a new college repository.
func NewCollegeRepository(db *sqlx.DB) *CollegeRepository {
	return &CollegeRepository{db: db}
}

// List returns colleges matching filter criteria together with their course counts.
func (r *CollegeRepository) List(ctx context.Context, filter models.CollegeFilter) ([]models.CollegeDetail, int, error) {
	var b conditionBuilder
	b.addSearch(filter.Search, "c.name", "COALESCE(c.city, '')", "COALESCE(c.country, '')")
	if filter.Status != "" {
		b.add("c.status = $%d", filter.Status)
	}
	if filter.Featured != nil {
		b.add("c.featured = $%d", *filter.Featured)
	}
	if filter.City != "" {
		b.add("LOWER(c.city) = LOWER($%d)", filter.City)
	}
	if filter.Country != "" {
		b.add("LOWER(c.country) = LOWER($%d)", filter.Country)
	}
	base := "FROM colleges c " + b.where()

	limit, offset := pageWindow(filter.Page, filter.PageSize)
	query := fmt.Sprintf(`SELECT %s, (SELECT COUNT(*) FROM courses co WHERE co.college_id = c.id) AS course_count %s ORDER BY %s LIMIT %d OFFSET %d`,
		qualify("c", collegeColumns), base, orderClause(filter.SortBy, filter.SortOrder, collegeSorts, "c.created_at"), limit, offset)
	var colleges []models.CollegeDetail
	if err := r.db.SelectContext(ctx, &colleges, query, b.args...); err != nil {
		return nil, 0, fmt.Errorf("list colleges: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+base, b.args...); err != nil {
		return nil, 0, fmt.Errorf("count colleges: %w", err)
	}
	return colleges, total, nil
}

// FindByID returns a college record by ID.
func (r *CollegeRepository) FindByID(ctx context.Context, id string) (*models.College, error) {
	query := fmt.Sprintf("SELECT %s FROM colleges WHERE id = $1", collegeColumns)
	var college models.College
	if err := r.db.GetContext(ctx, &college, query, id); err != nil {
		return nil, err
	}
	return &college, nil
}

// FindDetailByID returns a college with its course count.
func (r *CollegeRepository) FindDetailByID(ctx context.Context, id string) (*models.CollegeDetail, error) {
	query := fmt.Sprintf(`SELECT %s, (SELECT COUNT(*) FROM courses co WHERE co.college_id = c.id) AS course_count FROM colleges c WHERE c.id = $1`, qualify("c", collegeColumns))
	var detail models.CollegeDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// FindActiveBySlug returns an ACTIVE college by slug for the public site.
func (r *CollegeRepository) FindActiveBySlug(ctx context.Context, slug string) (*models.CollegeDetail, error) {
	query := fmt.Sprintf(`SELECT %s, (SELECT COUNT(*) FROM courses co WHERE co.college_id = c.id AND co.status = 'ACTIVE') AS course_count FROM colleges c WHERE c.slug = $1 AND c.status = 'ACTIVE'`, qualify("c", collegeColumns))
	var detail models.CollegeDetail
	if err := r.db.GetContext(ctx, &detail, query, slug); err != nil {
		return nil, err
	}
	return &detail, nil
}

// ExistsBySlug checks global slug uniqueness, optionally ignoring one college.
func (r *CollegeRepository) ExistsBySlug(ctx context.Context, slug string, excludeID string) (bool, error) {
	query := "SELECT 1 FROM colleges WHERE LOWER(slug) = LOWER($1)"
	args := []interface{}{slug}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check college slug: %w", err)
	}
	return true, nil
}

// Create persists a college record.
func (r *CollegeRepository) Create(ctx context.Context, college *models.College) error {
	if college.ID == "" {
		college.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if college.CreatedAt.IsZero() {
		college.CreatedAt = now
	}
	college.UpdatedAt = now

	const query = `INSERT INTO colleges (id, name, slug, short_name, description, city, state, country, address, website, email, phone, logo_url, established_year, accreditation, rankings, facilities, status, featured, created_at, updated_at)
VALUES (:id, :name, :slug, :short_name, :description, :city, :state, :country, :address, :website, :email, :phone, :logo_url, :established_year, :accreditation, :rankings, :facilities, :status, :featured, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, college); err != nil {
		return writeError("create college", err, "college slug already exists")
	}
	return nil
}

// Update modifies a college record.
func (r *CollegeRepository) Update(ctx context.Context, college *models.College) error {
	college.UpdatedAt = time.Now().UTC()
	const query = `UPDATE colleges SET name = :name, slug = :slug, short_name = :short_name, description = :description, city = :city, state = :state, country = :country, address = :address,
website = :website, email = :email, phone = :phone, logo_url = :logo_url, established_year = :established_year, accreditation = :accreditation, rankings = :rankings, facilities = :facilities,
status = :status, featured = :featured, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, college); err != nil {
		return writeError("update college", err, "college slug already exists")
	}
	return nil
}

// CountCourses returns the number of courses across all colleges.
func (r *CollegeRepository) CountCourses(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM courses`); err != nil {
		return 0, fmt.Errorf("count courses: %w", err)
	}
	return count, nil
}
