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

const courseColumns = "id, college_id, name, slug, description, degree, level, duration_months, fees, currency, eligibility, syllabus, status, featured, created_at, updated_at"

var courseSorts = map[string]string{
	"name":      "co.name",
	"level":     "co.level",
	"fees":      "co.fees",
	"createdAt": "co.created_at",
	"updatedAt": "co.updated_at",
	"status":    "co.status",
}

// CourseRepository manages persistence for courses.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs a new course repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

func (r *CourseRepository) detailSelect() string {
	return fmt.Sprintf(`SELECT %s, cl.name AS college_name, (SELECT COUNT(*) FROM specializations s WHERE s.course_id = co.id) AS specialization_count
FROM courses co JOIN colleges cl ON cl.id = co.college_id`, qualify("co", courseColumns))
}

// List returns courses with their college name and specialization counts.
func (r *CourseRepository) List(ctx context.Context, filter models.CourseFilter) ([]models.CourseDetail, int, error) {
	var b conditionBuilder
	b.addSearch(filter.Search, "co.name", "COALESCE(co.degree, '')", "cl.name")
	if filter.CollegeID != "" {
		b.add("co.college_id = $%d", filter.CollegeID)
	}
	if filter.Level != "" {
		b.add("co.level = $%d", filter.Level)
	}
	if filter.Status != "" {
		b.add("co.status = $%d", filter.Status)
	}
	if filter.Featured != nil {
		b.add("co.featured = $%d", *filter.Featured)
	}
	where := b.where()

	limit, offset := pageWindow(filter.Page, filter.PageSize)
	query := fmt.Sprintf("%s %s ORDER BY %s LIMIT %d OFFSET %d", r.detailSelect(), where,
		orderClause(filter.SortBy, filter.SortOrder, courseSorts, "co.created_at"), limit, offset)
	var courses []models.CourseDetail
	if err := r.db.SelectContext(ctx, &courses, query, b.args...); err != nil {
		return nil, 0, fmt.Errorf("list courses: %w", err)
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM courses co JOIN colleges cl ON cl.id = co.college_id " + where
	if err := r.db.GetContext(ctx, &total, countQuery, b.args...); err != nil {
		return nil, 0, fmt.Errorf("count courses: %w", err)
	}
	return courses, total, nil
}

// FindByID returns a course record by ID.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	query := fmt.Sprintf("SELECT %s FROM courses WHERE id = $1", courseColumns)
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// FindDetailByID returns a course with its college name and specialization count.
func (r *CourseRepository) FindDetailByID(ctx context.Context, id string) (*models.CourseDetail, error) {
	var detail models.CourseDetail
	if err := r.db.GetContext(ctx, &detail, r.detailSelect()+" WHERE co.id = $1", id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// ListActiveByCollege returns ACTIVE courses of a college for the public site.
func (r *CourseRepository) ListActiveByCollege(ctx context.Context, collegeID string) ([]models.Course, error) {
	query := fmt.Sprintf("SELECT %s FROM courses WHERE college_id = $1 AND status = 'ACTIVE' ORDER BY name ASC", courseColumns)
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, collegeID); err != nil {
		return nil, fmt.Errorf("list college courses: %w", err)
	}
	return courses, nil
}

// ExistsBySlug checks slug uniqueness within a college, optionally ignoring one course.
func (r *CourseRepository) ExistsBySlug(ctx context.Context, collegeID, slug, excludeID string) (bool, error) {
	query := "SELECT 1 FROM courses WHERE college_id = $1 AND LOWER(slug) = LOWER($2)"
	args := []interface{}{collegeID, slug}
	if excludeID != "" {
		query += " AND id <> $3"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check course slug: %w", err)
	}
	return true, nil
}

// Create persists a course record.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if course.CreatedAt.IsZero() {
		course.CreatedAt = now
	}
	course.UpdatedAt = now

	const query = `INSERT INTO courses (id, college_id, name, slug, description, degree, level, duration_months, fees, currency, eligibility, syllabus, status, featured, created_at, updated_at)
VALUES (:id, :college_id, :name, :slug, :description, :degree, :level, :duration_months, :fees, :currency, :eligibility, :syllabus, :status, :featured, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		return writeError("create course", err, "course slug already exists")
	}
	return nil
}

// Update modifies a course record.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	course.UpdatedAt = time.Now().UTC()
	const query = `UPDATE courses SET college_id = :college_id, name = :name, slug = :slug, description = :description, degree = :degree, level = :level, duration_months = :duration_months,
fees = :fees, currency = :currency, eligibility = :eligibility, syllabus = :syllabus, status = :status, featured = :featured, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		return writeError("update course", err, "course slug already exists")
	}
	return nil
}

// CountByLevel returns course tallies grouped by level.
func (r *CourseRepository) CountByLevel(ctx context.Context) ([]models.LevelCount, error) {
	const query = `SELECT level, COUNT(*) AS count FROM courses GROUP BY level ORDER BY level ASC`
	var counts []models.LevelCount
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("count courses by level: %w", err)
	}
	return counts, nil
}
