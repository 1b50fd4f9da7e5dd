package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/campus-admin-api/internal/models"
)

const leadColumns = "id, name, email, phone, message, age, gender, nationality, source, status, notes, created_at, updated_at"

var leadSorts = map[string]string{
	"createdAt": "l.created_at",
	"updatedAt": "l.updated_at",
	"name":      "l.name",
	"email":     "l.email",
	"status":    "l.status",
}

// LeadRepository manages persistence and aggregation for leads.
type LeadRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewLeadRepository constructs a lead repository.
func NewLeadRepository(db *sqlx.DB) *LeadRepository {
	return &LeadRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// List returns one page of leads matching the filter, with interests loaded, plus the total count.
func (r *LeadRepository) List(ctx context.Context, params models.LeadListParams) ([]models.Lead, int, error) {
	predicate, args := leadPredicate(params.LeadFilter, 0)

	limit := params.Limit
	if limit <= 0 || limit > models.MaxPageSize {
		limit = models.DefaultPageSize
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf("SELECT %s FROM leads l WHERE %s ORDER BY %s LIMIT %d OFFSET %d",
		qualify("l", leadColumns), predicate, orderClause(params.SortBy, params.SortOrder, leadSorts, "l.created_at"), limit, offset)
	var leads []models.Lead
	if err := r.db.SelectContext(ctx, &leads, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM leads l WHERE "+predicate, args...); err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}

	if err := r.loadInterests(ctx, leads); err != nil {
		return nil, 0, err
	}
	return leads, total, nil
}

// ListForExport returns one batch of leads matching the filter, newest first, with interests loaded.
// The id tiebreak keeps consecutive batches stable when created_at collides.
func (r *LeadRepository) ListForExport(ctx context.Context, filter models.LeadFilter, limit, offset int) ([]models.Lead, error) {
	predicate, args := leadPredicate(filter, 0)
	query := fmt.Sprintf("SELECT %s FROM leads l WHERE %s ORDER BY l.created_at DESC, l.id DESC LIMIT %d OFFSET %d",
		qualify("l", leadColumns), predicate, limit, offset)
	var leads []models.Lead
	if err := r.db.SelectContext(ctx, &leads, query, args...); err != nil {
		return nil, fmt.Errorf("list leads for export: %w", err)
	}
	if err := r.loadInterests(ctx, leads); err != nil {
		return nil, err
	}
	return leads, nil
}

// FindByID returns a lead with its interested colleges and courses.
func (r *LeadRepository) FindByID(ctx context.Context, id string) (*models.Lead, error) {
	query := fmt.Sprintf("SELECT %s FROM leads l WHERE l.id = $1", qualify("l", leadColumns))
	var lead models.Lead
	if err := r.db.GetContext(ctx, &lead, query, id); err != nil {
		return nil, err
	}
	leads := []models.Lead{lead}
	if err := r.loadInterests(ctx, leads); err != nil {
		return nil, err
	}
	return &leads[0], nil
}

// loadInterests batch loads related colleges and courses for the given leads.
func (r *LeadRepository) loadInterests(ctx context.Context, leads []models.Lead) error {
	if len(leads) == 0 {
		return nil
	}
	ids := make([]string, len(leads))
	index := make(map[string]int, len(leads))
	for i := range leads {
		ids[i] = leads[i].ID
		index[leads[i].ID] = i
		leads[i].InterestedColleges = []models.LeadCollege{}
		leads[i].InterestedCourses = []models.LeadCourse{}
	}

	const collegeQuery = `SELECT lc.lead_id, c.id, c.name, c.slug, c.city, c.country
FROM lead_colleges lc JOIN colleges c ON c.id = lc.college_id
WHERE lc.lead_id = ANY($1) ORDER BY c.name ASC`
	var colleges []models.LeadCollege
	if err := r.db.SelectContext(ctx, &colleges, collegeQuery, pq.Array(ids)); err != nil {
		return fmt.Errorf("load lead colleges: %w", err)
	}
	for _, college := range colleges {
		if i, ok := index[college.LeadID]; ok {
			leads[i].InterestedColleges = append(leads[i].InterestedColleges, college)
		}
	}

	const courseQuery = `SELECT lc.lead_id, co.id, co.name, co.slug, co.degree, co.level
FROM lead_courses lc JOIN courses co ON co.id = lc.course_id
WHERE lc.lead_id = ANY($1) ORDER BY co.name ASC`
	var courses []models.LeadCourse
	if err := r.db.SelectContext(ctx, &courses, courseQuery, pq.Array(ids)); err != nil {
		return fmt.Errorf("load lead courses: %w", err)
	}
	for _, course := range courses {
		if i, ok := index[course.LeadID]; ok {
			leads[i].InterestedCourses = append(leads[i].InterestedCourses, course)
		}
	}
	return nil
}

// Create inserts a lead and its interest links in one transaction. Unknown
// college or course ids are ignored.
func (r *LeadRepository) Create(ctx context.Context, lead *models.Lead, collegeIDs, courseIDs []string) (err error) {
	if lead.ID == "" {
		lead.ID = uuid.NewString()
	}
	if lead.Status == "" {
		lead.Status = models.LeadStatusNew
	}
	now := r.now()
	lead.CreatedAt = now
	lead.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create lead: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const query = `INSERT INTO leads (id, name, email, phone, message, age, gender, nationality, source, status, notes, created_at, updated_at)
VALUES (:id, :name, :email, :phone, :message, :age, :gender, :nationality, :source, :status, :notes, :created_at, :updated_at)`
	if _, err = tx.NamedExecContext(ctx, query, lead); err != nil {
		return fmt.Errorf("create lead: %w", err)
	}
	if len(collegeIDs) > 0 {
		if _, err = tx.ExecContext(ctx, `INSERT INTO lead_colleges (lead_id, college_id) SELECT $1, id FROM colleges WHERE id = ANY($2)`, lead.ID, pq.Array(collegeIDs)); err != nil {
			return fmt.Errorf("link lead colleges: %w", err)
		}
	}
	if len(courseIDs) > 0 {
		if _, err = tx.ExecContext(ctx, `INSERT INTO lead_courses (lead_id, course_id) SELECT $1, id FROM courses WHERE id = ANY($2)`, lead.ID, pq.Array(courseIDs)); err != nil {
			return fmt.Errorf("link lead courses: %w", err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit create lead: %w", err)
	}
	return nil
}

// UpdateStatus sets the status, and the notes when provided, in a single statement.
func (r *LeadRepository) UpdateStatus(ctx context.Context, id string, status models.LeadStatus, notes *string) error {
	var (
		res sql.Result
		err error
	)
	if notes != nil {
		res, err = r.db.ExecContext(ctx, `UPDATE leads SET status = $1, notes = $2, updated_at = $3 WHERE id = $4`, status, *notes, r.now(), id)
	} else {
		res, err = r.db.ExecContext(ctx, `UPDATE leads SET status = $1, updated_at = $2 WHERE id = $3`, status, r.now(), id)
	}
	if err != nil {
		return fmt.Errorf("update lead status: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// BulkUpdateStatus sets the status for every lead in ids.
func (r *LeadRepository) BulkUpdateStatus(ctx context.Context, ids []string, status models.LeadStatus) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := r.db.ExecContext(ctx, `UPDATE leads SET status = $1, updated_at = $2 WHERE id = ANY($3)`, status, r.now(), pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("bulk update lead status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("bulk update lead status: %w", err)
	}
	return int(affected), nil
}

// UpdateNotes replaces the free-text notes of a lead.
func (r *LeadRepository) UpdateNotes(ctx context.Context, id, notes string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE leads SET notes = $1, updated_at = $2 WHERE id = $3`, notes, r.now(), id)
	if err != nil {
		return fmt.Errorf("update lead notes: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountByStatus returns per-status counts over the filtered set.
func (r *LeadRepository) CountByStatus(ctx context.Context, filter models.LeadFilter) ([]models.StatusCount, error) {
	predicate, args := leadPredicate(filter, 0)
	query := "SELECT l.status, COUNT(*) AS count FROM leads l WHERE " + predicate + " GROUP BY l.status"
	var counts []models.StatusCount
	if err := r.db.SelectContext(ctx, &counts, query, args...); err != nil {
		return nil, fmt.Errorf("count leads by status: %w", err)
	}
	return counts, nil
}

// CountBySource returns per-source counts with NULL and blank sources reported as "Unknown".
func (r *LeadRepository) CountBySource(ctx context.Context, filter models.LeadFilter) ([]models.SourceCount, error) {
	predicate, args := leadPredicate(filter, 0)
	query := "SELECT COALESCE(NULLIF(BTRIM(l.source), ''), 'Unknown') AS source, COUNT(*) AS count FROM leads l WHERE " + predicate +
		" GROUP BY 1 ORDER BY count DESC, source ASC"
	var counts []models.SourceCount
	if err := r.db.SelectContext(ctx, &counts, query, args...); err != nil {
		return nil, fmt.Errorf("count leads by source: %w", err)
	}
	return counts, nil
}

// CountByHour returns non-empty hour-of-day buckets in the given time zone, ascending.
func (r *LeadRepository) CountByHour(ctx context.Context, filter models.LeadFilter, timezone string) ([]models.HourCount, error) {
	predicate, args := leadPredicate(filter, 1)
	args = append([]interface{}{timezone}, args...)
	query := "SELECT EXTRACT(HOUR FROM l.created_at AT TIME ZONE $1)::int AS hour, COUNT(*) AS count FROM leads l WHERE " + predicate +
		" GROUP BY 1 ORDER BY 1 ASC"
	var counts []models.HourCount
	if err := r.db.SelectContext(ctx, &counts, query, args...); err != nil {
		return nil, fmt.Errorf("count leads by hour: %w", err)
	}
	return counts, nil
}

// CountByDay returns non-empty calendar date buckets in the given time zone, ascending.
func (r *LeadRepository) CountByDay(ctx context.Context, filter models.LeadFilter, timezone string) ([]models.DayCount, error) {
	predicate, args := leadPredicate(filter, 1)
	args = append([]interface{}{timezone}, args...)
	query := "SELECT TO_CHAR((l.created_at AT TIME ZONE $1)::date, 'YYYY-MM-DD') AS date, COUNT(*) AS count FROM leads l WHERE " + predicate +
		" GROUP BY 1 ORDER BY 1 ASC"
	var counts []models.DayCount
	if err := r.db.SelectContext(ctx, &counts, query, args...); err != nil {
		return nil, fmt.Errorf("count leads by day: %w", err)
	}
	return counts, nil
}

// TopColleges ranks colleges by the number of filtered leads interested in them.
func (r *LeadRepository) TopColleges(ctx context.Context, filter models.LeadFilter, limit int) ([]models.EntityInterest, error) {
	predicate, args := leadPredicate(filter, 0)
	args = append(args, limit)
	query := fmt.Sprintf(`SELECT c.id, c.name, c.slug, COUNT(DISTINCT l.id) AS count
FROM lead_colleges lc JOIN leads l ON l.id = lc.lead_id JOIN colleges c ON c.id = lc.college_id
WHERE %s GROUP BY c.id, c.name, c.slug ORDER BY count DESC, c.name ASC LIMIT $%d`, predicate, len(args))
	var items []models.EntityInterest
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("top lead colleges: %w", err)
	}
	return items, nil
}

// TopCourses ranks courses by the number of filtered leads interested in them.
func (r *LeadRepository) TopCourses(ctx context.Context, filter models.LeadFilter, limit int) ([]models.EntityInterest, error) {
	predicate, args := leadPredicate(filter, 0)
	args = append(args, limit)
	query := fmt.Sprintf(`SELECT co.id, co.name, co.slug, COUNT(DISTINCT l.id) AS count
FROM lead_courses lc JOIN leads l ON l.id = lc.lead_id JOIN courses co ON co.id = lc.course_id
WHERE %s GROUP BY co.id, co.name, co.slug ORDER BY count DESC, co.name ASC LIMIT $%d`, predicate, len(args))
	var items []models.EntityInterest
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("top lead courses: %w", err)
	}
	return items, nil
}

// DistinctSources returns every non-blank source, sorted ascending.
func (r *LeadRepository) DistinctSources(ctx context.Context) ([]string, error) {
	const query = `SELECT DISTINCT BTRIM(source) AS source FROM leads WHERE source IS NOT NULL AND BTRIM(source) <> '' ORDER BY source ASC`
	var sources []string
	if err := r.db.SelectContext(ctx, &sources, query); err != nil {
		return nil, fmt.Errorf("list lead sources: %w", err)
	}
	return sources, nil
}

// CountWindows counts leads across the summary windows in one pass.
func (r *LeadRepository) CountWindows(ctx context.Context, w models.SummaryWindows) (models.LeadCounts, error) {
	const query = `SELECT COUNT(*) AS total,
COUNT(*) FILTER (WHERE created_at BETWEEN $1 AND $2) AS today,
COUNT(*) FILTER (WHERE created_at BETWEEN $3 AND $4) AS yesterday,
COUNT(*) FILTER (WHERE created_at BETWEEN $5 AND $6) AS week,
COUNT(*) FILTER (WHERE created_at BETWEEN $7 AND $8) AS last_week,
COUNT(*) FILTER (WHERE created_at BETWEEN $9 AND $10) AS month,
COUNT(*) FILTER (WHERE status = 'NEW') AS new,
COUNT(*) FILTER (WHERE status = 'CONVERTED') AS converted
FROM leads`
	var counts models.LeadCounts
	err := r.db.GetContext(ctx, &counts, query,
		w.Today.Start, w.Today.End,
		w.Yesterday.Start, w.Yesterday.End,
		w.Week.Start, w.Week.End,
		w.LastWeek.Start, w.LastWeek.End,
		w.Month.Start, w.Month.End,
	)
	if err != nil {
		return models.LeadCounts{}, fmt.Errorf("count lead windows: %w", err)
	}
	return counts, nil
}
