package repository

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-admin-api/internal/models"
	appErrors "github.com/noah-isme/campus-admin-api/pkg/errors"
)

var collegeColumnNames = []string{"id", "name", "slug", "short_name", "description", "city", "state", "country", "address", "website", "email", "phone", "logo_url", "established_year", "accreditation", "rankings", "facilities", "status", "featured", "created_at", "updated_at"}

func collegeRow(id, name, slug string) []driver.Value {
	now := time.Now()
	return []driver.Value{id, name, slug, nil, nil, "Pune", nil, "India", nil, nil, nil, nil, nil, 1990, "NAAC A", `[{"agency":"NIRF","rank":12,"year":2024}]`, `["Library","Hostel"]`, "ACTIVE", true, now, now}
}

func TestCollegeRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCollegeRepository(db)

	featured := true
	filter := models.CollegeFilter{Search: "Tech", Status: models.CatalogStatusActive, Featured: &featured, Page: 2, PageSize: 10, SortBy: "name", SortOrder: "asc"}

	rows := sqlmock.NewRows(append(append([]string{}, collegeColumnNames...), "course_count")).
		AddRow(append(collegeRow("college-1", "Tech Institute", "tech-institute"), 4)...)
	mock.ExpectQuery(regexp.QuoteMeta("FROM colleges c WHERE (LOWER(c.name) LIKE $1 OR LOWER(COALESCE(c.city, '')) LIKE $1 OR LOWER(COALESCE(c.country, '')) LIKE $1) AND c.status = $2 AND c.featured = $3 ORDER BY c.name ASC LIMIT 10 OFFSET 10")).
		WithArgs("%tech%", models.CatalogStatusActive, true).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM colleges c WHERE")).
		WithArgs("%tech%", models.CatalogStatusActive, true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))

	colleges, total, err := repo.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, 11, total)
	require.Len(t, colleges, 1)
	assert.Equal(t, 4, colleges[0].CourseCount)
	require.Len(t, colleges[0].Rankings, 1)
	assert.Equal(t, "NIRF", colleges[0].Rankings[0].Agency)
	assert.Equal(t, models.Facilities{"Library", "Hostel"}, colleges[0].Facilities)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCollegeRepositoryExistsBySlug(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCollegeRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM colleges WHERE LOWER(slug) = LOWER($1) AND id <> $2 LIMIT 1")).
		WithArgs("tech-institute", "college-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}))

	exists, err := repo.ExistsBySlug(context.Background(), "tech-institute", "college-1")
	require.NoError(t, err)
	assert.False(t, exists)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM colleges WHERE LOWER(slug) = LOWER($1) LIMIT 1")).
		WithArgs("tech-institute").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(1))

	exists, err = repo.ExistsBySlug(context.Background(), "tech-institute", "")
	require.NoError(t, err)
	assert.True(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCollegeRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCollegeRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO colleges")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	college := &models.College{Name: "Tech Institute", Slug: "tech-institute", Status: models.CatalogStatusDraft}
	require.NoError(t, repo.Create(context.Background(), college))
	assert.NotEmpty(t, college.ID)
	assert.False(t, college.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCollegeRepositoryCreateMapsUniqueViolation(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCollegeRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO colleges")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "colleges_slug_key"})

	err := repo.Create(context.Background(), &models.College{Name: "Tech Institute", Slug: "tech-institute"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrConflict))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCollegeRepositoryUpdateKeepsOtherErrors(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCollegeRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE colleges SET")).
		WillReturnError(&pq.Error{Code: "23503"})

	err := repo.Update(context.Background(), &models.College{ID: "college-1", Name: "Tech Institute", Slug: "tech-institute"})
	require.Error(t, err)
	assert.False(t, appErrors.Is(err, appErrors.ErrConflict))
	assert.Contains(t, err.Error(), "update college")
}
