package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-admin-api/internal/models"
)

func TestCourseRepositoryExistsBySlugScopedToCollege(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM courses WHERE college_id = $1 AND LOWER(slug) = LOWER($2) LIMIT 1")).
		WithArgs("college-2", "btech-cse").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}))

	exists, err := repo.ExistsBySlug(context.Background(), "college-2", "btech-cse", "")
	require.NoError(t, err)
	assert.False(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryFindDetailByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "college_id", "name", "slug", "description", "degree", "level", "duration_months", "fees", "currency", "eligibility", "syllabus", "status", "featured", "created_at", "updated_at", "college_name", "specialization_count"}).
		AddRow("course-1", "college-1", "B.Tech CSE", "btech-cse", nil, "B.Tech", "UNDERGRADUATE", 48, 250000.0, "INR", nil, `[{"term":1,"title":"Foundations","topics":["Maths"]}]`, "ACTIVE", false, now, now, "Tech Institute", 3)
	mock.ExpectQuery(regexp.QuoteMeta("JOIN colleges cl ON cl.id = co.college_id WHERE co.id = $1")).
		WithArgs("course-1").
		WillReturnRows(rows)

	detail, err := repo.FindDetailByID(context.Background(), "course-1")
	require.NoError(t, err)
	assert.Equal(t, "Tech Institute", detail.CollegeName)
	assert.Equal(t, 3, detail.SpecializationCount)
	require.Len(t, detail.Syllabus, 1)
	assert.Equal(t, []string{"Maths"}, detail.Syllabus[0].Topics)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryListFilters(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE co.college_id = $1 AND co.level = $2 ORDER BY co.created_at DESC LIMIT 20 OFFSET 0")).
		WithArgs("college-1", models.CourseLevelPostgraduate).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM courses co JOIN colleges cl ON cl.id = co.college_id WHERE co.college_id = $1 AND co.level = $2")).
		WithArgs("college-1", models.CourseLevelPostgraduate).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	courses, total, err := repo.List(context.Background(), models.CourseFilter{CollegeID: "college-1", Level: models.CourseLevelPostgraduate, SortBy: "unknown"})
	require.NoError(t, err)
	assert.Empty(t, courses)
	assert.Zero(t, total)
	require.NoError(t, mock.ExpectationsWereMet())
}
