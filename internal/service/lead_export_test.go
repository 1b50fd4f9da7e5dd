package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/campus-admin-api/internal/dto"
	"github.com/noah-isme/campus-admin-api/internal/models"
)

func ptrString(v string) *string {
	return &v
}

func TestProjectLeadRowFlattensInterests(t *testing.T) {
	age := 19
	created := time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC)
	lead := models.Lead{
		ID:        "lead-1",
		Name:      "Asha Rao",
		Email:     "asha@example.com",
		Age:       &age,
		Source:    ptrString("google"),
		Status:    models.LeadStatusNew,
		CreatedAt: created,
		UpdatedAt: created,
		InterestedColleges: []models.LeadCollege{
			{ID: "c1", Name: "North College", City: ptrString("Pune"), Country: ptrString("India")},
			{ID: "c2", Name: "South College"},
		},
		InterestedCourses: []models.LeadCourse{
			{ID: "k1", Name: "Computer Science", Degree: ptrString("BSc"), Level: models.CourseLevelUndergraduate},
		},
	}

	row := ProjectLeadRow(lead)

	assert.Equal(t, "19", row.Age)
	assert.Equal(t, "", row.Phone)
	assert.Equal(t, "", row.Gender)
	assert.Equal(t, "google", row.Source)
	assert.Equal(t, "NEW", row.Status)
	assert.Equal(t, "North College, Pune, India; South College, , ", row.InterestedColleges)
	assert.Equal(t, "Computer Science (BSc, UNDERGRADUATE)", row.InterestedCourses)
	assert.Equal(t, "2024-03-14T10:00:00Z", row.CreatedAt)
}

func TestProjectLeadRowWithoutInterests(t *testing.T) {
	row := ProjectLeadRow(models.Lead{ID: "lead-2", Name: "Dev", Email: "dev@example.com"})

	assert.Empty(t, row.InterestedColleges)
	assert.Empty(t, row.InterestedCourses)
	assert.Empty(t, row.Age)
	assert.Empty(t, row.CreatedAt)
}

func TestLeadDatasetKeepsHeaderOrder(t *testing.T) {
	data := leadDataset([]dto.LeadExportRow{{ID: "lead-1", Name: "Asha"}})

	assert.Equal(t, leadExportHeaders, data.Headers)
	assert.Len(t, data.Rows, 1)
	assert.Equal(t, "Asha", data.Rows[0]["Name"])
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2024, 3, 14, 23, 0, 0, 0, time.UTC)

	assert.Equal(t, "leads-export-2024-03-14.csv", exportFilename(models.ExportFormatCSV, now))
	assert.Equal(t, "leads-export-2024-03-14.pdf", exportFilename(models.ExportFormatPDF, now))
}
