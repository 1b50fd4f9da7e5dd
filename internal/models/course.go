package models

import (
	"database/sql/driver"
	"time"
)

// CourseLevel enumerates academic levels offered by a course.
type CourseLevel string

const (
	CourseLevelCertificate   CourseLevel = "CERTIFICATE"
	CourseLevelDiploma       CourseLevel = "DIPLOMA"
	CourseLevelUndergraduate CourseLevel = "UNDERGRADUATE"
	CourseLevelPostgraduate  CourseLevel = "POSTGRADUATE"
	CourseLevelDoctorate     CourseLevel = "DOCTORATE"
)

// Course represents a programme offered by a college.
type Course struct {
	ID             string        `db:"id" json:"id"`
	CollegeID      string        `db:"college_id" json:"collegeId"`
	Name           string        `db:"name" json:"name"`
	Slug           string        `db:"slug" json:"slug"`
	Description    *string       `db:"description" json:"description,omitempty"`
	Degree         *string       `db:"degree" json:"degree,omitempty"`
	Level          CourseLevel   `db:"level" json:"level"`
	DurationMonths *int          `db:"duration_months" json:"durationMonths,omitempty"`
	Fees           *float64      `db:"fees" json:"fees,omitempty"`
	Currency       *string       `db:"currency" json:"currency,omitempty"`
	Eligibility    *string       `db:"eligibility" json:"eligibility,omitempty"`
	Syllabus       Syllabus      `db:"syllabus" json:"syllabus"`
	Status         CatalogStatus `db:"status" json:"status"`
	Featured       bool          `db:"featured" json:"featured"`
	CreatedAt      time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time     `db:"updated_at" json:"updatedAt"`
}

// CourseDetail extends Course with its college name and child counts.
type CourseDetail struct {
	Course
	CollegeName         string `db:"college_name" json:"collegeName"`
	SpecializationCount int    `db:"specialization_count" json:"specializationCount"`
}

// CourseFilter defines filter criteria for listing courses.
type CourseFilter struct {
	Search    string
	CollegeID string
	Level     CourseLevel
	Status    CatalogStatus
	Featured  *bool
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// LevelCount is a per-level course tally.
type LevelCount struct {
	Level CourseLevel `db:"level" json:"level"`
	Count int         `db:"count" json:"count"`
}

// CourseStats aggregates status counts plus a per-level breakdown.
type CourseStats struct {
	CatalogStats
	ByLevel []LevelCount `json:"byLevel"`
}

// SyllabusModule is one term's worth of syllabus content.
type SyllabusModule struct {
	Term   int      `json:"term" validate:"min=1"`
	Title  string   `json:"title" validate:"required,max=200"`
	Topics []string `json:"topics"`
}

// Syllabus is persisted as a JSONB array of modules.
type Syllabus []SyllabusModule

// Value marshals the syllabus for persistence.
func (s Syllabus) Value() (driver.Value, error) {
	if s == nil {
		s = Syllabus{}
	}
	return jsonValue([]SyllabusModule(s), "syllabus")
}

// Scan unmarshals a JSONB syllabus array.
func (s *Syllabus) Scan(value interface{}) error {
	var out []SyllabusModule
	ok, err := jsonScan(value, &out, "syllabus")
	if err != nil {
		return err
	}
	if !ok || out == nil {
		out = []SyllabusModule{}
	}
	*s = out
	return nil
}
