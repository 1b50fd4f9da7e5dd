package models

import (
	"database/sql/driver"
	"time"
)

// College represents an institution listed on the marketing site.
type College struct {
	ID              string        `db:"id" json:"id"`
	Name            string        `db:"name" json:"name"`
	Slug            string        `db:"slug" json:"slug"`
	ShortName       *string       `db:"short_name" json:"shortName,omitempty"`
	Description     *string       `db:"description" json:"description,omitempty"`
	City            *string       `db:"city" json:"city,omitempty"`
	State           *string       `db:"state" json:"state,omitempty"`
	Country         *string       `db:"country" json:"country,omitempty"`
	Address         *string       `db:"address" json:"address,omitempty"`
	Website         *string       `db:"website" json:"website,omitempty"`
	Email           *string       `db:"email" json:"email,omitempty"`
	Phone           *string       `db:"phone" json:"phone,omitempty"`
	LogoURL         *string       `db:"logo_url" json:"logoUrl,omitempty"`
	EstablishedYear *int          `db:"established_year" json:"establishedYear,omitempty"`
	Accreditation   *string       `db:"accreditation" json:"accreditation,omitempty"`
	Rankings        Rankings      `db:"rankings" json:"rankings"`
	Facilities      Facilities    `db:"facilities" json:"facilities"`
	Status          CatalogStatus `db:"status" json:"status"`
	Featured        bool          `db:"featured" json:"featured"`
	CreatedAt       time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time     `db:"updated_at" json:"updatedAt"`
}

// CollegeDetail extends College with aggregate counts used by list and detail views.
type CollegeDetail struct {
	College
	CourseCount int `db:"course_count" json:"courseCount"`
}

// CollegeFilter defines filter criteria for listing colleges.
type CollegeFilter struct {
	Search    string
	Status    CatalogStatus
	Featured  *bool
	City      string
	Country   string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// CollegeStats aggregates status counts plus related course totals.
type CollegeStats struct {
	CatalogStats
	TotalCourses int `db:"total_courses" json:"totalCourses"`
}

// Ranking is a single agency ranking entry.
type Ranking struct {
	Agency string `json:"agency" validate:"required,max=100"`
	Rank   int    `json:"rank" validate:"required,min=1"`
	Year   int    `json:"year" validate:"required,min=1900,max=2100"`
}

// Rankings is persisted as a JSONB array.
type Rankings []Ranking

// Value marshals rankings for persistence.
func (r Rankings) Value() (driver.Value, error) {
	if r == nil {
		r = Rankings{}
	}
	return jsonValue([]Ranking(r), "rankings")
}

// Scan unmarshals a JSONB rankings array.
func (r *Rankings) Scan(value interface{}) error {
	var out []Ranking
	ok, err := jsonScan(value, &out, "rankings")
	if err != nil {
		return err
	}
	if !ok || out == nil {
		out = []Ranking{}
	}
	*r = out
	return nil
}

// Facilities is a JSONB array of facility names.
type Facilities []string

// Value marshals facilities for persistence.
func (f Facilities) Value() (driver.Value, error) {
	if f == nil {
		f = Facilities{}
	}
	return jsonValue([]string(f), "facilities")
}

// Scan unmarshals a JSONB facilities array.
func (f *Facilities) Scan(value interface{}) error {
	var out []string
	ok, err := jsonScan(value, &out, "facilities")
	if err != nil {
		return err
	}
	if !ok || out == nil {
		out = []string{}
	}
	*f = out
	return nil
}
