package models

// CatalogStatus is the publication state shared by colleges, courses and specializations.
// INACTIVE doubles as the soft-deleted state.
type CatalogStatus string

const (
	CatalogStatusActive   CatalogStatus = "ACTIVE"
	CatalogStatusInactive CatalogStatus = "INACTIVE"
	CatalogStatusDraft    CatalogStatus = "DRAFT"
)

// Valid reports whether the status is one of the known values.
func (s CatalogStatus) Valid() bool {
	switch s {
	case CatalogStatusActive, CatalogStatusInactive, CatalogStatusDraft:
		return true
	}
	return false
}

// CatalogEntity names the table backing a catalog resource.
type CatalogEntity string

const (
	EntityCollege        CatalogEntity = "colleges"
	EntityCourse         CatalogEntity = "courses"
	EntitySpecialization CatalogEntity = "specializations"
)

// CatalogStats aggregates status counts for a catalog resource.
type CatalogStats struct {
	Total    int `db:"total" json:"total"`
	Active   int `db:"active" json:"active"`
	Inactive int `db:"inactive" json:"inactive"`
	Draft    int `db:"draft" json:"draft"`
	Featured int `db:"featured" json:"featured"`
}

// BulkStatusResult reports how many rows a bulk status change touched.
type BulkStatusResult struct {
	Updated int           `json:"updated"`
	Status  CatalogStatus `json:"status"`
}
