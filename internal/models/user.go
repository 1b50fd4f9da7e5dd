package models

// UserRole represents the roles allowed to operate the admin back-office.
type UserRole string

const (
	RoleSuperAdmin UserRole = "SUPERADMIN"
	RoleAdmin      UserRole = "ADMIN"
	RoleEditor     UserRole = "EDITOR"
)

// Actor identifies who is invoking a write.
type Actor struct {
	UserID    string   `json:"userId"`
	Email     string   `json:"email"`
	Role      UserRole `json:"role"`
	IPAddress string   `json:"-"`
	UserAgent string   `json:"-"`
}

// PublicActor is used for writes originating from the public inquiry forms.
func PublicActor(ip, userAgent string) Actor {
	return Actor{UserID: "", Role: "", IPAddress: ip, UserAgent: userAgent}
}

// IsPublic reports whether the actor is an anonymous site visitor.
func (a Actor) IsPublic() bool {
	return a.UserID == ""
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"pageSize"`
	TotalCount int  `json:"totalCount"`
	HasMore    bool `json:"hasMore"`
}

// NewPagination derives list metadata from page/size/total.
func NewPagination(page, size, total int) *Pagination {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	return &Pagination{Page: page, PageSize: size, TotalCount: total, HasMore: page*size < total}
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// NormalizePage clamps page and page size to the accepted ranges.
func NormalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	return page, size
}
