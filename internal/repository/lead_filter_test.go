package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/campus-admin-api/internal/models"
)

func TestLeadPredicateEmptyFilterMatchesEverything(t *testing.T) {
	predicate, args := leadPredicate(models.LeadFilter{Source: "   "}, 0)
	assert.Equal(t, "1=1", predicate)
	assert.Empty(t, args)
}

func TestLeadPredicateCombinesFilters(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)

	predicate, args := leadPredicate(models.LeadFilter{
		Query:    "Ann",
		Status:   models.LeadStatusNew,
		Source:   " website ",
		DateFrom: &from,
		DateTo:   &to,
	}, 0)

	assert.Equal(t, "(LOWER(l.name) LIKE $1 OR LOWER(l.email) LIKE $1 OR LOWER(COALESCE(l.phone, '')) LIKE $1 OR LOWER(COALESCE(l.message, '')) LIKE $1)"+
		" AND l.status = $2 AND l.source = $3 AND l.created_at >= $4 AND l.created_at <= $5", predicate)
	assert.Equal(t, []interface{}{"%ann%", models.LeadStatusNew, "website", from, to}, args)
}

func TestLeadPredicateOffsetsPlaceholders(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	predicate, args := leadPredicate(models.LeadFilter{Status: models.LeadStatusClosed, DateFrom: &from}, 1)

	assert.Equal(t, "l.status = $2 AND l.created_at >= $3", predicate)
	assert.Equal(t, []interface{}{models.LeadStatusClosed, from}, args)
}
