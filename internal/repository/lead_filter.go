package repository

import (
	"strings"

	"github.com/noah-isme/campus-admin-api/internal/models"
)

// leadPredicate translates a lead filter into one SQL predicate over the leads table
// aliased as l. Empty criteria are skipped, present ones are ANDed and the free-text
// term is ORed across name, email, phone and message. Placeholders start after the
// given number of existing args.
func leadPredicate(filter models.LeadFilter, existing int) (string, []interface{}) {
	b := conditionBuilder{args: make([]interface{}, existing)}
	b.addSearch(filter.Query, "l.name", "l.email", "COALESCE(l.phone, '')", "COALESCE(l.message, '')")
	if filter.Status != "" {
		b.add("l.status = $%d", filter.Status)
	}
	if source := strings.TrimSpace(filter.Source); source != "" {
		b.add("l.source = $%d", source)
	}
	if filter.DateFrom != nil {
		b.add("l.created_at >= $%d", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		b.add("l.created_at <= $%d", *filter.DateTo)
	}

	args := b.args[existing:]
	if len(b.conditions) == 0 {
		return "1=1", args
	}
	return strings.Join(b.conditions, " AND "), args
}
