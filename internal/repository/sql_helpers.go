package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/noah-isme/campus-admin-api/internal/models"
	appErrors "github.com/noah-isme/campus-admin-api/pkg/errors"
)

const uniqueViolation = "23505"

// writeError wraps a failed write. Unique constraint violations become conflicts.
func writeError(op string, err error, conflict string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, conflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// qualify prefixes every column in a comma separated list with a table alias.
func qualify(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, part := range parts {
		parts[i] = alias + "." + strings.TrimSpace(part)
	}
	return strings.Join(parts, ", ")
}

// orderClause resolves a requested sort against an allow-list, falling back to the default column.
func orderClause(sortBy, sortOrder string, allowed map[string]string, fallback string) string {
	column, ok := allowed[sortBy]
	if !ok {
		column = fallback
	}
	order := strings.ToUpper(sortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}
	return fmt.Sprintf("%s %s", column, order)
}

// pageWindow converts page/size into a LIMIT/OFFSET pair.
func pageWindow(page, size int) (int, int) {
	page, size = models.NormalizePage(page, size)
	return size, (page - 1) * size
}

type conditionBuilder struct {
	conditions []string
	args       []interface{}
}

// add appends a condition whose single placeholder is written as %d.
func (b *conditionBuilder) add(format string, arg interface{}) {
	b.args = append(b.args, arg)
	b.conditions = append(b.conditions, fmt.Sprintf(format, len(b.args)))
}

// addSearch matches a lowercase substring against every column with OR.
func (b *conditionBuilder) addSearch(term string, columns ...string) {
	term = strings.TrimSpace(term)
	if term == "" {
		return
	}
	b.args = append(b.args, "%"+strings.ToLower(term)+"%")
	pos := len(b.args)
	parts := make([]string, len(columns))
	for i, column := range columns {
		parts[i] = fmt.Sprintf("LOWER(%s) LIKE $%d", column, pos)
	}
	b.conditions = append(b.conditions, "("+strings.Join(parts, " OR ")+")")
}

func (b *conditionBuilder) where() string {
	if len(b.conditions) == 0 {
		return "WHERE 1=1"
	}
	return "WHERE " + strings.Join(b.conditions, " AND ")
}
