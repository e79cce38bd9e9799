// Package option provides composable gorm query modifiers shared by all
// repositories: sort-field allow-lists, range conditions, substring filters
// and limit/offset windows.
package option

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// QueryOption mutates a gorm statement before execution.
type QueryOption interface {
	Apply(*gorm.DB) *gorm.DB
}

type optionFunc func(*gorm.DB) *gorm.DB

func (f optionFunc) Apply(db *gorm.DB) *gorm.DB { return f(db) }

// Operator enumerates supported comparison operators for range conditions.
type Operator string

const (
	GTE Operator = ">="
	LTE Operator = "<="
)

// Condition is a single field comparison applied with a bound parameter.
type Condition struct {
	Field    string
	Operator Operator
	Value    any
}

// ApplyOperator turns a Condition into a QueryOption.
func ApplyOperator(cond Condition) QueryOption {
	return optionFunc(func(db *gorm.DB) *gorm.DB {
		return db.Where(fmt.Sprintf("%s %s ?", cond.Field, cond.Operator), cond.Value)
	})
}

// QuerySortBy describes a sort request restricted to an allow-list. Sort
// fields outside Allow fall back to Default, which keeps user-supplied sort
// parameters out of the generated SQL.
type QuerySortBy struct {
	Field   string
	Order   string
	Allow   map[string]bool
	Default string
}

// WithQuerySortBy builds a QuerySortBy from raw request values.
func WithQuerySortBy(field, order string, allow map[string]bool) QuerySortBy {
	return QuerySortBy{
		Field: strings.TrimSpace(field),
		Order: strings.TrimSpace(order),
		Allow: allow,
	}
}

// WithSortBy applies the validated ORDER BY clause. The default ordering is
// created_at DESC.
func WithSortBy(sort QuerySortBy) QueryOption {
	return optionFunc(func(db *gorm.DB) *gorm.DB {
		field := sort.Field
		if field == "" || (sort.Allow != nil && !sort.Allow[field]) {
			field = sort.Default
		}
		if field == "" {
			field = "created_at"
		}

		order := strings.ToUpper(sort.Order)
		if order != "ASC" && order != "DESC" {
			order = "DESC"
		}

		return db.Order(field + " " + order)
	})
}

// WithContains applies a case-insensitive substring match on field.
func WithContains(field, value string) QueryOption {
	return optionFunc(func(db *gorm.DB) *gorm.DB {
		if strings.TrimSpace(value) == "" {
			return db
		}
		pattern := "%" + strings.ToLower(strings.TrimSpace(value)) + "%"
		return db.Where(fmt.Sprintf("LOWER(%s) LIKE ?", field), pattern)
	})
}

// WithLimitOffset applies a bounded result window.
func WithLimitOffset(limit, offset int) QueryOption {
	return optionFunc(func(db *gorm.DB) *gorm.DB {
		if limit > 0 {
			db = db.Limit(limit)
		}
		if offset > 0 {
			db = db.Offset(offset)
		}
		return db
	})
}
