package query

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"gorm.io/gorm"

	"phonetech/internal/apperrors"
)

// Options configure the pipeline per route.
type Options struct {
	// Searchable applies the free-text search term over name and
	// description. Category/brand listings leave it off.
	Searchable bool
	// Resolve rewrites category/brand name filters into id filters via the
	// NameResolver before the query runs.
	Resolve bool
	// Populate names associations to expand into the response.
	Populate []string
}

// Page identifies one page in a pagination link.
type Page struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination carries the next/prev links of a page of results. An empty
// value marshals as {}.
type Pagination struct {
	Next *Page `json:"next,omitempty"`
	Prev *Page `json:"prev,omitempty"`
}

// Result is the envelope every list endpoint returns.
type Result struct {
	Success    bool       `json:"success"`
	Count      int        `json:"count"`
	Pagination Pagination `json:"pagination"`
	Data       any        `json:"data"`
}

// Executor runs compiled list parameters against storage and produces one
// page of results plus the pagination descriptor.
type Executor struct {
	db       *gorm.DB
	resolver *NameResolver
}

// NewExecutor creates an executor with its own name resolver.
func NewExecutor(db *gorm.DB) *Executor {
	return &Executor{db: db, resolver: NewNameResolver(db)}
}

// List fills dest (a pointer to a slice of the entity type) with one page of
// rows matching p and returns the response envelope. An unresolvable
// category/brand name short-circuits to an empty success result. The total
// driving the next/prev links counts the filtered set.
func (e *Executor) List(ctx context.Context, model, dest any, p *ListParams, opts Options) (*Result, error) {
	tx := e.db.WithContext(ctx).Model(model)

	if opts.Resolve {
		if p.Category != "" {
			id, ok, err := e.resolver.ResolveCategory(ctx, p.Category)
			if err != nil {
				return nil, err
			}
			if !ok {
				return emptyResult(dest), nil
			}
			tx = tx.Where("category_id = ?", id)
		}
		if p.Brand != "" {
			id, ok, err := e.resolver.ResolveBrand(ctx, p.Brand)
			if err != nil {
				return nil, err
			}
			if !ok {
				return emptyResult(dest), nil
			}
			tx = tx.Where("brand_id = ?", id)
		}
	}

	for _, cond := range p.Conditions {
		tx = applyCondition(tx, cond)
	}

	if opts.Searchable && p.Search != "" {
		pattern := "%" + strings.ToLower(p.Search) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, apperrors.Internal(err, "failed to count results")
	}

	if len(p.Select) > 0 {
		tx = tx.Select(p.Select)
	}
	tx = tx.Order(orderClause(p.Sort))

	start := p.StartIndex()
	tx = tx.Offset(start).Limit(p.Limit)

	for _, assoc := range opts.Populate {
		tx = tx.Preload(assoc)
	}

	if err := tx.Find(dest).Error; err != nil {
		return nil, apperrors.Internal(err, "failed to fetch results")
	}

	result := &Result{
		Success: true,
		Count:   sliceLen(dest),
		Data:    dest,
	}
	if int64(start+p.Limit) < total {
		result.Pagination.Next = &Page{Page: p.Page + 1, Limit: p.Limit}
	}
	if start > 0 {
		result.Pagination.Prev = &Page{Page: p.Page - 1, Limit: p.Limit}
	}
	return result, nil
}

func applyCondition(tx *gorm.DB, c Condition) *gorm.DB {
	switch c.Op {
	case OpGt:
		return tx.Where(c.Column+" > ?", c.Value)
	case OpGte:
		return tx.Where(c.Column+" >= ?", c.Value)
	case OpLt:
		return tx.Where(c.Column+" < ?", c.Value)
	case OpLte:
		return tx.Where(c.Column+" <= ?", c.Value)
	case OpIn:
		return tx.Where(c.Column+" IN ?", c.Values)
	default:
		return tx.Where(c.Column+" = ?", c.Value)
	}
}

// orderClause renders the sort fields, defaulting to newest-first.
func orderClause(sort []SortField) string {
	if len(sort) == 0 {
		return "created_at DESC"
	}
	parts := make([]string, 0, len(sort))
	for _, f := range sort {
		if f.Desc {
			parts = append(parts, fmt.Sprintf("%s DESC", f.Column))
		} else {
			parts = append(parts, f.Column)
		}
	}
	return strings.Join(parts, ", ")
}

func emptyResult(dest any) *Result {
	return &Result{Success: true, Count: 0, Pagination: Pagination{}, Data: dest}
}

// sliceLen counts the rows in dest, a pointer to a slice.
func sliceLen(dest any) int {
	v := reflect.ValueOf(dest)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Slice {
		return 0
	}
	return v.Len()
}
