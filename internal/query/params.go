// Package query implements the list pipeline shared by every collection
// endpoint: compiling raw query parameters into a structured filter,
// resolving category/brand names to ids, and executing one page of results
// with search, sorting, field selection and population.
package query

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"phonetech/internal/apperrors"
	"phonetech/internal/models"
)

// DefaultLimit is the page size used when the client does not supply one.
const DefaultLimit = 25

// Op is a comparison operator recognised in filter parameters.
type Op string

const (
	OpEq  Op = "eq"
	OpGt  Op = "gt"
	OpGte Op = "gte"
	OpLt  Op = "lt"
	OpLte Op = "lte"
	OpIn  Op = "in"
)

// Condition is one compiled field filter, ready for the executor.
type Condition struct {
	Column string
	Op     Op
	Value  any   // scalar for comparison ops
	Values []any // membership list for OpIn
}

// SortField is one entry of the sort clause.
type SortField struct {
	Column string
	Desc   bool
}

// ListParams is the compiled form of a list request's query string. Control
// parameters are extracted; everything left becomes a Condition.
type ListParams struct {
	Conditions []Condition
	Select     []string
	Sort       []SortField
	Page       int
	Limit      int
	Search     string
	Category   string // raw name, resolved by the executor
	Brand      string // raw name, resolved by the executor
}

// StartIndex is the offset of the first row of the requested page.
func (p *ListParams) StartIndex() int {
	return (p.Page - 1) * p.Limit
}

// reserved control parameters never treated as field filters.
var reserved = map[string]bool{
	"select":   true,
	"sort":     true,
	"page":     true,
	"limit":    true,
	"search":   true,
	"category": true,
	"brand":    true,
}

var comparisonOps = map[string]Op{
	"gt":  OpGt,
	"gte": OpGte,
	"lt":  OpLt,
	"lte": OpLte,
	"in":  OpIn,
}

// Column names reach the storage layer as SQL identifiers, so only plain
// identifiers are accepted after camelCase folding.
var identPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Columns is the set of column names of one entity that clients may filter,
// select, and sort by.
type Columns map[string]bool

// ColumnsOf derives the client-facing column set of a model struct: every
// exported scalar field folded to snake_case. Associations (pointer and
// slice fields) and fields hidden from JSON never become columns.
func ColumnsOf(model any) Columns {
	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	cols := Columns{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if k := f.Type.Kind(); k == reflect.Pointer || k == reflect.Slice {
			continue
		}
		if f.Tag.Get("json") == "-" {
			continue
		}
		cols[camelToSnake(f.Name)] = true
	}
	return cols
}

// Column sets of the listable entities.
var (
	ProductColumns  = ColumnsOf(models.Product{})
	CategoryColumns = ColumnsOf(models.Category{})
	BrandColumns    = ColumnsOf(models.Brand{})
)

// Compile turns the raw query map into ListParams for an entity with the
// given columns. It is a pure transformation: no storage access, no side
// effects. Malformed input (bad bracket syntax, unknown operator, a field
// name that is not a column of the entity) yields a Validation error.
func Compile(raw map[string]string, cols Columns) (*ListParams, error) {
	p := &ListParams{
		Page:     positiveInt(raw["page"], 1),
		Limit:    positiveInt(raw["limit"], DefaultLimit),
		Search:   raw["search"],
		Category: raw["category"],
		Brand:    raw["brand"],
	}

	if sel := raw["select"]; sel != "" {
		for _, field := range strings.Split(sel, ",") {
			col, err := toColumn(field, cols)
			if err != nil {
				return nil, err
			}
			p.Select = append(p.Select, col)
		}
	}

	if sort := raw["sort"]; sort != "" {
		for _, field := range strings.Split(sort, ",") {
			desc := strings.HasPrefix(field, "-")
			col, err := toColumn(strings.TrimPrefix(field, "-"), cols)
			if err != nil {
				return nil, err
			}
			p.Sort = append(p.Sort, SortField{Column: col, Desc: desc})
		}
	}

	for key, value := range raw {
		if reserved[key] {
			continue
		}
		cond, err := compileCondition(key, value, cols)
		if err != nil {
			return nil, err
		}
		p.Conditions = append(p.Conditions, cond)
	}

	return p, nil
}

// compileCondition parses one non-reserved parameter. Bare keys are equality
// filters; "field[op]" keys carry a comparison operator.
func compileCondition(key, value string, cols Columns) (Condition, error) {
	field, op := key, OpEq
	if i := strings.IndexByte(key, '['); i >= 0 {
		if !strings.HasSuffix(key, "]") || i == 0 {
			return Condition{}, apperrors.Validation("malformed filter parameter %q", key)
		}
		name := key[i+1 : len(key)-1]
		known, ok := comparisonOps[name]
		if !ok {
			return Condition{}, apperrors.Validation("unsupported filter operator %q", name)
		}
		field, op = key[:i], known
	}

	col, err := toColumn(field, cols)
	if err != nil {
		return Condition{}, err
	}

	cond := Condition{Column: col, Op: op}
	if op == OpIn {
		for _, part := range strings.Split(value, ",") {
			cond.Values = append(cond.Values, typedValue(part))
		}
	} else {
		cond.Value = typedValue(value)
	}
	return cond, nil
}

// toColumn folds a client-facing field name (camelCase allowed) to its
// snake_case column and rejects anything that is not a column of the
// entity being listed.
func toColumn(field string, cols Columns) (string, error) {
	col := camelToSnake(strings.TrimSpace(field))
	if !identPattern.MatchString(col) {
		return "", apperrors.Validation("invalid field name %q", field)
	}
	if !cols[col] {
		return "", apperrors.Validation("unknown field %q", field)
	}
	return col, nil
}

// camelToSnake folds camelCase to snake_case, treating an uppercase run as
// one word so "CategoryID" and "categoryId" both become "category_id".
func camelToSnake(s string) string {
	var b strings.Builder
	prevUpper := true
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			if !prevUpper {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			prevUpper = true
			continue
		}
		b.WriteRune(r)
		prevUpper = false
	}
	return b.String()
}

// typedValue converts numeric and boolean literals so the storage layer
// compares them with the right type; anything else stays a string.
func typedValue(s string) any {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}

// positiveInt parses s as a positive integer, falling back to def when the
// value is missing, non-numeric, or not positive.
func positiveInt(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
