package repository

// Query is the explicit value object describing a list operation: equality
// filters, one ordering column, and offset pagination. Repositories translate
// it into gorm clauses; services and handlers build it without touching SQL.

// Direction of an ORDER BY clause.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

type condition struct {
	Column string
	Value  any
}

// Query acumula filtros de igualdade, ordenação e paginação.
// Zero value: sem filtros, sem ordenação, página 1 com limite 20.
type Query struct {
	conds    []condition
	orderCol string
	orderDir Direction
	page     int
	limit    int
}

// NewQuery returns an empty query.
func NewQuery() Query { return Query{} }

// Where adds an equality filter. Nil values are ignored.
func (q Query) Where(column string, value any) Query {
	if value == nil {
		return q
	}
	q.conds = append(q.conds, condition{Column: column, Value: value})
	return q
}

// OrderBy sets the single ordering column and direction.
func (q Query) OrderBy(column string, dir Direction) Query {
	q.orderCol = column
	q.orderDir = dir
	return q
}

// Paginate sets page (1-based) and limit. Out-of-range values are clamped.
func (q Query) Paginate(page, limit int) Query {
	q.page = page
	q.limit = limit
	return q
}

// Conditions returns the accumulated equality filters.
func (q Query) Conditions() []condition { return q.conds }

// Order returns the ORDER BY fragment, or "" when no ordering was requested.
func (q Query) Order() string {
	if q.orderCol == "" {
		return ""
	}
	dir := q.orderDir
	if dir != Desc {
		dir = Asc
	}
	return q.orderCol + " " + string(dir)
}

// Page returns the clamped 1-based page number.
func (q Query) Page() int {
	if q.page < 1 {
		return 1
	}
	return q.page
}

// Limit returns the clamped page size.
func (q Query) Limit() int {
	if q.limit < 1 || q.limit > 200 {
		return 20
	}
	return q.limit
}

// Offset returns the range offset derived from page and limit.
func (q Query) Offset() int { return (q.Page() - 1) * q.Limit() }
