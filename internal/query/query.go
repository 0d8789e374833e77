// Package query describes paginated listings as a fixed sequence of typed
// stages: filter, join-and-project, sort, paginate. Plans are independent of
// the store; the repository layer compiles them to SQL.
package query

import (
	"strconv"
	"strings"

	"vidtube/internal/models"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page is a validated 1-based page request.
type Page struct {
	Number int
	Size   int
}

// ParsePage validates the raw page and limit query parameters. Empty values
// take the defaults; anything non-numeric or out of range is rejected.
func ParsePage(page, limit string) (Page, error) {
	p := Page{Number: DefaultPage, Size: DefaultLimit}

	if s := strings.TrimSpace(page); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return Page{}, models.NewValidationError("page must be a number")
		}
		p.Number = n
	}
	if s := strings.TrimSpace(limit); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return Page{}, models.NewValidationError("limit must be a number")
		}
		p.Size = n
	}

	if p.Number < 1 {
		return Page{}, models.NewValidationError("page must be greater than 0")
	}
	if p.Size < 1 || p.Size > MaxLimit {
		return Page{}, models.NewValidationError("limit must be between 1 and 100")
	}
	return p, nil
}

// Offset is the number of rows skipped before this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Sort orders a listing by one column.
type Sort struct {
	Column string
	Desc   bool
}

// DefaultSort is newest first.
var DefaultSort = Sort{Column: "created_at", Desc: true}

// ParseSort maps the API sort key through allowed (API name to column).
// An empty key means creation time; sortType "asc" selects ascending and
// any other value descending.
func ParseSort(sortBy, sortType string, allowed map[string]string) (Sort, error) {
	s := Sort{Column: DefaultSort.Column, Desc: !strings.EqualFold(strings.TrimSpace(sortType), "asc")}

	key := strings.TrimSpace(sortBy)
	if key == "" {
		return s, nil
	}
	column, ok := allowed[key]
	if !ok {
		return Sort{}, models.NewValidationError("unsupported sortBy value: " + key)
	}
	s.Column = column
	return s, nil
}

// Predicate is one filter stage.
type Predicate interface {
	predicate()
}

// Eq matches rows whose column equals Value.
type Eq struct {
	Column string
	Value  any
}

// Contains matches rows where any of Columns contains Term, ignoring case.
type Contains struct {
	Columns []string
	Term    string
}

func (Eq) predicate()       {}
func (Contains) predicate() {}

// Join enriches rows with a related record and drops rows whose related
// record does not resolve.
type Join struct {
	// Table and Alias name the joined table.
	Table string
	Alias string
	// LocalKey is the column on the listed table referencing the joined id.
	LocalKey string
	// Live restricts the join to rows not soft-deleted.
	Live bool
	// Preload names the association that carries the projection.
	Preload string
}

// OwnerJoin is the standard owner enrichment over the users table.
func OwnerJoin(localKey, association string) *Join {
	return &Join{Table: "users", Alias: "owner", LocalKey: localKey, Live: true, Preload: association}
}

// Plan is a complete listing description.
type Plan struct {
	Table   string
	Filters []Predicate
	Join    *Join
	Sort    Sort
	Page    Page
}

// New starts a plan over table with the default sort and page.
func New(table string) *Plan {
	return &Plan{
		Table: table,
		Sort:  DefaultSort,
		Page:  Page{Number: DefaultPage, Size: DefaultLimit},
	}
}

// Where appends filter stages. Contains with a blank term is dropped.
func (p *Plan) Where(preds ...Predicate) *Plan {
	for _, pred := range preds {
		if c, ok := pred.(Contains); ok && strings.TrimSpace(c.Term) == "" {
			continue
		}
		p.Filters = append(p.Filters, pred)
	}
	return p
}

// JoinOn sets the join-and-project stage.
func (p *Plan) JoinOn(j *Join) *Plan {
	p.Join = j
	return p
}

// OrderBy sets the sort stage.
func (p *Plan) OrderBy(s Sort) *Plan {
	p.Sort = s
	return p
}

// Paginate sets the paginate stage.
func (p *Plan) Paginate(page Page) *Plan {
	p.Page = page
	return p
}

// Meta is the pagination block returned with every page.
type Meta struct {
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int64 `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	Limit       int   `json:"limit"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// NewMeta computes pagination metadata for total matching rows.
func NewMeta(total int64, p Page) Meta {
	if total <= 0 {
		return Meta{CurrentPage: p.Number, Limit: p.Size}
	}
	size := int64(p.Size)
	pages := (total + size - 1) / size
	return Meta{
		TotalItems:  total,
		TotalPages:  pages,
		CurrentPage: p.Number,
		Limit:       p.Size,
		HasNextPage: int64(p.Number) < pages,
		HasPrevPage: p.Number > 1,
	}
}

// Result is one page of items with its metadata.
type Result[T any] struct {
	Items      []T  `json:"items"`
	Pagination Meta `json:"pagination"`
}

// NewResult builds a Result, normalizing nil items to an empty slice.
func NewResult[T any](items []T, total int64, p Page) *Result[T] {
	if items == nil {
		items = []T{}
	}
	return &Result[T]{Items: items, Pagination: NewMeta(total, p)}
}
