package domain

import (
	"strings"
	"time"
)

// ItemsPerPageAll is the page size sentinel that disables pagination and
// requests the whole result set in a single fetch.
const ItemsPerPageAll = -1

// DefaultItemsPerPage is the page size used when the caller does not ask for
// an unbounded listing.
const DefaultItemsPerPage = 20

// OrderDir is the direction of an ordering clause.
type OrderDir string

const (
	// OrderAsc sorts ascending.
	OrderAsc OrderDir = "ASC"
	// OrderDesc sorts descending.
	OrderDesc OrderDir = "DESC"
)

// OrderBy describes an optional ordering of a short URL listing. The zero
// value means "no explicit ordering".
type OrderBy struct {
	Field string
	Dir   OrderDir
}

// IsEmpty reports whether no ordering field was requested.
func (o OrderBy) IsEmpty() bool {
	return o.Field == ""
}

// ListParams carries the filter, sort and pagination options for one page
// request. It is built once per fetch and never mutated.
type ListParams struct {
	Page         int
	ItemsPerPage int
	SearchTerm   string
	Tags         []string
	OrderBy      OrderBy
	StartDate    *time.Time
	EndDate      *time.Time
}

// Unbounded reports whether the params request the whole result set at once.
func (p ListParams) Unbounded() bool {
	return p.ItemsPerPage == ItemsPerPageAll
}

// ShortURL is a read-only projection of a shortened URL row.
type ShortURL struct {
	ID          string    `json:"id"`
	ShortCode   string    `json:"short_code"`
	Title       string    `json:"title"`
	ShortURL    string    `json:"short_url"`
	OriginalURL string    `json:"original_url"`
	CreatedAt   time.Time `json:"created_at"`
	VisitCount  int       `json:"visit_count"`
	Tags        []string  `json:"tags,omitempty"`
}

// Page is one slice of a listing plus its position within the whole result
// set.
type Page struct {
	Items       []ShortURL
	CurrentPage int
	PagesCount  int
	TotalItems  int
}

// HasNextPage reports whether another page follows this one. Unbounded
// fetches always report a single page.
func (p *Page) HasNextPage() bool {
	return p.CurrentPage < p.PagesCount
}

// ParseOrderBy parses a raw order-by option. Accepted shapes are "field",
// "field,DIR" and "field-DIR" with DIR one of ASC or DESC (any case). The
// comma form wins when both separators are present; an unrecognized direction
// token leaves the direction unset.
func ParseOrderBy(raw string) OrderBy {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return OrderBy{}
	}

	if i := strings.Index(raw, ","); i >= 0 {
		return OrderBy{
			Field: strings.TrimSpace(raw[:i]),
			Dir:   parseOrderDir(raw[i+1:]),
		}
	}

	if i := strings.LastIndex(raw, "-"); i >= 0 {
		if dir := parseOrderDir(raw[i+1:]); dir != "" {
			return OrderBy{Field: raw[:i], Dir: dir}
		}
	}

	return OrderBy{Field: raw}
}

func parseOrderDir(raw string) OrderDir {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "ASC":
		return OrderAsc
	case "DESC":
		return OrderDesc
	}
	return ""
}

// ParseTags splits a comma-separated tag option into a filter set, trimming
// whitespace and dropping empty segments. An empty input yields no filter.
func ParseTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}

	if len(tags) == 0 {
		return nil
	}
	return tags
}
