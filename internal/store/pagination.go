package store

// RosterPageSize is the fixed number of roster records per page.
const RosterPageSize = 30

// Page selects a window of an ordered listing. Number is 1-based.
type Page struct {
	Number int
	Size   int
}

// NewPage returns the roster page with the given number. Numbers below 1
// select the first page.
func NewPage(number int) Page {
	p := Page{Number: number, Size: RosterPageSize}
	p.Validate()
	return p
}

// Validate corrects out-of-range values.
func (p *Page) Validate() {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size <= 0 {
		p.Size = RosterPageSize
	}
}

// Offset returns the number of rows skipped before this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// PageResult is one page of a listing with the exact total across all pages.
type PageResult[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPageResult builds a PageResult, deriving the page count from total.
func NewPageResult[T any](items []T, page Page, total int) PageResult[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if total > 0 {
		pages = (total + page.Size - 1) / page.Size
	}
	return PageResult[T]{
		Items:      items,
		Page:       page.Number,
		PageSize:   page.Size,
		Total:      total,
		TotalPages: pages,
	}
}
