package pagination

import "strings"

// Pager computes page windows for the list endpoints. The per-page size is a
// fixed system setting shared by every collection; it is injected here once at
// construction and never read from the request.
type Pager struct {
	perPage int
}

func New(perPage int) *Pager {
	if perPage < 1 {
		perPage = 1
	}
	return &Pager{perPage: perPage}
}

func (p *Pager) PerPage() int {
	return p.perPage
}

// Info describes one page of a collection. PrevPage and NextPage are only
// meaningful when the corresponding Has flag is set.
type Info struct {
	Page     int
	Total    int
	HasPrev  bool
	HasNext  bool
	PrevPage int
	NextPage int
}

// Clamp normalizes a requested page number. Pages are 1-based; anything below
// 1 is treated as the first page, never as an error.
func (p *Pager) Clamp(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// Window translates a page number into an offset/limit pair for the store.
func (p *Pager) Window(page int) (offset, limit int) {
	page = p.Clamp(page)
	return (page - 1) * p.perPage, p.perPage
}

// Describe derives the navigation flags for a page given the total matching
// row count. A neighbouring page is advertised only when it would be
// non-empty.
func (p *Pager) Describe(page, total int) Info {
	page = p.Clamp(page)
	return Info{
		Page:     page,
		Total:    total,
		HasPrev:  page > 1 && total > (page-2)*p.perPage,
		HasNext:  total > page*p.perPage,
		PrevPage: page - 1,
		NextPage: page + 1,
	}
}

// NormalizeQuery prepares a raw search term for substring matching: trimmed
// and lower-cased. An all-whitespace term collapses to "no search".
func NormalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}
