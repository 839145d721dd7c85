// internal/domain/catalog/engine.go
package catalog

// The query engine is a pure state machine: it decides what to fetch and
// how to fold results in, but performs no I/O itself. A transition that
// needs remote data returns a Fetch descriptor; the caller performs the
// HTTP round-trip and feeds the outcome back through Apply. Responses
// from a superseded transition are fenced off by a generation counter
// and dropped on arrival.

// DefaultPageSize matches the remote catalog's fixed page size.
const DefaultPageSize = 12

// Mode selects how fetched pages fold into the displayed result set.
type Mode int

const (
	// ModePaginated replaces the result set on every page change.
	ModePaginated Mode = iota
	// ModeInfinite appends successive pages as the user nears the end.
	ModeInfinite
)

// String returns a readable mode name.
func (m Mode) String() string {
	if m == ModeInfinite {
		return "infinite"
	}
	return "paginated"
}

// Fetch describes one page request the caller must perform. Append
// distinguishes "add to the bottom" loads from whole-grid replacements.
type Fetch struct {
	Filter FilterSpec
	Page   int
	Append bool
	gen    uint64
}

// Engine owns the catalog fetch lifecycle: the active filter, the display
// mode, the accumulated result sequence and the two independent loading
// flags the UI renders differently.
type Engine struct {
	pageSize    int
	filter      FilterSpec
	mode        Mode
	page        int
	total       int
	products    []Product
	loading     bool // replacing load in flight
	loadingMore bool // appending load in flight
	gen         uint64
}

// NewEngine creates an engine at page 1 in paginated mode with no
// accumulated results.
func NewEngine(pageSize int) *Engine {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Engine{pageSize: pageSize, page: 1}
}

// beginReplace starts a whole-grid load and invalidates every fetch
// issued before it.
func (e *Engine) beginReplace(page int) Fetch {
	e.gen++
	e.loading = true
	e.loadingMore = false
	return Fetch{Filter: e.filter, Page: page, gen: e.gen}
}

// Reload begins a replacing fetch for page 1. Used for the initial load
// and for a full refresh.
func (e *Engine) Reload() Fetch {
	e.page = 1
	return e.beginReplace(1)
}

// SetFilter installs a new filter, resets to page 1 and discards the
// accumulated results before the fetch resolves, so the old filter's
// products never flash under the new one.
func (e *Engine) SetFilter(f FilterSpec) Fetch {
	e.filter = f
	e.page = 1
	if f.Page > 1 {
		e.page = f.Page
	}
	e.products = nil
	return e.beginReplace(e.page)
}

// Filter returns the active filter.
func (e *Engine) Filter() FilterSpec { return e.filter }

// GoToPage begins a replacing fetch for the requested page. Only
// meaningful in paginated mode; out-of-range pages are rejected.
func (e *Engine) GoToPage(page int) (Fetch, bool) {
	if e.mode != ModePaginated {
		return Fetch{}, false
	}
	if page < 1 || (e.total > 0 && page > e.TotalPages()) || page == e.page {
		return Fetch{}, false
	}
	e.page = page
	return e.beginReplace(page), true
}

// NextPage and PrevPage are keyboard-friendly wrappers over GoToPage.
func (e *Engine) NextPage() (Fetch, bool) { return e.GoToPage(e.page + 1) }
func (e *Engine) PrevPage() (Fetch, bool) { return e.GoToPage(e.page - 1) }

// ToggleMode flips between paginated and infinite display. The two modes
// accumulate results incompatibly, so the toggle always resets to page 1,
// clears the accumulation and begins a fresh fetch under the new mode.
func (e *Engine) ToggleMode() Fetch {
	if e.mode == ModePaginated {
		e.mode = ModeInfinite
	} else {
		e.mode = ModePaginated
	}
	e.page = 1
	e.products = nil
	return e.beginReplace(1)
}

// Mode returns the active display mode.
func (e *Engine) Mode() Mode { return e.mode }

// NearEnd reports a scroll-proximity trigger in infinite mode. It begins
// an appending fetch for the next page unless one is already in flight or
// every page has been shown. Duplicate triggers while a fetch is
// outstanding are ignored, never queued.
func (e *Engine) NearEnd() (Fetch, bool) {
	if e.mode != ModeInfinite || e.loading || e.loadingMore {
		return Fetch{}, false
	}
	if e.total == 0 || e.page >= e.TotalPages() {
		return Fetch{}, false
	}
	e.loadingMore = true
	return Fetch{Filter: e.filter, Page: e.page + 1, Append: true, gen: e.gen}, true
}

// Apply folds a settled fetch into the engine. It reports false when the
// response belongs to a superseded filter or mode and was dropped.
func (e *Engine) Apply(f Fetch, res PageResult, err error) bool {
	if f.gen != e.gen {
		return false
	}

	if f.Append {
		e.loadingMore = false
		if err != nil {
			// Append failures leave the accumulation untouched.
			return true
		}
		e.products = append(e.products, res.Products...)
		e.total = res.Total
		e.page = f.Page
		return true
	}

	e.loading = false
	if err != nil {
		// A failed replace must not show stale totals over an empty grid.
		e.products = nil
		e.total = 0
		return true
	}
	e.products = res.Products
	e.total = res.Total
	e.page = f.Page
	return true
}

// Products returns the accumulated result sequence.
func (e *Engine) Products() []Product { return e.products }

// Page returns the current page number.
func (e *Engine) Page() int { return e.page }

// Total returns the total product count for the active filter.
func (e *Engine) Total() int { return e.total }

// PageSize returns the fixed page size.
func (e *Engine) PageSize() int { return e.pageSize }

// TotalPages derives the page count from the reported total.
func (e *Engine) TotalPages() int {
	if e.total == 0 {
		return 0
	}
	return (e.total + e.pageSize - 1) / e.pageSize
}

// Loading reports a replacing load in flight.
func (e *Engine) Loading() bool { return e.loading }

// LoadingMore reports an appending load in flight.
func (e *Engine) LoadingMore() bool { return e.loadingMore }

// Fetching reports any load in flight.
func (e *Engine) Fetching() bool { return e.loading || e.loadingMore }

// AllShown reports the terminal state in infinite mode: every available
// page has been fetched.
func (e *Engine) AllShown() bool {
	return e.total > 0 && e.page >= e.TotalPages()
}
