package report

import (
	"cmp"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-firform/pkg/fir"
)

// Direction is a sort direction.
type Direction string

const (
	Ascending  Direction = "ascending"
	Descending Direction = "descending"
)

// View is the report listing state: the loaded records, the active search
// term, the sort column and the current page.
type View struct {
	opts Options

	records  []fir.Record
	filtered []fir.Record
	term     string
	sortKey  string
	sortDir  Direction
	page     int
}

// NewView builds an empty view.
func NewView(opts Options) *View {
	v := &View{opts: opts, page: 1, sortDir: Ascending}
	if v.opts.PageSize <= 0 {
		v.opts.PageSize = defaultPageSize
	}
	return v
}

// Load replaces the records, re-applies search and sort, and returns to page
// one.
func (v *View) Load(records []fir.Record) {
	v.records = append([]fir.Record(nil), records...)
	v.refresh()
	v.page = 1
}

// Search filters records whose non-empty values contain term, ignoring case.
// A new search returns to page one.
func (v *View) Search(term string) {
	v.term = term
	v.refresh()
	v.page = 1
}

// Sort orders by key. Repeating the active key while ascending flips to
// descending; any other call sorts ascending.
func (v *View) Sort(key string) {
	dir := Ascending
	if v.sortKey == key && v.sortDir == Ascending {
		dir = Descending
	}
	v.sortKey = key
	v.sortDir = dir
	v.applySort()
}

// SortState returns the active sort key and direction.
func (v *View) SortState() (string, Direction) {
	return v.sortKey, v.sortDir
}

// SetPage moves to page n, clamped to [1, TotalPages].
func (v *View) SetPage(n int) {
	total := v.TotalPages()
	if n > total {
		n = total
	}
	if n < 1 {
		n = 1
	}
	v.page = n
}

// Page returns the current page number.
func (v *View) Page() int { return v.page }

// TotalPages is ceil(filtered/pageSize), with a minimum of one page.
func (v *View) TotalPages() int {
	n := len(v.filtered)
	if n == 0 {
		return 1
	}
	return (n + v.opts.PageSize - 1) / v.opts.PageSize
}

// Filtered returns every record matching the search, in sort order.
func (v *View) Filtered() []fir.Record {
	return append([]fir.Record(nil), v.filtered...)
}

// Records returns everything loaded, unfiltered.
func (v *View) Records() []fir.Record {
	return append([]fir.Record(nil), v.records...)
}

// Visible returns the records on the current page.
func (v *View) Visible() []fir.Record {
	start := (v.page - 1) * v.opts.PageSize
	if start >= len(v.filtered) {
		return nil
	}
	end := start + v.opts.PageSize
	if end > len(v.filtered) {
		end = len(v.filtered)
	}
	return append([]fir.Record(nil), v.filtered[start:end]...)
}

// Find returns the loaded record with id.
func (v *View) Find(id fir.ID) (fir.Record, bool) {
	for _, record := range v.records {
		if record.ID == id {
			return record, true
		}
	}
	return fir.Record{}, false
}

func (v *View) refresh() {
	v.filtered = Search(v.records, v.term)
	v.applySort()
}

func (v *View) applySort() {
	if v.sortKey == "" {
		return
	}
	SortRecords(v.filtered, v.sortKey, v.sortDir)
}

// Search returns the records with any non-empty value containing term,
// case-insensitively. An empty term matches everything.
func Search(records []fir.Record, term string) []fir.Record {
	q := strings.ToLower(strings.TrimSpace(term))
	out := make([]fir.Record, 0, len(records))
	for _, record := range records {
		if q == "" || matches(record, q) {
			out = append(out, record)
		}
	}
	return out
}

func matches(record fir.Record, q string) bool {
	for _, value := range record.SearchValues() {
		if strings.Contains(strings.ToLower(value), q) {
			return true
		}
	}
	return false
}

// SortRecords sorts in place by key. Integers compare numerically and come
// before other values, which compare as strings. Equal values keep their
// relative order.
func SortRecords(records []fir.Record, key string, dir Direction) {
	sort.SliceStable(records, func(i, j int) bool {
		c := compareValues(records[i].Get(key), records[j].Get(key))
		if dir == Descending {
			return c > 0
		}
		return c < 0
	})
}

func compareValues(a, b string) int {
	x, errA := strconv.Atoi(strings.TrimSpace(a))
	y, errB := strconv.Atoi(strings.TrimSpace(b))
	switch {
	case errA == nil && errB == nil:
		return cmp.Compare(x, y)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return strings.Compare(a, b)
}
