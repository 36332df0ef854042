package grid

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Direction is a sort direction.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// SortState holds the active sort column (empty = unsorted) and direction.
type SortState struct {
	Column    string
	Direction Direction
}

// ExpandedCell identifies the single cell currently open in the expanded
// view. Value holds the full, untruncated string.
type ExpandedCell struct {
	Value    string
	Column   string
	RowIndex int
}

// Config controls row limiting and page size. MaxRows of zero means
// unlimited; PageSize defaults to 10.
type Config struct {
	MaxRows  int
	PageSize int
}

// DefaultPageSize is used when the config leaves PageSize unset.
const DefaultPageSize = 10

// Engine owns an immutable dataset and derives sorted, paginated and
// export-ready views from it. All derivations are pure and synchronous; the
// sorted view is memoized and recomputed only when the dataset, sort state
// or row limit changes.
type Engine struct {
	dataset *Dataset
	cfg     Config

	sortState SortState
	page      int
	expanded  *ExpandedCell

	visible      []Record
	visibleValid bool
}

// NewEngine creates an engine with no dataset.
func NewEngine(cfg Config) *Engine {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	return &Engine{cfg: cfg, page: 1}
}

// SetDataset replaces the dataset wholesale and resets all interactive
// state: sort cleared, page back to 1, expanded cell closed.
func (e *Engine) SetDataset(d *Dataset) {
	e.dataset = d
	e.sortState = SortState{}
	e.page = 1
	e.expanded = nil
	e.visibleValid = false
}

// Dataset returns the current dataset, which may be nil.
func (e *Engine) Dataset() *Dataset {
	return e.dataset
}

// PageSize returns the configured page size.
func (e *Engine) PageSize() int {
	return e.cfg.PageSize
}

// Sort returns the current sort state.
func (e *Engine) Sort() SortState {
	return e.sortState
}

// SetSort sorts by the given column, flipping direction when the column is
// already the sort key. The current page resets to 1. Unknown column names
// are accepted; such a sort compares all-null keys and keeps stable order.
func (e *Engine) SetSort(column string) {
	if e.sortState.Column == column {
		if e.sortState.Direction == Ascending {
			e.sortState.Direction = Descending
		} else {
			e.sortState.Direction = Ascending
		}
	} else {
		e.sortState = SortState{Column: column, Direction: Ascending}
	}
	e.page = 1
	e.visibleValid = false
}

var collator = collate.New(language.English)

// compareRecords orders two records by the sort column. Null (or missing)
// values sort after non-null values regardless of the requested direction.
// Non-null pairs compare numerically when both carry a numeric prefix,
// otherwise by case-folded locale-aware string order.
func compareRecords(a, b Record, s SortState) int {
	av, bv := a.Value(s.Column), b.Value(s.Column)

	// Nulls last, independent of direction.
	switch {
	case av.IsNull() && bv.IsNull():
		return 0
	case av.IsNull():
		return 1
	case bv.IsNull():
		return -1
	}

	cmp := compareValues(av, bv)
	if s.Direction == Descending {
		cmp = -cmp
	}
	return cmp
}

func compareValues(a, b Value) int {
	af, aok := a.permissiveFloat()
	bf, bok := b.permissiveFloat()
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	return collator.CompareString(strings.ToLower(a.String()), strings.ToLower(b.String()))
}

// VisibleRows derives the rows eligible for pagination: a copy of the
// dataset, stably sorted when a sort column is set, then truncated to
// MaxRows. Truncation happens after sorting, so an unsorted dataset is
// truncated in canonical order.
func (e *Engine) VisibleRows() []Record {
	if e.visibleValid {
		return e.visible
	}
	if e.dataset == nil || e.dataset.Empty() {
		e.visible = nil
		e.visibleValid = true
		return nil
	}

	rows := append([]Record(nil), e.dataset.Records()...)
	if e.sortState.Column != "" {
		s := e.sortState
		sort.SliceStable(rows, func(i, j int) bool {
			return compareRecords(rows[i], rows[j], s) < 0
		})
	}
	if e.cfg.MaxRows > 0 && len(rows) > e.cfg.MaxRows {
		rows = rows[:e.cfg.MaxRows]
	}

	e.visible = rows
	e.visibleValid = true
	return rows
}

// TotalPages returns ceil(visible/pageSize), zero for an empty view.
func (e *Engine) TotalPages() int {
	n := len(e.VisibleRows())
	if n == 0 {
		return 0
	}
	return (n + e.cfg.PageSize - 1) / e.cfg.PageSize
}

// CurrentPage returns the 1-based current page.
func (e *Engine) CurrentPage() int {
	return e.page
}

// SetPage navigates to a page. Requests outside [1, TotalPages] are
// ignored, never clamped into an error.
func (e *Engine) SetPage(page int) {
	if page < 1 || page > e.TotalPages() {
		return
	}
	e.page = page
}

// NextPage advances one page when possible.
func (e *Engine) NextPage() {
	e.SetPage(e.page + 1)
}

// PrevPage goes back one page when possible.
func (e *Engine) PrevPage() {
	e.SetPage(e.page - 1)
}

// HasPrev reports whether a previous page exists.
func (e *Engine) HasPrev() bool {
	return e.page > 1
}

// HasNext reports whether a next page exists.
func (e *Engine) HasNext() bool {
	return e.page < e.TotalPages()
}

// PageRows returns the visible rows of the current page.
func (e *Engine) PageRows() []Record {
	rows := e.VisibleRows()
	start := (e.page - 1) * e.cfg.PageSize
	if start >= len(rows) {
		return nil
	}
	end := start + e.cfg.PageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// PageStart returns the visible-row index of the first row on the current
// page, used to translate page-relative cursor positions.
func (e *Engine) PageStart() int {
	return (e.page - 1) * e.cfg.PageSize
}

// PageItem is one slot in the page-number strip: either a page button or an
// ellipsis gap marker.
type PageItem struct {
	Page     int
	Ellipsis bool
}

// PageNumbers returns the page buttons to render: always the first and last
// page, the current page and pages within two of it, with a single ellipsis
// marker wherever consecutive shown numbers leave a gap.
func (e *Engine) PageNumbers() []PageItem {
	total := e.TotalPages()
	var items []PageItem
	last := 0
	for p := 1; p <= total; p++ {
		if p != 1 && p != total && abs(p-e.page) > 2 {
			continue
		}
		if last != 0 && p-last > 1 {
			items = append(items, PageItem{Ellipsis: true})
		}
		items = append(items, PageItem{Page: p})
		last = p
	}
	return items
}

// ActivateCell opens the expanded view for a qualifying cell and returns
// whether it did. Only strings longer than the truncation threshold
// qualify; the stored value is the original untruncated string. Activating
// while another cell is open replaces it in place.
func (e *Engine) ActivateCell(v Value, column string, rowIndex int) bool {
	if !v.Expandable() {
		return false
	}
	e.expanded = &ExpandedCell{Value: v.text, Column: column, RowIndex: rowIndex}
	return true
}

// Expanded returns the open expanded cell, or nil.
func (e *Engine) Expanded() *ExpandedCell {
	return e.expanded
}

// CloseExpanded closes the expanded view unconditionally.
func (e *Engine) CloseExpanded() {
	e.expanded = nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
