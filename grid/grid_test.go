package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(cfg Config, columns []string, rows []Record) *Engine {
	e := NewEngine(cfg)
	e.SetDataset(NewDataset("Test Result", columns, rows))
	return e
}

func col(rows []Record, column string) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Value(column).String()
	}
	return out
}

func TestSortNumericStrings(t *testing.T) {
	e := newTestEngine(Config{}, []string{"a"}, []Record{
		{"a": Text("10")},
		{"a": Text("9")},
	})

	e.SetSort("a")
	assert.Equal(t, []string{"9", "10"}, col(e.VisibleRows(), "a"))
}

func TestSortScenario(t *testing.T) {
	rows := []Record{
		{"a": Text("3"), "b": Null()},
		{"a": Text("1"), "b": Text("x")},
		{"a": Text("2"), "b": Null()},
	}
	e := newTestEngine(Config{}, []string{"a", "b"}, rows)

	e.SetSort("a")
	assert.Equal(t, []string{"1", "2", "3"}, col(e.VisibleRows(), "a"))

	e.SetDataset(NewDataset("Test Result", []string{"a", "b"}, rows))
	e.SetSort("b")
	// The b:"x" row first, then the two null rows in original relative order.
	assert.Equal(t, []string{"1", "3", "2"}, col(e.VisibleRows(), "a"))
}

func TestSortNullsLastBothDirections(t *testing.T) {
	rows := []Record{
		{"v": Null()},
		{"v": Text("b")},
		{"v": Null()},
		{"v": Text("a")},
	}
	e := newTestEngine(Config{}, []string{"v"}, rows)

	e.SetSort("v")
	assert.Equal(t, []string{"a", "b", "", ""}, col(e.VisibleRows(), "v"))

	e.SetSort("v") // flip to descending
	assert.Equal(t, Descending, e.Sort().Direction)
	assert.Equal(t, []string{"b", "a", "", ""}, col(e.VisibleRows(), "v"))
}

func TestSortStability(t *testing.T) {
	rows := []Record{
		{"k": Text("x"), "id": Number(1)},
		{"k": Text("x"), "id": Number(2)},
		{"k": Text("x"), "id": Number(3)},
	}
	e := newTestEngine(Config{}, []string{"k", "id"}, rows)

	e.SetSort("k")
	assert.Equal(t, []string{"1", "2", "3"}, col(e.VisibleRows(), "id"))

	e.SetSort("k")
	assert.Equal(t, []string{"1", "2", "3"}, col(e.VisibleRows(), "id"))
}

func TestSortUnknownColumnKeepsOrder(t *testing.T) {
	rows := []Record{
		{"a": Text("z")},
		{"a": Text("y")},
		{"a": Text("x")},
	}
	e := newTestEngine(Config{}, []string{"a"}, rows)

	e.SetSort("missing")
	assert.Equal(t, []string{"z", "y", "x"}, col(e.VisibleRows(), "a"))
}

func TestSortFlipResetsPage(t *testing.T) {
	rows := make([]Record, 25)
	for i := range rows {
		rows[i] = Record{"n": Number(float64(i))}
	}
	e := newTestEngine(Config{}, []string{"n"}, rows)

	e.SetPage(3)
	require.Equal(t, 3, e.CurrentPage())

	e.SetSort("n")
	assert.Equal(t, 1, e.CurrentPage())
	assert.Equal(t, SortState{Column: "n", Direction: Ascending}, e.Sort())

	e.SetPage(2)
	e.SetSort("n")
	assert.Equal(t, 1, e.CurrentPage())
	assert.Equal(t, Descending, e.Sort().Direction)
}

func TestMaxRowsTruncatesAfterSort(t *testing.T) {
	rows := []Record{
		{"n": Number(3)},
		{"n": Number(1)},
		{"n": Number(2)},
	}
	e := newTestEngine(Config{MaxRows: 2}, []string{"n"}, rows)

	// Unsorted: truncation happens in original order.
	assert.Equal(t, []string{"3", "1"}, col(e.VisibleRows(), "n"))

	// Sorted: the lowest values survive truncation.
	e.SetSort("n")
	assert.Equal(t, []string{"1", "2"}, col(e.VisibleRows(), "n"))
}

func TestPaginationBounds(t *testing.T) {
	rows := make([]Record, 35)
	for i := range rows {
		rows[i] = Record{"n": Number(float64(i))}
	}
	e := newTestEngine(Config{}, []string{"n"}, rows)

	assert.Equal(t, 4, e.TotalPages())
	assert.False(t, e.HasPrev())
	assert.True(t, e.HasNext())

	e.SetPage(0)
	assert.Equal(t, 1, e.CurrentPage())
	e.SetPage(5)
	assert.Equal(t, 1, e.CurrentPage())

	e.SetPage(4)
	assert.Equal(t, 4, e.CurrentPage())
	assert.False(t, e.HasNext())
	assert.Len(t, e.PageRows(), 5)

	e.NextPage()
	assert.Equal(t, 4, e.CurrentPage())
	e.PrevPage()
	assert.Equal(t, 3, e.CurrentPage())
}

func TestEmptyDataset(t *testing.T) {
	e := newTestEngine(Config{}, nil, nil)

	assert.Empty(t, e.VisibleRows())
	assert.Equal(t, 0, e.TotalPages())
	assert.Empty(t, e.PageRows())
	assert.Empty(t, e.PageNumbers())
	assert.Empty(t, e.Export("csv").Data)
}

func TestPageNumbersEllipsis(t *testing.T) {
	rows := make([]Record, 100)
	for i := range rows {
		rows[i] = Record{"n": Number(float64(i))}
	}
	e := newTestEngine(Config{}, []string{"n"}, rows)
	require.Equal(t, 10, e.TotalPages())

	pages := func() []int {
		var out []int
		for _, item := range e.PageNumbers() {
			if item.Ellipsis {
				out = append(out, -1)
			} else {
				out = append(out, item.Page)
			}
		}
		return out
	}

	// Page 1: leading run then a gap before the last page.
	assert.Equal(t, []int{1, 2, 3, -1, 10}, pages())

	// Middle page: gaps on both sides.
	e.SetPage(5)
	assert.Equal(t, []int{1, -1, 3, 4, 5, 6, 7, -1, 10}, pages())

	// Near the end: only the leading gap remains.
	e.SetPage(9)
	assert.Equal(t, []int{1, -1, 7, 8, 9, 10}, pages())
}

func TestPageNumbersNoGapForAdjacentPages(t *testing.T) {
	rows := make([]Record, 40)
	for i := range rows {
		rows[i] = Record{"n": Number(float64(i))}
	}
	e := newTestEngine(Config{}, []string{"n"}, rows)
	require.Equal(t, 4, e.TotalPages())

	items := e.PageNumbers()
	require.Len(t, items, 4)
	for i, item := range items {
		assert.False(t, item.Ellipsis)
		assert.Equal(t, i+1, item.Page)
	}
}

func TestExpandedCellStateMachine(t *testing.T) {
	long := Text(makeString(60))
	short := Text("short")
	e := newTestEngine(Config{}, []string{"a"}, []Record{{"a": long}})

	// Short or non-string values are not activatable.
	assert.False(t, e.ActivateCell(short, "a", 0))
	assert.False(t, e.ActivateCell(Number(12), "a", 0))
	assert.Nil(t, e.Expanded())

	require.True(t, e.ActivateCell(long, "a", 0))
	require.NotNil(t, e.Expanded())
	assert.Equal(t, makeString(60), e.Expanded().Value)
	assert.Equal(t, "a", e.Expanded().Column)

	// Activating another qualifying cell replaces in place.
	other := Text(makeString(70))
	require.True(t, e.ActivateCell(other, "b", 3))
	assert.Equal(t, makeString(70), e.Expanded().Value)
	assert.Equal(t, 3, e.Expanded().RowIndex)

	e.CloseExpanded()
	assert.Nil(t, e.Expanded())
}

func TestSetDatasetResetsState(t *testing.T) {
	rows := make([]Record, 30)
	for i := range rows {
		rows[i] = Record{"n": Number(float64(i)), "s": Text(makeString(60))}
	}
	e := newTestEngine(Config{}, []string{"n", "s"}, rows)

	e.SetSort("n")
	e.SetPage(2)
	e.ActivateCell(Text(makeString(60)), "s", 0)

	e.SetDataset(NewDataset("Next", []string{"n"}, rows[:5]))
	assert.Equal(t, SortState{}, e.Sort())
	assert.Equal(t, 1, e.CurrentPage())
	assert.Nil(t, e.Expanded())
}

func makeString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('a' + i%26)
	}
	return string(b)
}
