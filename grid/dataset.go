package grid

// Record is one row of tabular data, mapping column name to scalar value.
type Record map[string]Value

// Value returns the record's value for a column, or null when the column is
// absent on this record. Heterogeneous rows therefore behave as if the
// missing cells were null.
func (r Record) Value(column string) Value {
	v, ok := r[column]
	if !ok {
		return Null()
	}
	return v
}

// Dataset is the immutable ordered record sequence for one query result.
// Column order is fixed at construction and never changes for the dataset's
// lifetime; a new query result replaces the dataset wholesale.
type Dataset struct {
	title   string
	columns []string
	records []Record
}

// NewDataset builds a dataset from a column order and records. The caller
// supplies the column order explicitly since Go maps carry none; drivers
// pass the result set's column order through.
func NewDataset(title string, columns []string, records []Record) *Dataset {
	return &Dataset{
		title:   title,
		columns: append([]string(nil), columns...),
		records: records,
	}
}

// Title returns the dataset title.
func (d *Dataset) Title() string {
	return d.title
}

// Columns returns the fixed column order.
func (d *Dataset) Columns() []string {
	return d.columns
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// Empty reports whether the dataset has no records.
func (d *Dataset) Empty() bool {
	return d.Len() == 0
}

// Records returns the records in canonical (as-supplied) order.
func (d *Dataset) Records() []Record {
	return d.records
}
