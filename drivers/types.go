package drivers

// ColumnInfo describes one column of a table, as reported by the engine's
// catalog.
type ColumnInfo struct {
	Name         string
	DataType     string
	Nullable     bool
	IsPrimaryKey bool
	DefaultValue string
}
