package grid

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
)

// FileDownloader hands a generated export to the host environment, e.g. by
// writing it into a downloads directory. It returns the destination path.
type FileDownloader interface {
	Download(filename string, data []byte) (string, error)
}

// ClipboardWriter copies text to the host clipboard.
type ClipboardWriter interface {
	Write(text string) error
}

// ExportFile is a materialized export: a derived filename and the encoded
// bytes.
type ExportFile struct {
	Filename string
	Data     []byte
}

// Export encodes the canonical dataset for download. The input rows are the
// MaxRows-limited records in as-supplied order, never the sorted or
// paginated view, so exporting is independent of the user's current sort.
// "csv" produces CSV; any other format value produces JSON. On an empty
// dataset the export carries no data.
func (e *Engine) Export(format string) ExportFile {
	if e.dataset == nil || e.dataset.Empty() {
		return ExportFile{}
	}

	rows := e.dataset.Records()
	if e.cfg.MaxRows > 0 && len(rows) > e.cfg.MaxRows {
		rows = rows[:e.cfg.MaxRows]
	}

	var data []byte
	if format == "csv" {
		data = encodeCSV(e.dataset.Columns(), rows)
	} else {
		data = encodeJSON(e.dataset.Columns(), rows)
	}

	return ExportFile{
		Filename: ExportFilename(e.dataset.Title(), format),
		Data:     data,
	}
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// ExportFilename derives a filename from a dataset title: lower-cased,
// whitespace runs collapsed to single underscores, suffixed with the
// requested format.
func ExportFilename(title, format string) string {
	name := whitespaceRun.ReplaceAllString(strings.ToLower(title), "_")
	return name + "." + format
}

// encodeCSV writes the header row (column names joined by comma, in fixed
// column order) followed by one line per record. Null cells are empty
// fields; string values containing a comma, double quote or newline are
// wrapped in double quotes with inner quotes doubled.
func encodeCSV(columns []string, rows []Record) []byte {
	var buf bytes.Buffer
	buf.WriteString(strings.Join(columns, ","))

	for _, rec := range rows {
		buf.WriteByte('\n')
		for i, col := range columns {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(csvField(rec.Value(col)))
		}
	}
	return buf.Bytes()
}

func csvField(v Value) string {
	if v.IsNull() {
		return ""
	}
	s := v.String()
	if v.tag == tagText && strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

// encodeJSON renders the records as an indented JSON array of objects,
// preserving the dataset's column order within each object.
func encodeJSON(columns []string, rows []Record) []byte {
	ordered := make([]orderedRecord, len(rows))
	for i, rec := range rows {
		ordered[i] = orderedRecord{columns: columns, rec: rec}
	}
	data, err := json.MarshalIndent(ordered, "", "  ")
	if err != nil {
		// Records only hold scalar values; marshaling cannot fail.
		return []byte("[]")
	}
	return data
}

// orderedRecord marshals a record with keys in dataset column order, which
// plain map marshaling would not preserve.
type orderedRecord struct {
	columns []string
	rec     Record
}

func (o orderedRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range o.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(o.rec.Value(col))
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
