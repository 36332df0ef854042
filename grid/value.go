package grid

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Kind classifies a cell value for display hinting (color/icon selection).
// It is never consulted by sort or export logic.
type Kind int

const (
	KindNull Kind = iota
	KindBoolean
	KindNumber
	KindString
	KindNumericString
	KindDate
)

// Value is a tagged scalar: exactly one of null, boolean, number or text.
type Value struct {
	tag  valueTag
	b    bool
	n    float64
	text string
}

type valueTag int

const (
	tagNull valueTag = iota
	tagBool
	tagNumber
	tagText
)

// Null returns the null value.
func Null() Value {
	return Value{tag: tagNull}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{tag: tagBool, b: b}
}

// Number returns a numeric value.
func Number(n float64) Value {
	return Value{tag: tagNumber, n: n}
}

// Text returns a string value.
func Text(s string) Value {
	return Value{tag: tagText, text: s}
}

// IsNull reports whether the value is null.
func (v Value) IsNull() bool {
	return v.tag == tagNull
}

var datePrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// Kind returns the display classification of the value. A string starting
// with YYYY-MM-DD is a date; a string that fully parses as a finite float
// is a numeric-string.
func (v Value) Kind() Kind {
	switch v.tag {
	case tagNull:
		return KindNull
	case tagBool:
		return KindBoolean
	case tagNumber:
		return KindNumber
	default:
		if datePrefix.MatchString(v.text) {
			return KindDate
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(v.text), 64); err == nil && !isNaNOrInf(f) {
			return KindNumericString
		}
		return KindString
	}
}

// String returns the default string form of the value.
func (v Value) String() string {
	switch v.tag {
	case tagNull:
		return ""
	case tagBool:
		return strconv.FormatBool(v.b)
	case tagNumber:
		return formatNumber(v.n)
	default:
		return v.text
	}
}

// formatNumber renders a float in decimal notation, switching to exponent
// form only below 1e-6 or at 1e21 and above. Plain FormatFloat 'g' flips to
// exponents at 1e6 already, which would make a million read "1e+06" in CSV
// while the JSON export of the same cell says 1000000.
func formatNumber(f float64) string {
	abs := f
	if abs < 0 {
		abs = -abs
	}
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		s = strings.Replace(s, "e+0", "e+", 1)
		s = strings.Replace(s, "e-0", "e-", 1)
		return s
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// MarshalJSON renders null, boolean, number and text natively.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.tag {
	case tagNull:
		return []byte("null"), nil
	case tagBool:
		return json.Marshal(v.b)
	case tagNumber:
		return json.Marshal(v.n)
	default:
		return json.Marshal(v.text)
	}
}

func isNaNOrInf(f float64) bool {
	return f != f || f > maxFinite || f < -maxFinite
}

const maxFinite = 1.797693134862315708145274237317043567981e+308

// floatPrefix matches the longest leading float literal, the way a
// permissive parser reads "12.5 GWh" as 12.5.
var floatPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// permissiveFloat parses a leading float out of the value. Numbers parse as
// themselves; booleans and null never parse. The second return is false
// when no numeric prefix exists.
func (v Value) permissiveFloat() (float64, bool) {
	switch v.tag {
	case tagNumber:
		return v.n, true
	case tagText:
		m := floatPrefix.FindString(strings.TrimSpace(v.text))
		if m == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// maxCellRunes is the display truncation threshold; longer strings are
// shortened and become activatable for the expanded-cell view.
const maxCellRunes = 50

var groupPrinter = message.NewPrinter(language.English)

// FormatValue renders a value for a table cell: "-" for null, grouped
// thousands for numbers, and strings over 50 characters truncated with an
// ellipsis suffix. The untruncated string stays available through cell
// activation.
func FormatValue(v Value) string {
	switch v.tag {
	case tagNull:
		return "-"
	case tagNumber:
		return groupPrinter.Sprint(number.Decimal(v.n))
	case tagText:
		runes := []rune(v.text)
		if len(runes) > maxCellRunes {
			return string(runes[:maxCellRunes]) + "..."
		}
		return v.text
	default:
		return v.String()
	}
}

// Expandable reports whether activating the cell opens the expanded view.
// Only strings longer than the truncation threshold qualify.
func (v Value) Expandable() bool {
	return v.tag == tagText && len([]rune(v.text)) > maxCellRunes
}
