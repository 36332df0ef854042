package grid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindClassification(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want Kind
	}{
		{"null", Null(), KindNull},
		{"bool", Bool(true), KindBoolean},
		{"number", Number(12.5), KindNumber},
		{"plain string", Text("steel"), KindString},
		{"numeric string", Text("42.7"), KindNumericString},
		{"negative numeric string", Text("-3"), KindNumericString},
		{"partial number is string", Text("42 GWh"), KindString},
		{"date", Text("2024-03-01"), KindDate},
		{"date with time suffix", Text("2024-03-01T10:00:00"), KindDate},
		{"not a date", Text("2024-3-1"), KindString},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.v.Kind())
		})
	}
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "-", FormatValue(Null()))
	assert.Equal(t, "true", FormatValue(Bool(true)))
	assert.Equal(t, "1,234,567", FormatValue(Number(1234567)))
	assert.Equal(t, "1,234.5", FormatValue(Number(1234.5)))
	assert.Equal(t, "short text", FormatValue(Text("short text")))
}

func TestNumberStringDecimalNotation(t *testing.T) {
	cases := []struct {
		n    float64
		want string
	}{
		{700, "700"},
		{1000000, "1000000"},
		{-2500000, "-2500000"},
		{81000.5, "81000.5"},
		{1e20, "100000000000000000000"},
		{1e21, "1e+21"},
		{0.000001, "0.000001"},
		{0.0000001, "1e-7"},
		{0, "0"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Number(tc.n).String())
	}
}

func TestTruncationExpansionRoundTrip(t *testing.T) {
	original := strings.Repeat("ab", 30) // 60 characters
	v := Text(original)

	shown := FormatValue(v)
	assert.Equal(t, original[:50]+"...", shown)
	require.True(t, v.Expandable())

	e := NewEngine(Config{})
	e.SetDataset(NewDataset("t", []string{"c"}, []Record{{"c": v}}))
	require.True(t, e.ActivateCell(v, "c", 0))
	assert.Equal(t, original, e.Expanded().Value)
}

func TestFiftyCharacterStringNotTruncated(t *testing.T) {
	s := strings.Repeat("x", 50)
	v := Text(s)
	assert.Equal(t, s, FormatValue(v))
	assert.False(t, v.Expandable())
}

func TestPermissiveFloat(t *testing.T) {
	f, ok := Text("12.5 GWh").permissiveFloat()
	require.True(t, ok)
	assert.Equal(t, 12.5, f)

	f, ok = Number(9).permissiveFloat()
	require.True(t, ok)
	assert.Equal(t, 9.0, f)

	_, ok = Text("total").permissiveFloat()
	assert.False(t, ok)

	_, ok = Bool(true).permissiveFloat()
	assert.False(t, ok)

	_, ok = Null().permissiveFloat()
	assert.False(t, ok)
}

func TestRecordMissingColumnIsNull(t *testing.T) {
	r := Record{"a": Text("1")}
	assert.True(t, r.Value("b").IsNull())
}
