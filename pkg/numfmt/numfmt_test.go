package numfmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain digits", input: "42000", want: "42000"},
		{name: "grouped input", input: "42.000", want: "42000"},
		{name: "currency prefix", input: "€ 1.250", want: "1250"},
		{name: "letters and digits", input: "12ab34", want: "1234"},
		{name: "no digits at all", input: "abc-€", want: ""},
		{name: "empty", input: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{"42.000", "€ 1.250,50", "", "abc", "007", "1 2 3"}
	for _, input := range inputs {
		once := Sanitize(input)
		assert.Equal(t, once, Sanitize(once))
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "grouped", input: "42.000", want: 42000},
		{name: "plain", input: "100", want: 100},
		{name: "empty defaults to zero", input: "", want: 0},
		{name: "no digits defaults to zero", input: "n/a", want: 0},
		{name: "overflowing input degrades to zero", input: "99999999999999999999999999", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.input))
		})
	}
}

func TestFormatter_Format(t *testing.T) {
	f := NewFormatter("nl-NL")

	assert.Equal(t, "42.000", f.Format("42000"))
	assert.Equal(t, "42.000", f.Format("42.000"))
	assert.Equal(t, "", f.Format(""))
	assert.Equal(t, "", f.Format("no numbers"))
	assert.Equal(t, "1.200", f.Format("1,200"))
}

func TestFormatter_Currency(t *testing.T) {
	f := NewFormatter("nl-NL")

	assert.Equal(t, "€ 42.000", f.Currency(42000))
	assert.Equal(t, "€ 0", f.Currency(0))
}

func TestFormatter_Percent(t *testing.T) {
	f := NewFormatter("en-US")

	assert.Equal(t, "2.4%", f.Percent(2.4))
	assert.Equal(t, "0.0%", f.Percent(0))
}

func TestNewFormatter_BadLocaleFallsBack(t *testing.T) {
	f := NewFormatter("not a locale")

	// Dutch grouping uses a dot separator.
	assert.Equal(t, "1.000", f.Group(1000))
}
