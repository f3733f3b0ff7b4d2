package numfmt

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders whole-euro amounts with locale digit grouping, the same
// grouping the dashboard applies while the user types.
type Formatter struct {
	printer *message.Printer
}

// NewFormatter creates a Formatter for the given BCP 47 locale tag.
// An unparseable tag falls back to Dutch, the dashboard's default locale.
func NewFormatter(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Dutch
	}
	return &Formatter{printer: message.NewPrinter(tag)}
}

// Sanitize strips every character that is not a decimal digit.
func Sanitize(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Parse sanitizes the input and parses it as a whole number.
// Empty or unparseable input degrades to 0, never an error.
func Parse(value string) int {
	digits := Sanitize(value)
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

// Format sanitizes the input and renders it with locale digit grouping.
// Empty input stays empty.
func (f *Formatter) Format(value string) string {
	digits := Sanitize(value)
	if digits == "" {
		return ""
	}
	return f.printer.Sprintf("%d", Parse(digits))
}

// Group renders an amount with locale digit grouping.
func (f *Formatter) Group(amount int) string {
	return f.printer.Sprintf("%d", amount)
}

// Currency renders a whole-euro amount, no fraction digits.
func (f *Formatter) Currency(amount int) string {
	return "€ " + f.printer.Sprintf("%d", amount)
}

// Percent renders a percentage with a single fraction digit.
func (f *Formatter) Percent(value float64) string {
	return f.printer.Sprintf("%.1f", value) + "%"
}
