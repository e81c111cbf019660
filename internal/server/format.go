package server

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/Kush-Singh-26/immo/catalog/models"
)

// Currency is appended to every formatted price.
const Currency = "DA"

// Formatter renders display values in French.
type Formatter struct {
	printer *message.Printer
}

// NewFormatter returns a French formatter.
func NewFormatter() *Formatter {
	return &Formatter{printer: message.NewPrinter(language.French)}
}

// Format renders v according to its intent. Compact currency switches to
// millions from one million up.
func (f *Formatter) Format(v models.DisplayValue) string {
	if v.Intent == models.IntentCompactCurrency && v.Value >= 1_000_000 {
		return f.printer.Sprintf("%v M %s", number.Decimal(v.Value/1_000_000, number.MaxFractionDigits(1)), Currency)
	}
	return f.printer.Sprintf("%v %s", number.Decimal(v.Value, number.MaxFractionDigits(0)), Currency)
}

// FormattedValue is a display value with its rendered text.
type FormattedValue struct {
	models.DisplayValue
	Text string `json:"text"`
}

func (f *Formatter) value(v models.DisplayValue) FormattedValue {
	return FormattedValue{DisplayValue: v, Text: f.Format(v)}
}
