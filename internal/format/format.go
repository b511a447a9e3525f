package format

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Quantity renders raw kilograms for display. At 1000 kg and above the value
// switches to metric tons with up to two fractional digits; below that it stays
// in whole kilograms. Digit grouping follows the given locale.
func Quantity(kg float64, showUnit bool, tag language.Tag) string {
	p := message.NewPrinter(tag)
	if kg/1000 >= 1 {
		s := p.Sprint(number.Decimal(kg/1000, number.MaxFractionDigits(2)))
		if showUnit {
			return s + " MT"
		}
		return s
	}
	s := p.Sprint(number.Decimal(kg, number.MaxFractionDigits(0)))
	if showUnit {
		return s + "kg"
	}
	return s
}

// Percent renders a utilization percentage. From 1000% the value collapses to
// a multiplier ("12x") so grossly overbooked days stay readable.
func Percent(pct float64, tag language.Tag) string {
	p := message.NewPrinter(tag)
	if pct >= 1000 {
		return p.Sprint(number.Decimal(pct/100, number.MaxFractionDigits(1))) + "x"
	}
	return p.Sprint(number.Decimal(pct, number.MaxFractionDigits(1))) + "%"
}

// Number renders a plain quantity with locale grouping and up to two
// fractional digits. No unit conversion happens here.
func Number(v float64, tag language.Tag) string {
	p := message.NewPrinter(tag)
	return p.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

// Tons renders a ton value directly (capacity limits and remaining figures
// arrive in tons, not kilograms).
func Tons(t float64, tag language.Tag) string {
	return Quantity(t*1000, true, tag)
}

// Boxes renders a box count with locale grouping.
func Boxes(n float64, tag language.Tag) string {
	p := message.NewPrinter(tag)
	return p.Sprint(number.Decimal(n, number.MaxFractionDigits(0)))
}
