package ui

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// Percent formats a share with one decimal, e.g. "1.6%".
func Percent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}

// Trillions formats a USD amount in trillions, e.g. "$226.47T".
func Trillions(v float64) string {
	return "$" + printer.Sprint(number.Decimal(v, number.Scale(2))) + "T"
}

// Count formats a whole number with thousands separators, e.g. "1,570".
func Count(v float64) string {
	return printer.Sprint(number.Decimal(v, number.Scale(0)))
}

// Millions formats a head count given in millions, e.g. "60M".
func Millions(v float64) string {
	return Count(v) + "M"
}

// Year formats a calendar year without grouping.
func Year(y int) string {
	return strconv.Itoa(y)
}
