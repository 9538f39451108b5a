// Package format renders ledger values for display. The ledger itself only
// deals in exact decimals; locale and currency live here.
package format

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders money amounts and dates for one locale and currency.
type Formatter struct {
	printer *message.Printer
	unit    currency.Unit
}

// New builds a Formatter from a BCP 47 locale tag and an ISO 4217 code.
func New(locale, currencyCode string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return nil, fmt.Errorf("invalid currency %q: %w", currencyCode, err)
	}
	return &Formatter{printer: message.NewPrinter(tag), unit: unit}, nil
}

// MustNew is New for known-good constants.
func MustNew(locale, currencyCode string) *Formatter {
	f, err := New(locale, currencyCode)
	if err != nil {
		panic(err)
	}
	return f
}

// Money renders d with the currency symbol, rounded to the currency's
// standard scale.
func (f *Formatter) Money(d decimal.Decimal) string {
	scale, _ := currency.Standard.Rounding(f.unit)
	amount := exactAmount(d.Round(int32(scale)))
	return f.printer.Sprint(currency.Symbol(f.unit.Amount(amount)))
}

// exactAmount prints a decimal through fmt verbs from its digits, never
// through a float.
type exactAmount decimal.Decimal

func (a exactAmount) Format(s fmt.State, verb rune) {
	d := decimal.Decimal(a)
	if prec, ok := s.Precision(); ok {
		_, _ = io.WriteString(s, d.StringFixed(int32(prec)))
		return
	}
	_, _ = io.WriteString(s, d.String())
}

// Date renders t as day/month/year hour:minute.
func (f *Formatter) Date(t time.Time) string {
	return t.Format("02/01/2006 15:04")
}
