// Package format renders money and timestamps the way the Swedish dashboard
// shows them: whole kronor with locale digit grouping, ISO dates and 24-hour
// clock times in the office time zone.
package format

import (
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	dateLayout     = "2006-01-02"
	timeLayout     = "15:04"
	dateTimeLayout = "2006-01-02 15:04"
)

// Formatter converts raw values to display strings. The zero value is not
// usable; construct one with New.
type Formatter struct {
	loc     *time.Location
	printer *message.Printer
}

// New returns a Formatter rendering times in loc. A nil loc means UTC.
func New(loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.UTC
	}
	return &Formatter{loc: loc, printer: message.NewPrinter(language.Swedish)}
}

// Location returns the time zone used for rendering.
func (f *Formatter) Location() *time.Location {
	return f.loc
}

// SEK formats an amount of whole kronor, e.g. "4 950 000 kr". The symbol is
// the locale's narrow symbol for the Swedish krona.
func (f *Formatter) SEK(amount int64) string {
	return f.printer.Sprintf("%d\u00a0%v", amount, currency.NarrowSymbol(currency.SEK))
}

// Date formats the calendar date of t.
func (f *Formatter) Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(f.loc).Format(dateLayout)
}

// Time formats the wall-clock time of t.
func (f *Formatter) Time(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(f.loc).Format(timeLayout)
}

// DateTime formats both date and time of t.
func (f *Formatter) DateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(f.loc).Format(dateTimeLayout)
}
