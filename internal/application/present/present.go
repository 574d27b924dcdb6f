// Package present formats values for display: currency, dates, labels and
// markdown. Every function is a pure function of its arguments.
package present

import (
	"bytes"
	"fmt"
	"html/template"
	"math"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"clubadmin/internal/domain/entity"
)

// Locale is the display locale for numbers.
var Locale = language.MustParse("es-CO")

// mdRenderer escapes raw HTML in its input; WithUnsafe is not set.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

var monthsShort = [...]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sep", "oct", "nov", "dic"}

var monthsLong = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

var weekdays = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}

// Currency formats an amount in Colombian pesos with no decimals: "$ 3.000.000".
// PRE: none
// POST: Rounds half away from zero; NaN and infinities render as "$ 0"
func Currency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	rounded := math.Round(amount)
	sign := ""
	if rounded < 0 {
		sign = "-"
		rounded = -rounded
	}
	p := message.NewPrinter(Locale)
	return sign + "$ " + p.Sprint(number.Decimal(rounded, number.MaxFractionDigits(0)))
}

// EventCost renders an optional event fee; nil or zero is free.
func EventCost(cost *float64) string {
	if cost == nil || *cost == 0 {
		return "Gratis"
	}
	return Currency(*cost)
}

// Date renders dd/MM/yyyy in the club time zone, or "-" for the zero time.
func Date(t entity.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Time.In(entity.Location).Format("02/01/2006")
}

// DateTime renders "dd MMM yyyy • HH:mm" with Spanish month abbreviations.
func DateTime(t entity.Time) string {
	if t.IsZero() {
		return "-"
	}
	lt := t.Time.In(entity.Location)
	return fmt.Sprintf("%02d %s %d • %s", lt.Day(), monthsShort[lt.Month()-1], lt.Year(), lt.Format("15:04"))
}

// Clock renders HH:mm in the club time zone.
func Clock(t entity.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Time.In(entity.Location).Format("15:04")
}

// LongDate renders "lunes, 3 de marzo de 2025" for the dashboard greeting.
func LongDate(t time.Time) string {
	lt := t.In(entity.Location)
	return fmt.Sprintf("%s, %d de %s de %d", weekdays[lt.Weekday()], lt.Day(), monthsLong[lt.Month()-1], lt.Year())
}

// Minutes renders a duration in minutes as "90 min".
func Minutes(n int) string {
	return fmt.Sprintf("%d min", n)
}

// Markdown renders user text to HTML. On a render failure the text is escaped.
func Markdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

// Initials returns up to two upper-case initials for an avatar.
func Initials(first, last string) string {
	out := make([]rune, 0, 2)
	for _, s := range []string{first, last} {
		for _, r := range s {
			out = append(out, r)
			break
		}
	}
	return strings.ToUpper(string(out))
}
