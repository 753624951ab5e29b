package html

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"
	"github.com/shopspring/decimal"

	"printshop/frontend/shared/nav"
)

// Layout wraps body in the page chrome. A zero nav renders no menu (login).
func Layout(title string, topNav nav.TopNavData, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		pw := NewWriter(w)
		pw.Raw(`<!doctype html><html lang="es"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		pw.Raw(`<title>`).Text(title).Raw(` · 3D.IEGO</title><link rel="stylesheet" href="/assets/app.css"></head><body>`)
		if len(topNav.Links) > 0 {
			pw.Raw(`<nav class="topnav"><span class="brand">3D.IEGO</span>`)
			for _, link := range topNav.Links {
				class := ""
				if link.Active {
					class = ` class="active"`
				}
				pw.Raw(`<a href="`).Attr(link.Href).Raw(`"` + class + `>`).Text(link.Label).Raw(`</a>`)
			}
			pw.Raw(`<form method="post" action="/logout" class="logout"><span>`).Text(topNav.Username).Raw(`</span><button type="submit">Salir</button></form></nav>`)
		}
		pw.Raw(`<main>`)
		if err := pw.Err(); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		pw.Raw(`</main>`).Raw(CSRFFormScript()).Raw(`</body></html>`)
		return pw.Err()
	})
}

// StatusBanner renders the ?status= message carried across redirects.
func StatusBanner(pw *Writer, status string) {
	if status == "" {
		return
	}
	pw.Raw(`<p class="status">`).Text(status).Raw(`</p>`)
}

// Writer accumulates the first write error so views can chain output.
type Writer struct {
	w   io.Writer
	err error
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Raw writes trusted markup.
func (pw *Writer) Raw(s string) *Writer {
	if pw.err == nil {
		_, pw.err = io.WriteString(pw.w, s)
	}
	return pw
}

// Text writes escaped text.
func (pw *Writer) Text(s string) *Writer {
	return pw.Raw(templ.EscapeString(s))
}

// Attr writes an escaped attribute value.
func (pw *Writer) Attr(s string) *Writer {
	return pw.Raw(templ.EscapeString(s))
}

// Textf formats then escapes.
func (pw *Writer) Textf(format string, args ...any) *Writer {
	return pw.Text(fmt.Sprintf(format, args...))
}

func (pw *Writer) Err() error {
	return pw.err
}

// Money renders an amount with two decimals, as the shop writes prices.
func Money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// Amount is Money for float breakdowns.
func Amount(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', 2, 64)
}
