package customers

import (
	"context"
	"io"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"printshop/frontend/shared/html"
	"printshop/frontend/shared/nav"
)

func CustomersPage(topNav nav.TopNavData, data PageData) templ.Component {
	return html.Layout("Clientes", topNav, templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		pw := html.NewWriter(w)
		pw.Raw(`<h1>Clientes</h1>`)
		html.StatusBanner(pw, data.Status)

		pw.Raw(`<section class="columns"><div>`)
		pw.Raw(`<form method="get" action="/app/customers"><input type="search" name="q" placeholder="Escribí un nombre…" value="`).Attr(data.Query).Raw(`"><button type="submit">Buscar</button></form>`)
		if len(data.Results) == 0 {
			pw.Raw(`<p class="muted">Sin resultados.</p>`)
		} else {
			pw.Raw(`<ul class="results">`)
			for _, c := range data.Results {
				pw.Raw(`<li><a href="/app/customers?name=`).Attr(url.QueryEscape(c.Name)).Raw(`">`).Text(c.Name).Raw(`</a></li>`)
			}
			pw.Raw(`</ul>`)
		}
		pw.Raw(`</div><div>`)

		if c := data.Selected; c != nil {
			pw.Raw(`<h2>`).Text(c.Name).Raw(`</h2><dl>`)
			pw.Raw(`<dt>Teléfono</dt><dd>`).Text(c.Phone).Raw(`</dd>`)
			pw.Raw(`<dt>Email</dt><dd>`).Text(c.Email).Raw(`</dd>`)
			pw.Raw(`<dt>Dirección</dt><dd>`).Text(c.Address).Raw(`</dd></dl>`)
			pw.Raw(`<form method="post" action="/app/customers/`).Raw(strconv.FormatInt(c.ID, 10)).Raw(`/delete" onsubmit="return confirm('¿Eliminar cliente y sus entregas?')"><button type="submit" class="danger">Eliminar</button></form>`)
		}

		name := data.Query
		if data.Selected != nil {
			name = data.Selected.Name
		}
		pw.Raw(`<h2>Nuevo / editar cliente</h2><form method="post" action="/app/customers">`)
		pw.Raw(`<label>Nombre *<input name="name" required value="`).Attr(name).Raw(`"></label>`)
		field := func(label, key, value string) {
			pw.Raw(`<label>`).Text(label).Raw(`<input name="` + key + `" value="`).Attr(value).Raw(`"></label>`)
		}
		if c := data.Selected; c != nil {
			field("Teléfono", "phone", c.Phone)
			field("Email", "email", c.Email)
			field("Dirección", "address", c.Address)
		} else {
			field("Teléfono", "phone", "")
			field("Email", "email", "")
			field("Dirección", "address", "")
		}
		pw.Raw(`<button type="submit">Guardar</button></form>`)
		pw.Raw(`<p class="muted">Para editar, guardá con el mismo nombre.</p>`)
		pw.Raw(`</div></section>`)
		return pw.Err()
	}))
}
