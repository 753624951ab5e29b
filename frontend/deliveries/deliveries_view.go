package deliveries

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"printshop/frontend/shared/html"
	"printshop/frontend/shared/nav"
)

const formRows = 5

func DeliveriesPage(topNav nav.TopNavData, data PageData) templ.Component {
	return html.Layout("Entregas", topNav, templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		pw := html.NewWriter(w)
		pw.Raw(`<h1>Entregas</h1>`)
		html.StatusBanner(pw, data.Status)

		pw.Raw(`<form method="post" action="/app/deliveries" class="delivery-form">`)
		pw.Raw(`<label>Cliente *<input name="customer" list="customer-names" required value="`).Attr(data.CustomerName).Raw(`"></label>`)
		pw.Raw(`<datalist id="customer-names">`)
		for _, name := range data.Customers {
			pw.Raw(`<option value="`).Attr(name).Raw(`">`)
		}
		pw.Raw(`</datalist>`)
		if data.RequireSaved {
			pw.Raw(`<p class="muted">El cliente debe estar guardado en <a href="/app/customers">Clientes</a>.</p>`)
		}
		pw.Raw(`<label>Fecha<input type="date" name="date" value="`).Attr(data.Today).Raw(`"></label>`)
		pw.Raw(`<label>Nº de pedido<input name="order_number"></label>`)

		pw.Raw(`<table class="items"><thead><tr><th>Pieza</th><th>Cantidad</th><th>Precio unit.</th></tr></thead><tbody>`)
		for i := 0; i < formRows; i++ {
			pw.Raw(`<tr><td><input name="piece"></td><td><input name="quantity" inputmode="numeric" value="1"></td><td><input name="unit_price" inputmode="decimal" value="0"></td></tr>`)
		}
		pw.Raw(`</tbody></table>`)
		pw.Raw(`<label>Descuento<input name="discount" inputmode="decimal" value="0"></label>`)
		pw.Raw(`<label>Notas<textarea name="notes" rows="2"></textarea></label>`)
		pw.Raw(`<button type="submit">Guardar entrega</button></form>`)

		pw.Raw(`<h2>Últimas entregas</h2>`)
		if len(data.Recent) == 0 {
			pw.Raw(`<p class="muted">Todavía no hay entregas.</p>`)
			return pw.Err()
		}
		pw.Raw(`<table class="list"><thead><tr><th>Fecha</th><th>Cliente</th><th>Piezas</th><th>Total</th><th></th></tr></thead><tbody>`)
		for _, d := range data.Recent {
			id := strconv.FormatInt(d.ID, 10)
			pw.Raw(`<tr><td>`).Text(d.Date.Format("02/01/2006")).Raw(`</td>`)
			pw.Raw(`<td>`).Text(d.CustomerName).Raw(`</td>`)
			pw.Raw(`<td>`).Text(d.Summary).Raw(`</td>`)
			pw.Raw(`<td class="num">`).Text(html.Money(d.Total)).Raw(`</td>`)
			pw.Raw(`<td class="actions"><a href="/app/deliveries/` + id + `/note.pdf" target="_blank">Remito</a>`)
			pw.Raw(`<form method="post" action="/app/deliveries/` + id + `/delete" onsubmit="return confirm('¿Eliminar entrega?')"><button type="submit" class="danger">Eliminar</button></form></td></tr>`)
		}
		pw.Raw(`</tbody></table>`)
		return pw.Err()
	}))
}
