package movements

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"printshop/frontend/shared/html"
	"printshop/frontend/shared/nav"
	"printshop/models"
)

func MovementsPage(topNav nav.TopNavData, data PageData) templ.Component {
	return html.Layout("Cuentas", topNav, templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		pw := html.NewWriter(w)
		pw.Raw(`<h1>Cuentas</h1>`)
		html.StatusBanner(pw, data.Status)

		pw.Raw(`<section class="cards">`)
		pw.Raw(`<div class="card"><span>Ingresos</span><strong>`).Text(html.Money(data.Balance.Income)).Raw(`</strong></div>`)
		pw.Raw(`<div class="card"><span>Gastos</span><strong>`).Text(html.Money(data.Balance.Expense)).Raw(`</strong></div>`)
		pw.Raw(`<div class="card"><span>Saldo</span><strong>`).Text(html.Money(data.Balance.Net())).Raw(`</strong></div>`)
		pw.Raw(`</section>`)

		pw.Raw(`<form method="post" action="/app/movements" class="inline-form">`)
		pw.Raw(`<input type="date" name="date" value="`).Attr(data.Today).Raw(`">`)
		pw.Raw(`<select name="type"><option value="` + models.MovementIncome + `">Ingreso</option><option value="` + models.MovementExpense + `">Gasto</option></select>`)
		pw.Raw(`<input name="category" placeholder="Categoría">`)
		pw.Raw(`<input name="amount" inputmode="decimal" placeholder="Monto">`)
		pw.Raw(`<input name="description" placeholder="Descripción">`)
		pw.Raw(`<input name="medium" placeholder="efectivo">`)
		pw.Raw(`<button type="submit">Agregar</button></form>`)
		pw.Raw(`<p><a href="/app/movements.csv">Descargar CSV</a></p>`)

		if len(data.Movements) == 0 {
			pw.Raw(`<p class="muted">Sin movimientos.</p>`)
			return pw.Err()
		}
		pw.Raw(`<table class="list"><thead><tr><th>Fecha</th><th>Tipo</th><th>Categoría</th><th>Monto</th><th>Descripción</th><th>Medio</th></tr></thead><tbody>`)
		for _, m := range data.Movements {
			pw.Raw(`<tr><td>`).Text(m.Date.Format("02/01/2006")).Raw(`</td>`)
			pw.Raw(`<td>`).Text(m.Type).Raw(`</td>`)
			pw.Raw(`<td>`).Text(m.Category).Raw(`</td>`)
			pw.Raw(`<td class="num">`).Text(html.Money(m.Amount)).Raw(`</td>`)
			pw.Raw(`<td>`).Text(m.Description).Raw(`</td>`)
			pw.Raw(`<td>`).Text(m.Medium).Raw(`</td></tr>`)
		}
		pw.Raw(`</tbody></table>`)
		return pw.Err()
	}))
}
