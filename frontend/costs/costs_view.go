package costs

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"printshop/frontend/shared/html"
	"printshop/frontend/shared/nav"
	"printshop/infrastructure/pricing"
)

var configLabels = map[string]string{
	pricing.KeyPricePerKg:       "Precio filamento ($/kg)",
	pricing.KeyPricePerKWh:      "Precio kWh ($)",
	pricing.KeyWatts:            "Consumo (W)",
	pricing.KeyLifetimeHours:    "Vida útil (h)",
	pricing.KeySparePartsPrice:  "Repuestos ($)",
	pricing.KeyErrorMarginPct:   "Margen de error (%)",
	pricing.KeyProfitMultiplier: "Multiplicador de ganancia",
}

func CostsPage(topNav nav.TopNavData, data PageData) templ.Component {
	return html.Layout("Costos y tiempos", topNav, templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		pw := html.NewWriter(w)
		pw.Raw(`<h1>Costos y tiempos</h1>`)
		html.StatusBanner(pw, data.Status)

		pw.Raw(`<section class="columns"><div>`)
		pw.Raw(`<h2>Trabajo</h2><form method="get" action="/app/costs">`)
		pw.Raw(`<label>Horas<input name="hours" inputmode="numeric" value="`).Attr(strconv.Itoa(data.Job.Hours)).Raw(`"></label>`)
		pw.Raw(`<label>Minutos<input name="minutes" inputmode="numeric" value="`).Attr(strconv.Itoa(data.Job.Minutes)).Raw(`"></label>`)
		pw.Raw(`<label>Gramos<input name="grams" inputmode="decimal" value="`).Attr(formatFloat(data.Job.Grams)).Raw(`"></label>`)
		pw.Raw(`<button type="submit">Calcular</button></form>`)

		if data.Error != "" {
			pw.Raw(`<p class="error">`).Text(data.Error).Raw(`</p>`)
		}
		if res := data.Result; res != nil {
			pw.Raw(`<table class="breakdown"><tbody>`)
			row := func(label string, v float64) {
				pw.Raw(`<tr><th>`).Text(label).Raw(`</th><td class="num">`).Text(html.Amount(v)).Raw(`</td></tr>`)
			}
			pw.Raw(`<tr><th>Tiempo (h)</th><td class="num">`).Text(strconv.FormatFloat(res.TimeHours, 'f', 2, 64)).Raw(`</td></tr>`)
			row("Filamento", res.FilamentCost)
			row("Electricidad", res.ElectricityCost)
			row("Desgaste", res.WearCost)
			row("Margen de error", res.ErrorMargin)
			row("Costo base", res.BaseCost)
			row("Precio final", res.FinalPrice)
			row("Ganancia estimada", res.EstimatedProfit)
			pw.Raw(`</tbody></table>`)
		}
		pw.Raw(`</div><div>`)

		pw.Raw(`<h2>Gastos fijos</h2><form method="post" action="/app/costs/config">`)
		values := data.Config.Values()
		for _, key := range pricing.Keys() {
			pw.Raw(`<label>`).Text(configLabels[key]).Raw(`<input name="` + key + `" inputmode="decimal" value="`).Attr(formatFloat(values[key])).Raw(`"></label>`)
		}
		pw.Raw(`<button type="submit">Guardar configuración</button></form>`)
		pw.Raw(`</div></section>`)
		return pw.Err()
	}))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
