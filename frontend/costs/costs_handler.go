package costs

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"printshop/frontend/shared/nav"
	"printshop/infrastructure/cache"
	"printshop/infrastructure/pricing"
	"printshop/infrastructure/sqlite"
)

// CostsPageQueryHandler prices the job given in ?hours=&minutes=&grams=.
func CostsPageQueryHandler(db *sqlite.DB, configCache *cache.CostConfigCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, err := CurrentCostConfig(r.Context(), db, configCache)
		if err != nil {
			slog.Error("load cost config failed", slog.Any("err", err))
			http.Error(w, "failed to load cost config", http.StatusInternalServerError)
			return
		}

		q := r.URL.Query()
		data := PageData{
			Config: cfg,
			Job:    ParseJob(q),
			Status: q.Get("status"),
		}
		result, err := pricing.Compute(data.Job, cfg)
		switch {
		case errors.Is(err, pricing.ErrConfiguration):
			data.Error = "Revisá los gastos fijos: " + err.Error()
		case errors.Is(err, pricing.ErrValidation):
			data.Error = "Datos del trabajo inválidos: " + err.Error()
		case err != nil:
			data.Error = err.Error()
		default:
			data.Result = result
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := CostsPage(nav.BuildTopNavData(r.Context(), "/app/costs"), data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render costs page", http.StatusInternalServerError)
			return
		}
	}
}

// SaveCostConfigCommandHandler stores the fixed-cost form.
func SaveCostConfigCommandHandler(db *sqlite.DB, configCache *cache.CostConfigCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/app/costs?status="+url.QueryEscape("Formulario inválido."), http.StatusSeeOther)
			return
		}
		current, err := CurrentCostConfig(r.Context(), db, configCache)
		if err != nil {
			slog.Error("load cost config failed", slog.Any("err", err))
			http.Redirect(w, r, "/app/costs?status="+url.QueryEscape("No se pudo leer la configuración."), http.StatusSeeOther)
			return
		}
		cfg := ParseConfigForm(r.PostForm, current)
		if err := StoreCostConfig(r.Context(), db, configCache, cfg); err != nil {
			if errors.Is(err, pricing.ErrConfiguration) {
				http.Redirect(w, r, "/app/costs?status="+url.QueryEscape("Los valores no pueden ser negativos."), http.StatusSeeOther)
				return
			}
			slog.Error("save cost config failed", slog.Any("err", err))
			http.Redirect(w, r, "/app/costs?status="+url.QueryEscape("No se pudo guardar la configuración."), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/app/costs?status="+url.QueryEscape("Configuración guardada."), http.StatusSeeOther)
	}
}

// ParseJob reads a job from query values. Unreadable numbers count as zero;
// hours and minutes must be whole numbers.
func ParseJob(q url.Values) pricing.Job {
	return pricing.Job{
		Hours:   parseWhole(q.Get("hours")),
		Minutes: parseWhole(q.Get("minutes")),
		Grams:   parseFloat(q.Get("grams")),
	}
}

// ParseConfigForm overlays the submitted keys on current. Fields that are
// absent or unreadable keep their current value.
func ParseConfigForm(form url.Values, current pricing.CostConfig) pricing.CostConfig {
	values := current.Values()
	for _, key := range pricing.Keys() {
		raw := normalizeNumber(form.Get(key))
		if raw == "" {
			continue
		}
		if v, err := strconv.ParseFloat(raw, 64); err == nil && isFinite(v) {
			values[key] = v
		}
	}
	return pricing.FromValues(values)
}

func parseFloat(raw string) float64 {
	v, err := strconv.ParseFloat(normalizeNumber(raw), 64)
	if err != nil || !isFinite(v) {
		return 0
	}
	return v
}

func parseWhole(raw string) int {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return 0
	}
	return int(v)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func normalizeNumber(raw string) string {
	return strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
}
