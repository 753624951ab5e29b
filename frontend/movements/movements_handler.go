package movements

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"printshop/frontend/shared/nav"
	"printshop/infrastructure/sqlite"
)

// MovementsPageQueryHandler renders the ledger with its balance.
func MovementsPageQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := ListMovements(r.Context(), db)
		if err != nil {
			slog.Error("list movements failed", slog.Any("err", err))
			http.Error(w, "failed to load movements", http.StatusInternalServerError)
			return
		}
		balance, err := MovementBalance(r.Context(), db)
		if err != nil {
			slog.Error("movement balance failed", slog.Any("err", err))
			http.Error(w, "failed to load balance", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := MovementsPage(nav.BuildTopNavData(r.Context(), "/app/movements"), PageData{
			Movements: rows,
			Balance:   balance,
			Today:     time.Now().Format("2006-01-02"),
			Status:    r.URL.Query().Get("status"),
		}).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render movements page", http.StatusInternalServerError)
			return
		}
	}
}

// RecordMovementCommandHandler appends the submitted entry.
func RecordMovementCommandHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/app/movements?status="+url.QueryEscape("Formulario inválido."), http.StatusSeeOther)
			return
		}
		in := MovementInput{
			Type:        r.FormValue("type"),
			Category:    r.FormValue("category"),
			Amount:      parseAmount(r.FormValue("amount")),
			Description: r.FormValue("description"),
			Medium:      r.FormValue("medium"),
		}
		if d, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(r.FormValue("date")), time.Local); err == nil {
			in.Date = d
		}
		if _, err := RecordMovement(r.Context(), db, in); err != nil {
			if errors.Is(err, ErrInvalidType) {
				http.Redirect(w, r, "/app/movements?status="+url.QueryEscape("Tipo inválido: elegí Ingreso o Gasto."), http.StatusSeeOther)
				return
			}
			slog.Error("record movement failed", slog.Any("err", err))
			http.Redirect(w, r, "/app/movements?status="+url.QueryEscape("No se pudo guardar el movimiento."), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/app/movements?status="+url.QueryEscape("Movimiento guardado."), http.StatusSeeOther)
	}
}

// MovementsCSVHandler downloads the ledger.
func MovementsCSVHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename=movimientos.csv")
		if err := WriteMovementsCSV(r.Context(), db, w); err != nil {
			slog.Error("export movements failed", slog.Any("err", err))
			http.Error(w, "failed to export csv", http.StatusInternalServerError)
			return
		}
	}
}

func parseAmount(raw string) decimal.Decimal {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}
