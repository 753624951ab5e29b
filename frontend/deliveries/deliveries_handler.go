package deliveries

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"printshop/frontend/customers"
	"printshop/frontend/shared/nav"
	"printshop/infrastructure/sqlite"
)

const dateLayout = "2006-01-02"

// DeliveriesPageQueryHandler renders the order form and the recent list.
func DeliveriesPageQueryHandler(db *sqlite.DB, policy CustomerPolicy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recent, err := ListRecentDeliveries(r.Context(), db, DefaultRecentLimit)
		if err != nil {
			slog.Error("list recent deliveries failed", slog.Any("err", err))
			http.Error(w, "failed to load deliveries", http.StatusInternalServerError)
			return
		}
		known, err := customers.SearchCustomers(r.Context(), db, "", 200)
		if err != nil {
			slog.Error("list customers failed", slog.Any("err", err))
			http.Error(w, "failed to load customers", http.StatusInternalServerError)
			return
		}
		names := make([]string, 0, len(known))
		for _, c := range known {
			names = append(names, c.Name)
		}

		data := PageData{
			Customers:    names,
			CustomerName: strings.TrimSpace(r.URL.Query().Get("customer")),
			Today:        time.Now().Format(dateLayout),
			Recent:       recent,
			Status:       r.URL.Query().Get("status"),
			RequireSaved: policy == RequireExistingCustomer,
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := DeliveriesPage(nav.BuildTopNavData(r.Context(), "/app/deliveries"), data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render deliveries page", http.StatusInternalServerError)
			return
		}
	}
}

// CreateDeliveryCommandHandler saves the submitted order form.
func CreateDeliveryCommandHandler(db *sqlite.DB, policy CustomerPolicy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			redirectDeliveries(w, r, "", "Formulario inválido.")
			return
		}
		in := ParseDeliveryForm(r.PostForm, time.Now())

		delivery, err := CreateDelivery(r.Context(), db, in, policy)
		if err != nil {
			msg := "No se pudo guardar la entrega."
			switch {
			case errors.Is(err, ErrCustomerRequired):
				msg = "Indicá el cliente."
			case errors.Is(err, ErrNoValidItems):
				msg = "Agregá al menos una pieza con cantidad."
			case errors.Is(err, ErrNegativeDiscount):
				msg = "El descuento no puede ser negativo."
			case errors.Is(err, customers.ErrCustomerNotFound):
				msg = "El cliente no existe. Guardalo primero en Clientes."
			default:
				slog.Error("create delivery failed", slog.String("customer", in.CustomerName), slog.Any("err", err))
			}
			redirectDeliveries(w, r, in.CustomerName, msg)
			return
		}
		slog.Info("delivery created",
			slog.Int64("delivery_id", delivery.ID),
			slog.Int64("customer_id", delivery.CustomerID),
			slog.String("total", delivery.Total.StringFixed(2)),
		)
		redirectDeliveries(w, r, "", fmt.Sprintf("Entrega guardada. Total: $%s", delivery.Total.StringFixed(2)))
	}
}

// DeliveryNotePDFHandler serves the printable note of one delivery.
func DeliveryNotePDFHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id <= 0 {
			http.Error(w, "invalid delivery id", http.StatusBadRequest)
			return
		}
		delivery, found, err := GetDelivery(r.Context(), db, id)
		if err != nil {
			http.Error(w, "failed to load delivery", http.StatusInternalServerError)
			return
		}
		if !found {
			http.Error(w, "delivery not found", http.StatusNotFound)
			return
		}
		pdfBytes, err := renderDeliveryNotePDF(delivery)
		if err != nil {
			slog.Error("render delivery note failed", slog.Int64("delivery_id", id), slog.Any("err", err))
			http.Error(w, "failed to build delivery note", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=remito-%s.pdf", NoteCode(id)))
		_, _ = w.Write(pdfBytes)
	}
}

// DeleteDeliveryCommandHandler removes one delivery with its items.
func DeleteDeliveryCommandHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id <= 0 {
			http.Error(w, "invalid delivery id", http.StatusBadRequest)
			return
		}
		deleted, err := DeleteDelivery(r.Context(), db, id)
		if err != nil {
			slog.Error("delete delivery failed", slog.Int64("delivery_id", id), slog.Any("err", err))
			redirectDeliveries(w, r, "", "No se pudo eliminar la entrega.")
			return
		}
		if !deleted {
			http.Error(w, "delivery not found", http.StatusNotFound)
			return
		}
		redirectDeliveries(w, r, "", "Entrega eliminada.")
	}
}

// ParseDeliveryForm reads the order form. Unreadable numbers count as zero
// and an unreadable date means today.
func ParseDeliveryForm(form url.Values, now time.Time) DeliveryInput {
	in := DeliveryInput{
		CustomerName: strings.TrimSpace(form.Get("customer")),
		OrderNumber:  form.Get("order_number"),
		Notes:        form.Get("notes"),
		Discount:     parseDecimal(form.Get("discount")),
		Date:         now,
	}
	if d, err := time.ParseInLocation(dateLayout, strings.TrimSpace(form.Get("date")), time.Local); err == nil {
		in.Date = d
	}

	pieces := form["piece"]
	quantities := form["quantity"]
	prices := form["unit_price"]
	for i, piece := range pieces {
		it := ItemInput{Piece: piece}
		if i < len(quantities) {
			it.Quantity = parseQuantity(quantities[i])
		}
		if i < len(prices) {
			it.UnitPrice = parseDecimal(prices[i])
		}
		in.Items = append(in.Items, it)
	}
	return in
}

func parseDecimal(raw string) decimal.Decimal {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseQuantity(raw string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func redirectDeliveries(w http.ResponseWriter, r *http.Request, customer, status string) {
	target := "/app/deliveries?status=" + url.QueryEscape(status)
	if customer != "" {
		target += "&customer=" + url.QueryEscape(customer)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
