package customers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"printshop/frontend/shared/nav"
	"printshop/infrastructure/sqlite"
)

// CustomersPageQueryHandler lists customers matching ?q= and shows ?name=.
func CustomersPageQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))
		results, err := SearchCustomers(r.Context(), db, query, 50)
		if err != nil {
			slog.Error("search customers failed", slog.String("q", query), slog.Any("err", err))
			http.Error(w, "failed to load customers", http.StatusInternalServerError)
			return
		}

		data := PageData{Query: query, Results: results, Status: r.URL.Query().Get("status")}
		if name := strings.TrimSpace(r.URL.Query().Get("name")); name != "" {
			c, found, err := FindCustomerByName(r.Context(), db, name)
			if err != nil {
				slog.Error("find customer failed", slog.String("name", name), slog.Any("err", err))
			} else if found {
				data.Selected = &c
			}
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := CustomersPage(nav.BuildTopNavData(r.Context(), "/app/customers"), data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render customers page", http.StatusInternalServerError)
			return
		}
	}
}

// UpsertCustomerCommandHandler saves the contact form.
func UpsertCustomerCommandHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/app/customers?status="+url.QueryEscape("invalid form data"), http.StatusSeeOther)
			return
		}
		c, err := UpsertCustomer(r.Context(), db, CustomerInput{
			Name:    r.FormValue("name"),
			Phone:   r.FormValue("phone"),
			Email:   r.FormValue("email"),
			Address: r.FormValue("address"),
		})
		if err != nil {
			if errors.Is(err, ErrNameRequired) {
				http.Redirect(w, r, "/app/customers?status="+url.QueryEscape("El nombre es obligatorio."), http.StatusSeeOther)
				return
			}
			slog.Error("upsert customer failed", slog.Any("err", err))
			http.Redirect(w, r, "/app/customers?status="+url.QueryEscape("No se pudo guardar el cliente."), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/app/customers?name="+url.QueryEscape(c.Name)+"&status="+url.QueryEscape("Cliente guardado."), http.StatusSeeOther)
	}
}

// DeleteCustomerCommandHandler removes a customer with all its deliveries.
func DeleteCustomerCommandHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id <= 0 {
			http.Error(w, "invalid customer id", http.StatusBadRequest)
			return
		}
		deleted, err := DeleteCustomer(r.Context(), db, id)
		if err != nil {
			slog.Error("delete customer failed", slog.Int64("customer_id", id), slog.Any("err", err))
			http.Redirect(w, r, "/app/customers?status="+url.QueryEscape("No se pudo eliminar el cliente."), http.StatusSeeOther)
			return
		}
		if !deleted {
			http.Error(w, "customer not found", http.StatusNotFound)
			return
		}
		http.Redirect(w, r, "/app/customers?status="+url.QueryEscape("Cliente eliminado."), http.StatusSeeOther)
	}
}
