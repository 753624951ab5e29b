package login

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"printshop/infrastructure/credentials"
	"printshop/infrastructure/session"
)

// HomePath is where a successful login lands.
const HomePath = "/app/costs"

// CreateLoginHandler checks the credentials and opens the session file.
func CreateLoginHandler(account *credentials.Account, store session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/login?error="+url.QueryEscape("Formulario inválido."), http.StatusSeeOther)
			return
		}

		username := r.FormValue("username")
		password := r.FormValue("password")
		if username == "" || password == "" {
			http.Redirect(w, r, "/login?error="+url.QueryEscape("Usuario y contraseña son obligatorios."), http.StatusSeeOther)
			return
		}

		if err := account.Verify(username, password); err != nil {
			if errors.Is(err, credentials.ErrInvalid) {
				slog.Warn("login rejected", slog.String("remote", r.RemoteAddr))
				http.Redirect(w, r, "/login?error="+url.QueryEscape("Usuario o contraseña incorrectos."), http.StatusSeeOther)
				return
			}
			http.Redirect(w, r, "/login?error="+url.QueryEscape("No se pudo iniciar sesión."), http.StatusSeeOther)
			return
		}

		if err := store.Save(account.Username()); err != nil {
			slog.Error("save session failed", slog.Any("err", err))
			http.Redirect(w, r, "/login?error="+url.QueryEscape("No se pudo crear la sesión."), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, HomePath, http.StatusSeeOther)
	}
}
