package login

import (
	"log/slog"
	"net/http"

	"printshop/infrastructure/session"
)

// LogoutHandler removes the session file.
func LogoutHandler(store session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Delete(); err != nil {
			slog.Error("delete session failed", slog.Any("err", err))
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}
