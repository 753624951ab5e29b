package login

import (
	"net/http"

	"printshop/infrastructure/session"
)

// GetLoginScreenHandler renders the login screen, or skips it while a session
// is still valid.
func GetLoginScreenHandler(store session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store.IsValid() {
			http.Redirect(w, r, HomePath, http.StatusSeeOther)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := GetLoginScreen(r.URL.Query().Get("error")).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render login screen", http.StatusInternalServerError)
			return
		}
	}
}
