package login

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"printshop/frontend/shared/html"
	"printshop/frontend/shared/nav"
)

func GetLoginScreen(errorMessage string) templ.Component {
	return html.Layout("Ingresar", nav.TopNavData{}, templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		pw := html.NewWriter(w)
		pw.Raw(`<section class="login"><h1>3D.IEGO</h1>`)
		if errorMessage != "" {
			pw.Raw(`<p class="error">`).Text(errorMessage).Raw(`</p>`)
		}
		pw.Raw(`<form method="post" action="/login">`)
		pw.Raw(`<label>Usuario<input name="username" autocomplete="username" required autofocus></label>`)
		pw.Raw(`<label>Contraseña<input type="password" name="password" autocomplete="current-password" required></label>`)
		pw.Raw(`<button type="submit">Ingresar</button></form></section>`)
		return pw.Err()
	}))
}
