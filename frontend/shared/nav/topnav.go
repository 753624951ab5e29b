package nav

import (
	"context"

	sessioncontext "printshop/frontend/shared/context"
)

// Link is one entry of the top navigation bar.
type Link struct {
	Label  string
	Href   string
	Active bool
}

// TopNavData is shared with page renderers.
type TopNavData struct {
	Username string
	Links    []Link
}

// BuildTopNavData marks the link for active as current.
func BuildTopNavData(ctx context.Context, active string) TopNavData {
	username, _ := sessioncontext.GetUsernameFromContext(ctx)
	links := []Link{
		{Label: "Costos y tiempos", Href: "/app/costs"},
		{Label: "Entregas", Href: "/app/deliveries"},
		{Label: "Clientes", Href: "/app/customers"},
		{Label: "Cuentas", Href: "/app/movements"},
	}
	for i := range links {
		links[i].Active = links[i].Href == active
	}
	return TopNavData{Username: username, Links: links}
}
