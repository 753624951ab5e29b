package http

import (
	"printshop/frontend/costs"
	"printshop/frontend/customers"
	"printshop/frontend/deliveries"
	"printshop/frontend/login"
	"printshop/frontend/movements"

	"github.com/go-chi/chi/v5"
)

// RegisterLoginRoutes registers login/logout routes.
func (s *Server) RegisterLoginRoutes() {
	s.router.Get("/login", login.GetLoginScreenHandler(s.Sessions))
	s.router.Post("/login", login.CreateLoginHandler(s.Account, s.Sessions))
	s.router.Post("/logout", login.LogoutHandler(s.Sessions))
}

// RegisterFrontendRoutes registers authenticated routes.
func (s *Server) RegisterFrontendRoutes(r chi.Router) chi.Router {
	s.RegisterCostRoutes(r)
	s.RegisterCustomerRoutes(r)
	s.RegisterDeliveryRoutes(r)
	s.RegisterMovementRoutes(r)
	return r
}

func (s *Server) RegisterCostRoutes(r chi.Router) {
	r.Get("/costs", costs.CostsPageQueryHandler(s.DB, s.CostConfig))
	r.Post("/costs/config", costs.SaveCostConfigCommandHandler(s.DB, s.CostConfig))
}

func (s *Server) RegisterCustomerRoutes(r chi.Router) {
	r.Get("/customers", customers.CustomersPageQueryHandler(s.DB))
	r.Post("/customers", customers.UpsertCustomerCommandHandler(s.DB))
	r.Post("/customers/{id}/delete", customers.DeleteCustomerCommandHandler(s.DB))
}

func (s *Server) RegisterDeliveryRoutes(r chi.Router) {
	r.Get("/deliveries", deliveries.DeliveriesPageQueryHandler(s.DB, s.CustomerPolicy))
	r.Post("/deliveries", deliveries.CreateDeliveryCommandHandler(s.DB, s.CustomerPolicy))
	r.Get("/deliveries/{id}/note.pdf", deliveries.DeliveryNotePDFHandler(s.DB))
	r.Post("/deliveries/{id}/delete", deliveries.DeleteDeliveryCommandHandler(s.DB))
}

func (s *Server) RegisterMovementRoutes(r chi.Router) {
	r.Get("/movements", movements.MovementsPageQueryHandler(s.DB))
	r.Post("/movements", movements.RecordMovementCommandHandler(s.DB))
	r.Get("/movements.csv", movements.MovementsCSVHandler(s.DB))
}
