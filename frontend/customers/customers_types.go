package customers

import "printshop/models"

// CustomerInput is the contact form. Blank contact fields are stored as NULL.
type CustomerInput struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

// PageData feeds the customers page.
type PageData struct {
	Query    string
	Results  []models.Customer
	Selected *models.Customer
	Status   string
}
