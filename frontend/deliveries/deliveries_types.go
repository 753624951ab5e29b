package deliveries

import (
	"time"

	"github.com/shopspring/decimal"

	"printshop/models"
)

// CustomerPolicy decides what happens when a delivery names an unknown customer.
type CustomerPolicy int

const (
	// CreateMissingCustomer creates the customer with only its name.
	CreateMissingCustomer CustomerPolicy = iota
	// RequireExistingCustomer rejects the delivery until the customer is saved.
	RequireExistingCustomer
)

// ItemInput is one order line as entered.
type ItemInput struct {
	Piece     string
	Quantity  int64
	UnitPrice decimal.Decimal
}

// DeliveryInput is a delivery as entered. A zero Date means today.
type DeliveryInput struct {
	CustomerName string
	Date         time.Time
	OrderNumber  string
	Notes        string
	Items        []ItemInput
	Discount     decimal.Decimal
}

// RecentDelivery is a delivery joined with its customer for listing.
type RecentDelivery struct {
	models.Delivery
	CustomerName string
	Summary      string
}

// PageData feeds the deliveries page.
type PageData struct {
	Customers    []string
	CustomerName string
	Today        string
	Recent       []RecentDelivery
	Status       string
	RequireSaved bool
}
