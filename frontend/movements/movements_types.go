package movements

import (
	"time"

	"github.com/shopspring/decimal"

	"printshop/models"
)

// DefaultMedium is stored when no payment medium is given.
const DefaultMedium = "efectivo"

// MovementInput is a ledger entry as entered. A zero Date means today.
type MovementInput struct {
	Date        time.Time
	Type        string
	Category    string
	Amount      decimal.Decimal
	Description string
	Medium      string
}

// Balance sums the ledger by type.
type Balance struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// Net is income minus expense.
func (b Balance) Net() decimal.Decimal {
	return b.Income.Sub(b.Expense)
}

type PageData struct {
	Movements []models.Movement
	Balance   Balance
	Today     string
	Status    string
}
