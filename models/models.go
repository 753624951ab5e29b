package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Movement types as stored in the ledger.
const (
	MovementIncome  = "Ingreso"
	MovementExpense = "Gasto"
)

// Customer owns zero or more deliveries. NameKey is the lower-cased name and
// carries the uniqueness constraint.
type Customer struct {
	bun.BaseModel `bun:"table:customers,alias:c"`

	ID        int64     `bun:"id,pk,autoincrement"`
	Name      string    `bun:"name,notnull"`
	NameKey   string    `bun:"name_key,notnull,unique"`
	Phone     string    `bun:"phone,nullzero"`
	Email     string    `bun:"email,nullzero"`
	Address   string    `bun:"address,nullzero"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// Delivery is a confirmed order header. Total is always
// max(sum(item subtotals) - discount, 0).
type Delivery struct {
	bun.BaseModel `bun:"table:deliveries,alias:d"`

	ID          int64           `bun:"id,pk,autoincrement"`
	Date        time.Time       `bun:"date,notnull"`
	OrderNumber string          `bun:"order_number,nullzero"`
	Notes       string          `bun:"notes,nullzero"`
	Total       decimal.Decimal `bun:"total,notnull,type:real"`
	Discount    decimal.Decimal `bun:"discount,notnull,type:real"`
	CustomerID  int64           `bun:"customer_id,notnull"`
	Customer    *Customer       `bun:"rel:belongs-to,join:customer_id=id"`
	Items       []DeliveryItem  `bun:"rel:has-many,join:id=delivery_id"`
	CreatedAt   time.Time       `bun:"created_at,notnull,default:current_timestamp"`
}

// DeliveryItem is one order line; Subtotal = Quantity * UnitPrice.
type DeliveryItem struct {
	bun.BaseModel `bun:"table:delivery_items,alias:di"`

	ID         int64           `bun:"id,pk,autoincrement"`
	Piece      string          `bun:"piece,notnull"`
	Quantity   int64           `bun:"quantity,notnull"`
	UnitPrice  decimal.Decimal `bun:"unit_price,notnull,type:real"`
	Subtotal   decimal.Decimal `bun:"subtotal,notnull,type:real"`
	DeliveryID int64           `bun:"delivery_id,notnull"`
}

// Movement is a cash ledger entry, independent of customers and deliveries.
type Movement struct {
	bun.BaseModel `bun:"table:movements,alias:m"`

	ID          int64           `bun:"id,pk,autoincrement"`
	Date        time.Time       `bun:"date,notnull"`
	Type        string          `bun:"type,notnull"`
	Category    string          `bun:"category,notnull"`
	Amount      decimal.Decimal `bun:"amount,notnull,type:real"`
	Description string          `bun:"description,nullzero"`
	Medium      string          `bun:"medium,nullzero"`
	CreatedAt   time.Time       `bun:"created_at,notnull,default:current_timestamp"`
}

// CostConfigEntry is one key of the flat cost configuration record.
type CostConfigEntry struct {
	bun.BaseModel `bun:"table:cost_config,alias:cc"`

	Key       string    `bun:"key,pk"`
	Value     float64   `bun:"value,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// AuditLog captures immutable change history for deletions and config saves.
type AuditLog struct {
	bun.BaseModel `bun:"table:audit_logs,alias:al"`

	ID         int64     `bun:"id,pk,autoincrement"`
	Actor      string    `bun:"actor,notnull"`
	Action     string    `bun:"action,notnull"`
	EntityType string    `bun:"entity_type,notnull"`
	EntityID   string    `bun:"entity_id,notnull"`
	BeforeJSON string    `bun:"before_json,nullzero"`
	AfterJSON  string    `bun:"after_json,nullzero"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
