package deliveries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"

	"printshop/frontend/customers"
	"printshop/infrastructure/audit"
	"printshop/infrastructure/sqlite"
	"printshop/models"
)

var (
	ErrNoValidItems     = errors.New("no valid items to save")
	ErrNegativeDiscount = errors.New("discount must not be negative")
	ErrCustomerRequired = errors.New("customer is required")
)

// DefaultRecentLimit is the size of the recent deliveries list.
const DefaultRecentLimit = 10

const summaryItems = 4

// BuildItems keeps the lines with a piece name, a positive quantity and a
// non-negative unit price, and computes their subtotals and sum.
func BuildItems(in []ItemInput) ([]models.DeliveryItem, decimal.Decimal) {
	items := make([]models.DeliveryItem, 0, len(in))
	total := decimal.Zero
	for _, it := range in {
		piece := strings.TrimSpace(it.Piece)
		if piece == "" || it.Quantity <= 0 || it.UnitPrice.IsNegative() {
			continue
		}
		subtotal := it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity))
		items = append(items, models.DeliveryItem{
			Piece:     piece,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  subtotal,
		})
		total = total.Add(subtotal)
	}
	return items, total
}

// NetTotal subtracts discount from raw, never going below zero.
func NetTotal(raw, discount decimal.Decimal) decimal.Decimal {
	return decimal.Max(raw.Sub(discount), decimal.Zero)
}

// CreateDelivery stores the customer (if new), the header and every valid line
// in one transaction. Nothing is stored when any step fails.
func CreateDelivery(ctx context.Context, db *sqlite.DB, in DeliveryInput, policy CustomerPolicy) (models.Delivery, error) {
	name := strings.TrimSpace(in.CustomerName)
	if name == "" {
		return models.Delivery{}, ErrCustomerRequired
	}
	if in.Discount.IsNegative() {
		return models.Delivery{}, ErrNegativeDiscount
	}
	items, raw := BuildItems(in.Items)
	if len(items) == 0 {
		return models.Delivery{}, ErrNoValidItems
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}
	delivery := models.Delivery{
		Date:        dateOnly(date),
		OrderNumber: strings.TrimSpace(in.OrderNumber),
		Notes:       strings.TrimSpace(in.Notes),
		Discount:    in.Discount,
		Total:       NetTotal(raw, in.Discount),
		CreatedAt:   time.Now(),
	}

	err := db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		customer, _, err := customers.ResolveTx(ctx, tx, name, policy == CreateMissingCustomer)
		if err != nil {
			return err
		}
		delivery.CustomerID = customer.ID
		delivery.Customer = &customer

		if _, err := tx.NewInsert().Model(&delivery).Exec(ctx); err != nil {
			return fmt.Errorf("insert delivery: %w", err)
		}
		for i := range items {
			items[i].DeliveryID = delivery.ID
		}
		if _, err := tx.NewInsert().Model(&items).Exec(ctx); err != nil {
			return fmt.Errorf("insert delivery items: %w", err)
		}
		delivery.Items = items
		return nil
	})
	if err != nil {
		return models.Delivery{}, err
	}
	return delivery, nil
}

// ListRecentDeliveries returns the newest deliveries first (by date, then by
// creation order) with their customer and items.
func ListRecentDeliveries(ctx context.Context, db *sqlite.DB, limit int) ([]RecentDelivery, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	rows := make([]models.Delivery, 0)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().
			Model(&rows).
			Relation("Customer").
			Relation("Items", func(q *bun.SelectQuery) *bun.SelectQuery {
				return q.OrderExpr("di.id ASC")
			}).
			OrderExpr("d.date DESC, d.id DESC").
			Limit(limit).
			Scan(ctx)
	})
	if err != nil {
		return nil, err
	}

	out := make([]RecentDelivery, 0, len(rows))
	for _, d := range rows {
		rd := RecentDelivery{Delivery: d, Summary: SummarizeItems(d.Items)}
		if d.Customer != nil {
			rd.CustomerName = d.Customer.Name
		}
		out = append(out, rd)
	}
	return out, nil
}

// GetDelivery loads one delivery with its customer and items.
func GetDelivery(ctx context.Context, db *sqlite.DB, id int64) (models.Delivery, bool, error) {
	var delivery models.Delivery
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().
			Model(&delivery).
			Relation("Customer").
			Relation("Items", func(q *bun.SelectQuery) *bun.SelectQuery {
				return q.OrderExpr("di.id ASC")
			}).
			Where("d.id = ?", id).
			Limit(1).
			Scan(ctx)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Delivery{}, false, nil
	}
	if err != nil {
		return models.Delivery{}, false, err
	}
	return delivery, true, nil
}

// DeleteDelivery removes the header and all its items together.
func DeleteDelivery(ctx context.Context, db *sqlite.DB, id int64) (bool, error) {
	var deleted bool
	err := db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var before models.Delivery
		err := tx.NewSelect().
			Model(&before).
			Relation("Items").
			Where("d.id = ?", id).
			Limit(1).
			Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("load delivery: %w", err)
		}

		if _, err := tx.NewDelete().
			Model((*models.DeliveryItem)(nil)).
			Where("delivery_id = ?", id).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete delivery items: %w", err)
		}
		if _, err := tx.NewDelete().
			Model((*models.Delivery)(nil)).
			Where("id = ?", id).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete delivery: %w", err)
		}
		deleted = true
		return audit.Write(ctx, tx, audit.ActionDelete, "delivery", id, before, nil)
	})
	return deleted, err
}

// SummarizeItems lists the first few lines as "piece xN".
func SummarizeItems(items []models.DeliveryItem) string {
	parts := make([]string, 0, summaryItems)
	for i, it := range items {
		if i == summaryItems {
			break
		}
		parts = append(parts, fmt.Sprintf("%s x%d", it.Piece, it.Quantity))
	}
	summary := strings.Join(parts, ", ")
	if extra := len(items) - summaryItems; extra > 0 {
		summary += fmt.Sprintf(" (+%d más)", extra)
	}
	return summary
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
