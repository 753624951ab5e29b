package movements

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"

	"printshop/infrastructure/sqlite"
	"printshop/models"
)

var ErrInvalidType = errors.New("movement type must be income or expense")

// NormalizeType maps the accepted spellings to the stored type.
func NormalizeType(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "ingreso", "income":
		return models.MovementIncome, nil
	case "gasto", "expense":
		return models.MovementExpense, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidType, raw)
}

// RecordMovement appends one entry. Negative amounts are stored by magnitude.
func RecordMovement(ctx context.Context, db *sqlite.DB, in MovementInput) (models.Movement, error) {
	kind, err := NormalizeType(in.Type)
	if err != nil {
		return models.Movement{}, err
	}
	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}
	y, m, d := date.Date()
	medium := strings.TrimSpace(in.Medium)
	if medium == "" {
		medium = DefaultMedium
	}

	mov := models.Movement{
		Date:        time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		Type:        kind,
		Category:    strings.TrimSpace(in.Category),
		Amount:      in.Amount.Abs(),
		Description: strings.TrimSpace(in.Description),
		Medium:      medium,
		CreatedAt:   time.Now(),
	}
	err = db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(&mov).Exec(ctx); err != nil {
			return fmt.Errorf("insert movement: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.Movement{}, err
	}
	return mov, nil
}

// ListMovements returns the whole ledger, newest first.
func ListMovements(ctx context.Context, db *sqlite.DB) ([]models.Movement, error) {
	rows := make([]models.Movement, 0)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().
			Model(&rows).
			OrderExpr("m.date DESC, m.id DESC").
			Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// MovementBalance totals income and expense over the whole ledger.
func MovementBalance(ctx context.Context, db *sqlite.DB) (Balance, error) {
	var row struct {
		Income  decimal.Decimal `bun:"income"`
		Expense decimal.Decimal `bun:"expense"`
	}
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`
SELECT COALESCE(SUM(CASE WHEN type = ? THEN amount END), 0) AS income,
       COALESCE(SUM(CASE WHEN type = ? THEN amount END), 0) AS expense
FROM movements`, models.MovementIncome, models.MovementExpense).Scan(ctx, &row)
	})
	if err != nil {
		return Balance{}, err
	}
	return Balance{Income: row.Income, Expense: row.Expense}, nil
}
