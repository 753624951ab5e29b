package movements

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"printshop/infrastructure/sqlite"
	"printshop/models"
)

func openMovementsTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.OpenDB(filepath.Join(t.TempDir(), "movements-test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller unavailable")
	}
	migrationsDir := filepath.Join(filepath.Dir(file), "..", "..", "infrastructure", "sqlite", "migrations")
	if err := sqlite.ApplyMigrations(context.Background(), db, migrationsDir); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return db
}

func day(d int) time.Time {
	return time.Date(2026, 6, d, 0, 0, 0, 0, time.UTC)
}

func TestRecordMovement_NormalizesFields(t *testing.T) {
	db := openMovementsTestDB(t)

	mov, err := RecordMovement(context.Background(), db, MovementInput{
		Date:     day(3),
		Type:     " expense ",
		Category: "Filamento",
		Amount:   decimal.NewFromInt(-1500),
	})
	if err != nil {
		t.Fatalf("RecordMovement returned error: %v", err)
	}
	if mov.Type != models.MovementExpense {
		t.Fatalf("expected type %q, got %q", models.MovementExpense, mov.Type)
	}
	if !mov.Amount.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("expected amount 1500, got %s", mov.Amount)
	}
	if mov.Medium != DefaultMedium {
		t.Fatalf("expected default medium, got %q", mov.Medium)
	}
	if mov.ID <= 0 {
		t.Fatalf("expected persisted id, got %d", mov.ID)
	}
}

func TestRecordMovement_RejectsUnknownType(t *testing.T) {
	db := openMovementsTestDB(t)

	_, err := RecordMovement(context.Background(), db, MovementInput{Type: "transfer", Amount: decimal.NewFromInt(1)})
	if !errors.Is(err, ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
	rows, err := ListMovements(context.Background(), db)
	if err != nil {
		t.Fatalf("ListMovements returned error: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected empty ledger, got %d rows", len(rows))
	}
}

func TestListMovements_OrdersByDateThenID(t *testing.T) {
	db := openMovementsTestDB(t)
	ctx := context.Background()

	inputs := []MovementInput{
		{Date: day(1), Type: "Ingreso", Category: "a", Amount: decimal.NewFromInt(1)},
		{Date: day(5), Type: "Ingreso", Category: "b", Amount: decimal.NewFromInt(2)},
		{Date: day(5), Type: "Gasto", Category: "c", Amount: decimal.NewFromInt(3)},
		{Date: day(2), Type: "Gasto", Category: "d", Amount: decimal.NewFromInt(4)},
	}
	for _, in := range inputs {
		if _, err := RecordMovement(ctx, db, in); err != nil {
			t.Fatalf("RecordMovement returned error: %v", err)
		}
	}

	rows, err := ListMovements(ctx, db)
	if err != nil {
		t.Fatalf("ListMovements returned error: %v", err)
	}
	got := make([]string, 0, len(rows))
	for _, m := range rows {
		got = append(got, m.Category)
	}
	want := []string{"c", "b", "d", "a"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestMovementBalance(t *testing.T) {
	db := openMovementsTestDB(t)
	ctx := context.Background()

	empty, err := MovementBalance(ctx, db)
	if err != nil {
		t.Fatalf("MovementBalance returned error: %v", err)
	}
	if !empty.Income.IsZero() || !empty.Expense.IsZero() {
		t.Fatalf("expected zero balance on empty ledger, got %+v", empty)
	}

	for _, in := range []MovementInput{
		{Date: day(1), Type: "Ingreso", Category: "ventas", Amount: decimal.RequireFromString("2051.75")},
		{Date: day(2), Type: "Ingreso", Category: "ventas", Amount: decimal.NewFromInt(1000)},
		{Date: day(3), Type: "Gasto", Category: "luz", Amount: decimal.RequireFromString("500.25")},
	} {
		if _, err := RecordMovement(ctx, db, in); err != nil {
			t.Fatalf("RecordMovement returned error: %v", err)
		}
	}

	b, err := MovementBalance(ctx, db)
	if err != nil {
		t.Fatalf("MovementBalance returned error: %v", err)
	}
	if b.Income.StringFixed(2) != "3051.75" {
		t.Fatalf("expected income 3051.75, got %s", b.Income.StringFixed(2))
	}
	if b.Expense.StringFixed(2) != "500.25" {
		t.Fatalf("expected expense 500.25, got %s", b.Expense.StringFixed(2))
	}
	if b.Net().StringFixed(2) != "2551.50" {
		t.Fatalf("expected balance 2551.50, got %s", b.Net().StringFixed(2))
	}
}

func TestWriteMovementsCSV(t *testing.T) {
	db := openMovementsTestDB(t)
	ctx := context.Background()

	if _, err := RecordMovement(ctx, db, MovementInput{
		Date: day(7), Type: "Income", Category: "ventas", Amount: decimal.RequireFromString("12.5"),
		Description: "pieza, con coma", Medium: "transferencia",
	}); err != nil {
		t.Fatalf("RecordMovement returned error: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteMovementsCSV(ctx, db, &buf); err != nil {
		t.Fatalf("WriteMovementsCSV returned error: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header plus one row, got %d records", len(records))
	}
	row := records[1]
	if row[1] != "2026-06-07" || row[2] != models.MovementIncome || row[4] != "12.50" || row[5] != "pieza, con coma" || row[6] != "transferencia" {
		t.Fatalf("unexpected csv row %v", row)
	}
}

func TestNormalizeType(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Ingreso": models.MovementIncome,
		"INCOME":  models.MovementIncome,
		"gasto":   models.MovementExpense,
		"Expense": models.MovementExpense,
	}
	for raw, want := range cases {
		got, err := NormalizeType(raw)
		if err != nil || got != want {
			t.Fatalf("NormalizeType(%q) = %q, %v; want %q", raw, got, err, want)
		}
	}
	if _, err := NormalizeType(""); !errors.Is(err, ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType for blank type, got %v", err)
	}
}
