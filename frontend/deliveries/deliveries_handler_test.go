package deliveries

import (
	"net/url"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseDeliveryForm_ReadsRowsPermissively(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 5, 2, 15, 0, 0, 0, time.Local)
	form := url.Values{
		"customer":     {"  Ana  "},
		"date":         {"2026-04-30"},
		"order_number": {"P-1"},
		"discount":     {"10,5"},
		"piece":        {"Engranaje", "Soporte", ""},
		"quantity":     {"2", "abc", "1"},
		"unit_price":   {"12,50", "100", "x"},
	}

	in := ParseDeliveryForm(form, now)

	if in.CustomerName != "Ana" {
		t.Fatalf("expected trimmed customer, got %q", in.CustomerName)
	}
	if y, m, d := in.Date.Date(); y != 2026 || m != time.April || d != 30 {
		t.Fatalf("unexpected date %v", in.Date)
	}
	if !in.Discount.Equal(decimal.RequireFromString("10.5")) {
		t.Fatalf("expected discount 10.5, got %s", in.Discount)
	}
	if len(in.Items) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(in.Items))
	}
	if in.Items[0].Quantity != 2 || !in.Items[0].UnitPrice.Equal(decimal.RequireFromString("12.5")) {
		t.Fatalf("unexpected first row %+v", in.Items[0])
	}
	if in.Items[1].Quantity != 0 {
		t.Fatalf("expected unreadable quantity to be 0, got %d", in.Items[1].Quantity)
	}
	if !in.Items[2].UnitPrice.IsZero() {
		t.Fatalf("expected unreadable price to be 0, got %s", in.Items[2].UnitPrice)
	}

	items, total := BuildItems(in.Items)
	if len(items) != 1 || !total.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("expected one valid line worth 25, got %d lines worth %s", len(items), total)
	}
}

func TestParseDeliveryForm_InvalidDateMeansToday(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 5, 2, 15, 0, 0, 0, time.Local)
	in := ParseDeliveryForm(url.Values{"date": {"02/05/2026"}}, now)
	if !in.Date.Equal(now) {
		t.Fatalf("expected now, got %v", in.Date)
	}
}
