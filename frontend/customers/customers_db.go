package customers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"printshop/infrastructure/audit"
	"printshop/infrastructure/sqlite"
	"printshop/models"
)

var (
	ErrNameRequired     = errors.New("customer name is required")
	ErrCustomerNotFound = errors.New("customer not found")
)

// DefaultSearchLimit caps search results when no limit is given.
const DefaultSearchLimit = 20

// NameKey is the case-insensitive identity of a customer name.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// FindByNameTx looks a customer up by exact name ignoring case.
func FindByNameTx(ctx context.Context, tx bun.Tx, name string) (models.Customer, bool, error) {
	var customer models.Customer
	err := tx.NewSelect().
		Model(&customer).
		Where("c.name_key = ?", NameKey(name)).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Customer{}, false, nil
	}
	if err != nil {
		return models.Customer{}, false, err
	}
	return customer, true, nil
}

// ResolveTx returns the customer named name. When it does not exist it is
// created with only the name set, unless create is false, in which case
// ErrCustomerNotFound is returned.
func ResolveTx(ctx context.Context, tx bun.Tx, name string, create bool) (models.Customer, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Customer{}, false, ErrNameRequired
	}
	customer, found, err := FindByNameTx(ctx, tx, name)
	if err != nil {
		return models.Customer{}, false, fmt.Errorf("find customer: %w", err)
	}
	if found {
		return customer, false, nil
	}
	if !create {
		return models.Customer{}, false, fmt.Errorf("%w: %q", ErrCustomerNotFound, name)
	}

	customer = models.Customer{Name: name, NameKey: NameKey(name), CreatedAt: time.Now()}
	if _, err := tx.NewInsert().Model(&customer).Exec(ctx); err != nil {
		return models.Customer{}, false, fmt.Errorf("insert customer: %w", err)
	}
	return customer, true, nil
}

// UpsertCustomer creates the customer or overwrites all contact fields of the
// existing one with the same name.
func UpsertCustomer(ctx context.Context, db *sqlite.DB, in CustomerInput) (models.Customer, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Customer{}, ErrNameRequired
	}

	var customer models.Customer
	err := db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var err error
		customer, _, err = ResolveTx(ctx, tx, name, true)
		if err != nil {
			return err
		}
		customer.Phone = strings.TrimSpace(in.Phone)
		customer.Email = strings.TrimSpace(in.Email)
		customer.Address = strings.TrimSpace(in.Address)
		_, err = tx.NewUpdate().
			Model(&customer).
			Column("phone", "email", "address").
			WherePK().
			Exec(ctx)
		return err
	})
	if err != nil {
		return models.Customer{}, err
	}
	return customer, nil
}

// SearchCustomers matches query anywhere in the name ignoring case, ordered
// by name. An empty query lists everyone up to limit.
func SearchCustomers(ctx context.Context, db *sqlite.DB, query string, limit int) ([]models.Customer, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	pattern := "%" + escapeLike(NameKey(query)) + "%"

	rows := make([]models.Customer, 0)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().
			Model(&rows).
			Where(`c.name_key LIKE ? ESCAPE '\'`, pattern).
			OrderExpr("c.name_key ASC, c.id ASC").
			Limit(limit).
			Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindCustomerByName returns the customer with that name ignoring case.
func FindCustomerByName(ctx context.Context, db *sqlite.DB, name string) (models.Customer, bool, error) {
	var (
		customer models.Customer
		found    bool
	)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var err error
		customer, found, err = FindByNameTx(ctx, tx, name)
		return err
	})
	return customer, found, err
}

// DeleteCustomer removes the customer together with its deliveries and their
// items in one transaction. It reports whether the customer existed.
func DeleteCustomer(ctx context.Context, db *sqlite.DB, id int64) (bool, error) {
	var deleted bool
	err := db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var before models.Customer
		if err := tx.NewSelect().Model(&before).Where("c.id = ?", id).Limit(1).Scan(ctx); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			return fmt.Errorf("load customer: %w", err)
		}

		deliveryIDs := tx.NewSelect().
			Model((*models.Delivery)(nil)).
			Column("d.id").
			Where("d.customer_id = ?", id)
		if _, err := tx.NewDelete().
			Model((*models.DeliveryItem)(nil)).
			Where("delivery_id IN (?)", deliveryIDs).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete delivery items: %w", err)
		}
		if _, err := tx.NewDelete().
			Model((*models.Delivery)(nil)).
			Where("customer_id = ?", id).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete deliveries: %w", err)
		}
		if _, err := tx.NewDelete().
			Model((*models.Customer)(nil)).
			Where("id = ?", id).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete customer: %w", err)
		}
		deleted = true
		return audit.Write(ctx, tx, audit.ActionDelete, "customer", id, before, nil)
	})
	return deleted, err
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
