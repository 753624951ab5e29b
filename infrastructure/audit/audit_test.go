package audit

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/uptrace/bun"

	sessioncontext "printshop/frontend/shared/context"
	"printshop/infrastructure/sqlite"
	"printshop/models"
)

func openAuditTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.OpenDB(filepath.Join(t.TempDir(), "audit-test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := sqlite.ApplyEmbeddedMigrations(context.Background(), db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return db
}

func loadAuditLogs(t *testing.T, db *sqlite.DB) []models.AuditLog {
	t.Helper()
	rows := make([]models.AuditLog, 0)
	err := db.WithReadTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().Model(&rows).OrderExpr("al.id ASC").Scan(ctx)
	})
	if err != nil {
		t.Fatalf("load audit logs: %v", err)
	}
	return rows
}

func TestWrite_RecordsActorAndSnapshots(t *testing.T) {
	db := openAuditTestDB(t)
	ctx := sessioncontext.NewContextWithUsername(context.Background(), "diego")

	err := db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return Write(ctx, tx, ActionDelete, "customer", int64(7), map[string]string{"name": "Ana"}, nil)
	})
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	rows := loadAuditLogs(t, db)
	if len(rows) != 1 {
		t.Fatalf("expected 1 audit row, got %d", len(rows))
	}
	got := rows[0]
	if got.Actor != "diego" || got.Action != ActionDelete || got.EntityType != "customer" || got.EntityID != "7" {
		t.Fatalf("unexpected audit row %+v", got)
	}
	if got.BeforeJSON != `{"name":"Ana"}` || got.AfterJSON != "" {
		t.Fatalf("unexpected snapshots before=%q after=%q", got.BeforeJSON, got.AfterJSON)
	}
}

func TestWrite_RolledBackWithCallerTx(t *testing.T) {
	db := openAuditTestDB(t)
	boom := errors.New("boom")

	err := db.WithWriteTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		if err := Write(ctx, tx, ActionDelete, "movement", 7, map[string]string{"tipo": "gasto"}, nil); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if rows := loadAuditLogs(t, db); len(rows) != 0 {
		t.Fatalf("expected audit row rolled back, got %d", len(rows))
	}
}

func TestWrite_SystemActorOutsideRequest(t *testing.T) {
	db := openAuditTestDB(t)

	err := db.WithWriteTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		return Write(ctx, tx, ActionDelete, "customer", 1, nil, nil)
	})
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	rows := loadAuditLogs(t, db)
	if len(rows) != 1 || rows[0].Actor != "system" {
		t.Fatalf("expected system actor, got %+v", rows)
	}
}
