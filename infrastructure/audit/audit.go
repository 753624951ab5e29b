// Package audit keeps a record of deleted rows so a removal can be traced
// back. Edits are not recorded.
package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/uptrace/bun"

	sessioncontext "printshop/frontend/shared/context"
	"printshop/models"
)

// ActionDelete is the only action written to the log.
const ActionDelete = "delete"

// Write records one change inside the caller transaction, so the entry is
// committed or rolled back together with the change itself. The actor is the
// username carried by ctx, or "system" outside a request.
func Write(ctx context.Context, tx bun.Tx, action, entityType string, entityID any, before, after any) error {
	beforeJSON, err := marshal(before)
	if err != nil {
		return err
	}
	afterJSON, err := marshal(after)
	if err != nil {
		return err
	}
	actor, ok := sessioncontext.GetUsernameFromContext(ctx)
	if !ok {
		actor = "system"
	}
	entry := &models.AuditLog{
		Actor:      actor,
		Action:     action,
		EntityType: entityType,
		EntityID:   fmt.Sprint(entityID),
		BeforeJSON: beforeJSON,
		AfterJSON:  afterJSON,
	}
	if _, err := tx.NewInsert().Model(entry).Exec(ctx); err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}
	return nil
}

func marshal(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
