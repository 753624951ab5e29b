package movements

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	"printshop/infrastructure/sqlite"
)

// WriteMovementsCSV writes the ledger in list order.
func WriteMovementsCSV(ctx context.Context, db *sqlite.DB, w io.Writer) error {
	rows, err := ListMovements(ctx, db)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{"id", "fecha", "tipo", "categoria", "monto", "descripcion", "medio"}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, m := range rows {
		record := []string{
			strconv.FormatInt(m.ID, 10),
			m.Date.Format("2006-01-02"),
			m.Type,
			m.Category,
			m.Amount.StringFixed(2),
			m.Description,
			m.Medium,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
