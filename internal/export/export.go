// Package export serializes the inventory back to CSV in the external
// representation: currency-formatted prices and MM/DD/YYYY dates.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"store-inventory/internal/models"
	"store-inventory/internal/normalize"
	"store-inventory/internal/util"

	"go.uber.org/zap"
)

var header = []string{"product_name", "product_price", "product_quantity", "date_updated"}

// Store is the persistence surface the exporter needs.
type Store interface {
	ScanByID(ctx context.Context) ([]models.Product, error)
}

// Exporter writes backup CSV files from the store.
type Exporter struct {
	store  Store
	logger *zap.Logger
}

// NewExporter creates a new CSV exporter.
func NewExporter(store Store) *Exporter {
	return &Exporter{store: store, logger: util.GetLogger()}
}

// ExportCSV writes every row of the store, in id order, to the file at path.
// Superseded rows are exported along with current ones; the backup is a full
// history. In append mode repeated backups concatenate, and the header is
// written on every call, so a file that has been backed up twice contains
// two header lines. That is the documented shape of the backup file.
// Returns the number of data rows written.
func (e *Exporter) ExportCSV(ctx context.Context, path string, appendMode bool) (int, error) {
	products, err := e.store.ScanByID(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to scan store: %w", err)
	}

	flags := os.O_WRONLY | os.O_CREATE
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}
	for _, p := range products {
		record := []string{
			p.Name,
			normalize.FormatPrice(p.Price),
			strconv.Itoa(p.Quantity),
			normalize.FormatDateUS(p.UpdatedAt),
		}
		if err := w.Write(record); err != nil {
			return 0, fmt.Errorf("failed to write row for %q: %w", p.Name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return 0, fmt.Errorf("failed to flush %s: %w", path, err)
	}

	e.logger.Info("Inventory exported",
		zap.String("path", path),
		zap.Int("rows", len(products)),
		zap.Bool("append", appendMode))
	return len(products), nil
}
