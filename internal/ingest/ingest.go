// Package ingest bulk-loads product rows from the inventory CSV into the
// store. Loads are unconditional: no dedup against existing rows or between
// rows of the same file.
package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"store-inventory/internal/models"
	"store-inventory/internal/normalize"
	"store-inventory/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Expected CSV columns, matched by header name so column order is free.
const (
	colName     = "product_name"
	colQuantity = "product_quantity"
	colPrice    = "product_price"
	colDate     = "date_updated"
)

// IngestError means the CSV source could not be opened or read. It is fatal
// at startup.
type IngestError struct {
	Path string
	Err  error
}

func (e *IngestError) Error() string {
	return fmt.Sprintf("cannot ingest %s: %v", e.Path, e.Err)
}

func (e *IngestError) Unwrap() error {
	return e.Err
}

// Store is the persistence surface the loader needs.
type Store interface {
	InsertProducts(ctx context.Context, products []models.Product) (int, error)
}

// Loader reads CSV files into the store.
type Loader struct {
	store  Store
	logger *zap.Logger
}

// NewLoader creates a new CSV loader.
func NewLoader(store Store) *Loader {
	return &Loader{store: store, logger: util.GetLogger()}
}

// LoadCSV reads the file at path and inserts one row per CSV record,
// committing the whole batch at once. A malformed row aborts the load with
// nothing inserted; there is no skip-and-log fallback. Returns the number of
// rows inserted.
func (l *Loader) LoadCSV(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, &IngestError{Path: path, Err: err}
	}
	defer f.Close()

	batchID := uuid.New().String()
	l.logger.Info("Starting CSV load",
		zap.String("batch_id", batchID),
		zap.String("path", path))

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return 0, &IngestError{Path: path, Err: fmt.Errorf("failed to read header: %w", err)}
	}
	cols, err := columnIndex(header)
	if err != nil {
		return 0, &IngestError{Path: path, Err: err}
	}

	var products []models.Product
	for line := 2; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, &IngestError{Path: path, Err: fmt.Errorf("line %d: %w", line, err)}
		}

		p, err := parseRow(row, cols)
		if err != nil {
			return 0, fmt.Errorf("%s line %d: %w", path, line, err)
		}
		products = append(products, p)
	}

	n, err := l.store.InsertProducts(ctx, products)
	if err != nil {
		return 0, fmt.Errorf("failed to load %s: %w", path, err)
	}

	l.logger.Info("CSV load complete",
		zap.String("batch_id", batchID),
		zap.Int("rows", n))
	return n, nil
}

type columns struct {
	name, quantity, price, date int
}

func columnIndex(header []string) (columns, error) {
	idx := map[string]int{}
	for i, h := range header {
		idx[h] = i
	}
	cols := columns{name: -1, quantity: -1, price: -1, date: -1}
	for _, want := range []struct {
		field string
		dst   *int
	}{
		{colName, &cols.name},
		{colQuantity, &cols.quantity},
		{colPrice, &cols.price},
		{colDate, &cols.date},
	} {
		i, ok := idx[want.field]
		if !ok {
			return cols, fmt.Errorf("missing column %q", want.field)
		}
		*want.dst = i
	}
	return cols, nil
}

func parseRow(row []string, cols columns) (models.Product, error) {
	var p models.Product

	p.Name = row[cols.name]

	quantity, err := strconv.Atoi(row[cols.quantity])
	if err != nil {
		return p, &normalize.FormatError{Input: row[cols.quantity], Reason: "quantity is not an integer"}
	}
	p.Quantity = quantity

	p.Price, err = normalize.ParsePrice(row[cols.price])
	if err != nil {
		return p, err
	}

	p.UpdatedAt, err = normalize.ParseDate(row[cols.date])
	if err != nil {
		return p, err
	}
	return p, nil
}
