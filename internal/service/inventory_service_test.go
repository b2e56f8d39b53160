package service

import (
	"context"
	"testing"
	"time"

	"store-inventory/internal/models"
	"store-inventory/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory Store with sequential ids and insertion order,
// the same observable behavior as the SQL-backed store.
type fakeStore struct {
	nextID   int64
	products []models.Product
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1}
}

func (f *fakeStore) Insert(_ context.Context, p *models.Product) error {
	p.ID = f.nextID
	f.nextID++
	f.products = append(f.products, *p)
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, id int64) (*models.Product, error) {
	for i := range f.products {
		if f.products[i].ID == id {
			p := f.products[i]
			return &p, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) FindByName(_ context.Context, name string) ([]models.Product, error) {
	var out []models.Product
	for _, p := range f.products {
		if p.Name == name {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) Current(_ context.Context, name string) (*models.Product, error) {
	var best *models.Product
	for i := range f.products {
		p := &f.products[i]
		if p.Name != name {
			continue
		}
		if best == nil || p.UpdatedAt.After(best.UpdatedAt) ||
			(p.UpdatedAt.Equal(best.UpdatedAt) && p.ID > best.ID) {
			best = p
		}
	}
	if best == nil {
		return nil, store.ErrNotFound
	}
	p := *best
	return &p, nil
}

func TestSubmitNewProduct(t *testing.T) {
	fs := newFakeStore()
	svc := NewInventoryService(fs)

	result, err := svc.Submit(context.Background(), "Widget", 500, 10)
	require.NoError(t, err)
	assert.Equal(t, Inserted, result)

	require.Len(t, fs.products, 1)
	assert.Equal(t, int64(500), fs.products[0].Price)
	assert.Equal(t, 10, fs.products[0].Quantity)
}

func TestSubmitDuplicateAppendsNewerRow(t *testing.T) {
	fs := newFakeStore()
	svc := NewInventoryService(fs)
	ctx := context.Background()

	t1 := time.Date(2023, 3, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	result, err := svc.SubmitAt(ctx, "Widget", 500, 10, t1)
	require.NoError(t, err)
	require.Equal(t, Inserted, result)

	result, err = svc.SubmitAt(ctx, "Widget", 700, 5, t2)
	require.NoError(t, err)
	assert.Equal(t, UpdatedDuplicate, result)

	rows, err := fs.FindByName(ctx, "Widget")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	last := rows[len(rows)-1]
	assert.Equal(t, int64(700), last.Price)
	assert.Equal(t, 5, last.Quantity)
}

func TestSubmitEqualTimestampStillUpdates(t *testing.T) {
	fs := newFakeStore()
	svc := NewInventoryService(fs)
	ctx := context.Background()

	at := time.Date(2023, 3, 1, 10, 0, 0, 0, time.UTC)

	_, err := svc.SubmitAt(ctx, "Widget", 500, 10, at)
	require.NoError(t, err)

	result, err := svc.SubmitAt(ctx, "Widget", 700, 5, at)
	require.NoError(t, err)
	assert.Equal(t, UpdatedDuplicate, result)
	assert.Len(t, fs.products, 2)
}

func TestSubmitStaleRejected(t *testing.T) {
	fs := newFakeStore()
	svc := NewInventoryService(fs)
	ctx := context.Background()

	t1 := time.Date(2023, 3, 1, 10, 0, 0, 0, time.UTC)

	_, err := svc.SubmitAt(ctx, "Widget", 500, 10, t1)
	require.NoError(t, err)

	result, err := svc.SubmitAt(ctx, "Widget", 700, 5, t1.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, RejectedStale, result)

	// rejected submissions leave the store untouched
	require.Len(t, fs.products, 1)
	assert.Equal(t, int64(500), fs.products[0].Price)
}

func TestViewUnknownIDDoesNotMutate(t *testing.T) {
	fs := newFakeStore()
	svc := NewInventoryService(fs)
	ctx := context.Background()

	_, err := svc.Submit(ctx, "Widget", 500, 10)
	require.NoError(t, err)

	_, err = svc.View(ctx, 99)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Len(t, fs.products, 1)
}

func TestViewReturnsProduct(t *testing.T) {
	fs := newFakeStore()
	svc := NewInventoryService(fs)
	ctx := context.Background()

	_, err := svc.Submit(ctx, "Widget", 500, 10)
	require.NoError(t, err)

	p, err := svc.View(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Widget", p.Name)
}

func TestCurrentTracksMaxTimestamp(t *testing.T) {
	fs := newFakeStore()
	svc := NewInventoryService(fs)
	ctx := context.Background()

	t1 := time.Date(2023, 3, 1, 10, 0, 0, 0, time.UTC)
	_, err := svc.SubmitAt(ctx, "Widget", 500, 10, t1)
	require.NoError(t, err)
	_, err = svc.SubmitAt(ctx, "Widget", 700, 5, t1.Add(time.Hour))
	require.NoError(t, err)

	cur, err := svc.Current(ctx, "Widget")
	require.NoError(t, err)
	assert.Equal(t, int64(700), cur.Price)
}
