package suppliers

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *SupplierService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Supplier{}))
	return NewSupplierService(db)
}

func createSupplier(t *testing.T, svc *SupplierService, name, taxID string) *Supplier {
	t.Helper()

	s, err := svc.Create(context.Background(), &CreateSupplierRequest{Name: name, TaxID: taxID})
	require.NoError(t, err)
	return s
}

func TestSupplierService_Create(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	s := createSupplier(t, svc, "Acme Cement", "TAX-001")
	assert.True(t, s.Active)

	_, err := svc.Create(ctx, &CreateSupplierRequest{Name: "Other", TaxID: "TAX-001"})
	assert.ErrorIs(t, err, ErrTaxIDTaken)

	_, err = svc.Create(ctx, &CreateSupplierRequest{Name: "", TaxID: "TAX-002"})
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = svc.Create(ctx, &CreateSupplierRequest{Name: "NoTax", TaxID: " "})
	assert.ErrorIs(t, err, ErrTaxIDRequired)
}

func TestSupplierService_List_SearchAndPagination(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	createSupplier(t, svc, "Acme Cement", "TAX-001")
	createSupplier(t, svc, "Bolt Supply Co", "TAX-002")
	createSupplier(t, svc, "Cement Brothers", "TAX-003")

	resp, err := svc.List(ctx, 1, 20, "")
	require.NoError(t, err)
	assert.EqualValues(t, 3, resp.TotalCount)

	resp, err = svc.List(ctx, 1, 20, "cement")
	require.NoError(t, err)
	assert.EqualValues(t, 2, resp.TotalCount)

	resp, err = svc.List(ctx, 2, 2, "")
	require.NoError(t, err)
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, 2, resp.TotalPages)
}

func TestSupplierService_Update(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	s := createSupplier(t, svc, "Acme Cement", "TAX-001")
	createSupplier(t, svc, "Bolt Supply Co", "TAX-002")

	newName := "Acme Cement Intl"
	updated, err := svc.Update(ctx, s.ID, &UpdateSupplierRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, newName, updated.Name)

	takenTaxID := "TAX-002"
	_, err = svc.Update(ctx, s.ID, &UpdateSupplierRequest{TaxID: &takenTaxID})
	assert.ErrorIs(t, err, ErrTaxIDTaken)

	_, err = svc.Update(ctx, uuid.New(), &UpdateSupplierRequest{Name: &newName})
	assert.ErrorIs(t, err, ErrSupplierNotFound)
}

func TestSupplierService_Delete(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	s := createSupplier(t, svc, "Acme Cement", "TAX-001")
	require.NoError(t, svc.Delete(ctx, s.ID))

	_, err := svc.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrSupplierNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, uuid.New()), ErrSupplierNotFound)
}
