package costcenters

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

func newTestService(t *testing.T) *CostCenterService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&CostCenter{}))
	return NewCostCenterService(db)
}

func TestCostCenterService_Create(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	cc, err := svc.Create(ctx, &CreateCostCenterRequest{Code: "CC-100", Name: "Site works", Budget: 50000})
	require.NoError(t, err)
	assert.True(t, cc.Active)

	_, err = svc.Create(ctx, &CreateCostCenterRequest{Code: "CC-100", Name: "dup"})
	assert.ErrorIs(t, err, ErrCodeTaken)

	_, err = svc.Create(ctx, &CreateCostCenterRequest{Code: "CC-101", Name: "x", Budget: -1})
	assert.ErrorIs(t, err, ErrNegativeBudget)

	_, err = svc.Create(ctx, &CreateCostCenterRequest{Code: " ", Name: "x"})
	assert.ErrorIs(t, err, ErrCodeRequired)
}

func TestCostCenterService_List_ActiveFilter(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &CreateCostCenterRequest{Code: "CC-1", Name: "First"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, &CreateCostCenterRequest{Code: "CC-2", Name: "Second"})
	require.NoError(t, err)

	inactive := false
	_, err = svc.Update(ctx, second.ID, &UpdateCostCenterRequest{Active: &inactive})
	require.NoError(t, err)

	all, err := svc.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := svc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "CC-1", active[0].Code)
}

func TestCostCenterService_Update(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	cc, err := svc.Create(ctx, &CreateCostCenterRequest{Code: "CC-1", Name: "First", Budget: 1000})
	require.NoError(t, err)

	negative := -5.0
	_, err = svc.Update(ctx, cc.ID, &UpdateCostCenterRequest{Budget: &negative})
	assert.ErrorIs(t, err, ErrNegativeBudget)

	budget := 2000.0
	updated, err := svc.Update(ctx, cc.ID, &UpdateCostCenterRequest{Budget: &budget})
	require.NoError(t, err)
	assert.Equal(t, 2000.0, updated.Budget)

	_, err = svc.Update(ctx, uuid.New(), &UpdateCostCenterRequest{Budget: &budget})
	assert.ErrorIs(t, err, ErrCostCenterNotFound)
}
