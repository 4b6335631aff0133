package hr

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

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Employee{}, &PayrollPeriod{}))
	return db
}

func createEmployee(t *testing.T, svc *EmployeeService, doc string) *Employee {
	t.Helper()

	e, err := svc.Create(context.Background(), &CreateEmployeeRequest{
		DocumentNumber: doc,
		FirstName:      "Maria",
		LastName:       "Gomez",
		Position:       "Accountant",
		BaseSalary:     2500,
	})
	require.NoError(t, err)
	return e
}

func TestEmployeeService_Create(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewEmployeeService(db)
	ctx := context.Background()

	e := createEmployee(t, svc, "DOC-100")
	assert.True(t, e.Active)

	_, err := svc.Create(ctx, &CreateEmployeeRequest{DocumentNumber: "DOC-100", FirstName: "A", LastName: "B"})
	assert.ErrorIs(t, err, ErrDocumentTaken)

	_, err = svc.Create(ctx, &CreateEmployeeRequest{DocumentNumber: "", FirstName: "A", LastName: "B"})
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestEmployeeService_List_Filters(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewEmployeeService(db)
	ctx := context.Background()

	costCenterID := uuid.New()
	first := createEmployee(t, svc, "DOC-1")
	createEmployee(t, svc, "DOC-2")

	_, err := svc.Update(ctx, first.ID, &UpdateEmployeeRequest{CostCenterID: &costCenterID})
	require.NoError(t, err)

	inactive := false
	_, err = svc.Update(ctx, first.ID, &UpdateEmployeeRequest{Active: &inactive})
	require.NoError(t, err)

	all, err := svc.List(ctx, EmployeeFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := svc.List(ctx, EmployeeFilter{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "DOC-2", active[0].DocumentNumber)

	byCenter, err := svc.List(ctx, EmployeeFilter{CostCenterID: &costCenterID})
	require.NoError(t, err)
	require.Len(t, byCenter, 1)
	assert.Equal(t, "DOC-1", byCenter[0].DocumentNumber)

	bySearch, err := svc.List(ctx, EmployeeFilter{Search: "doc-2"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "DOC-2", bySearch[0].DocumentNumber)
}

func TestPayrollService_Create(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	employees := NewEmployeeService(db)
	payroll := NewPayrollService(db)
	ctx := context.Background()

	e := createEmployee(t, employees, "DOC-1")

	period, err := payroll.Create(ctx, e.ID, &CreatePayrollRequest{
		Year: 2026, Month: 8, Gross: 2500, Deductions: 300, Net: 2200,
	})
	require.NoError(t, err)
	assert.False(t, period.Paid)

	// One period per employee per month.
	_, err = payroll.Create(ctx, e.ID, &CreatePayrollRequest{Year: 2026, Month: 8, Gross: 1, Net: 1})
	assert.ErrorIs(t, err, ErrPeriodExists)

	_, err = payroll.Create(ctx, e.ID, &CreatePayrollRequest{Year: 2026, Month: 13, Gross: 1, Net: 1})
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = payroll.Create(ctx, e.ID, &CreatePayrollRequest{Year: 2026, Month: 9, Gross: -1, Net: 1})
	assert.ErrorIs(t, err, ErrNegativeAmount)

	_, err = payroll.Create(ctx, uuid.New(), &CreatePayrollRequest{Year: 2026, Month: 8, Gross: 1, Net: 1})
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestPayrollService_ListAndUpdate(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	employees := NewEmployeeService(db)
	payroll := NewPayrollService(db)
	ctx := context.Background()

	e := createEmployee(t, employees, "DOC-1")
	for _, m := range []int{6, 7, 8} {
		_, err := payroll.Create(ctx, e.ID, &CreatePayrollRequest{Year: 2026, Month: m, Gross: 2500, Net: 2200})
		require.NoError(t, err)
	}
	old, err := payroll.Create(ctx, e.ID, &CreatePayrollRequest{Year: 2025, Month: 12, Gross: 2400, Net: 2100})
	require.NoError(t, err)

	all, err := payroll.ListByEmployee(ctx, e.ID, 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	byYear, err := payroll.ListByEmployee(ctx, e.ID, 2026)
	require.NoError(t, err)
	assert.Len(t, byYear, 3)

	paid := true
	updated, err := payroll.Update(ctx, old.ID, &UpdatePayrollRequest{Paid: &paid})
	require.NoError(t, err)
	assert.True(t, updated.Paid)

	_, err = payroll.Update(ctx, uuid.New(), &UpdatePayrollRequest{Paid: &paid})
	assert.ErrorIs(t, err, ErrPayrollNotFound)
}
