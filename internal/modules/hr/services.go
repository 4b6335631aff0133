package hr

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrPayrollNotFound  = errors.New("payroll period not found")
	ErrDocumentTaken    = errors.New("document number already exists")
	ErrMissingFields    = errors.New("document number, first name and last name are required")
	ErrInvalidPeriod    = errors.New("year and month must identify a valid period")
	ErrPeriodExists     = errors.New("payroll period already recorded for that month")
	ErrNegativeAmount   = errors.New("payroll amounts cannot be negative")
)

type EmployeeService struct {
	db *gorm.DB
}

func NewEmployeeService(db *gorm.DB) *EmployeeService {
	return &EmployeeService{db: db}
}

func (s *EmployeeService) Create(ctx context.Context, req *CreateEmployeeRequest) (*Employee, error) {
	doc := strings.TrimSpace(req.DocumentNumber)
	first := strings.TrimSpace(req.FirstName)
	last := strings.TrimSpace(req.LastName)
	if doc == "" || first == "" || last == "" {
		return nil, ErrMissingFields
	}

	var existing Employee
	if err := s.db.WithContext(ctx).Where("document_number = ?", doc).First(&existing).Error; err == nil {
		return nil, ErrDocumentTaken
	}

	employee := Employee{
		ID:             uuid.New(),
		DocumentNumber: doc,
		FirstName:      first,
		LastName:       last,
		Email:          strings.TrimSpace(req.Email),
		Position:       strings.TrimSpace(req.Position),
		CostCenterID:   req.CostCenterID,
		HiredAt:        req.HiredAt,
		BaseSalary:     req.BaseSalary,
		Active:         true,
	}
	if err := s.db.WithContext(ctx).Create(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

type EmployeeFilter struct {
	ActiveOnly   bool
	CostCenterID *uuid.UUID
	Search       string
}

func (s *EmployeeService) List(ctx context.Context, filter EmployeeFilter) ([]Employee, error) {
	query := s.db.WithContext(ctx).Order("last_name, first_name")
	if filter.ActiveOnly {
		query = query.Where("active = ?", true)
	}
	if filter.CostCenterID != nil {
		query = query.Where("cost_center_id = ?", *filter.CostCenterID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(document_number) LIKE ?",
			like, like, like,
		)
	}
	var items []Employee
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *EmployeeService) Get(ctx context.Context, id uuid.UUID) (*Employee, error) {
	var employee Employee
	if err := s.db.WithContext(ctx).First(&employee, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return &employee, nil
}

func (s *EmployeeService) Update(ctx context.Context, id uuid.UUID, req *UpdateEmployeeRequest) (*Employee, error) {
	employee, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		first := strings.TrimSpace(*req.FirstName)
		if first == "" {
			return nil, ErrMissingFields
		}
		employee.FirstName = first
	}
	if req.LastName != nil {
		last := strings.TrimSpace(*req.LastName)
		if last == "" {
			return nil, ErrMissingFields
		}
		employee.LastName = last
	}
	if req.Email != nil {
		employee.Email = strings.TrimSpace(*req.Email)
	}
	if req.Position != nil {
		employee.Position = strings.TrimSpace(*req.Position)
	}
	if req.CostCenterID != nil {
		employee.CostCenterID = req.CostCenterID
	}
	if req.BaseSalary != nil {
		if *req.BaseSalary < 0 {
			return nil, ErrNegativeAmount
		}
		employee.BaseSalary = *req.BaseSalary
	}
	if req.Active != nil {
		employee.Active = *req.Active
	}

	if err := s.db.WithContext(ctx).Save(employee).Error; err != nil {
		return nil, err
	}
	return employee, nil
}

func (s *EmployeeService) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&Employee{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

type PayrollService struct {
	db *gorm.DB
}

func NewPayrollService(db *gorm.DB) *PayrollService {
	return &PayrollService{db: db}
}

func (s *PayrollService) Create(ctx context.Context, employeeID uuid.UUID, req *CreatePayrollRequest) (*PayrollPeriod, error) {
	if req.Year < 2000 || req.Month < 1 || req.Month > 12 {
		return nil, ErrInvalidPeriod
	}
	if req.Gross < 0 || req.Deductions < 0 || req.Net < 0 {
		return nil, ErrNegativeAmount
	}

	var employee Employee
	if err := s.db.WithContext(ctx).First(&employee, "id = ?", employeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	var existing PayrollPeriod
	err := s.db.WithContext(ctx).
		Where("employee_id = ? AND year = ? AND month = ?", employeeID, req.Year, req.Month).
		First(&existing).Error
	if err == nil {
		return nil, ErrPeriodExists
	}

	period := PayrollPeriod{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Year:       req.Year,
		Month:      req.Month,
		Gross:      req.Gross,
		Deductions: req.Deductions,
		Net:        req.Net,
	}
	if err := s.db.WithContext(ctx).Create(&period).Error; err != nil {
		return nil, err
	}
	return &period, nil
}

func (s *PayrollService) ListByEmployee(ctx context.Context, employeeID uuid.UUID, year int) ([]PayrollPeriod, error) {
	query := s.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("year DESC, month DESC")
	if year > 0 {
		query = query.Where("year = ?", year)
	}
	var periods []PayrollPeriod
	if err := query.Find(&periods).Error; err != nil {
		return nil, err
	}
	return periods, nil
}

func (s *PayrollService) Update(ctx context.Context, id uuid.UUID, req *UpdatePayrollRequest) (*PayrollPeriod, error) {
	var period PayrollPeriod
	if err := s.db.WithContext(ctx).First(&period, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPayrollNotFound
		}
		return nil, err
	}

	if req.Gross != nil {
		if *req.Gross < 0 {
			return nil, ErrNegativeAmount
		}
		period.Gross = *req.Gross
	}
	if req.Deductions != nil {
		if *req.Deductions < 0 {
			return nil, ErrNegativeAmount
		}
		period.Deductions = *req.Deductions
	}
	if req.Net != nil {
		if *req.Net < 0 {
			return nil, ErrNegativeAmount
		}
		period.Net = *req.Net
	}
	if req.Paid != nil {
		period.Paid = *req.Paid
	}

	if err := s.db.WithContext(ctx).Save(&period).Error; err != nil {
		return nil, err
	}
	return &period, nil
}

func (s *PayrollService) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&PayrollPeriod{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPayrollNotFound
	}
	return nil
}
