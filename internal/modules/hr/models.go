package hr

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee is a person on the company payroll. CostCenterID is optional so
// staff can be registered before being assigned to a cost center.
type Employee struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	DocumentNumber string         `gorm:"size:50;not null;uniqueIndex" json:"document_number"`
	FirstName      string         `gorm:"size:100;not null" json:"first_name"`
	LastName       string         `gorm:"size:100;not null" json:"last_name"`
	Email          string         `gorm:"size:255" json:"email,omitempty"`
	Position       string         `gorm:"size:100" json:"position,omitempty"`
	CostCenterID   *uuid.UUID     `gorm:"type:uuid;index" json:"cost_center_id,omitempty"`
	HiredAt        *time.Time     `json:"hired_at,omitempty"`
	BaseSalary     float64        `gorm:"not null;default:0" json:"base_salary"`
	Active         bool           `gorm:"default:true" json:"active"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// PayrollPeriod records the amounts paid to an employee for one month. The
// figures are entered by an administrator, nothing here computes salaries.
type PayrollPeriod struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	EmployeeID uuid.UUID      `gorm:"type:uuid;not null;index:idx_payroll_employee_period" json:"employee_id"`
	Year       int            `gorm:"not null;index:idx_payroll_employee_period" json:"year"`
	Month      int            `gorm:"not null;index:idx_payroll_employee_period" json:"month"`
	Gross      float64        `gorm:"not null" json:"gross"`
	Deductions float64        `gorm:"not null;default:0" json:"deductions"`
	Net        float64        `gorm:"not null" json:"net"`
	Paid       bool           `gorm:"default:false" json:"paid"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
	Employee   Employee       `gorm:"foreignKey:EmployeeID" json:"-"`
}

type CreateEmployeeRequest struct {
	DocumentNumber string     `json:"document_number"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Email          string     `json:"email"`
	Position       string     `json:"position"`
	CostCenterID   *uuid.UUID `json:"cost_center_id"`
	HiredAt        *time.Time `json:"hired_at"`
	BaseSalary     float64    `json:"base_salary"`
}

type UpdateEmployeeRequest struct {
	FirstName    *string    `json:"first_name"`
	LastName     *string    `json:"last_name"`
	Email        *string    `json:"email"`
	Position     *string    `json:"position"`
	CostCenterID *uuid.UUID `json:"cost_center_id"`
	BaseSalary   *float64   `json:"base_salary"`
	Active       *bool      `json:"active"`
}

type CreatePayrollRequest struct {
	Year       int     `json:"year"`
	Month      int     `json:"month"`
	Gross      float64 `json:"gross"`
	Deductions float64 `json:"deductions"`
	Net        float64 `json:"net"`
}

type UpdatePayrollRequest struct {
	Gross      *float64 `json:"gross"`
	Deductions *float64 `json:"deductions"`
	Net        *float64 `json:"net"`
	Paid       *bool    `json:"paid"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}
