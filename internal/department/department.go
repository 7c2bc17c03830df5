package department

import (
	"errors"
	"time"

	departmentDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/department"
)

// Department is an organizational login principal that owns and submits
// assets. The password hash never leaves this package.
type Department struct {
	DepartmentID   string
	DepartmentName string
	SectionName    string
	EmployeeLevel  string
	Email          string
	PasswordHash   string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Profile is the sanitized view returned to callers; it never carries the
// credential.
type Profile struct {
	DepartmentID   string    `json:"departmentId"`
	DepartmentName string    `json:"departmentName"`
	SectionName    string    `json:"sectionName"`
	EmployeeLevel  string    `json:"employeeLevel"`
	Email          string    `json:"email"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Repository-level sentinels.
var (
	ErrNotFound  = errors.New("department not found")
	ErrDuplicate = errors.New("department already exists")
)

func (d *Department) Profile() *Profile {
	return &Profile{
		DepartmentID:   d.DepartmentID,
		DepartmentName: d.DepartmentName,
		SectionName:    d.SectionName,
		EmployeeLevel:  d.EmployeeLevel,
		Email:          d.Email,
		CreatedAt:      d.CreatedAt,
	}
}

func ToDataModel(d *Department) *departmentDatamodel.Department {
	return &departmentDatamodel.Department{
		DepartmentID:   d.DepartmentID,
		DepartmentName: d.DepartmentName,
		SectionName:    d.SectionName,
		EmployeeLevel:  d.EmployeeLevel,
		Email:          d.Email,
		PasswordHash:   d.PasswordHash,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func FromDataModel(d *departmentDatamodel.Department) *Department {
	return &Department{
		DepartmentID:   d.DepartmentID,
		DepartmentName: d.DepartmentName,
		SectionName:    d.SectionName,
		EmployeeLevel:  d.EmployeeLevel,
		Email:          d.Email,
		PasswordHash:   d.PasswordHash,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}
