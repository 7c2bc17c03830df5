package department

import (
	internal "github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/asset"
	"github.com/frahmantamala/asset-management/internal/core/common/validation"
)

// RegisterDTO is the signup payload for a department principal.
type RegisterDTO struct {
	DepartmentID   string `json:"departmentId"`
	DepartmentName string `json:"departmentName"`
	SectionName    string `json:"sectionName"`
	EmployeeLevel  string `json:"employeeLevel"`
	Email          string `json:"email"`
	Password       string `json:"password"`
}

func (dto RegisterDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("departmentId", dto.DepartmentID).Required()
	v.Field("departmentName", dto.DepartmentName).Required()
	v.Field("sectionName", dto.SectionName).Required()
	v.Field("employeeLevel", dto.EmployeeLevel).Required().OneOf(asset.EmployeeLevels...)
	v.Field("email", dto.Email).Required().Email()
	v.Field("password", dto.Password).Required().MinLength(8)
	return v.Validate()
}

// LoginDTO is the transport shape used by the HTTP handler to accept login
// requests.
type LoginDTO struct {
	DepartmentID string `json:"departmentId"`
	Password     string `json:"password"`
}

func (dto LoginDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("departmentId", dto.DepartmentID).Required()
	v.Field("password", dto.Password).Required()
	return v.Validate()
}
