package admin

import (
	internal "github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/core/common/validation"
)

// RegisterDTO is the payload for creating an admin account.
type RegisterDTO struct {
	AdminID  string `json:"adminId"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (dto RegisterDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("adminId", dto.AdminID).Required()
	v.Field("name", dto.Name).Required()
	v.Field("email", dto.Email).Required().Email()
	v.Field("password", dto.Password).Required().MinLength(8)
	return v.Validate()
}

// LoginDTO carries admin credentials.
type LoginDTO struct {
	AdminID  string `json:"adminId"`
	Password string `json:"password"`
}

func (dto LoginDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("adminId", dto.AdminID).Required()
	v.Field("password", dto.Password).Required()
	return v.Validate()
}
