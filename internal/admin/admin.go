package admin

import (
	"errors"
	"time"

	adminDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/admin"
)

// Admin is a privileged principal who validates submissions and manages the
// asset catalog. The password hash never leaves this package.
type Admin struct {
	AdminID      string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile is the sanitized admin view returned to callers.
type Profile struct {
	AdminID   string    `json:"adminId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

var (
	ErrNotFound  = errors.New("admin not found")
	ErrDuplicate = errors.New("admin already exists")
)

func (a *Admin) Profile() *Profile {
	return &Profile{
		AdminID:   a.AdminID,
		Name:      a.Name,
		Email:     a.Email,
		Role:      a.Role,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
	}
}

func ToDataModel(a *Admin) *adminDatamodel.Admin {
	return &adminDatamodel.Admin{
		AdminID:      a.AdminID,
		Name:         a.Name,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		Role:         a.Role,
		IsActive:     a.IsActive,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func FromDataModel(a *adminDatamodel.Admin) *Admin {
	return &Admin{
		AdminID:      a.AdminID,
		Name:         a.Name,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		Role:         a.Role,
		IsActive:     a.IsActive,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}
