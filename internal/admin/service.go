package admin

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	internal "github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/auth"
	"github.com/frahmantamala/asset-management/internal/registry"
)

// Repository defines the data access methods for admins.
type Repository interface {
	Create(ctx context.Context, a *Admin) error
	GetByAdminID(ctx context.Context, adminID string) (*Admin, error)
}

// RegistryService reserves identifier and email uniqueness around inserts.
type RegistryService interface {
	Reserve(ctx context.Context, namespace, id string) error
	Release(ctx context.Context, namespace, id string) error
}

// Service handles admin registration and authentication.
type Service struct {
	repo       Repository
	registry   RegistryService
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo Repository, reg RegistryService, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{repo: repo, registry: reg, bcryptCost: bcryptCost, logger: logger}
}

// Register claims the admin id and email, hashes the password and persists.
func (s *Service) Register(ctx context.Context, dto RegisterDTO) (*Profile, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("admin registration rejected", "admin_id", dto.AdminID, "error", err.Error())
		return nil, err
	}

	email := strings.ToLower(dto.Email)

	if err := s.registry.Reserve(ctx, registry.NamespaceAdmin, dto.AdminID); err != nil {
		return nil, err
	}
	if err := s.registry.Reserve(ctx, registry.NamespaceEmail, email); err != nil {
		if relErr := s.registry.Release(ctx, registry.NamespaceAdmin, dto.AdminID); relErr != nil {
			s.logger.Error("failed to release admin id after email conflict", "admin_id", dto.AdminID, "error", relErr)
		}
		return nil, err
	}

	hash, err := auth.HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		s.logger.Error("password hashing failed", "error", err)
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	a := &Admin{
		AdminID:      dto.AdminID,
		Name:         dto.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         internal.RoleAdmin,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		s.releaseReservations(ctx, dto.AdminID, email)
		if errors.Is(err, ErrDuplicate) {
			return nil, internal.NewDuplicateIdentifierError("adminId", dto.AdminID)
		}
		s.logger.Error("failed to create admin", "admin_id", dto.AdminID, "error", err)
		return nil, internal.NewStorageError("failed to create admin", err)
	}

	s.logger.Info("admin registered", "admin_id", a.AdminID)
	return a.Profile(), nil
}

// Authenticate verifies credentials. Unknown ids, wrong passwords and
// deactivated accounts all surface the same generic error.
func (s *Service) Authenticate(ctx context.Context, adminID, password string) (*Profile, error) {
	a, err := s.repo.GetByAdminID(ctx, adminID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			auth.VerifyAgainstDummy(password)
			return nil, internal.ErrInvalidCredentials
		}
		s.logger.Error("admin lookup failed", "admin_id", adminID, "error", err)
		return nil, internal.NewStorageError("failed to look up admin", err)
	}

	if err := auth.VerifyPassword(a.PasswordHash, password); err != nil {
		s.logger.Warn("admin login failed", "admin_id", adminID)
		return nil, internal.ErrInvalidCredentials
	}

	if !a.IsActive {
		s.logger.Warn("login attempt for deactivated admin", "admin_id", adminID)
		return nil, internal.ErrInvalidCredentials
	}

	s.logger.Info("admin authenticated", "admin_id", adminID)
	return a.Profile(), nil
}

func (s *Service) releaseReservations(ctx context.Context, adminID, email string) {
	if err := s.registry.Release(ctx, registry.NamespaceAdmin, adminID); err != nil {
		s.logger.Error("failed to release admin id", "admin_id", adminID, "error", err)
	}
	if err := s.registry.Release(ctx, registry.NamespaceEmail, email); err != nil {
		s.logger.Error("failed to release email", "email", email, "error", err)
	}
}
