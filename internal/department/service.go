package department

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	internal "github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/auth"
	"github.com/frahmantamala/asset-management/internal/registry"
)

// Repository defines the data access methods for departments.
type Repository interface {
	Create(ctx context.Context, d *Department) error
	GetByDepartmentID(ctx context.Context, departmentID string) (*Department, error)
	Exists(ctx context.Context, departmentID string) (bool, error)
}

// RegistryService reserves identifier and email uniqueness around inserts.
type RegistryService interface {
	Reserve(ctx context.Context, namespace, id string) error
	Release(ctx context.Context, namespace, id string) error
}

// EmailVerifier reports whether an address completed OTP verification.
type EmailVerifier interface {
	IsVerified(ctx context.Context, email string) (bool, error)
}

// Service handles department registration and authentication.
type Service struct {
	repo            Repository
	registry        RegistryService
	verifier        EmailVerifier
	requireVerified bool
	bcryptCost      int
	logger          *slog.Logger
}

func NewService(repo Repository, reg RegistryService, verifier EmailVerifier, requireVerified bool, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		repo:            repo,
		registry:        reg,
		verifier:        verifier,
		requireVerified: requireVerified,
		bcryptCost:      bcryptCost,
		logger:          logger,
	}
}

// Register validates the candidate, claims its identifier and email, hashes
// the password and persists. The returned profile never carries the hash.
func (s *Service) Register(ctx context.Context, dto RegisterDTO) (*Profile, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("department registration rejected", "department_id", dto.DepartmentID, "error", err.Error())
		return nil, err
	}

	email := strings.ToLower(dto.Email)

	if s.requireVerified {
		verified, err := s.verifier.IsVerified(ctx, email)
		if err != nil {
			s.logger.Error("email verification lookup failed", "email", email, "error", err)
			return nil, internal.NewStorageError("failed to check email verification", err)
		}
		if !verified {
			return nil, internal.NewValidationError("email address has not been verified", internal.ErrCodeEmailNotVerified)
		}
	}

	if err := s.registry.Reserve(ctx, registry.NamespaceDepartment, dto.DepartmentID); err != nil {
		return nil, err
	}
	if err := s.registry.Reserve(ctx, registry.NamespaceEmail, email); err != nil {
		if relErr := s.registry.Release(ctx, registry.NamespaceDepartment, dto.DepartmentID); relErr != nil {
			s.logger.Error("failed to release department id after email conflict", "department_id", dto.DepartmentID, "error", relErr)
		}
		return nil, err
	}

	hash, err := auth.HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		s.logger.Error("password hashing failed", "error", err)
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	d := &Department{
		DepartmentID:   dto.DepartmentID,
		DepartmentName: dto.DepartmentName,
		SectionName:    dto.SectionName,
		EmployeeLevel:  dto.EmployeeLevel,
		Email:          email,
		PasswordHash:   hash,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		s.releaseReservations(ctx, dto.DepartmentID, email)
		if errors.Is(err, ErrDuplicate) {
			return nil, internal.NewDuplicateIdentifierError("departmentId", dto.DepartmentID)
		}
		s.logger.Error("failed to create department", "department_id", dto.DepartmentID, "error", err)
		return nil, internal.NewStorageError("failed to create department", err)
	}

	s.logger.Info("department registered", "department_id", d.DepartmentID, "section", d.SectionName)
	return d.Profile(), nil
}

// Authenticate verifies credentials. An unknown id and a wrong password
// produce the identical generic error; a dummy bcrypt comparison keeps the
// two paths similarly expensive.
func (s *Service) Authenticate(ctx context.Context, departmentID, password string) (*Profile, error) {
	d, err := s.repo.GetByDepartmentID(ctx, departmentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			auth.VerifyAgainstDummy(password)
			return nil, internal.ErrInvalidCredentials
		}
		s.logger.Error("department lookup failed", "department_id", departmentID, "error", err)
		return nil, internal.NewStorageError("failed to look up department", err)
	}

	if err := auth.VerifyPassword(d.PasswordHash, password); err != nil {
		s.logger.Warn("department login failed", "department_id", departmentID)
		return nil, internal.ErrInvalidCredentials
	}

	s.logger.Info("department authenticated", "department_id", departmentID)
	return d.Profile(), nil
}

// DepartmentExists satisfies the asset validator's lookup collaborator.
func (s *Service) DepartmentExists(ctx context.Context, departmentID string) (bool, error) {
	return s.repo.Exists(ctx, departmentID)
}

func (s *Service) releaseReservations(ctx context.Context, departmentID, email string) {
	if err := s.registry.Release(ctx, registry.NamespaceDepartment, departmentID); err != nil {
		s.logger.Error("failed to release department id", "department_id", departmentID, "error", err)
	}
	if err := s.registry.Release(ctx, registry.NamespaceEmail, email); err != nil {
		s.logger.Error("failed to release email", "email", email, "error", err)
	}
}
