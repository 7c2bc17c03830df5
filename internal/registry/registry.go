package registry

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	internal "github.com/frahmantamala/asset-management/internal"
)

// Namespaces are independent uniqueness domains. Identifiers are compared
// case-sensitively; email addresses are normalized to lowercase.
const (
	NamespaceAsset      = "asset"
	NamespaceDepartment = "department"
	NamespaceAdmin      = "admin"
	NamespaceEmail      = "email"
)

// ErrAlreadyReserved is the repository-level duplicate signal, raised by
// the storage engine's unique constraint.
var ErrAlreadyReserved = errors.New("identifier already reserved")

type RepositoryAPI interface {
	Exists(ctx context.Context, namespace, value string) (bool, error)
	Insert(ctx context.Context, namespace, value string) error
	Remove(ctx context.Context, namespace, value string) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func normalize(namespace, value string) string {
	if namespace == NamespaceEmail {
		return strings.ToLower(value)
	}
	return value
}

// fieldFor maps a namespace to the wire field name used in error details.
func fieldFor(namespace string) string {
	switch namespace {
	case NamespaceAsset:
		return "assetId"
	case NamespaceDepartment:
		return "departmentId"
	case NamespaceAdmin:
		return "adminId"
	case NamespaceEmail:
		return "email"
	}
	return namespace
}

// IsAvailable is advisory: a concurrent Reserve may still win between the
// check and the insert. Reserve is the authoritative operation.
func (s *Service) IsAvailable(ctx context.Context, namespace, id string) (bool, error) {
	exists, err := s.repo.Exists(ctx, namespace, normalize(namespace, id))
	if err != nil {
		s.logger.Error("registry lookup failed", "namespace", namespace, "error", err)
		return false, internal.NewStorageError("failed to check identifier availability", err)
	}
	return !exists, nil
}

// Reserve claims the identifier, failing with DuplicateIdentifier when the
// unique constraint rejects the insert.
func (s *Service) Reserve(ctx context.Context, namespace, id string) error {
	err := s.repo.Insert(ctx, namespace, normalize(namespace, id))
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrAlreadyReserved) {
		s.logger.Warn("duplicate identifier rejected", "namespace", namespace, "id", id)
		return internal.NewDuplicateIdentifierError(fieldFor(namespace), id)
	}
	s.logger.Error("registry reserve failed", "namespace", namespace, "error", err)
	return internal.NewStorageError("failed to reserve identifier", err)
}

// Release frees an identifier after its owning record is deleted. Releasing
// an unknown identifier is a no-op.
func (s *Service) Release(ctx context.Context, namespace, id string) error {
	if err := s.repo.Remove(ctx, namespace, normalize(namespace, id)); err != nil {
		s.logger.Error("registry release failed", "namespace", namespace, "error", err)
		return internal.NewStorageError("failed to release identifier", err)
	}
	return nil
}
