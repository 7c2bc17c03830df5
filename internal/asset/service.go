package asset

import (
	"context"
	"errors"
	"log/slog"

	internal "github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/core/events"
	"github.com/frahmantamala/asset-management/internal/registry"
)

// Repository-level sentinels, mapped to AppErrors by the service.
var (
	ErrNotFound  = errors.New("asset not found")
	ErrDuplicate = errors.New("asset already exists")
)

// Repository defines the data access methods for assets.
type Repository interface {
	Create(ctx context.Context, a *Asset) error
	GetByID(ctx context.Context, assetID string) (*Asset, error)
	ListAll(ctx context.Context, limit, offset int) ([]*Asset, error)
	ListByDepartment(ctx context.Context, departmentID string, limit, offset int) ([]*Asset, error)
	Update(ctx context.Context, a *Asset) error
	Delete(ctx context.Context, assetID string) (bool, error)
}

// RegistryService reserves and releases identifiers around store writes.
type RegistryService interface {
	Reserve(ctx context.Context, namespace, id string) error
	Release(ctx context.Context, namespace, id string) error
}

// Publisher is the slice of the event bus the service uses.
type Publisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Service handles asset lifecycle business logic.
type Service struct {
	repo      Repository
	validator *Validator
	workflow  *Workflow
	registry  RegistryService
	bus       Publisher
	logger    *slog.Logger
}

func NewService(repo Repository, validator *Validator, workflow *Workflow, reg RegistryService, bus Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		validator: validator,
		workflow:  workflow,
		registry:  reg,
		bus:       bus,
		logger:    logger,
	}
}

func (s *Service) Workflow() *Workflow {
	return s.workflow
}

// Create validates the submission, reserves the identifier and persists the
// record. No write happens until every validation check has passed.
func (s *Service) Create(ctx context.Context, dto SubmissionDTO, actorID string) (*Asset, error) {
	if err := s.validator.Validate(ctx, dto, ModeCreate); err != nil {
		s.logger.Warn("asset submission rejected", "asset_id", dto.AssetID, "error", err.Error())
		return nil, err
	}
	if err := s.workflow.ValidateInitial(dto.Status); err != nil {
		s.logger.Warn("asset submission has illegal initial status", "asset_id", dto.AssetID, "status", dto.Status)
		return nil, err
	}

	a := dto.ToAsset()

	// The registry insert is the authoritative uniqueness gate; the
	// validator's availability check above is advisory only.
	if err := s.registry.Reserve(ctx, registry.NamespaceAsset, a.AssetID); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, a); err != nil {
		if releaseErr := s.registry.Release(ctx, registry.NamespaceAsset, a.AssetID); releaseErr != nil {
			s.logger.Error("failed to release identifier after create failure", "asset_id", a.AssetID, "error", releaseErr)
		}
		if errors.Is(err, ErrDuplicate) {
			return nil, internal.NewDuplicateIdentifierError("assetId", a.AssetID)
		}
		s.logger.Error("failed to create asset", "asset_id", a.AssetID, "error", err)
		return nil, internal.NewStorageError("failed to create asset", err)
	}

	s.publish(ctx, events.NewAssetEvent(events.AssetSubmitted, a.AssetID, actorID, map[string]interface{}{
		"asset_type": a.AssetType,
		"status":     a.Status,
	}))

	s.logger.Info("asset created",
		"asset_id", a.AssetID,
		"asset_type", a.AssetType,
		"status", a.Status)

	return a, nil
}

func (s *Service) GetByID(ctx context.Context, assetID string) (*Asset, error) {
	a, err := s.repo.GetByID(ctx, assetID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, internal.ErrAssetNotFound
		}
		s.logger.Error("failed to get asset", "asset_id", assetID, "error", err)
		return nil, internal.NewStorageError("failed to get asset", err)
	}
	return a, nil
}

func (s *Service) ListAll(ctx context.Context, limit, offset int) ([]*Asset, error) {
	assets, err := s.repo.ListAll(ctx, limit, offset)
	if err != nil {
		s.logger.Error("failed to list assets", "error", err)
		return nil, internal.NewStorageError("failed to list assets", err)
	}
	return assets, nil
}

func (s *Service) ListByDepartment(ctx context.Context, departmentID string, limit, offset int) ([]*Asset, error) {
	assets, err := s.repo.ListByDepartment(ctx, departmentID, limit, offset)
	if err != nil {
		s.logger.Error("failed to list department assets", "department_id", departmentID, "error", err)
		return nil, internal.NewStorageError("failed to list assets", err)
	}
	return assets, nil
}

// Update applies a partial update. The merged record is re-validated with
// update policy (location optional), and updatedAt is refreshed.
func (s *Service) Update(ctx context.Context, assetID string, dto UpdateDTO) (*Asset, error) {
	a, err := s.GetByID(ctx, assetID)
	if err != nil {
		return nil, err
	}

	dto.Apply(a)

	merged := SubmissionDTO{
		AssetID:             a.AssetID,
		AssetType:           a.AssetType,
		AssetName:           a.AssetName,
		Status:              a.Status,
		AssignedTo:          a.AssignedTo,
		Location:            a.Location,
		PurchaseDate:        a.PurchaseDate,
		LastMaintenance:     a.LastMaintenance,
		NextMaintenance:     a.NextMaintenance,
		Condition:           a.Condition,
		Notes:               a.Notes,
		CertificateDocument: a.CertificateDocument,
		EmployeeName:        a.EmployeeName,
		EmployeeID:          a.EmployeeID,
		Section:             a.Section,
		EmployeeLevel:       a.EmployeeLevel,
		IDDocument:          a.IDDocument,
	}
	if vErr := s.validator.Validate(ctx, merged, ModeUpdate); vErr != nil {
		s.logger.Warn("asset update rejected", "asset_id", assetID, "error", vErr.Error())
		return nil, vErr
	}

	a.Touch()
	if err := s.repo.Update(ctx, a); err != nil {
		s.logger.Error("failed to update asset", "asset_id", assetID, "error", err)
		return nil, internal.NewStorageError("failed to update asset", err)
	}

	return a, nil
}

// Delete removes the record and frees its identifier. The second delete of
// the same id returns false without error.
func (s *Service) Delete(ctx context.Context, assetID string, actorID string) (bool, error) {
	removed, err := s.repo.Delete(ctx, assetID)
	if err != nil {
		s.logger.Error("failed to delete asset", "asset_id", assetID, "error", err)
		return false, internal.NewStorageError("failed to delete asset", err)
	}
	if !removed {
		return false, nil
	}

	if err := s.registry.Release(ctx, registry.NamespaceAsset, assetID); err != nil {
		s.logger.Error("failed to release asset identifier", "asset_id", assetID, "error", err)
	}

	s.publish(ctx, events.NewAssetEvent(events.AssetDeleted, assetID, actorID, nil))

	s.logger.Info("asset deleted", "asset_id", assetID)
	return true, nil
}

// Approve moves a pending submission to approved. Only admin principals may
// transition submissions; terminal states reject further transitions.
func (s *Service) Approve(ctx context.Context, assetID string, actor *internal.Principal) (*Asset, error) {
	return s.transition(ctx, assetID, StatusApproved, actor, events.AssetApproved, "")
}

// Reject moves a pending submission to rejected.
func (s *Service) Reject(ctx context.Context, assetID string, reason string, actor *internal.Principal) (*Asset, error) {
	return s.transition(ctx, assetID, StatusRejected, actor, events.AssetRejected, reason)
}

// SetStatus applies an arbitrary legal status change, used by inventory
// deployments where any state may move to any other.
func (s *Service) SetStatus(ctx context.Context, assetID, status string, actor *internal.Principal) (*Asset, error) {
	return s.transition(ctx, assetID, status, actor, events.AssetStatusChanged, "")
}

func (s *Service) transition(ctx context.Context, assetID, to string, actor *internal.Principal, eventType, reason string) (*Asset, error) {
	if !actor.IsAdmin() {
		s.logger.Warn("status transition denied: admin required", "asset_id", assetID)
		return nil, internal.NewForbiddenError("admin access required", internal.ErrCodeAdminRequired)
	}

	a, err := s.GetByID(ctx, assetID)
	if err != nil {
		return nil, err
	}

	from := a.Status
	if tErr := s.workflow.Transition(a, to); tErr != nil {
		s.logger.Warn("illegal status transition",
			"asset_id", assetID,
			"from", from,
			"to", to)
		return nil, tErr
	}

	if err := s.repo.Update(ctx, a); err != nil {
		s.logger.Error("failed to persist status transition", "asset_id", assetID, "error", err)
		return nil, internal.NewStorageError("failed to update asset status", err)
	}

	extra := map[string]interface{}{"from": from, "to": to}
	if reason != "" {
		extra["reason"] = reason
	}
	s.publish(ctx, events.NewAssetEvent(eventType, assetID, actor.ID, extra))

	s.logger.Info("asset status changed",
		"asset_id", assetID,
		"from", from,
		"to", to,
		"actor_id", actor.ID)

	return a, nil
}

func (s *Service) publish(ctx context.Context, event events.BaseEvent) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish asset event", "event_type", event.EventType(), "error", err)
	}
}
