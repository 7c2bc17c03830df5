package asset

import (
	"context"
	"log/slog"
	"strings"

	internal "github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/registry"
)

// Mode selects the validation policy. Location is required when creating a
// physical asset but optional on update.
type Mode int

const (
	ModeCreate Mode = iota
	ModeUpdate
)

// DepartmentLookup resolves weak references to departments. The validator
// only reads; it never mutates collaborator state.
type DepartmentLookup interface {
	DepartmentExists(ctx context.Context, departmentID string) (bool, error)
}

// RegistryAPI is the slice of the identifier registry the validator needs.
type RegistryAPI interface {
	IsAvailable(ctx context.Context, namespace, id string) (bool, error)
}

// DocumentPolicy decides whether a document URL is acceptable, i.e. was
// produced by a prior successful upload. The validator does not verify the
// file itself exists.
type DocumentPolicy interface {
	Accepts(url string) bool
}

type Validator struct {
	departments      DepartmentLookup
	registry         RegistryAPI
	documents        DocumentPolicy
	locationRequired bool
	logger           *slog.Logger
}

func NewValidator(departments DepartmentLookup, reg RegistryAPI, documents DocumentPolicy, locationRequired bool, logger *slog.Logger) *Validator {
	return &Validator{
		departments:      departments,
		registry:         reg,
		documents:        documents,
		locationRequired: locationRequired,
		logger:           logger,
	}
}

// Validate applies the submission rules in a fixed order and returns the
// first failure. It is pure with respect to the store: collaborator lookups
// are read-only and nothing is persisted here.
func (v *Validator) Validate(ctx context.Context, dto SubmissionDTO, mode Mode) *internal.AppError {
	// Rule 1: required core fields, first missing one wins.
	required := []struct {
		name  string
		value string
	}{
		{"assetId", dto.AssetID},
		{"assetName", dto.AssetName},
		{"assetType", dto.AssetType},
		{"status", dto.Status},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return internal.NewMissingFieldError(f.name)
		}
	}

	// Rule 2: the type tag must be recognized.
	if !IsKnownType(dto.AssetType) {
		return internal.NewInvalidEnumError("assetType", Types...)
	}

	if dto.AssetType == TypeEmployee {
		if err := v.validateEmployeeFields(dto); err != nil {
			return err
		}
	} else {
		if err := v.validatePhysicalFields(dto, mode); err != nil {
			return err
		}
	}

	// Rule 5: assignedTo is a weak reference but must resolve at creation.
	if dto.AssignedTo != nil && *dto.AssignedTo != "" {
		exists, err := v.departments.DepartmentExists(ctx, *dto.AssignedTo)
		if err != nil {
			v.logger.Error("department lookup failed", "department_id", *dto.AssignedTo, "error", err)
			return internal.NewStorageError("failed to resolve assignedTo", err)
		}
		if !exists {
			return internal.NewUnresolvedReferenceError("assignedTo", *dto.AssignedTo)
		}
	}

	// Rule 6: identifier availability, create only. The store's unique
	// constraint remains the authoritative check.
	if mode == ModeCreate {
		available, err := v.registry.IsAvailable(ctx, registry.NamespaceAsset, dto.AssetID)
		if err != nil {
			v.logger.Error("registry availability check failed", "asset_id", dto.AssetID, "error", err)
			return internal.NewStorageError("failed to check asset identifier", err)
		}
		if !available {
			return internal.NewDuplicateIdentifierError("assetId", dto.AssetID)
		}
	}

	return nil
}

// Rule 3: employee submissions need the employee field set, checked in a
// fixed order, and a recognized level.
func (v *Validator) validateEmployeeFields(dto SubmissionDTO) *internal.AppError {
	required := []struct {
		name  string
		value string
	}{
		{"employeeName", dto.EmployeeName},
		{"employeeId", dto.EmployeeID},
		{"section", dto.Section},
		{"employeeLevel", dto.EmployeeLevel},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return internal.NewMissingFieldError(f.name)
		}
	}

	if !contains(EmployeeLevels, dto.EmployeeLevel) {
		return internal.NewInvalidEnumError("employeeLevel", EmployeeLevels...)
	}

	if dto.IDDocument != "" && v.documents != nil && !v.documents.Accepts(dto.IDDocument) {
		return internal.NewValidationFieldError("idDocument",
			"idDocument must reference a previously uploaded file",
			internal.ErrCodeValidationFailed)
	}

	return nil
}

// Rule 4: physical submissions need a location on creation when the
// deployment demands one; condition is optional but must be a recognized
// value when present.
func (v *Validator) validatePhysicalFields(dto SubmissionDTO, mode Mode) *internal.AppError {
	if v.locationRequired && mode == ModeCreate && strings.TrimSpace(dto.Location) == "" {
		return internal.NewMissingFieldError("location")
	}

	if dto.Condition != "" && !contains(Conditions, dto.Condition) {
		return internal.NewInvalidEnumError("condition", Conditions...)
	}

	if dto.CertificateDocument != "" && v.documents != nil && !v.documents.Accepts(dto.CertificateDocument) {
		return internal.NewValidationFieldError("certificateDocument",
			"certificateDocument must reference a previously uploaded file",
			internal.ErrCodeValidationFailed)
	}

	return nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if v == candidate {
			return true
		}
	}
	return false
}
