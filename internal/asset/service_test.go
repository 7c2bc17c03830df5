package asset_test

import (
	"context"
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internal "github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/asset"
	"github.com/frahmantamala/asset-management/internal/core/events"
)

type mockAssetRepository struct {
	assets      map[string]*asset.Asset
	createError error
	updateError error
}

func newMockAssetRepository() *mockAssetRepository {
	return &mockAssetRepository{assets: make(map[string]*asset.Asset)}
}

func (m *mockAssetRepository) Create(_ context.Context, a *asset.Asset) error {
	if m.createError != nil {
		return m.createError
	}
	if _, exists := m.assets[a.AssetID]; exists {
		return asset.ErrDuplicate
	}
	copied := *a
	m.assets[a.AssetID] = &copied
	return nil
}

func (m *mockAssetRepository) GetByID(_ context.Context, assetID string) (*asset.Asset, error) {
	a, exists := m.assets[assetID]
	if !exists {
		return nil, asset.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (m *mockAssetRepository) ListAll(_ context.Context, limit, offset int) ([]*asset.Asset, error) {
	out := make([]*asset.Asset, 0, len(m.assets))
	for _, a := range m.assets {
		copied := *a
		out = append(out, &copied)
	}
	return out, nil
}

func (m *mockAssetRepository) ListByDepartment(_ context.Context, departmentID string, limit, offset int) ([]*asset.Asset, error) {
	out := make([]*asset.Asset, 0)
	for _, a := range m.assets {
		if a.AssignedTo != nil && *a.AssignedTo == departmentID {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *mockAssetRepository) Update(_ context.Context, a *asset.Asset) error {
	if m.updateError != nil {
		return m.updateError
	}
	copied := *a
	m.assets[a.AssetID] = &copied
	return nil
}

func (m *mockAssetRepository) Delete(_ context.Context, assetID string) (bool, error) {
	if _, exists := m.assets[assetID]; !exists {
		return false, nil
	}
	delete(m.assets, assetID)
	return true, nil
}

type mockRegistryService struct {
	reserved map[string]bool
	released []string
}

func newMockRegistryService() *mockRegistryService {
	return &mockRegistryService{reserved: make(map[string]bool)}
}

func (m *mockRegistryService) Reserve(_ context.Context, namespace, id string) error {
	key := namespace + ":" + id
	if m.reserved[key] {
		return internal.NewDuplicateIdentifierError("assetId", id)
	}
	m.reserved[key] = true
	return nil
}

func (m *mockRegistryService) Release(_ context.Context, namespace, id string) error {
	key := namespace + ":" + id
	delete(m.reserved, key)
	m.released = append(m.released, key)
	return nil
}

func (m *mockRegistryService) IsAvailable(_ context.Context, namespace, id string) (bool, error) {
	return !m.reserved[namespace+":"+id], nil
}

type recordingBus struct {
	published []events.Event
}

func (b *recordingBus) Publish(_ context.Context, event events.Event) error {
	b.published = append(b.published, event)
	return nil
}

func (b *recordingBus) eventTypes() []string {
	out := make([]string, len(b.published))
	for i, e := range b.published {
		out[i] = e.EventType()
	}
	return out
}

var _ = Describe("AssetService", func() {
	var (
		service  *asset.Service
		repo     *mockAssetRepository
		reg      *mockRegistryService
		bus      *recordingBus
		ctx      context.Context
		adminWho *internal.Principal
		deptWho  *internal.Principal
	)

	newService := func(kind asset.WorkflowKind) *asset.Service {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		departments := &stubDepartments{known: map[string]bool{"DEPT-IT": true}}
		documents := &stubDocuments{accepted: map[string]bool{}}
		validator := asset.NewValidator(departments, reg, documents, true, logger)
		workflow := asset.NewWorkflow(kind, false)
		return asset.NewService(repo, validator, workflow, reg, bus, logger)
	}

	BeforeEach(func() {
		repo = newMockAssetRepository()
		reg = newMockRegistryService()
		bus = &recordingBus{}
		ctx = context.Background()
		adminWho = &internal.Principal{ID: "ADM-001", Role: internal.RoleAdmin}
		deptWho = &internal.Principal{ID: "DEPT-IT", Role: internal.RoleDepartment}
		service = newService(asset.WorkflowApproval)
	})

	submission := func(id string) asset.SubmissionDTO {
		return asset.SubmissionDTO{
			AssetID:   id,
			AssetName: "Rack Server",
			AssetType: asset.TypeSystem,
			Status:    asset.StatusPending,
			Location:  "Server Room A",
		}
	}

	Describe("Create", func() {
		It("persists a valid submission and reserves its identifier", func() {
			created, err := service.Create(ctx, submission("AST-1"), "DEPT-IT")
			Expect(err).NotTo(HaveOccurred())
			Expect(created.AssetID).To(Equal("AST-1"))
			Expect(reg.reserved["asset:AST-1"]).To(BeTrue())

			stored, err := service.GetByID(ctx, "AST-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.AssetName).To(Equal("Rack Server"))
			Expect(bus.eventTypes()).To(ContainElement(events.AssetSubmitted))
		})

		It("rejects a duplicate identifier", func() {
			_, err := service.Create(ctx, submission("AST-1"), "DEPT-IT")
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create(ctx, submission("AST-1"), "DEPT-IT")
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeDuplicateIdentifier))
		})

		It("rejects a non-pending initial status in the approval workflow", func() {
			dto := submission("AST-2")
			dto.Status = asset.StatusApproved

			_, err := service.Create(ctx, dto, "DEPT-IT")
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidTransition))
		})

		It("releases the identifier when the store insert fails", func() {
			repo.createError = asset.ErrDuplicate

			_, err := service.Create(ctx, submission("AST-3"), "DEPT-IT")
			Expect(err).To(HaveOccurred())
			Expect(reg.reserved["asset:AST-3"]).To(BeFalse())
		})
	})

	Describe("Update", func() {
		It("applies a partial update and keeps unset fields", func() {
			_, err := service.Create(ctx, submission("AST-1"), "DEPT-IT")
			Expect(err).NotTo(HaveOccurred())

			name := "Backup Server"
			updated, err := service.Update(ctx, "AST-1", asset.UpdateDTO{AssetName: &name})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.AssetName).To(Equal("Backup Server"))
			Expect(updated.Location).To(Equal("Server Room A"))
		})

		It("re-validates the merged record", func() {
			_, err := service.Create(ctx, submission("AST-1"), "DEPT-IT")
			Expect(err).NotTo(HaveOccurred())

			ghost := "DEPT-GHOST"
			_, err = service.Update(ctx, "AST-1", asset.UpdateDTO{AssignedTo: &ghost})
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeUnresolvedReference))
		})

		It("returns not found for unknown assets", func() {
			name := "whatever"
			_, err := service.Update(ctx, "AST-404", asset.UpdateDTO{AssetName: &name})
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeAssetNotFound))
		})
	})

	Describe("Delete", func() {
		It("reports true then false for the same id", func() {
			_, err := service.Create(ctx, submission("AST-1"), "DEPT-IT")
			Expect(err).NotTo(HaveOccurred())

			removed, err := service.Delete(ctx, "AST-1", "DEPT-IT")
			Expect(err).NotTo(HaveOccurred())
			Expect(removed).To(BeTrue())

			removed, err = service.Delete(ctx, "AST-1", "DEPT-IT")
			Expect(err).NotTo(HaveOccurred())
			Expect(removed).To(BeFalse())
		})

		It("frees the identifier for reuse", func() {
			_, err := service.Create(ctx, submission("AST-1"), "DEPT-IT")
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Delete(ctx, "AST-1", "DEPT-IT")
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create(ctx, submission("AST-1"), "DEPT-IT")
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("Approve and Reject", func() {
		It("approves a pending submission as admin", func() {
			_, err := service.Create(ctx, submission("AST-1"), "DEPT-IT")
			Expect(err).NotTo(HaveOccurred())

			approved, err := service.Approve(ctx, "AST-1", adminWho)
			Expect(err).NotTo(HaveOccurred())
			Expect(approved.Status).To(Equal(asset.StatusApproved))
			Expect(bus.eventTypes()).To(ContainElement(events.AssetApproved))
		})

		It("refuses a rejection after approval", func() {
			_, err := service.Create(ctx, submission("AST-1"), "DEPT-IT")
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Approve(ctx, "AST-1", adminWho)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Reject(ctx, "AST-1", "changed our minds", adminWho)
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidTransition))
		})

		It("denies transitions to non-admin principals", func() {
			_, err := service.Create(ctx, submission("AST-1"), "DEPT-IT")
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Approve(ctx, "AST-1", deptWho)
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeAdminRequired))
		})
	})

	Describe("SetStatus in the inventory workflow", func() {
		BeforeEach(func() {
			service = newService(asset.WorkflowInventory)
		})

		It("moves an asset freely between inventory statuses", func() {
			dto := submission("AST-1")
			dto.Status = asset.StatusAvailable
			_, err := service.Create(ctx, dto, "ADM-001")
			Expect(err).NotTo(HaveOccurred())

			updated, err := service.SetStatus(ctx, "AST-1", asset.StatusMaintenance, adminWho)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(asset.StatusMaintenance))

			updated, err = service.SetStatus(ctx, "AST-1", asset.StatusAvailable, adminWho)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(asset.StatusAvailable))
		})

		It("rejects statuses outside the inventory vocabulary", func() {
			dto := submission("AST-1")
			dto.Status = asset.StatusAvailable
			_, err := service.Create(ctx, dto, "ADM-001")
			Expect(err).NotTo(HaveOccurred())

			_, err = service.SetStatus(ctx, "AST-1", asset.StatusApproved, adminWho)
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidEnum))
		})
	})
})
