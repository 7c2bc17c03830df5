package department_test

import (
	"context"
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internal "github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/department"
)

type memoryRepository struct {
	byID map[string]*department.Department
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{byID: make(map[string]*department.Department)}
}

func (m *memoryRepository) Create(_ context.Context, d *department.Department) error {
	if _, exists := m.byID[d.DepartmentID]; exists {
		return department.ErrDuplicate
	}
	copied := *d
	m.byID[d.DepartmentID] = &copied
	return nil
}

func (m *memoryRepository) GetByDepartmentID(_ context.Context, departmentID string) (*department.Department, error) {
	d, exists := m.byID[departmentID]
	if !exists {
		return nil, department.ErrNotFound
	}
	copied := *d
	return &copied, nil
}

func (m *memoryRepository) Exists(_ context.Context, departmentID string) (bool, error) {
	_, exists := m.byID[departmentID]
	return exists, nil
}

type memoryRegistry struct {
	reserved map[string]bool
}

func newMemoryRegistry() *memoryRegistry {
	return &memoryRegistry{reserved: make(map[string]bool)}
}

func (m *memoryRegistry) Reserve(_ context.Context, namespace, id string) error {
	key := namespace + ":" + id
	if m.reserved[key] {
		return internal.NewDuplicateIdentifierError(namespace, id)
	}
	m.reserved[key] = true
	return nil
}

func (m *memoryRegistry) Release(_ context.Context, namespace, id string) error {
	delete(m.reserved, namespace+":"+id)
	return nil
}

type stubVerifier struct {
	verified map[string]bool
}

func (s *stubVerifier) IsVerified(_ context.Context, email string) (bool, error) {
	return s.verified[email], nil
}

var _ = Describe("DepartmentService", func() {
	var (
		service  *department.Service
		repo     *memoryRepository
		registry *memoryRegistry
		verifier *stubVerifier
		ctx      context.Context
	)

	newService := func(requireVerified bool) *department.Service {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		return department.NewService(repo, registry, verifier, requireVerified, 10, logger)
	}

	registration := func() department.RegisterDTO {
		return department.RegisterDTO{
			DepartmentID:   "DEPT-IT",
			DepartmentName: "Information Technology",
			SectionName:    "Infrastructure",
			EmployeeLevel:  "OS",
			Email:          "it@office.local",
			Password:       "s3cretpass",
		}
	}

	BeforeEach(func() {
		repo = newMemoryRepository()
		registry = newMemoryRegistry()
		verifier = &stubVerifier{verified: map[string]bool{}}
		ctx = context.Background()
		service = newService(false)
	})

	Describe("Register", func() {
		It("creates the account and returns a profile without the credential", func() {
			profile, err := service.Register(ctx, registration())
			Expect(err).NotTo(HaveOccurred())
			Expect(profile.DepartmentID).To(Equal("DEPT-IT"))
			Expect(profile.Email).To(Equal("it@office.local"))

			stored, err := repo.GetByDepartmentID(ctx, "DEPT-IT")
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.PasswordHash).NotTo(BeEmpty())
			Expect(stored.PasswordHash).NotTo(Equal("s3cretpass"))
		})

		It("lowercases the email before claiming it", func() {
			dto := registration()
			dto.Email = "IT@Office.Local"

			profile, err := service.Register(ctx, dto)
			Expect(err).NotTo(HaveOccurred())
			Expect(profile.Email).To(Equal("it@office.local"))
			Expect(registry.reserved["email:it@office.local"]).To(BeTrue())
		})

		It("rejects a duplicate department id", func() {
			_, err := service.Register(ctx, registration())
			Expect(err).NotTo(HaveOccurred())

			dto := registration()
			dto.Email = "other@office.local"
			_, err = service.Register(ctx, dto)
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeDuplicateIdentifier))
		})

		It("releases the department id when the email is already claimed", func() {
			_, err := service.Register(ctx, registration())
			Expect(err).NotTo(HaveOccurred())

			dto := registration()
			dto.DepartmentID = "DEPT-HR"
			_, err = service.Register(ctx, dto)
			Expect(err).To(HaveOccurred())

			// A retry with a fresh email must be able to claim DEPT-HR again.
			dto.Email = "hr@office.local"
			_, err = service.Register(ctx, dto)
			Expect(err).NotTo(HaveOccurred())
		})

		It("validates the payload with first-failure precedence", func() {
			dto := registration()
			dto.DepartmentID = ""
			dto.Email = ""

			_, err := service.Register(ctx, dto)
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeMissingRequiredField))
			Expect(appErr.Message).To(ContainSubstring("departmentId"))
		})

		Context("when email verification is required", func() {
			BeforeEach(func() {
				service = newService(true)
			})

			It("rejects an unverified email", func() {
				_, err := service.Register(ctx, registration())
				Expect(err).To(HaveOccurred())
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeEmailNotVerified))
			})

			It("accepts a verified email", func() {
				verifier.verified["it@office.local"] = true

				_, err := service.Register(ctx, registration())
				Expect(err).NotTo(HaveOccurred())
			})
		})
	})

	Describe("Authenticate", func() {
		BeforeEach(func() {
			_, err := service.Register(ctx, registration())
			Expect(err).NotTo(HaveOccurred())
		})

		It("authenticates with the right credentials", func() {
			profile, err := service.Authenticate(ctx, "DEPT-IT", "s3cretpass")
			Expect(err).NotTo(HaveOccurred())
			Expect(profile.DepartmentID).To(Equal("DEPT-IT"))
		})

		It("returns the identical generic error for an unknown id and a wrong password", func() {
			_, unknownErr := service.Authenticate(ctx, "DEPT-NOPE", "s3cretpass")
			_, wrongErr := service.Authenticate(ctx, "DEPT-IT", "bad password")

			Expect(unknownErr).To(HaveOccurred())
			Expect(wrongErr).To(HaveOccurred())
			Expect(unknownErr).To(BeIdenticalTo(wrongErr))
			Expect(unknownErr).To(MatchError(internal.ErrInvalidCredentials))
		})
	})

	Describe("DepartmentExists", func() {
		It("resolves registered departments only", func() {
			_, err := service.Register(ctx, registration())
			Expect(err).NotTo(HaveOccurred())

			exists, err := service.DepartmentExists(ctx, "DEPT-IT")
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeTrue())

			exists, err = service.DepartmentExists(ctx, "DEPT-GHOST")
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())
		})
	})
})
