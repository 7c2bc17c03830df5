package asset_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/go-chi/chi"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	internal "github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/asset"
	assetPostgres "github.com/frahmantamala/asset-management/internal/asset/postgres"
	assetDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/asset"
	registryDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/registry"
	"github.com/frahmantamala/asset-management/internal/registry"
	registryPostgres "github.com/frahmantamala/asset-management/internal/registry/postgres"
)

// withPrincipal injects the caller the way the auth middleware would.
func withPrincipal(p *internal.Principal) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(internal.ContextWithPrincipal(r.Context(), p)))
		})
	}
}

var _ = Describe("Asset Handler Integration", func() {
	var (
		db        *gorm.DB
		handler   *asset.Handler
		adminWho  *internal.Principal
		deptWho   *internal.Principal
		newRouter func(p *internal.Principal) *chi.Mux
	)

	BeforeEach(func() {
		var err error
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			TranslateError: true,
			Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&assetDatamodel.Asset{}, &registryDatamodel.Identifier{})
		Expect(err).NotTo(HaveOccurred())

		registryService := registry.NewService(registryPostgres.NewRepository(db), slogger)
		departments := &stubDepartments{known: map[string]bool{"DEPT-IT": true}}
		documents := &stubDocuments{accepted: map[string]bool{}}
		validator := asset.NewValidator(departments, registryService, documents, true, slogger)
		workflow := asset.NewWorkflow(asset.WorkflowApproval, false)
		service := asset.NewService(assetPostgres.NewAssetRepository(db), validator, workflow, registryService, nil, slogger)
		handler = asset.NewHandler(service)

		adminWho = &internal.Principal{ID: "ADM-001", Role: internal.RoleAdmin}
		deptWho = &internal.Principal{ID: "DEPT-IT", Role: internal.RoleDepartment}

		newRouter = func(p *internal.Principal) *chi.Mux {
			router := chi.NewRouter()
			router.Use(withPrincipal(p))
			router.Post("/assets", handler.CreateAsset)
			router.Get("/assets", handler.ListAssets)
			router.Get("/assets/{id}", handler.GetAsset)
			router.Put("/assets/{id}", handler.UpdateAsset)
			router.Delete("/assets/{id}", handler.DeleteAsset)
			router.Patch("/assets/{id}/approve", handler.ApproveAsset)
			router.Patch("/assets/{id}/reject", handler.RejectAsset)
			router.Patch("/assets/{id}/status", handler.UpdateAssetStatus)
			return router
		}
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	do := func(p *internal.Principal, method, target string, body interface{}) *httptest.ResponseRecorder {
		var reader *bytes.Reader
		if body != nil {
			data, err := json.Marshal(body)
			Expect(err).NotTo(HaveOccurred())
			reader = bytes.NewReader(data)
		} else {
			reader = bytes.NewReader(nil)
		}
		req := httptest.NewRequest(method, target, reader)
		w := httptest.NewRecorder()
		newRouter(p).ServeHTTP(w, req)
		return w
	}

	decodeError := func(w *httptest.ResponseRecorder) (string, string) {
		var envelope struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		Expect(json.NewDecoder(w.Body).Decode(&envelope)).To(Succeed())
		return envelope.Error.Code, envelope.Error.Message
	}

	physical := func(id string) map[string]interface{} {
		return map[string]interface{}{
			"assetId":   id,
			"assetName": "Rack Server",
			"assetType": "system",
			"status":    "pending",
			"location":  "Server Room A",
		}
	}

	It("creates an asset and reads it back", func() {
		w := do(deptWho, http.MethodPost, "/assets", physical("AST-1"))
		Expect(w.Code).To(Equal(http.StatusCreated))

		w = do(deptWho, http.MethodGet, "/assets/AST-1", nil)
		Expect(w.Code).To(Equal(http.StatusOK))

		var got asset.Asset
		Expect(json.NewDecoder(w.Body).Decode(&got)).To(Succeed())
		Expect(got.AssetName).To(Equal("Rack Server"))
		Expect(got.Status).To(Equal("pending"))
	})

	It("rejects a duplicate assetId with 400 and DUPLICATE_IDENTIFIER", func() {
		Expect(do(deptWho, http.MethodPost, "/assets", physical("AST-1")).Code).To(Equal(http.StatusCreated))

		w := do(deptWho, http.MethodPost, "/assets", physical("AST-1"))
		Expect(w.Code).To(Equal(http.StatusBadRequest))

		code, _ := decodeError(w)
		Expect(code).To(Equal(string(internal.ErrCodeDuplicateIdentifier)))
	})

	It("rejects an employee submission missing employeeId with 400", func() {
		employee := map[string]interface{}{
			"assetId":       "EMP-1",
			"assetName":     "Jane Smith",
			"assetType":     "employee",
			"status":        "pending",
			"employeeName":  "Jane Smith",
			"section":       "Infrastructure",
			"employeeLevel": "OS",
		}

		w := do(deptWho, http.MethodPost, "/assets", employee)
		Expect(w.Code).To(Equal(http.StatusBadRequest))

		code, message := decodeError(w)
		Expect(code).To(Equal(string(internal.ErrCodeMissingRequiredField)))
		Expect(message).To(ContainSubstring("employeeId"))
	})

	It("returns 404 for an unknown asset", func() {
		w := do(deptWho, http.MethodGet, "/assets/AST-404", nil)
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("approves as admin and refuses a later reject", func() {
		Expect(do(deptWho, http.MethodPost, "/assets", physical("AST-1")).Code).To(Equal(http.StatusCreated))

		w := do(adminWho, http.MethodPatch, "/assets/AST-1/approve", nil)
		Expect(w.Code).To(Equal(http.StatusOK))

		w = do(adminWho, http.MethodPatch, "/assets/AST-1/reject", map[string]string{"reason": "late"})
		Expect(w.Code).To(Equal(http.StatusBadRequest))

		code, _ := decodeError(w)
		Expect(code).To(Equal(string(internal.ErrCodeInvalidTransition)))
	})

	It("denies approval to department principals", func() {
		Expect(do(deptWho, http.MethodPost, "/assets", physical("AST-1")).Code).To(Equal(http.StatusCreated))

		w := do(deptWho, http.MethodPatch, "/assets/AST-1/approve", nil)
		Expect(w.Code).To(Equal(http.StatusForbidden))
	})

	It("deletes idempotently, reporting true then false", func() {
		Expect(do(deptWho, http.MethodPost, "/assets", physical("AST-1")).Code).To(Equal(http.StatusCreated))

		w := do(deptWho, http.MethodDelete, "/assets/AST-1", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		var first map[string]bool
		Expect(json.NewDecoder(w.Body).Decode(&first)).To(Succeed())
		Expect(first["deleted"]).To(BeTrue())

		w = do(deptWho, http.MethodDelete, "/assets/AST-1", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		var second map[string]bool
		Expect(json.NewDecoder(w.Body).Decode(&second)).To(Succeed())
		Expect(second["deleted"]).To(BeFalse())
	})

	It("scopes listings to the caller's department", func() {
		mine := physical("AST-1")
		mine["assignedTo"] = "DEPT-IT"
		Expect(do(deptWho, http.MethodPost, "/assets", mine).Code).To(Equal(http.StatusCreated))
		Expect(do(deptWho, http.MethodPost, "/assets", physical("AST-2")).Code).To(Equal(http.StatusCreated))

		w := do(deptWho, http.MethodGet, "/assets", nil)
		Expect(w.Code).To(Equal(http.StatusOK))

		var body struct {
			Assets []asset.Asset `json:"assets"`
		}
		Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
		Expect(body.Assets).To(HaveLen(1))
		Expect(body.Assets[0].AssetID).To(Equal("AST-1"))

		w = do(adminWho, http.MethodGet, "/assets", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
		Expect(body.Assets).To(HaveLen(2))
	})

	It("applies partial updates without touching other fields", func() {
		Expect(do(deptWho, http.MethodPost, "/assets", physical("AST-1")).Code).To(Equal(http.StatusCreated))

		w := do(deptWho, http.MethodPut, "/assets/AST-1", map[string]string{"assetName": "Backup Server"})
		Expect(w.Code).To(Equal(http.StatusOK))

		var got asset.Asset
		Expect(json.NewDecoder(w.Body).Decode(&got)).To(Succeed())
		Expect(got.AssetName).To(Equal("Backup Server"))
		Expect(got.Location).To(Equal("Server Room A"))
	})
})
