package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/asset-management/internal/admin"
	"github.com/frahmantamala/asset-management/internal/asset"
	"github.com/frahmantamala/asset-management/internal/auth"
	"github.com/frahmantamala/asset-management/internal/department"
	"github.com/frahmantamala/asset-management/internal/otp"
	"github.com/frahmantamala/asset-management/internal/transport/middleware"
	"github.com/frahmantamala/asset-management/internal/transport/swagger"
	"github.com/frahmantamala/asset-management/internal/upload"
	"github.com/go-chi/chi"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Asset      *asset.Handler
	Department *department.Handler
	Admin      *admin.Handler
	Auth       *auth.Handler
	Otp        *otp.Handler
	Upload     *upload.Handler
}

// RegisterAllRoutes wires middleware and mounts the API under /api/v1.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, tokens auth.TokenGeneratorAPI, uploadDir string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.Logging(logger))

	// OpenAPI spec and Swagger UI live outside the API prefix.
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	// Stored documents are served read-only from the upload directory.
	router.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))

	authenticate := auth.Authenticator(tokens, logger)
	requireAdmin := auth.RequireAdmin(logger)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Registration and login.
		r.Route("/departments", func(sr chi.Router) {
			sr.Post("/signup", h.Department.Signup)
			sr.Post("/login", h.Department.Login)
		})
		r.Route("/admins", func(sr chi.Router) {
			sr.Post("/login", h.Admin.Login)
			sr.Group(func(ar chi.Router) {
				ar.Use(authenticate, requireAdmin)
				ar.Post("/signup", h.Admin.Signup)
			})
		})

		// Token maintenance for either role.
		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		// Email verification precedes signup, so these stay public.
		r.Route("/verification", func(sr chi.Router) {
			sr.Post("/send", h.Otp.SendCode)
			sr.Post("/verify", h.Otp.VerifyCode)
		})

		// Everything below requires a valid token.
		r.Group(func(pr chi.Router) {
			pr.Use(authenticate)

			pr.Post("/upload", h.Upload.UploadDocument)

			pr.Route("/assets", func(ar chi.Router) {
				ar.Post("/", h.Asset.CreateAsset)
				ar.Get("/", h.Asset.ListAssets)
				ar.Get("/{id}", h.Asset.GetAsset)
				ar.Put("/{id}", h.Asset.UpdateAsset)
				ar.Delete("/{id}", h.Asset.DeleteAsset)

				// Validation decisions and status changes are admin-only;
				// the service re-checks the caller's role as well.
				ar.Group(func(mr chi.Router) {
					mr.Use(requireAdmin)
					mr.Patch("/{id}/approve", h.Asset.ApproveAsset)
					mr.Patch("/{id}/reject", h.Asset.RejectAsset)
					mr.Patch("/{id}/status", h.Asset.UpdateAssetStatus)
				})
			})
		})
	})
}
