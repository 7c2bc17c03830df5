package auth_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internal "github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/auth"
	"github.com/frahmantamala/asset-management/internal/transport"
)

var _ = Describe("Auth Handler", func() {
	var (
		gen     *auth.JWTTokenGenerator
		handler *auth.Handler
	)

	BeforeEach(func() {
		gen = auth.NewJWTTokenGenerator(
			"0123456789abcdef0123456789abcdef",
			"fedcba9876543210fedcba9876543210",
			15*time.Minute,
			7*24*time.Hour,
		)
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		handler = auth.NewHandler(transport.NewBaseHandler(slogger), gen)
	})

	Describe("RefreshToken", func() {
		It("exchanges a valid refresh token for a new pair", func() {
			p := &internal.Principal{ID: "DEPT-IT", Email: "it@office.local", Role: internal.RoleDepartment}
			tokens, err := auth.IssueTokens(gen, p)
			Expect(err).NotTo(HaveOccurred())

			body, err := json.Marshal(map[string]string{"refreshToken": tokens.RefreshToken})
			Expect(err).NotTo(HaveOccurred())

			req := httptest.NewRequest(http.MethodPost, "/auth/refresh", bytes.NewReader(body))
			w := httptest.NewRecorder()
			handler.RefreshToken(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var pair auth.AuthTokens
			Expect(json.NewDecoder(w.Body).Decode(&pair)).To(Succeed())
			Expect(pair.AccessToken).NotTo(BeEmpty())

			claims, err := gen.ValidateToken(pair.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.PrincipalID).To(Equal("DEPT-IT"))
			Expect(claims.Role).To(Equal(internal.RoleDepartment))
		})

		It("rejects a garbage token with 401", func() {
			body := []byte(`{"refreshToken":"not-a-token"}`)
			req := httptest.NewRequest(http.MethodPost, "/auth/refresh", bytes.NewReader(body))
			w := httptest.NewRecorder()
			handler.RefreshToken(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("rejects an empty body field with 400", func() {
			body := []byte(`{}`)
			req := httptest.NewRequest(http.MethodPost, "/auth/refresh", bytes.NewReader(body))
			w := httptest.NewRecorder()
			handler.RefreshToken(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("Logout", func() {
		It("returns 204 for a valid bearer token", func() {
			token, err := gen.GenerateAccessToken("ADM-001", internal.RoleAdmin, "admin@office.local")
			Expect(err).NotTo(HaveOccurred())

			req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			handler.Logout(w, req)

			Expect(w.Code).To(Equal(http.StatusNoContent))
		})

		It("returns 401 without a token", func() {
			req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
			w := httptest.NewRecorder()
			handler.Logout(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})
	})
})
