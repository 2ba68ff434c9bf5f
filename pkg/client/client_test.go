package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	adminHandler "megheza-backend/internal/domains/admin/handler"
	adminModel "megheza-backend/internal/domains/admin/model"
	adminService "megheza-backend/internal/domains/admin/service"
	"megheza-backend/internal/domains/application/board"
	appHandler "megheza-backend/internal/domains/application/handler"
	"megheza-backend/internal/domains/application/metrics"
	"megheza-backend/internal/domains/application/model"
	appService "megheza-backend/internal/domains/application/service"
	"megheza-backend/internal/domains/application/wizard"
	"megheza-backend/internal/infrastructure/storage"
	"megheza-backend/internal/shared/middleware"
	"megheza-backend/internal/testutil"
	"megheza-backend/pkg/client"
	"megheza-backend/pkg/jwt"
)

const password = "board-password"

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	svc := appService.NewApplicationService(testutil.NewMemoryRepository(), storage.NewInlineStore(), nil,
		metrics.New(prometheus.NewRegistry()), appService.Options{})
	auth := adminService.NewAuthService(hash, jwt.NewManager("client-test-secret", time.Hour), testutil.NewMemoryRevocationList())

	apps := appHandler.NewApplicationHandler(svc)
	admin := adminHandler.NewAdminHandler(auth)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/register", apps.Register)
	api.POST("/admin/login", admin.Login)
	protected := api.Group("/admin", middleware.AdminAuth(auth))
	protected.POST("/logout", admin.Logout)
	protected.GET("", apps.List)
	protected.GET("/:id", apps.Get)
	protected.PATCH("/:id/verify", apps.Verify)
	protected.DELETE("/:id", apps.Delete)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_SubmitAndReview(t *testing.T) {
	srv := newServer(t)
	c := client.New(srv.URL + "/").WithHTTPClient(srv.Client())
	ctx := context.Background()

	created, err := c.Submit(ctx, testutil.ValidSubmission("alice@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", created.Email)

	_, err = c.Submit(ctx, testutil.ValidSubmission("alice@example.com"))
	var fieldErr *model.ValidationError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, model.MsgDuplicateEmail, fieldErr.Fields["email"])

	_, err = c.List(ctx, model.ListFilter{})
	assert.ErrorIs(t, err, adminModel.ErrUnauthorized)

	assert.ErrorIs(t, c.Login(ctx, "wrong"), adminModel.ErrInvalidCredentials)
	require.NoError(t, c.Login(ctx, password))

	verified := true
	list, err := c.List(ctx, model.ListFilter{Verified: &verified})
	require.NoError(t, err)
	assert.Empty(t, list)

	resp, err := c.SetVerified(ctx, created.ID, true)
	require.NoError(t, err)
	assert.True(t, resp.Verified)

	got, err := c.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.Verified)

	require.NoError(t, c.Delete(ctx, created.ID))
	_, err = c.Get(ctx, created.ID)
	assert.ErrorIs(t, err, model.ErrApplicationNotFound)

	require.NoError(t, c.Logout(ctx))
	_, err = c.List(ctx, model.ListFilter{})
	assert.ErrorIs(t, err, adminModel.ErrUnauthorized)
}

func TestClient_DrivesWizardAndBoard(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()
	c := client.New(srv.URL).WithHTTPClient(srv.Client())

	w := wizard.New(c)
	sub := testutil.ValidSubmission("bob@example.com")
	w.Next()
	for field, value := range map[string]interface{}{
		"fullName":            "Bob Stone",
		"email":               sub.Email,
		"location":            sub.Location,
		"languages":           []string{"English"},
		"primaryRole":         sub.PrimaryRole,
		"mediaAffiliation":    sub.MediaAffiliation,
		"domainContribution1": sub.DomainContribution1,
		"recognition":         sub.Recognition,
		"subjects":            sub.Subjects,
		"motivation":          sub.Motivation,
		"reason":              sub.Reason,
		"affiliation":         sub.Affiliation,
		"selfDeclaration":     true,
		"termsAgreement":      true,
	} {
		require.NoError(t, w.SetField(field, value))
	}
	for w.Step() != wizard.StepReview {
		require.True(t, w.Next(), w.Errors())
	}
	require.NoError(t, w.Submit(ctx))
	assert.Equal(t, wizard.StepSubmitted, w.Step())

	require.NoError(t, c.Login(ctx, password))
	b := board.New(c)
	require.NoError(t, b.Load(ctx))
	items := b.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Bob Stone", items[0].FullName)

	require.NoError(t, b.Toggle(ctx, items[0].ID))
	full, err := b.Expand(ctx, items[0].ID)
	require.NoError(t, err)
	assert.True(t, full.Verified)
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":"APP005","message":"Please try again later"}}`))
	}))
	defer srv.Close()

	c := client.New(srv.URL).WithHTTPClient(srv.Client())
	_, err := c.Submit(context.Background(), testutil.ValidSubmission("alice@example.com"))
	assert.ErrorIs(t, err, client.ErrUnexpectedStatus)
	assert.ErrorContains(t, err, "Please try again later")
}
