package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier/internal/config"
	"atelier/internal/database"
	"atelier/internal/models"
	"atelier/internal/services"
)

func newAuthApp(t *testing.T) (*gin.Engine, *database.Database) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{
		SessionSecret: []byte("test-session-secret-32-bytes!!!!"),
		UploadDir:     t.TempDir(),
	}
	h := NewHandler(db, cfg, &stubPayments{}, services.NewEmailService(cfg))

	r := gin.New()
	r.POST("/auth/login", h.HandleLogin)
	r.POST("/auth/register", h.HandleRegister)
	return r, db
}

func postForm(t *testing.T, r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterCreatesUser(t *testing.T) {
	r, db := newAuthApp(t)
	w := postForm(t, r, "/auth/register", url.Values{
		"username":         {"june"},
		"email":            {"june@example.com"},
		"password":         {"hunter22"},
		"confirm_password": {"hunter22"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	user, err := db.GetUserByUsername("june")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.True(t, user.IsActive)
	assert.True(t, user.CheckPassword("hunter22"))
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	r, db := newAuthApp(t)
	w := postForm(t, r, "/auth/register", url.Values{
		"username":         {"june"},
		"email":            {"june@example.com"},
		"password":         {"abc"},
		"confirm_password": {"abc"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/auth/register", w.Header().Get("Location"))

	_, err := db.GetUserByUsername("june")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	r, db := newAuthApp(t)
	existing := models.User{Username: "june", Email: "other@example.com", PasswordHash: "x", IsActive: true}
	require.NoError(t, db.CreateUser(&existing))

	w := postForm(t, r, "/auth/register", url.Values{
		"username":         {"june"},
		"email":            {"june@example.com"},
		"password":         {"hunter22"},
		"confirm_password": {"hunter22"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/auth/register", w.Header().Get("Location"))
}

func TestLoginRejectsDeactivatedAccount(t *testing.T) {
	r, db := newAuthApp(t)
	user := models.User{Username: "june", Email: "june@example.com", IsActive: false}
	require.NoError(t, user.SetPassword("hunter22"))
	require.NoError(t, db.CreateUser(&user))

	w := postForm(t, r, "/auth/login", url.Values{
		"username": {"june"},
		"password": {"hunter22"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/auth/login", w.Header().Get("Location"))
}

func TestLoginRedirectsToSafeNextOnly(t *testing.T) {
	r, db := newAuthApp(t)
	user := models.User{Username: "june", Email: "june@example.com", IsActive: true}
	require.NoError(t, user.SetPassword("hunter22"))
	require.NoError(t, db.CreateUser(&user))

	w := postForm(t, r, "/auth/login", url.Values{
		"username": {"june"},
		"password": {"hunter22"},
		"next":     {"/shop/checkout"},
	})
	assert.Equal(t, "/shop/checkout", w.Header().Get("Location"))

	w = postForm(t, r, "/auth/login", url.Values{
		"username": {"june"},
		"password": {"hunter22"},
		"next":     {"https://evil.example.com/"},
	})
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = postForm(t, r, "/auth/login", url.Values{
		"username": {"june"},
		"password": {"hunter22"},
		"next":     {"//evil.example.com/"},
	})
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestLoginWrongPassword(t *testing.T) {
	r, db := newAuthApp(t)
	user := models.User{Username: "june", Email: "june@example.com", IsActive: true}
	require.NoError(t, user.SetPassword("hunter22"))
	require.NoError(t, db.CreateUser(&user))

	w := postForm(t, r, "/auth/login", url.Values{
		"username": {"june"},
		"password": {"wrong"},
	})
	assert.Equal(t, "/auth/login", w.Header().Get("Location"))
}
