package user

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/zerohouse/2015-01-HUDIWEB-JADO/api/middleware"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/api/response"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/application/auth"
	shopapp "github.com/zerohouse/2015-01-HUDIWEB-JADO/application/shop"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/config"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/infrastructure/persistence/mocks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := mocks.NewStore()
	uow := mocks.NewMockUnitOfWork()
	authService := auth.NewService(store.Users(), uow, "/")
	shopService := shopapp.NewApplicationService(shopapp.Dependencies{
		Shops:      store.Shops(),
		Boards:     store.Boards(),
		Categories: store.Categories(),
		Users:      store.Users(),
		Products:   store.Products(),
		Articles:   store.Articles(),
		Payments:   store.Payments(),
		UoW:        uow,
	})

	r := gin.New()
	r.Use(middleware.SessionMiddleware(&config.SessionConfig{Name: "jado", Secret: "test-secret", MaxAge: 3600}))
	NewController(authService, shopService).RegisterRoutes(r)
	return r
}

func do(r *gin.Engine, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "jado" {
			return c
		}
	}
	t.Fatalf("no session cookie in response")
	return nil
}

func TestRegisterLoginLogout(t *testing.T) {
	r := setup(t)

	w := do(r, http.MethodPost, "/user/register", `{"id":"kim","name":"Kim","email":"Kim@Example.com","password":"secret"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "secret")

	w = do(r, http.MethodPost, "/user/login", `{"id":"kim","password":"secret"}`)
	require.Equal(t, http.StatusOK, w.Code)
	cookie := sessionCookie(t, w)

	w = do(r, http.MethodGet, "/user/me", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "kim@example.com", resp.Data.(map[string]interface{})["email"])

	w = do(r, http.MethodGet, "/user/logout", "", cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Equal(t, LandingView, w.Header().Get("X-View"))
	assert.True(t, sessionCookie(t, w).MaxAge < 0, "session cookie is expired")
}

func TestLogoutWithoutSession(t *testing.T) {
	r := setup(t)

	w := do(r, http.MethodGet, "/user/logout", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestLoginFailures(t *testing.T) {
	r := setup(t)
	require.Equal(t, http.StatusCreated,
		do(r, http.MethodPost, "/user/register", `{"id":"kim","name":"Kim","email":"kim@example.com","password":"secret"}`).Code)

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPost, "/user/login", `{"id":"kim","password":"wrong"}`).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPost, "/user/login", `{"id":"nobody","password":"secret"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/user/login", `{"id":"kim"}`).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/user/me", "").Code)
}

func TestRegisterDuplicate(t *testing.T) {
	r := setup(t)
	body := `{"id":"kim","name":"Kim","email":"kim@example.com","password":"secret"}`

	require.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/user/register", body).Code)
	assert.Equal(t, http.StatusConflict, do(r, http.MethodPost, "/user/register", body).Code)
}
