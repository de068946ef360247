package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/shop"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/infrastructure/storage"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	r := gin.New()
	r.GET("/x", func(c *gin.Context) {
		c.Set(RequestIDKey, "req-1")
		handler(c)
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandleAppError(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", shop.NewShopNotFoundError("acme-shop"), http.StatusNotFound, "NOT_FOUND"},
		{"file missing", storage.ErrFileMissing, http.StatusBadRequest, "FILE_MISSING"},
		{"internal", fmt.Errorf("dial tcp: refused"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := serve(func(c *gin.Context) { HandleAppError(c, tc.err) })
			assert.Equal(t, tc.status, w.Code)

			resp := decode(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tc.code, resp.Error)
			assert.Equal(t, "req-1", resp.RequestID)
			assert.NotContains(t, resp.Message, "refused")
		})
	}
}

func TestHandleAppErrorLogLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	defer logger.ReplaceForTest(zap.New(core))()

	serve(func(c *gin.Context) { HandleAppError(c, shop.NewShopNotFoundError("x")) })
	serve(func(c *gin.Context) { HandleAppError(c, fmt.Errorf("boom")) })

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Contains(t, entries[1].ContextMap(), "stack")
}

func TestHandleSuccess(t *testing.T) {
	w := serve(func(c *gin.Context) { HandleSuccess(c, gin.H{"url": "acme-shop"}, "ok") })
	assert.Equal(t, http.StatusOK, w.Code)

	resp := decode(t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, map[string]interface{}{"url": "acme-shop"}, resp.Data)

	w = serve(func(c *gin.Context) { HandleCreated(c, nil, "created") })
	assert.Equal(t, http.StatusCreated, w.Code)
}
