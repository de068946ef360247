package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestGinMiddlewareUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/shop/:url", func(c *gin.Context) { c.Status(http.StatusOK) })

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/shop/:url", "200"))
	for _, url := range []string{"/shop/a", "/shop/b"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, url, nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, before+2, testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/shop/:url", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(httpRequests.WithLabelValues("GET", "unmatched", "404")))
}

func TestDomainCounters(t *testing.T) {
	before := testutil.ToFloat64(deleteRefused.WithLabelValues("board"))
	RecordDeleteRefused("board")
	assert.Equal(t, before+1, testutil.ToFloat64(deleteRefused.WithLabelValues("board")))

	before = testutil.ToFloat64(mailFailures)
	RecordMailFailure()
	assert.Equal(t, before+1, testutil.ToFloat64(mailFailures))
}

func TestHandlerExposesRegistry(t *testing.T) {
	RecordMailFailure()
	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "jado_notification_mail_failures_total"))
}
