package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/api/measurements/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/metrics", gin.WrapH(Handler()))

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/measurements/:id", "204"))
	for _, id := range []string{"1", "2", "3"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/measurements/"+id, nil)
		r.ServeHTTP(w, req)
	}
	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/measurements/:id", "204"))
	assert.Equal(t, before+3, after)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/metrics", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "healthtrack_http_requests_total")
}

func TestRecordWebhook(t *testing.T) {
	before := testutil.ToFloat64(webhooks.WithLabelValues("completed"))
	RecordWebhook("completed")
	assert.Equal(t, before+1, testutil.ToFloat64(webhooks.WithLabelValues("completed")))
}
