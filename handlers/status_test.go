package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/wgkex/broker/state"
)

func TestStatusReportsCounts(t *testing.T) {
	d, _ := newTestDeps()
	Init(d)
	d.Metrics.SetOnline("gw1")
	d.Metrics.Update("gw1", "ffda", state.ConnectedPeersMetric, 5)
	d.Brokers.Set("broker1", true)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/status", Status)

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "online-brokers: 1")
	assert.Contains(t, body, "online-workers: 1")
	assert.Contains(t, body, "total-peers: 5")
}

func TestIndexServesHTML(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", Index)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "wgkex broker")
}
