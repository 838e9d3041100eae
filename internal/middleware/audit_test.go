package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuditedRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logPath := filepath.Join(t.TempDir(), "http_requests.log")
	auditor, err := NewAuditor(logPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = auditor.Close() })

	r := gin.New()
	r.Use(auditor.Middleware())
	return r, logPath
}

func TestAuditor_RecordsRequest(t *testing.T) {
	r, logPath := newAuditedRouter(t)
	r.POST("/seamless/bet", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"code": 0})
	})

	req := httptest.NewRequest(http.MethodPost, "/seamless/bet?round=7", strings.NewReader(`{"amount":200}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "operator-sim/1.0")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	record, err := os.ReadFile(logPath)
	require.NoError(t, err)
	logged := string(record)

	// The appended record carries the full request context
	assert.Contains(t, logged, `"method": "POST"`)
	assert.Contains(t, logged, `"uri": "/seamless/bet?round=7"`)
	assert.Contains(t, logged, `"user_agent": "operator-sim/1.0"`)
	assert.Contains(t, logged, `{\"amount\":200}`)
	assert.Contains(t, logged, `"amount": 200`)
	assert.Contains(t, logged, `"round": "7"`)
	assert.Contains(t, logged, `"request_id"`)
	assert.Contains(t, logged, strings.Repeat("-", 80))
}

func TestAuditor_RestoresBodyForHandler(t *testing.T) {
	r, _ := newAuditedRouter(t)
	var seen string
	r.POST("/seamless/settlement", func(c *gin.Context) {
		raw, err := io.ReadAll(c.Request.Body)
		require.NoError(t, err)
		seen = string(raw)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/seamless/settlement", strings.NewReader(`{"amount":500}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// The handler must see the body the auditor consumed
	assert.Equal(t, `{"amount":500}`, seen)
}

func TestAuditor_AppendsWithoutOverwriting(t *testing.T) {
	r, logPath := newAuditedRouter(t)
	r.GET("/seamless/getBalance", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"code": 0})
	})

	// Two calls must produce two records
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/seamless/getBalance", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	record, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(record), strings.Repeat("-", 80)))
}
