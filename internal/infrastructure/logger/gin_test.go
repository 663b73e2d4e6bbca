package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func findRequestLog(logs []observer.LoggedEntry) *observer.LoggedEntry {
	for i := range logs {
		if logs[i].Message == "request completed" {
			return &logs[i]
		}
	}
	return nil
}

func serveWithMiddleware(t *testing.T, level zapcore.Level, register func(*gin.Engine), req *http.Request) (*httptest.ResponseRecorder, *observer.ObservedLogs) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(level)
	router := gin.New()
	router.Use(GinMiddleware(zap.New(core)))
	register(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w, recorded
}

func TestGinMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test?q=shelf&page=2", nil)
	req.Header.Set("User-Agent", "Test-Agent/1.0")

	w, recorded := serveWithMiddleware(t, zapcore.InfoLevel, func(r *gin.Engine) {
		r.GET("/test", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "ok"})
		})
	}, req)

	assert.Equal(t, http.StatusOK, w.Code)

	entry := findRequestLog(recorded.All())
	require.NotNil(t, entry, "completed request should be logged")
	assert.Equal(t, zapcore.InfoLevel, entry.Level)

	fieldMap := make(map[string]zapcore.Field)
	for _, field := range entry.Context {
		fieldMap[field.Key] = field
	}
	assert.Contains(t, fieldMap, "status")
	assert.Contains(t, fieldMap, "latency")
	assert.Contains(t, fieldMap, "client_ip")
	assert.Contains(t, fieldMap, "user_agent")
	assert.Contains(t, fieldMap, "method")
	assert.Contains(t, fieldMap, "path")
	require.Contains(t, fieldMap, "query")
	assert.Contains(t, fieldMap["query"].String, "q=shelf")
}

func TestGinMiddleware_WithRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.InfoLevel)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("request_id", "test-req-123")
		c.Next()
	})
	router.Use(GinMiddleware(zap.New(core)))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	entry := findRequestLog(recorded.All())
	require.NotNil(t, entry)

	found := false
	for _, field := range entry.Context {
		if field.Key == "request_id" {
			found = true
			assert.Equal(t, "test-req-123", field.String)
		}
	}
	assert.True(t, found, "request_id should be in log fields")
}

func TestGinMiddleware_UserIDWhenAuthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.InfoLevel)
	router := gin.New()
	router.Use(GinMiddleware(zap.New(core)))
	router.GET("/me", func(c *gin.Context) {
		c.Set("jwt_user_id", "b2f7c1de-0000-4000-8000-000000000001")
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	entry := findRequestLog(recorded.All())
	require.NotNil(t, entry)

	found := false
	for _, field := range entry.Context {
		if field.Key == "user_id" {
			found = true
			assert.Equal(t, "b2f7c1de-0000-4000-8000-000000000001", field.String)
		}
	}
	assert.True(t, found, "user_id should be in log fields for authenticated requests")
}

func TestGinMiddleware_SkipsHealthProbes(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)

	w, recorded := serveWithMiddleware(t, zapcore.InfoLevel, func(r *gin.Engine) {
		r.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "healthy"})
		})
	}, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, findRequestLog(recorded.All()))
}

func TestGinMiddleware_ClientErrorLogsWarning(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/error", nil)

	w, recorded := serveWithMiddleware(t, zapcore.WarnLevel, func(r *gin.Engine) {
		r.GET("/error", func(c *gin.Context) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		})
	}, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	entry := findRequestLog(recorded.All())
	require.NotNil(t, entry)
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
}

func TestGinMiddleware_ServerErrorLogsError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/error", nil)

	w, recorded := serveWithMiddleware(t, zapcore.ErrorLevel, func(r *gin.Engine) {
		r.GET("/error", func(c *gin.Context) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		})
	}, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	entry := findRequestLog(recorded.All())
	require.NotNil(t, entry)
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.ErrorLevel)
	router := gin.New()
	router.Use(Recovery(zap.New(core)))
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/panic", nil)

	assert.NotPanics(t, func() {
		router.ServeHTTP(w, req)
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	logs := recorded.All()
	require.NotEmpty(t, logs)
	assert.Equal(t, "panic recovered", logs[0].Message)
}

func TestGetGinLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, _ := observer.New(zapcore.InfoLevel)
	var retrieved *zap.Logger

	router := gin.New()
	router.Use(GinMiddleware(zap.New(core)))
	router.GET("/test", func(c *gin.Context) {
		retrieved = GetGinLogger(c)
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.NotNil(t, retrieved)
}

func TestGetGinLogger_NotSet(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var retrieved *zap.Logger

	router := gin.New()
	router.GET("/test", func(c *gin.Context) {
		retrieved = GetGinLogger(c)
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	require.NotNil(t, retrieved)
	assert.NotPanics(t, func() {
		retrieved.Info("noop")
	})
}
