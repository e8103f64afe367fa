package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitedRouter(l *Limiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", l.Handle(), func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func pingFrom(r *gin.Engine, addr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/ping", nil)
	req.RemoteAddr = addr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLimiterAllowsUpToCapThenRejects(t *testing.T) {
	r := newLimitedRouter(NewLimiter(time.Minute, 3, ""))

	for i := 0; i < 3; i++ {
		w := pingFrom(r, "10.0.0.1:1234")
		require.Equal(t, http.StatusOK, w.Code, "request %d within cap must succeed", i+1)
	}

	w := pingFrom(r, "10.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":"rate limit exceeded"}`, w.Body.String())
}

func TestLimiterCustomMessage(t *testing.T) {
	r := newLimitedRouter(NewLimiter(time.Minute, 1, "Too many incoming picks. Please slow down."))

	require.Equal(t, http.StatusOK, pingFrom(r, "10.0.0.1:1234").Code)
	w := pingFrom(r, "10.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":"Too many incoming picks. Please slow down."}`, w.Body.String())
}

func TestLimiterCountsPerClientAddress(t *testing.T) {
	r := newLimitedRouter(NewLimiter(time.Minute, 1, ""))

	require.Equal(t, http.StatusOK, pingFrom(r, "10.0.0.1:1234").Code)
	require.Equal(t, http.StatusTooManyRequests, pingFrom(r, "10.0.0.1:1234").Code)

	// Another address has its own budget.
	assert.Equal(t, http.StatusOK, pingFrom(r, "10.0.0.2:1234").Code)
}

func TestLimiterClassesAreIndependent(t *testing.T) {
	read := NewLimiter(time.Minute, 1, "")
	ingest := NewLimiter(time.Minute, 1, "")

	gin.SetMode(gin.TestMode)
	r := gin.New()
	ok := func(ctx *gin.Context) { ctx.Status(http.StatusOK) }
	r.GET("/read", read.Handle(), ok)
	r.GET("/ingest", ingest.Handle(), ok)

	get := func(path string) int {
		req := httptest.NewRequest("GET", path, nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	// Exhausting one class must not consume budget on the other.
	require.Equal(t, http.StatusOK, get("/read"))
	require.Equal(t, http.StatusTooManyRequests, get("/read"))
	assert.Equal(t, http.StatusOK, get("/ingest"))
}

func TestLimiterConcurrentAccess(t *testing.T) {
	// The counters only need "no lost updates" under concurrency; hammer one
	// key from many goroutines and check the budget is respected.
	l := NewLimiter(time.Minute, 50, "")

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.allow("10.0.0.1") {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowed)
}
