package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/bitfantasy/nimo-mes/internal/mes/testutil"
	"github.com/bitfantasy/nimo-mes/internal/middleware"
)

// A commit failure after the 2xx has been written cannot be reported to the
// client anymore, so it must at least be logged with enough context to trace.
func TestUnitOfWorkLogsCommitFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutil.SetupTestDB(t)

	core, logs := observer.New(zap.ErrorLevel)
	logger := zap.New(core)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.UnitOfWork(db, logger))
	// The handler commits the request transaction itself, so the middleware's
	// own commit fails after the 200 is written.
	r.GET("/items", func(c *gin.Context) {
		middleware.Tx(c).Commit()
		c.JSON(http.StatusOK, gin.H{"code": "OK"})
	})

	req, _ := http.NewRequest(http.MethodGet, "/items", nil)
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	entries := logs.FilterMessage("Transaction commit failed").All()
	if len(entries) != 1 {
		t.Fatalf("expected one commit-failure log entry, got %d", logs.Len())
	}
	fields := entries[0].ContextMap()
	if fields["path"] != "/items" {
		t.Errorf("expected path /items, got %v", fields["path"])
	}
	if fields["request_id"] != "req-42" {
		t.Errorf("expected request_id req-42, got %v", fields["request_id"])
	}
}

func TestUnitOfWorkQuietOnSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutil.SetupTestDB(t)

	core, logs := observer.New(zap.ErrorLevel)
	logger := zap.New(core)

	r := gin.New()
	r.Use(middleware.UnitOfWork(db, logger))
	r.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"code": "OK"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/ok", nil)
	r.ServeHTTP(w, req)

	if logs.Len() != 0 {
		t.Errorf("expected no error logs on clean commit, got %d", logs.Len())
	}
}
