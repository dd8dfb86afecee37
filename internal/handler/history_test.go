package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/policydraft/backend/internal/eventbus"
	"github.com/policydraft/backend/internal/model"
	"github.com/policydraft/backend/internal/repository"
	"github.com/policydraft/backend/internal/service"
	"gorm.io/gorm"
)

func newHistoryRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db error: %v", err)
	}
	if err := db.AutoMigrate(&model.PolicyHistory{}); err != nil {
		t.Fatalf("migrate error: %v", err)
	}
	if err := service.InitDefaultHistory(db); err != nil {
		t.Fatalf("seed error: %v", err)
	}

	h := NewHistoryHandler(service.NewHistoryService(repository.NewHistoryRepository(db), eventbus.NewBus()))
	r := gin.New()
	r.GET("/api/history", h.List)
	r.POST("/api/history/:id/select", h.Select)
	return r
}

func TestHistoryEndpoints(t *testing.T) {
	r := newHistoryRouter(t)

	w := doRequest(r, "GET", "/api/history", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var items []model.PolicyHistory
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(items) == 0 {
		t.Fatal("expected seeded history items")
	}

	w = doRequest(r, "POST", "/api/history/1/select", "")
	if w.Code != http.StatusOK {
		t.Fatalf("select status = %d", w.Code)
	}

	if w := doRequest(r, "POST", "/api/history/9999/select", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if w := doRequest(r, "POST", "/api/history/abc/select", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
