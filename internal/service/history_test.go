package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/policydraft/backend/internal/eventbus"
	"github.com/policydraft/backend/internal/model"
	"github.com/policydraft/backend/internal/repository"
	"gorm.io/gorm"
)

func newHistoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db error: %v", err)
	}
	if err := db.AutoMigrate(&model.PolicyHistory{}); err != nil {
		t.Fatalf("migrate error: %v", err)
	}
	return db
}

func TestInitDefaultHistoryIdempotent(t *testing.T) {
	db := newHistoryTestDB(t)

	if err := InitDefaultHistory(db); err != nil {
		t.Fatalf("InitDefaultHistory error: %v", err)
	}

	var first int64
	db.Model(&model.PolicyHistory{}).Count(&first)
	if first == 0 {
		t.Fatal("expected seed rows")
	}

	// 再次初始化不重复写入
	if err := InitDefaultHistory(db); err != nil {
		t.Fatalf("second InitDefaultHistory error: %v", err)
	}
	var second int64
	db.Model(&model.PolicyHistory{}).Count(&second)
	if second != first {
		t.Fatalf("expected idempotent seeding, got %d then %d", first, second)
	}
}

func TestHistorySelectIsDiagnosticOnly(t *testing.T) {
	db := newHistoryTestDB(t)
	if err := InitDefaultHistory(db); err != nil {
		t.Fatalf("InitDefaultHistory error: %v", err)
	}

	bus := eventbus.NewBus()
	var selected []uint
	bus.Subscribe(eventbus.ChatEventHistorySelected, func(ctx context.Context, event eventbus.ChatEvent) error {
		selected = append(selected, event.HistoryID)
		return nil
	})

	svc := NewHistoryService(repository.NewHistoryRepository(db), bus)

	items, err := svc.List()
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(items) == 0 {
		t.Fatal("expected seeded history items")
	}

	before := items[0]
	if _, err := svc.Select(context.Background(), before.ID); err != nil {
		t.Fatalf("Select error: %v", err)
	}
	if len(selected) != 1 || selected[0] != before.ID {
		t.Fatalf("expected diagnostic event, got %v", selected)
	}

	// 选中不产生任何回写
	after, err := svc.List()
	if err != nil {
		t.Fatalf("List after select error: %v", err)
	}
	if after[0] != before {
		t.Fatalf("expected no state change on select: %+v vs %+v", before, after[0])
	}

	if _, err := svc.Select(context.Background(), 9999); err != repository.ErrNotFound {
		t.Fatalf("expected ErrNotFound for missing item, got %v", err)
	}
}
