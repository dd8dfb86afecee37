package service

import (
	"context"
	"fmt"
	"time"

	"github.com/policydraft/backend/internal/eventbus"
	"github.com/policydraft/backend/internal/model"
	"github.com/policydraft/backend/internal/repository"
	"gorm.io/gorm"
	"k8s.io/klog/v2"
)

// HistoryService 侧边栏历史制度清单
// 清单是启动时预置的只读数据：选中某一条除了诊断事件外没有任何副作用，
// 也不会回写存储
type HistoryService struct {
	historyRepo repository.HistoryRepository
	bus         *eventbus.Bus
}

func NewHistoryService(historyRepo repository.HistoryRepository, bus *eventbus.Bus) *HistoryService {
	return &HistoryService{
		historyRepo: historyRepo,
		bus:         bus,
	}
}

// List 返回全部历史制度条目
func (s *HistoryService) List() ([]model.PolicyHistory, error) {
	return s.historyRepo.List()
}

// Select 选中一条历史制度：校验存在性并广播诊断事件，别无副作用
func (s *HistoryService) Select(ctx context.Context, id uint) (*model.PolicyHistory, error) {
	item, err := s.historyRepo.Get(id)
	if err != nil {
		return nil, err
	}

	if s.bus != nil {
		if err := s.bus.Publish(ctx, eventbus.ChatEvent{
			Type:      eventbus.ChatEventHistorySelected,
			HistoryID: item.ID,
		}); err != nil {
			klog.V(6).Infof("[history.Select] 事件处理失败: %v", err)
		}
	}
	return item, nil
}

// InitDefaultHistory 初始化预置的历史制度清单
func InitDefaultHistory(db *gorm.DB) error {
	// 已有数据则跳过初始化
	var count int64
	if err := db.Model(&model.PolicyHistory{}).Count(&count).Error; err != nil {
		return fmt.Errorf("查询历史制度数量失败: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	items := []model.PolicyHistory{
		{Title: "远程办公管理制度", Category: "考勤与工时", Status: "active", UpdatedAt: now.AddDate(0, -1, 0), SortOrder: 1},
		{Title: "员工行为准则", Category: "职业操守", Status: "active", UpdatedAt: now.AddDate(0, -2, 0), SortOrder: 2},
		{Title: "带薪年假管理办法", Category: "假期福利", Status: "active", UpdatedAt: now.AddDate(0, -3, 0), SortOrder: 3},
		{Title: "绩效考核管理制度", Category: "绩效管理", Status: "draft", UpdatedAt: now.AddDate(0, -4, 0), SortOrder: 4},
		{Title: "信息安全管理规定", Category: "合规与安全", Status: "active", UpdatedAt: now.AddDate(0, -5, 0), SortOrder: 5},
		{Title: "差旅费用报销制度", Category: "财务报销", Status: "archived", UpdatedAt: now.AddDate(0, -6, 0), SortOrder: 6},
	}

	// 使用事务批量创建
	return db.Transaction(func(tx *gorm.DB) error {
		for i := range items {
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
