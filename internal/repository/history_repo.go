package repository

import (
	"errors"

	"github.com/policydraft/backend/internal/model"
	"gorm.io/gorm"
)

type historyRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) List() ([]model.PolicyHistory, error) {
	var items []model.PolicyHistory
	err := r.db.Order("sort_order").Find(&items).Error
	return items, err
}

func (r *historyRepository) Get(id uint) (*model.PolicyHistory, error) {
	var item model.PolicyHistory
	err := r.db.First(&item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *historyRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.PolicyHistory{}).Count(&count).Error
	return count, err
}

func (r *historyRepository) CreateBatch(items []model.PolicyHistory) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i := range items {
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
