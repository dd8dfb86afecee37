package repository

import (
	"errors"

	"github.com/policydraft/backend/internal/model"
	"gorm.io/gorm"
)

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(session *model.Session) error {
	return r.db.Create(session).Error
}

func (r *sessionRepository) GetByKey(sessionKey string) (*model.Session, error) {
	var session model.Session
	err := r.db.Where("session_key = ?", sessionKey).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) List() ([]model.Session, error) {
	var sessions []model.Session
	err := r.db.Order("created_at desc").Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepository) Save(session *model.Session) error {
	return r.db.Save(session).Error
}
