package repository

import (
	"context"
	"errors"

	"cloudnotes/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultShareRepository struct {
	db *gorm.DB
}

func NewShareRepository(db *gorm.DB) *DefaultShareRepository {
	return &DefaultShareRepository{db: db}
}

func (s *DefaultShareRepository) Create(ctx context.Context, share *entity.Share) error {
	return s.db.WithContext(ctx).Omit("Note").Create(share).Error
}

// FindByToken returns the share issued with token, with its note preloaded.
// Share.Note is nil when the note has since been deleted.
func (s *DefaultShareRepository) FindByToken(ctx context.Context, token string) (*entity.Share, error) {
	var share entity.Share
	err := s.db.WithContext(ctx).
		Preload("Note").
		Where("link_token = ?", token).
		First(&share).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &share, nil
}
