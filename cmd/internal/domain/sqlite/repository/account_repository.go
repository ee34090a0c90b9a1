package repository

import (
	"context"
	"errors"
	"strings"

	"cloudnotes/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

// ErrDuplicateEmail is returned by Create when the unique email index rejects
// the row.
var ErrDuplicateEmail = errors.New("email already registered")

type DefaultAccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *DefaultAccountRepository {
	return &DefaultAccountRepository{db: db}
}

func (a *DefaultAccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var account entity.Account
	err := a.db.WithContext(ctx).
		Where("email = ?", normalizeEmail(email)).
		First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (a *DefaultAccountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists int
	err := a.db.WithContext(ctx).
		Raw("SELECT EXISTS(SELECT 1 FROM accounts WHERE email = ?)", normalizeEmail(email)).
		Scan(&exists).Error
	if err != nil {
		return false, err
	}
	return exists == 1, nil
}

func (a *DefaultAccountRepository) Create(ctx context.Context, account *entity.Account) error {
	account.Email = normalizeEmail(account.Email)
	err := a.db.WithContext(ctx).Create(account).Error
	if isUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	return err
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	// Not every driver version translates constraint errors for gorm.
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
