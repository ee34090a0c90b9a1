package repository

import (
	"context"
	"errors"

	"cloudnotes/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

// DefaultNoteRepository scopes every query by owner. There is
// no lookup by id alone.
type DefaultNoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *DefaultNoteRepository {
	return &DefaultNoteRepository{db: db}
}

// FindAllByOwner returns the owner's notes, most recently updated first.
// Ties go to the newest id; ids are decimal strings, so they compare as numbers.
func (d *DefaultNoteRepository) FindAllByOwner(ctx context.Context, ownerID string) ([]*entity.Note, error) {
	notes := []*entity.Note{}
	err := d.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("updated_at DESC").
		Order("CAST(id AS INTEGER) DESC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (d *DefaultNoteRepository) FindByOwner(ctx context.Context, ownerID, id string) (*entity.Note, error) {
	return findOwned(d.db.WithContext(ctx), ownerID, id)
}

func (d *DefaultNoteRepository) Create(ctx context.Context, note *entity.Note) error {
	return d.db.WithContext(ctx).Create(note).Error
}

// UpdateByOwner applies changes with a single owner-scoped UPDATE and returns
// the resulting row, or nil when nothing matched.
func (d *DefaultNoteRepository) UpdateByOwner(ctx context.Context, ownerID, id string, changes *entity.NoteChanges) (*entity.Note, error) {
	fields := map[string]any{"updated_at": changes.UpdatedAt}
	if changes.Title != nil {
		fields["title"] = *changes.Title
	}
	if changes.Content != nil {
		fields["content"] = *changes.Content
	}

	var note *entity.Note
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.Note{}).
			Where("id = ? AND owner_id = ?", id, ownerID).
			Updates(fields)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			return nil
		}

		var err error
		note, err = findOwned(tx, ownerID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

// DeleteByOwner removes the note if it belongs to ownerID. Deleting nothing
// is not an error.
func (d *DefaultNoteRepository) DeleteByOwner(ctx context.Context, ownerID, id string) error {
	return d.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&entity.Note{}).Error
}

func findOwned(db *gorm.DB, ownerID, id string) (*entity.Note, error) {
	var note entity.Note
	err := db.Where("id = ? AND owner_id = ?", id, ownerID).First(&note).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &note, nil
}
