package entity

const DefaultNoteTitle = "Untitled"

type Note struct {
	ID        string `gorm:"primaryKey;autoIncrement:false"`
	OwnerID   string `gorm:"not null;index"` // References: accounts(id)
	Title     string `gorm:"not null"`
	Content   string `gorm:"not null"`
	CreatedAt int64  `gorm:"not null;autoCreateTime:false"`
	UpdatedAt int64  `gorm:"not null;index;autoUpdateTime:false"`
}

// NoteChanges carries the fields of a partial update. Nil fields are left
// untouched; UpdatedAt is always written.
type NoteChanges struct {
	Title     *string
	Content   *string
	UpdatedAt int64
}
