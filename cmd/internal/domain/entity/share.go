package entity

// Share grants access to a note. It comes in two flavours sharing one table:
//
// - public link: LinkToken is set, ToEmail is nil.
//
// - email share: ToEmail is set, LinkToken is nil. Nothing is ever delivered,
// the row only records the intent.
//
// Shares are never cascaded when their note is deleted.
type Share struct {
	ID            string  `gorm:"primaryKey;autoIncrement:false"`
	NoteID        string  `gorm:"not null;index"`
	FromAccountID string  `gorm:"not null"`
	ToEmail       *string `gorm:"index"`
	LinkToken     *string `gorm:"uniqueIndex"`
	CanEdit       bool    `gorm:"not null;default:false"`
	CreatedAt     int64   `gorm:"not null;autoCreateTime:false"`

	// Relations
	Note *Note `gorm:"foreignKey:NoteID;references:ID"`
}

func (s *Share) IsPublicLink() bool {
	return s.LinkToken != nil
}
