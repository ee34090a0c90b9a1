package entity

// Account is a registered user. Email is always stored lower-cased.
type Account struct {
	ID           string `gorm:"primaryKey;autoIncrement:false"`
	Name         string `gorm:"not null"`
	Email        string `gorm:"not null;uniqueIndex"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    int64  `gorm:"not null;autoCreateTime:false"`
	UpdatedAt    int64  `gorm:"not null;autoUpdateTime:false"`
}
