package models

import (
	"time"
)

// User is a credential account. Email is the synthetic <username>@domain
// form required by the credential model; the username everyone else sees is
// its local part. Metadata mirrors {bio, links} for a legacy dashboard code
// path and is never the source of truth.
type User struct {
	ID             uint `gorm:"primaryKey"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time `gorm:"index"`
	Email          string     `gorm:"size:255;not null;unique"`
	HashedPassword []byte     `gorm:"not null"`
	DisplayName    string     `gorm:"size:255"`
	Metadata       JSON       `gorm:"type:jsonb"`
	Profile        *Profile   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
