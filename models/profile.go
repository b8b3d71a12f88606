package models

import "time"

// Profile is the persisted link-in-bio record (one-to-one with User,
// created lazily on first editor load). Links and SocialLinks are ordered
// JSON arrays; their order is meaningful for display.
type Profile struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time `gorm:"index"`
	UserID    uint       `gorm:"uniqueIndex;not null"` // one-to-one relation
	User      User       `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	// Username is unique across all profiles and immutable once set; there
	// is no rename flow.
	Username    string `gorm:"size:255;not null;uniqueIndex"`
	Bio         string `gorm:"size:512"`
	Links       JSON   `gorm:"type:jsonb"`
	SocialLinks JSON   `gorm:"type:jsonb;column:social_links"`
}
