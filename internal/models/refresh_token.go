package models

import (
	"time"
)

// RefreshToken represents a JWT refresh token issued to a staff
// member. Tokens are rotated on use and revoked on logout.
type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"size:36;index" json:"userId"`
	Token     string    `gorm:"type:text;not null" json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	IsRevoked bool      `gorm:"default:false" json:"isRevoked"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
