package models

import (
	"time"

	"yearbook/utils"
)

// AlbumInvite is a bearer token granting album membership on redemption.
// Tokens are multi-redeemable until they expire or are revoked.
type AlbumInvite struct {
	ID          uint64 `gorm:"primaryKey"`
	CreatedAt   int64
	AlbumID     uint64 `gorm:"not null;index"`
	Album       Album  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedByID uint64
	CreatedBy   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Role        string `gorm:"type:varchar(20);not null"`
	Token       string `gorm:"type:varchar(100);index:uniq_invite_token,unique"`
	ExpiresAt   int64  `gorm:"not null"`
	RevokedAt   int64  `gorm:"not null;default:0"` // 0 indicates not revoked
}

func NewAlbumInvite(albumID, createdBy uint64, role string, ttl time.Duration) AlbumInvite {
	return AlbumInvite{
		AlbumID:     albumID,
		CreatedByID: createdBy,
		Role:        role,
		Token:       utils.Rand16BytesToBase62(),
		ExpiresAt:   time.Now().Add(ttl).Unix(),
	}
}

func (i *AlbumInvite) Expired() bool {
	return i.ExpiresAt <= time.Now().Unix()
}

func (i *AlbumInvite) Revoked() bool {
	return i.RevokedAt > 0
}
