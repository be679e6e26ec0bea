package models

const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// AlbumJoinRequest is the pending half of a student registration. ClassID is
// nil for album-scoped requests; class assignment then happens on approval.
// A rejected row is reused when the user registers again, so one row carries
// the whole request history for an (album, user) pair.
type AlbumJoinRequest struct {
	ID          uint64 `gorm:"primaryKey"`
	CreatedAt   int64  `gorm:"index"`
	UpdatedAt   int64
	AlbumID     uint64 `gorm:"index:idx_album_user_request,priority:1"`
	Album       Album  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserID      uint64 `gorm:"index:idx_album_user_request,priority:2"`
	User        User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	ClassID     *uint64
	Class       *AlbumClass `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	StudentName string      `gorm:"type:varchar(200);not null"`
	Email       string      `gorm:"type:varchar(150)"`
	Status      string      `gorm:"type:varchar(20);not null;default:pending"`
	Reason      string      `gorm:"type:varchar(500)"`
}
