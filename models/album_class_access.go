package models

const (
	AccessStatusApproved = "approved"
	AccessStatusRejected = "rejected"
)

// MaxAccessPhotos is the per-student photo limit in the printed yearbook.
const MaxAccessPhotos = 4

// AlbumClassAccess is the materialized registration of one student into one
// class of one album. UserID is nil for rows added by an administrator for a
// student without an account yet. The unique (album_id, user_id) index keeps
// a user in at most one class per album, even under concurrent requests.
type AlbumClassAccess struct {
	ID          uint64  `gorm:"primaryKey"`
	CreatedAt   int64
	UpdatedAt   int64
	AlbumID     uint64  `gorm:"index:uniq_album_student,priority:1,unique"`
	Album       Album   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserID      *uint64 `gorm:"index:uniq_album_student,priority:2,unique"`
	User        *User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	ClassID     uint64  `gorm:"not null;index"`
	Class       AlbumClass `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	StudentName string  `gorm:"type:varchar(200);not null"`
	Email       string  `gorm:"type:varchar(150)"`
	Status      string  `gorm:"type:varchar(20);not null"`
	DateOfBirth string  `gorm:"type:varchar(20)"`
	Instagram   string  `gorm:"type:varchar(100)"`
	Message     string  `gorm:"type:varchar(1000)"`
	VideoURL    string  `gorm:"type:varchar(500)"`
	Photos      []AlbumClassPhoto `gorm:"foreignKey:AccessID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
