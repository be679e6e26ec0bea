package models

const (
	AlbumStatusPending  = "pending"
	AlbumStatusApproved = "approved"
	AlbumStatusDeclined = "declined"
)

const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

type Album struct {
	ID      uint64 `gorm:"primaryKey"`
	OwnerID uint64 `gorm:"not null;index:owner_album_created,priority:1;"`
	// OwnerID is immutable once set; no operation reassigns it
	Owner         User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt     int64  `gorm:"index:owner_album_created,priority:2"`
	Name          string `gorm:"type:varchar(300)"`
	Status        string `gorm:"type:varchar(20);not null;default:pending"`
	PaymentStatus string `gorm:"type:varchar(20)"`
	// StudentCapacity limits approved+pending registrations; 0 means unlimited
	StudentCapacity int `gorm:"not null;default:0"`
	Classes         []AlbumClass
	Members         []AlbumMember
}
