package models

type AlbumClassPhoto struct {
	ID        uint64           `gorm:"primaryKey"`
	CreatedAt int64
	AccessID  uint64           `gorm:"index:uniq_access_position,priority:1,unique"`
	Access    AlbumClassAccess `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Position  uint8            `gorm:"index:uniq_access_position,priority:2,unique"`
	Path      string           `gorm:"type:varchar(500);not null"`
}
