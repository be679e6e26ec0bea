package models

type AlbumClass struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	AlbumID   uint64 `gorm:"index:uniq_album_class,priority:1,unique"`
	Album     Album  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Name      string `gorm:"type:varchar(150);index:uniq_album_class,priority:2,unique"`
}
