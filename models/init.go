package models

import (
	"yearbook/db"
)

func Init() {
	db.Instance.AutoMigrate(&User{})
	db.Instance.AutoMigrate(&Grant{})
	db.Instance.AutoMigrate(&Album{})
	db.Instance.AutoMigrate(&AlbumClass{})
	db.Instance.AutoMigrate(&AlbumMember{})
	db.Instance.AutoMigrate(&AlbumClassAccess{})
	db.Instance.AutoMigrate(&AlbumClassPhoto{})
	db.Instance.AutoMigrate(&AlbumJoinRequest{})
	db.Instance.AutoMigrate(&AlbumInvite{})
}
