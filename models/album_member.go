package models

const (
	AlbumRoleAdmin  = "admin"
	AlbumRoleMember = "member"
)

// AlbumMember grants a user an album-wide role, distinct from per-class
// student access (AlbumClassAccess).
type AlbumMember struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	AlbumID   uint64 `gorm:"index:uniq_album_user,priority:1,unique;index:idx_user_album,priority:2;"`
	Album     Album  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserID    uint64 `gorm:"index:uniq_album_user,priority:2,unique;index:idx_user_album,priority:1;"`
	User      User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Role      string `gorm:"type:varchar(20);not null"`
}

// RoleRank orders album roles for upgrade-only comparisons.
func RoleRank(role string) int {
	switch role {
	case AlbumRoleAdmin:
		return 2
	case AlbumRoleMember:
		return 1
	}
	return 0
}
