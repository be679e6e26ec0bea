package access

import (
	"errors"

	"yearbook/db"
	"yearbook/models"

	"gorm.io/gorm"
)

// Role is the caller's effective permission tier for one album.
type Role struct {
	IsOwner       bool
	IsGlobalAdmin bool
	IsAlbumAdmin  bool
	IsMember      bool
}

// CanManage allows approving requests, editing other students' profiles,
// deleting classes and managing the team.
func (r Role) CanManage() bool {
	return r.IsOwner || r.IsGlobalAdmin || r.IsAlbumAdmin
}

func (r Role) CanView() bool {
	return r.CanManage() || r.IsMember
}

func GetAlbum(albumID uint64) (*models.Album, error) {
	album := models.Album{}
	result := db.Instance.First(&album, albumID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrAlbumNotFound
		}
		return nil, internal(result.Error)
	}
	return &album, nil
}

// ResolveRole computes the caller's tier. Owner and global admin dominate
// everything else and short-circuit the membership lookups.
func ResolveRole(user *models.User, album *models.Album) (Role, error) {
	role := Role{
		IsOwner:       album.OwnerID == user.ID,
		IsGlobalAdmin: user.HasPermission(models.PermissionAdmin),
	}
	if role.IsOwner || role.IsGlobalAdmin {
		return role, nil
	}
	member := models.AlbumMember{}
	result := db.Instance.First(&member, "album_id = ? AND user_id = ?", album.ID, user.ID)
	if result.Error == nil {
		role.IsAlbumAdmin = member.Role == models.AlbumRoleAdmin
		role.IsMember = true
		return role, nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return role, internal(result.Error)
	}
	var count int64
	result = db.Instance.Model(&models.AlbumClassAccess{}).
		Where("album_id = ? AND user_id = ? AND status = ?", album.ID, user.ID, models.AccessStatusApproved).
		Count(&count)
	if result.Error != nil {
		return role, internal(result.Error)
	}
	role.IsMember = count > 0
	return role, nil
}

// RequireView loads the album and fails with NotFound unless the caller may
// view it. Non-members get the same answer as a missing album on purpose.
func RequireView(user *models.User, albumID uint64) (*models.Album, Role, error) {
	if user == nil || user.ID == 0 {
		return nil, Role{}, ErrUnauthenticated
	}
	album, err := GetAlbum(albumID)
	if err != nil {
		return nil, Role{}, err
	}
	role, err := ResolveRole(user, album)
	if err != nil {
		return nil, Role{}, err
	}
	if !role.CanView() {
		return nil, Role{}, ErrAlbumNotFound
	}
	return album, role, nil
}

// RequireManage is like RequireView but additionally demands the manager
// tier. A viewer without it gets Forbidden; a non-viewer still gets NotFound.
func RequireManage(user *models.User, albumID uint64) (*models.Album, Role, error) {
	album, role, err := RequireView(user, albumID)
	if err != nil {
		return nil, Role{}, err
	}
	if !role.CanManage() {
		return nil, Role{}, ErrForbidden
	}
	return album, role, nil
}
