package access

import (
	"errors"
	"time"

	"yearbook/config"
	"yearbook/db"
	"yearbook/models"

	"gorm.io/gorm"
)

// IssueInvite creates a time-boxed bearer token for an album role. Any
// manager may invite members; admin invites are reserved for the owner and
// platform admins.
func IssueInvite(user *models.User, albumID uint64, role string) (*models.AlbumInvite, error) {
	if role != models.AlbumRoleAdmin && role != models.AlbumRoleMember {
		return nil, invalidOperation("role must be admin or member")
	}
	album, callerRole, err := RequireManage(user, albumID)
	if err != nil {
		return nil, err
	}
	if role == models.AlbumRoleAdmin && !callerRole.IsOwner && !callerRole.IsGlobalAdmin {
		return nil, ErrForbidden
	}
	ttl := time.Duration(config.INVITE_TTL_DAYS) * 24 * time.Hour
	invite := models.NewAlbumInvite(album.ID, user.ID, role, ttl)
	if err := db.Instance.Create(&invite).Error; err != nil {
		return nil, internal(err)
	}
	return &invite, nil
}

// RedeemInvite exchanges a token for album membership. Redemption is
// idempotent and upgrade-only: an existing admin never drops to member, an
// existing member is lifted by an admin invite. The invite itself is left
// untouched and stays redeemable until it expires or is revoked.
func RedeemInvite(user *models.User, token string) (uint64, error) {
	if user == nil || user.ID == 0 {
		return 0, ErrUnauthenticated
	}
	invite := models.AlbumInvite{}
	result := db.Instance.First(&invite, "token = ?", token)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return 0, notFound("invite not found")
		}
		return 0, internal(result.Error)
	}
	if invite.Revoked() {
		return 0, gone("this invite has been revoked")
	}
	if invite.Expired() {
		return 0, gone("this invite has expired")
	}
	album, err := GetAlbum(invite.AlbumID)
	if err != nil {
		return 0, err
	}
	if album.OwnerID == user.ID {
		// The owner outranks any invite.
		return album.ID, nil
	}
	member := models.AlbumMember{}
	result = db.Instance.First(&member, "album_id = ? AND user_id = ?", album.ID, user.ID)
	if result.Error == nil {
		if models.RoleRank(invite.Role) > models.RoleRank(member.Role) {
			member.Role = invite.Role
			if err := db.Instance.Save(&member).Error; err != nil {
				return 0, internal(err)
			}
		}
		return album.ID, nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return 0, internal(result.Error)
	}
	member = models.AlbumMember{
		AlbumID: album.ID,
		UserID:  user.ID,
		Role:    invite.Role,
	}
	if err := db.Instance.Create(&member).Error; err != nil {
		// A concurrent redemption got there first; that's the same outcome.
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, internal(err)
		}
	}
	return album.ID, nil
}

// RevokeInvite disables a token before its expiry. Mirrors IssueInvite:
// revoking an admin invite takes the owner or a platform admin.
func RevokeInvite(user *models.User, inviteID uint64) error {
	if user == nil || user.ID == 0 {
		return ErrUnauthenticated
	}
	invite := models.AlbumInvite{}
	result := db.Instance.First(&invite, inviteID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return notFound("invite not found")
		}
		return internal(result.Error)
	}
	_, callerRole, err := RequireManage(user, invite.AlbumID)
	if err != nil {
		return err
	}
	if invite.Role == models.AlbumRoleAdmin && !callerRole.IsOwner && !callerRole.IsGlobalAdmin {
		return ErrForbidden
	}
	if invite.Revoked() {
		return nil
	}
	invite.RevokedAt = time.Now().Unix()
	if err := db.Instance.Save(&invite).Error; err != nil {
		return internal(err)
	}
	return nil
}

// ListInvites returns the album's invites, newest first.
func ListInvites(user *models.User, albumID uint64) ([]models.AlbumInvite, error) {
	if _, _, err := RequireManage(user, albumID); err != nil {
		return nil, err
	}
	invites := []models.AlbumInvite{}
	err := db.Instance.Order("id DESC").Find(&invites, "album_id = ?", albumID).Error
	if err != nil {
		return nil, internal(err)
	}
	return invites, nil
}
