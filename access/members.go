package access

import (
	"errors"

	"yearbook/db"
	"yearbook/models"

	"gorm.io/gorm"
)

// Roster roles, strongest first.
const (
	RosterRoleOwner   = "owner"
	RosterRoleAdmin   = "admin"
	RosterRoleMember  = "member"
	RosterRoleStudent = "student"
	RosterRoleNone    = "none" // approved registration without an account yet
)

type RosterEntry struct {
	UserID *uint64 `json:"user_id,omitempty"`
	Name   string  `json:"name"`
	Email  string  `json:"email,omitempty"`
	Role   string  `json:"role"`
}

func rosterRank(role string) int {
	switch role {
	case RosterRoleOwner:
		return 4
	case RosterRoleAdmin:
		return 3
	case RosterRoleMember:
		return 2
	case RosterRoleStudent:
		return 1
	}
	return 0
}

// UpsertMember grants or changes an album-wide role. Only the owner (or a
// platform admin) may do this; album admins manage students, not the team.
func UpsertMember(caller *models.User, albumID, targetUserID uint64, role string) (*models.AlbumMember, error) {
	if role != models.AlbumRoleAdmin && role != models.AlbumRoleMember {
		return nil, invalidOperation("role must be admin or member")
	}
	album, callerRole, err := RequireManage(caller, albumID)
	if err != nil {
		return nil, err
	}
	if !callerRole.IsOwner && !callerRole.IsGlobalAdmin {
		return nil, ErrForbidden
	}
	if targetUserID == album.OwnerID {
		return nil, invalidOperation("the owner already has full access")
	}
	target := models.User{}
	result := db.Instance.First(&target, targetUserID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, notFound("user not found")
		}
		return nil, internal(result.Error)
	}
	member := models.AlbumMember{}
	result = db.Instance.First(&member, "album_id = ? AND user_id = ?", albumID, targetUserID)
	if result.Error == nil {
		member.Role = role
		if err := db.Instance.Save(&member).Error; err != nil {
			return nil, internal(err)
		}
		return &member, nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, internal(result.Error)
	}
	member = models.AlbumMember{
		AlbumID: albumID,
		UserID:  targetUserID,
		Role:    role,
	}
	if err := db.Instance.Create(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflict("this user is already a member")
		}
		return nil, internal(err)
	}
	return &member, nil
}

// RemoveMember drops an album-wide role. The owner can never be removed, and
// managers may not remove themselves - an admin must not be able to orphan an
// album they can no longer view.
func RemoveMember(caller *models.User, albumID, targetUserID uint64) error {
	album, _, err := RequireManage(caller, albumID)
	if err != nil {
		return err
	}
	if targetUserID == album.OwnerID {
		return invalidOperation("the owner cannot be removed")
	}
	if targetUserID == caller.ID {
		return invalidOperation("you cannot remove yourself")
	}
	result := db.Instance.Delete(&models.AlbumMember{}, "album_id = ? AND user_id = ?", albumID, targetUserID)
	if result.Error != nil {
		return internal(result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound("member not found")
	}
	return nil
}

// Roster merges the owner, explicit members and approved students into one
// list. A user appearing in several sources keeps their strongest role.
func Roster(caller *models.User, albumID uint64) ([]RosterEntry, error) {
	album, _, err := RequireManage(caller, albumID)
	if err != nil {
		return nil, err
	}
	byUser := map[uint64]*RosterEntry{}
	ordered := []*RosterEntry{}

	addEntry := func(userID *uint64, name, email, role string) {
		if userID == nil {
			entry := &RosterEntry{Name: name, Email: email, Role: role}
			ordered = append(ordered, entry)
			return
		}
		if existing, ok := byUser[*userID]; ok {
			if rosterRank(role) > rosterRank(existing.Role) {
				existing.Role = role
			}
			if existing.Name == "" {
				existing.Name = name
			}
			if existing.Email == "" {
				existing.Email = email
			}
			return
		}
		entry := &RosterEntry{UserID: userID, Name: name, Email: email, Role: role}
		byUser[*userID] = entry
		ordered = append(ordered, entry)
	}

	owner := models.User{}
	if err := db.Instance.First(&owner, album.OwnerID).Error; err != nil {
		return nil, internal(err)
	}
	addEntry(&owner.ID, owner.Name, owner.Email, RosterRoleOwner)

	members := []models.AlbumMember{}
	if err := db.Instance.Preload("User").Find(&members, "album_id = ?", albumID).Error; err != nil {
		return nil, internal(err)
	}
	for i := range members {
		role := RosterRoleMember
		if members[i].Role == models.AlbumRoleAdmin {
			role = RosterRoleAdmin
		}
		addEntry(&members[i].UserID, members[i].User.Name, members[i].User.Email, role)
	}

	students := []models.AlbumClassAccess{}
	err = db.Instance.Find(&students, "album_id = ? AND status = ?", albumID, models.AccessStatusApproved).Error
	if err != nil {
		return nil, internal(err)
	}
	for i := range students {
		role := RosterRoleStudent
		if students[i].UserID == nil {
			role = RosterRoleNone
		}
		addEntry(students[i].UserID, students[i].StudentName, students[i].Email, role)
	}

	result := make([]RosterEntry, 0, len(ordered))
	for _, entry := range ordered {
		result = append(result, *entry)
	}
	return result, nil
}
