package access

import (
	"errors"
	"fmt"

	"yearbook/db"
	"yearbook/models"

	"gorm.io/gorm"
)

// GetAccessForEdit loads a registration after applying the edit rule: the
// student themself while approved, or a manager of the album.
func GetAccessForEdit(editor *models.User, accessID uint64) (*models.AlbumClassAccess, error) {
	if editor == nil || editor.ID == 0 {
		return nil, ErrUnauthenticated
	}
	access := models.AlbumClassAccess{}
	result := db.Instance.First(&access, accessID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, notFound("registration not found")
		}
		return nil, internal(result.Error)
	}
	if access.UserID != nil && *access.UserID == editor.ID {
		if access.Status != models.AccessStatusApproved {
			return nil, ErrForbidden
		}
		return &access, nil
	}
	if _, _, err := RequireManage(editor, access.AlbumID); err != nil {
		return nil, err
	}
	return &access, nil
}

// GetAccessForView is the weaker read-side rule: the student themself, or
// anyone who may view the album.
func GetAccessForView(viewer *models.User, accessID uint64) (*models.AlbumClassAccess, error) {
	if viewer == nil || viewer.ID == 0 {
		return nil, ErrUnauthenticated
	}
	access := models.AlbumClassAccess{}
	result := db.Instance.First(&access, accessID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, notFound("registration not found")
		}
		return nil, internal(result.Error)
	}
	if access.UserID != nil && *access.UserID == viewer.ID {
		return &access, nil
	}
	if _, _, err := RequireView(viewer, access.AlbumID); err != nil {
		return nil, err
	}
	return &access, nil
}

// SetPhoto places an uploaded photo at one of the four positions, replacing
// whatever was there. It returns the replaced object path, if any, so the
// caller can clean up storage.
func SetPhoto(editor *models.User, accessID uint64, position uint8, path string) (previous string, err error) {
	if position >= models.MaxAccessPhotos {
		return "", invalidOperation(fmt.Sprintf("position must be below %d", models.MaxAccessPhotos))
	}
	access, err := GetAccessForEdit(editor, accessID)
	if err != nil {
		return "", err
	}
	photo := models.AlbumClassPhoto{}
	result := db.Instance.First(&photo, "access_id = ? AND position = ?", access.ID, position)
	if result.Error == nil {
		previous = photo.Path
		photo.Path = path
		if err := db.Instance.Save(&photo).Error; err != nil {
			return "", internal(err)
		}
		return previous, nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return "", internal(result.Error)
	}
	photo = models.AlbumClassPhoto{
		AccessID: access.ID,
		Position: position,
		Path:     path,
	}
	if err := db.Instance.Create(&photo).Error; err != nil {
		return "", internal(err)
	}
	return "", nil
}

// GetPhoto resolves one photo slot under the view rule.
func GetPhoto(viewer *models.User, accessID uint64, position uint8) (*models.AlbumClassPhoto, error) {
	access, err := GetAccessForView(viewer, accessID)
	if err != nil {
		return nil, err
	}
	photo := models.AlbumClassPhoto{}
	result := db.Instance.First(&photo, "access_id = ? AND position = ?", access.ID, position)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, notFound("photo not found")
		}
		return nil, internal(result.Error)
	}
	return &photo, nil
}
