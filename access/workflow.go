package access

import (
	"errors"
	"fmt"
	"log"

	"yearbook/db"
	"yearbook/models"
	"yearbook/push"

	"gorm.io/gorm"
)

// JoinStatus is a caller's current position in the registration workflow:
// an approved/rejected access row, a pending/rejected request, or neither.
type JoinStatus struct {
	Access  *models.AlbumClassAccess `json:"access,omitempty"`
	Request *models.AlbumJoinRequest `json:"request,omitempty"`
}

// ProfileUpdate carries the editable fields of a registration. Nil fields
// are left unchanged. Status is deliberately not editable here.
type ProfileUpdate struct {
	StudentName *string
	Email       *string
	DateOfBirth *string
	Instagram   *string
	Message     *string
	VideoURL    *string
	Photos      *[]string
}

// MyStatus returns the caller's own registration state for an album.
func MyStatus(user *models.User, albumID uint64) (*JoinStatus, error) {
	if user == nil || user.ID == 0 {
		return nil, ErrUnauthenticated
	}
	if _, err := GetAlbum(albumID); err != nil {
		return nil, err
	}
	status := JoinStatus{}
	access := models.AlbumClassAccess{}
	result := db.Instance.Preload("Photos").
		First(&access, "album_id = ? AND user_id = ?", albumID, user.ID)
	if result.Error == nil {
		status.Access = &access
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, internal(result.Error)
	}
	request := models.AlbumJoinRequest{}
	result = db.Instance.Order("id DESC").
		First(&request, "album_id = ? AND user_id = ?", albumID, user.ID)
	if result.Error == nil {
		status.Request = &request
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, internal(result.Error)
	}
	return &status, nil
}

// Request files (or re-files) a registration for one class of one album.
// Repeated calls are idempotent while a pending request or approved access
// exists; a rejected request is flipped back to pending in place, keeping a
// stable row id across the whole cycle. The album owner skips moderation and
// lands directly in the class.
func Request(user *models.User, albumID uint64, classID *uint64, studentName, email string) (*JoinStatus, error) {
	if user == nil || user.ID == 0 {
		return nil, ErrUnauthenticated
	}
	album, err := GetAlbum(albumID)
	if err != nil {
		return nil, err
	}
	if classID != nil {
		if err := classInAlbum(album.ID, *classID); err != nil {
			return nil, err
		}
	}
	if album.OwnerID == user.ID {
		return ownerSelfJoin(user, album, classID, studentName, email)
	}
	if album.Status != models.AlbumStatusApproved {
		return nil, conflict("this album is not accepting registrations yet")
	}

	// Already approved somewhere in this album: idempotent success.
	access := models.AlbumClassAccess{}
	result := db.Instance.First(&access,
		"album_id = ? AND user_id = ? AND status = ?", album.ID, user.ID, models.AccessStatusApproved)
	if result.Error == nil {
		return &JoinStatus{Access: &access}, nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, internal(result.Error)
	}

	request := models.AlbumJoinRequest{}
	result = db.Instance.Order("id DESC").
		First(&request, "album_id = ? AND user_id = ?", album.ID, user.ID)
	if result.Error == nil {
		if request.Status == models.RequestStatusPending {
			return &JoinStatus{Request: &request}, nil
		}
		// Re-registration reuses the row so one row keeps the whole history.
		request.StudentName = studentName
		request.Email = email
		request.ClassID = classID
		request.Status = models.RequestStatusPending
		request.Reason = ""
		if err := db.Instance.Save(&request).Error; err != nil {
			return nil, internal(err)
		}
		return &JoinStatus{Request: &request}, nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, internal(result.Error)
	}

	if err := checkCapacity(album); err != nil {
		return nil, err
	}
	request = models.AlbumJoinRequest{
		AlbumID:     album.ID,
		UserID:      user.ID,
		ClassID:     classID,
		StudentName: studentName,
		Email:       email,
		Status:      models.RequestStatusPending,
	}
	if err := db.Instance.Create(&request).Error; err != nil {
		return nil, internal(err)
	}
	return &JoinStatus{Request: &request}, nil
}

// ownerSelfJoin inserts the owner straight into AlbumClassAccess; owners do
// not moderate themselves. The one-class-per-album limit still applies.
func ownerSelfJoin(user *models.User, album *models.Album, classID *uint64, studentName, email string) (*JoinStatus, error) {
	if classID == nil {
		return nil, invalidOperation("a class is required")
	}
	access := models.AlbumClassAccess{}
	result := db.Instance.First(&access, "album_id = ? AND user_id = ?", album.ID, user.ID)
	if result.Error == nil {
		if access.ClassID == *classID {
			return &JoinStatus{Access: &access}, nil
		}
		return nil, conflict("you are already registered in another class of this album")
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, internal(result.Error)
	}
	access = models.AlbumClassAccess{
		AlbumID:     album.ID,
		UserID:      &user.ID,
		ClassID:     *classID,
		StudentName: studentName,
		Email:       email,
		Status:      models.AccessStatusApproved,
	}
	if err := db.Instance.Create(&access).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflict("you are already registered in this album")
		}
		return nil, internal(err)
	}
	return &JoinStatus{Access: &access}, nil
}

// ListPending returns the album's pending requests, newest first, optionally
// narrowed to one class.
func ListPending(user *models.User, albumID uint64, classID *uint64) ([]models.AlbumJoinRequest, error) {
	if _, _, err := RequireManage(user, albumID); err != nil {
		return nil, err
	}
	query := db.Instance.Preload("User").
		Where("album_id = ? AND status = ?", albumID, models.RequestStatusPending).
		Order("created_at DESC, id DESC")
	if classID != nil {
		query = query.Where("class_id = ?", *classID)
	}
	requests := []models.AlbumJoinRequest{}
	if err := query.Find(&requests).Error; err != nil {
		return nil, internal(err)
	}
	return requests, nil
}

// Approve converts a pending request into approved class access. The access
// grant is written first and is the source of truth; if retiring the request
// afterwards fails, the leftover pending row is harmless - a repeated Approve
// is rejected with Conflict rather than duplicated. classID overrides the
// request's class and is required when the request didn't name one.
func Approve(user *models.User, requestID uint64, classID *uint64) (*models.AlbumClassAccess, error) {
	if user == nil || user.ID == 0 {
		return nil, ErrUnauthenticated
	}
	request := models.AlbumJoinRequest{}
	result := db.Instance.First(&request, requestID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, notFound("request not found")
		}
		return nil, internal(result.Error)
	}
	album, _, err := RequireManage(user, request.AlbumID)
	if err != nil {
		return nil, err
	}
	if request.Status != models.RequestStatusPending {
		return nil, conflict("this request has already been processed")
	}
	targetClass := request.ClassID
	if classID != nil {
		targetClass = classID
	}
	if targetClass == nil {
		return nil, invalidOperation("a class must be assigned before approval")
	}
	if err := classInAlbum(album.ID, *targetClass); err != nil {
		return nil, err
	}
	var count int64
	result = db.Instance.Model(&models.AlbumClassAccess{}).
		Where("album_id = ? AND user_id = ?", album.ID, request.UserID).
		Count(&count)
	if result.Error != nil {
		return nil, internal(result.Error)
	}
	if count > 0 {
		return nil, conflict("this student already has access to a class in this album")
	}
	access := models.AlbumClassAccess{
		AlbumID:     album.ID,
		UserID:      &request.UserID,
		ClassID:     *targetClass,
		StudentName: request.StudentName,
		Email:       request.Email,
		Status:      models.AccessStatusApproved,
	}
	if err := db.Instance.Create(&access).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflict("this student already has access to a class in this album")
		}
		return nil, internal(err)
	}
	// The grant is in; retiring the request is bookkeeping and must not fail
	// the call.
	request.Status = models.RequestStatusApproved
	if err := db.Instance.Save(&request).Error; err != nil {
		log.Printf("access: request %d approved but not retired: %v", request.ID, err)
	}
	push.AccessStatusChanged(album, request.Email, models.AccessStatusApproved, "")
	return &access, nil
}

// Reject marks a pending request rejected. Any existing access row for the
// user is left untouched.
func Reject(user *models.User, requestID uint64, reason string) (*models.AlbumJoinRequest, error) {
	if user == nil || user.ID == 0 {
		return nil, ErrUnauthenticated
	}
	request := models.AlbumJoinRequest{}
	result := db.Instance.First(&request, requestID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, notFound("request not found")
		}
		return nil, internal(result.Error)
	}
	album, _, err := RequireManage(user, request.AlbumID)
	if err != nil {
		return nil, err
	}
	if request.Status != models.RequestStatusPending {
		return nil, conflict("this request has already been processed")
	}
	request.Status = models.RequestStatusRejected
	request.Reason = reason
	if err := db.Instance.Save(&request).Error; err != nil {
		return nil, internal(err)
	}
	push.AccessStatusChanged(album, request.Email, models.RequestStatusRejected, reason)
	return &request, nil
}

// EditProfile updates a registration's profile fields. The student may edit
// their own row only while it is approved; managers may edit any row in their
// album, including unclaimed ones. Status is never touched.
func EditProfile(editor *models.User, accessID uint64, update ProfileUpdate) (*models.AlbumClassAccess, error) {
	if editor == nil || editor.ID == 0 {
		return nil, ErrUnauthenticated
	}
	access := models.AlbumClassAccess{}
	result := db.Instance.Preload("Photos").First(&access, accessID)
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
	} else if _, _, err := RequireManage(editor, access.AlbumID); err != nil {
		return nil, err
	}
	if update.StudentName != nil {
		access.StudentName = *update.StudentName
	}
	if update.Email != nil {
		access.Email = *update.Email
	}
	if update.DateOfBirth != nil {
		access.DateOfBirth = *update.DateOfBirth
	}
	if update.Instagram != nil {
		access.Instagram = *update.Instagram
	}
	if update.Message != nil {
		access.Message = *update.Message
	}
	if update.VideoURL != nil {
		access.VideoURL = *update.VideoURL
	}
	if update.Photos != nil {
		if len(*update.Photos) > models.MaxAccessPhotos {
			return nil, invalidOperation(fmt.Sprintf("at most %d photos are allowed", models.MaxAccessPhotos))
		}
		photos := make([]models.AlbumClassPhoto, 0, len(*update.Photos))
		for i, path := range *update.Photos {
			photos = append(photos, models.AlbumClassPhoto{
				AccessID: access.ID,
				Position: uint8(i),
				Path:     path,
			})
		}
		err := db.Instance.Transaction(func(tx *gorm.DB) error {
			if err := tx.Delete(&models.AlbumClassPhoto{}, "access_id = ?", access.ID).Error; err != nil {
				return err
			}
			if len(photos) == 0 {
				return nil
			}
			return tx.Create(&photos).Error
		})
		if err != nil {
			return nil, internal(err)
		}
		access.Photos = photos
	}
	if err := db.Instance.Omit("Photos").Save(&access).Error; err != nil {
		return nil, internal(err)
	}
	return &access, nil
}

// Withdraw is a student's self-service exit: it deletes their access row and
// any lingering join request so they can register again from scratch.
func Withdraw(user *models.User, albumID uint64) error {
	if user == nil || user.ID == 0 {
		return ErrUnauthenticated
	}
	if _, err := GetAlbum(albumID); err != nil {
		return err
	}
	access := models.AlbumClassAccess{}
	found := false
	result := db.Instance.First(&access, "album_id = ? AND user_id = ?", albumID, user.ID)
	if result.Error == nil {
		found = true
		if err := deleteAccessRow(&access); err != nil {
			return err
		}
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return internal(result.Error)
	}
	result = db.Instance.Delete(&models.AlbumJoinRequest{}, "album_id = ? AND user_id = ?", albumID, user.ID)
	if result.Error != nil {
		return internal(result.Error)
	}
	if !found && result.RowsAffected == 0 {
		return notFound("registration not found")
	}
	return nil
}

// RemoveAccess revokes one registration. Manager only; students use Withdraw.
func RemoveAccess(user *models.User, accessID uint64) error {
	if user == nil || user.ID == 0 {
		return ErrUnauthenticated
	}
	access := models.AlbumClassAccess{}
	result := db.Instance.First(&access, accessID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return notFound("registration not found")
		}
		return internal(result.Error)
	}
	album, _, err := RequireManage(user, access.AlbumID)
	if err != nil {
		return err
	}
	if err := deleteAccessRow(&access); err != nil {
		return err
	}
	push.AccessStatusChanged(album, access.Email, "revoked", "")
	return nil
}

// AddStudent lets a manager register a student who has no account yet. The
// row is created approved and unclaimed (no user id).
func AddStudent(user *models.User, albumID, classID uint64, studentName, email string) (*models.AlbumClassAccess, error) {
	album, _, err := RequireManage(user, albumID)
	if err != nil {
		return nil, err
	}
	if err := classInAlbum(album.ID, classID); err != nil {
		return nil, err
	}
	if err := checkCapacity(album); err != nil {
		return nil, err
	}
	access := models.AlbumClassAccess{
		AlbumID:     album.ID,
		ClassID:     classID,
		StudentName: studentName,
		Email:       email,
		Status:      models.AccessStatusApproved,
	}
	if err := db.Instance.Create(&access).Error; err != nil {
		return nil, internal(err)
	}
	return &access, nil
}

// ListAccess returns the album's registrations for managers, optionally
// narrowed to one class.
func ListAccess(user *models.User, albumID uint64, classID *uint64) ([]models.AlbumClassAccess, error) {
	if _, _, err := RequireManage(user, albumID); err != nil {
		return nil, err
	}
	query := db.Instance.Preload("Photos").
		Where("album_id = ?", albumID).
		Order("student_name ASC, id ASC")
	if classID != nil {
		query = query.Where("class_id = ?", *classID)
	}
	rows := []models.AlbumClassAccess{}
	if err := query.Find(&rows).Error; err != nil {
		return nil, internal(err)
	}
	return rows, nil
}

func classInAlbum(albumID, classID uint64) error {
	class := models.AlbumClass{}
	result := db.Instance.First(&class, "id = ? AND album_id = ?", classID, albumID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return notFound("class not found")
		}
		return internal(result.Error)
	}
	return nil
}

// checkCapacity fails when approved registrations plus pending requests have
// used up the album's configured student count. Zero means unlimited.
func checkCapacity(album *models.Album) error {
	if album.StudentCapacity <= 0 {
		return nil
	}
	var approved, pending int64
	result := db.Instance.Model(&models.AlbumClassAccess{}).
		Where("album_id = ? AND status = ?", album.ID, models.AccessStatusApproved).
		Count(&approved)
	if result.Error != nil {
		return internal(result.Error)
	}
	result = db.Instance.Model(&models.AlbumJoinRequest{}).
		Where("album_id = ? AND status = ?", album.ID, models.RequestStatusPending).
		Count(&pending)
	if result.Error != nil {
		return internal(result.Error)
	}
	if approved+pending >= int64(album.StudentCapacity) {
		return capacityExceeded(fmt.Sprintf("this album is full (%d students)", album.StudentCapacity))
	}
	return nil
}

func deleteAccessRow(access *models.AlbumClassAccess) error {
	if err := db.Instance.Delete(&models.AlbumClassPhoto{}, "access_id = ?", access.ID).Error; err != nil {
		return internal(err)
	}
	if err := db.Instance.Delete(access).Error; err != nil {
		return internal(err)
	}
	return nil
}
