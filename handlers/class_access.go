package handlers

import (
	"fmt"
	"net/http"

	"yearbook/access"
	"yearbook/models"
	"yearbook/storage"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
)

type AccessRequestRequest struct {
	AlbumID     uint64  `form:"album_id" binding:"required"`
	ClassID     *uint64 `form:"class_id"`
	StudentName string  `form:"name" binding:"required"`
	Email       string  `form:"email" binding:"required"`
}

type AccessEditRequest struct {
	AccessID    uint64    `json:"access_id" binding:"required"`
	StudentName *string   `json:"name"`
	Email       *string   `json:"email"`
	DateOfBirth *string   `json:"date_of_birth"`
	Instagram   *string   `json:"instagram"`
	Message     *string   `json:"message"`
	VideoURL    *string   `json:"video_url"`
	Photos      *[]string `json:"photos"`
}

type AccessIDRequest struct {
	AccessID uint64 `form:"access_id" binding:"required"`
}

type AccessAddRequest struct {
	AlbumID     uint64 `form:"album_id" binding:"required"`
	ClassID     uint64 `form:"class_id" binding:"required"`
	StudentName string `form:"name" binding:"required"`
	Email       string `form:"email"`
}

type AccessListRequest struct {
	AlbumID uint64  `form:"album_id" binding:"required"`
	ClassID *uint64 `form:"class_id"`
}

type PhotoSlotRequest struct {
	AccessID uint64 `form:"access_id" binding:"required"`
	Position uint8  `form:"position"`
}

func AccessStatus(c *gin.Context, user *models.User) {
	r := AlbumIDRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status, err := access.MyStatus(user, r.AlbumID)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func AccessRequest(c *gin.Context, user *models.User) {
	r := AccessRequestRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status, err := access.Request(user, r.AlbumID, r.ClassID, r.StudentName, r.Email)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func AccessEdit(c *gin.Context, user *models.User) {
	r := AccessEditRequest{}
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	row, err := access.EditProfile(user, r.AccessID, access.ProfileUpdate{
		StudentName: r.StudentName,
		Email:       r.Email,
		DateOfBirth: r.DateOfBirth,
		Instagram:   r.Instagram,
		Message:     r.Message,
		VideoURL:    r.VideoURL,
		Photos:      r.Photos,
	})
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func AccessWithdraw(c *gin.Context, user *models.User) {
	r := AlbumIDRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := access.Withdraw(user, r.AlbumID); err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

func AccessRemove(c *gin.Context, user *models.User) {
	r := AccessIDRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := access.RemoveAccess(user, r.AccessID); err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

func AccessAdd(c *gin.Context, user *models.User) {
	r := AccessAddRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	row, err := access.AddStudent(user, r.AlbumID, r.ClassID, r.StudentName, r.Email)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func AccessList(c *gin.Context, user *models.User) {
	r := AccessListRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rows, err := access.ListAccess(user, r.AlbumID, r.ClassID)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// AccessPhotoUpload stores the request body as the photo for one of the four
// slots of a registration.
func AccessPhotoUpload(c *gin.Context, user *models.User) {
	r := PhotoSlotRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	row, err := access.GetAccessForEdit(user, r.AccessID)
	if err != nil {
		Error(c, err)
		return
	}
	store := storage.GetDefaultStorage()
	if store == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no storage configured"})
		return
	}
	path := fmt.Sprintf("album/%d/access/%d/%s", row.AlbumID, row.ID, uuid.NewString())
	if _, err := store.Save(path, c.Request.Body); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}
	previous, err := access.SetPhoto(user, r.AccessID, r.Position, path)
	if err != nil {
		_ = store.Delete(path)
		Error(c, err)
		return
	}
	if previous != "" {
		_ = store.Delete(previous)
	}
	c.JSON(http.StatusOK, OKResponse)
}

func AccessPhotoFetch(c *gin.Context, user *models.User) {
	r := PhotoSlotRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	photo, err := access.GetPhoto(user, r.AccessID, r.Position)
	if err != nil {
		Error(c, err)
		return
	}
	store := storage.GetDefaultStorage()
	if store == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no storage configured"})
		return
	}
	store.Serve(photo.Path, c.Request, c.Writer)
}
