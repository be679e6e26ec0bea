package handlers

import (
	"net/http"

	"yearbook/access"
	"yearbook/db"
	"yearbook/models"
	"yearbook/push"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type AlbumInfo struct {
	ID            uint64 `json:"id"`
	Owner         uint64 `json:"owner"`
	Name          string `json:"name"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status,omitempty"`
	Capacity      int    `json:"capacity"`
}

type AlbumCreateRequest struct {
	Name     string `form:"name" binding:"required"`
	Capacity int    `form:"capacity"`
}

type AlbumIDRequest struct {
	AlbumID uint64 `form:"album_id" binding:"required"`
}

type AlbumReviewRequest struct {
	AlbumID  uint64 `form:"album_id" binding:"required"`
	Decision string `form:"decision" binding:"required"` // "approved" or "declined"
}

func albumInfoFrom(album *models.Album) AlbumInfo {
	return AlbumInfo{
		ID:            album.ID,
		Owner:         album.OwnerID,
		Name:          album.Name,
		Status:        album.Status,
		PaymentStatus: album.PaymentStatus,
		Capacity:      album.StudentCapacity,
	}
}

func AlbumCreate(c *gin.Context, user *models.User) {
	r := AlbumCreateRequest{}
	err := c.ShouldBindWith(&r, binding.Form)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	album := models.Album{
		Name:            r.Name,
		OwnerID:         user.ID,
		Status:          models.AlbumStatusPending,
		PaymentStatus:   models.PaymentStatusUnpaid,
		StudentCapacity: r.Capacity,
	}
	result := db.Instance.Create(&album)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, albumInfoFrom(&album))
}

// AlbumList returns every album the caller owns, helps administer, or is
// registered in as a student.
func AlbumList(c *gin.Context, user *models.User) {
	rows, err := db.Instance.
		Table("albums").
		Select("distinct albums.id, albums.owner_id, albums.name, albums.status, albums.payment_status, albums.student_capacity").
		Joins("left join album_members on album_members.album_id = albums.id and album_members.user_id = ?", user.ID).
		Joins("left join album_class_accesses on album_class_accesses.album_id = albums.id and album_class_accesses.user_id = ? and album_class_accesses.status = ?", user.ID, models.AccessStatusApproved).
		Where("albums.owner_id = ? OR album_members.id IS NOT NULL OR album_class_accesses.id IS NOT NULL", user.ID).
		Order("albums.id DESC").
		Rows()
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	defer rows.Close()
	result := []AlbumInfo{}
	for rows.Next() {
		info := AlbumInfo{}
		if err = rows.Scan(&info.ID, &info.Owner, &info.Name, &info.Status, &info.PaymentStatus, &info.Capacity); err != nil {
			c.JSON(http.StatusInternalServerError, DBError2Response)
			return
		}
		result = append(result, info)
	}
	c.JSON(http.StatusOK, result)
}

func AlbumGet(c *gin.Context, user *models.User) {
	r := AlbumIDRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	album, role, err := access.RequireView(user, r.AlbumID)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"error":      "",
		"album":      albumInfoFrom(album),
		"can_manage": role.CanManage(),
		"is_owner":   role.IsOwner,
	})
}

// AdminAlbumsPending lists albums awaiting platform review. Wired behind
// PermissionAdmin.
func AdminAlbumsPending(c *gin.Context, user *models.User) {
	albums := []models.Album{}
	err := db.Instance.Order("id ASC").Find(&albums, "status = ?", models.AlbumStatusPending).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	result := []AlbumInfo{}
	for i := range albums {
		result = append(result, albumInfoFrom(&albums[i]))
	}
	c.JSON(http.StatusOK, result)
}

// AdminAlbumReview approves or declines a pending album. Wired behind
// PermissionAdmin.
func AdminAlbumReview(c *gin.Context, user *models.User) {
	r := AlbumReviewRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if r.Decision != models.AlbumStatusApproved && r.Decision != models.AlbumStatusDeclined {
		c.JSON(http.StatusBadRequest, gin.H{"error": "decision must be approved or declined"})
		return
	}
	album := models.Album{}
	if db.Instance.Preload("Owner").First(&album, r.AlbumID).Error != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "album not found"})
		return
	}
	album.Status = r.Decision
	if db.Instance.Save(&album).Error != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	push.AlbumStatusChanged(&album, album.Owner.Email)
	c.JSON(http.StatusOK, albumInfoFrom(&album))
}
