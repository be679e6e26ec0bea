package handlers

import (
	"errors"
	"net/http"

	"yearbook/access"
	"yearbook/db"
	"yearbook/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"gorm.io/gorm"
)

type ClassCreateRequest struct {
	AlbumID uint64 `form:"album_id" binding:"required"`
	Name    string `form:"name" binding:"required"`
}

type ClassIDRequest struct {
	ClassID uint64 `form:"class_id" binding:"required"`
}

type ClassInfo struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Students int64  `json:"students"`
}

func ClassCreate(c *gin.Context, user *models.User) {
	r := ClassCreateRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	album, _, err := access.RequireManage(user, r.AlbumID)
	if err != nil {
		Error(c, err)
		return
	}
	class := models.AlbumClass{
		AlbumID: album.ID,
		Name:    r.Name,
	}
	if err := db.Instance.Create(&class).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "a class with this name already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, ClassInfo{ID: class.ID, Name: class.Name})
}

func ClassList(c *gin.Context, user *models.User) {
	r := AlbumIDRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	album, _, err := access.RequireView(user, r.AlbumID)
	if err != nil {
		Error(c, err)
		return
	}
	rows, err := db.Instance.
		Table("album_classes").
		Select("album_classes.id, album_classes.name, count(album_class_accesses.id)").
		Joins("left join album_class_accesses on album_class_accesses.class_id = album_classes.id and album_class_accesses.status = ?", models.AccessStatusApproved).
		Where("album_classes.album_id = ?", album.ID).
		Group("album_classes.id, album_classes.name").
		Order("album_classes.name ASC").
		Rows()
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	defer rows.Close()
	result := []ClassInfo{}
	for rows.Next() {
		info := ClassInfo{}
		if err = rows.Scan(&info.ID, &info.Name, &info.Students); err != nil {
			c.JSON(http.StatusInternalServerError, DBError2Response)
			return
		}
		result = append(result, info)
	}
	c.JSON(http.StatusOK, result)
}

// ClassDelete removes an empty class. A class holding approved students must
// be cleared first so registrations are never dropped silently.
func ClassDelete(c *gin.Context, user *models.User) {
	r := ClassIDRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	class := models.AlbumClass{}
	if db.Instance.First(&class, r.ClassID).Error != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "class not found"})
		return
	}
	if _, _, err := access.RequireManage(user, class.AlbumID); err != nil {
		Error(c, err)
		return
	}
	var count int64
	if db.Instance.Model(&models.AlbumClassAccess{}).Where("class_id = ?", class.ID).Count(&count).Error != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "this class still has registered students"})
		return
	}
	if db.Instance.Delete(&class).Error != nil {
		c.JSON(http.StatusInternalServerError, DBError2Response)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}
