package handlers

import (
	"net/http"

	"yearbook/access"
	"yearbook/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type MemberSaveRequest struct {
	AlbumID uint64 `form:"album_id" binding:"required"`
	UserID  uint64 `form:"user_id" binding:"required"`
	Role    string `form:"role" binding:"required"`
}

type MemberRemoveRequest struct {
	AlbumID uint64 `form:"album_id" binding:"required"`
	UserID  uint64 `form:"user_id" binding:"required"`
}

func MemberList(c *gin.Context, user *models.User) {
	r := AlbumIDRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	roster, err := access.Roster(user, r.AlbumID)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, roster)
}

func MemberSave(c *gin.Context, user *models.User) {
	r := MemberSaveRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	member, err := access.UpsertMember(user, r.AlbumID, r.UserID, r.Role)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

func MemberRemove(c *gin.Context, user *models.User) {
	r := MemberRemoveRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := access.RemoveMember(user, r.AlbumID, r.UserID); err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}
