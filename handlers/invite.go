package handlers

import (
	"net/http"

	"yearbook/access"
	"yearbook/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type InviteCreateRequest struct {
	AlbumID uint64 `form:"album_id" binding:"required"`
	Role    string `form:"role" binding:"required"`
}

type InviteIDRequest struct {
	InviteID uint64 `form:"invite_id" binding:"required"`
}

type InviteRedeemRequest struct {
	Token string `form:"token" binding:"required"`
}

func InviteCreate(c *gin.Context, user *models.User) {
	r := InviteCreateRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	invite, err := access.IssueInvite(user, r.AlbumID, r.Role)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"error":      "",
		"token":      invite.Token,
		"expires_at": invite.ExpiresAt,
		"path":       "/w/invite/" + invite.Token + "/",
	})
}

func InviteList(c *gin.Context, user *models.User) {
	r := AlbumIDRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	invites, err := access.ListInvites(user, r.AlbumID)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, invites)
}

func InviteRevoke(c *gin.Context, user *models.User) {
	r := InviteIDRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := access.RevokeInvite(user, r.InviteID); err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

func InviteRedeem(c *gin.Context, user *models.User) {
	r := InviteRedeemRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	albumID, err := access.RedeemInvite(user, r.Token)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "album_id": albumID})
}
