package handlers

import (
	"net/http"

	"yearbook/access"
	"yearbook/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type RequestListRequest struct {
	AlbumID uint64  `form:"album_id" binding:"required"`
	ClassID *uint64 `form:"class_id"`
}

type RequestApproveRequest struct {
	RequestID uint64  `form:"request_id" binding:"required"`
	ClassID   *uint64 `form:"class_id"`
}

type RequestRejectRequest struct {
	RequestID uint64 `form:"request_id" binding:"required"`
	Reason    string `form:"reason"`
}

func RequestList(c *gin.Context, user *models.User) {
	r := RequestListRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	requests, err := access.ListPending(user, r.AlbumID, r.ClassID)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

func RequestApprove(c *gin.Context, user *models.User) {
	r := RequestApproveRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	row, err := access.Approve(user, r.RequestID, r.ClassID)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func RequestReject(c *gin.Context, user *models.User) {
	r := RequestRejectRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	row, err := access.Reject(user, r.RequestID, r.Reason)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}
