package web

import (
	"net/http"
	"time"

	"yearbook/db"
	"yearbook/handlers"

	"github.com/gin-gonic/gin"
)

// InviteView is the public landing page for an invite link: it shows which
// album and role the token grants before asking the visitor to log in.
// Redemption itself requires an authenticated session (POST /invite/redeem).
func InviteView(c *gin.Context) {
	token := c.Param("token")
	rows, err := db.Instance.
		Table("album_invites").
		Select("albums.name, users.name, album_invites.role, album_invites.expires_at, album_invites.revoked_at").
		Joins("join albums on album_invites.album_id = albums.id").
		Joins("join users on album_invites.created_by_id = users.id").
		Where("token = ?", token).
		Rows()
	if err != nil {
		c.JSON(http.StatusInternalServerError, handlers.DBError1Response)
		return
	}
	var albumName, inviterName, role string
	var expiresAt, revokedAt int64
	found := false
	if rows.Next() {
		if err = rows.Scan(&albumName, &inviterName, &role, &expiresAt, &revokedAt); err != nil {
			rows.Close()
			c.JSON(http.StatusInternalServerError, handlers.DBError2Response)
			return
		}
		found = true
	}
	rows.Close()
	if !found {
		c.JSON(http.StatusNotFound, handlers.Response{Error: "invite not found"})
		return
	}
	if revokedAt > 0 || expiresAt <= time.Now().Unix() {
		c.JSON(http.StatusGone, handlers.Response{Error: "this invite is no longer valid"})
		return
	}
	json := gin.H{
		"albumName":   albumName,
		"inviterName": "@" + inviterName,
		"role":        role,
		"expires":     time.Unix(expiresAt, 0).Format("2 Jan 2006"),
		"token":       token,
	}
	if c.Query("format") == "json" {
		c.JSON(http.StatusOK, json)
		return
	}
	c.HTML(http.StatusOK, "invite_view.tmpl", json)
}

func DisallowRobots(c *gin.Context) {
	c.String(http.StatusOK, "User-agent: *\nDisallow: /\n")
}
