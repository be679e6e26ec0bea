package main

import (
	"log"
	"strings"
	"time"

	"yearbook/auth"
	"yearbook/config"
	"yearbook/db"
	"yearbook/handlers"
	"yearbook/models"
	"yearbook/storage"
	"yearbook/utils"
	"yearbook/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
)

const (
	sessionCookieName     = "token"
	sessionExpirationTime = 365 * 86400 // 1 year
)

func main() {
	db.Init()
	models.Init()
	storage.Init()

	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"PUT", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           30 * 24 * time.Hour,
	}))

	// HTML templates
	router.LoadHTMLGlob("templates/*.tmpl")

	cookieStore := gormsessions.NewStore(db.Instance, true, []byte(config.SESSION_KEY))
	cookieStore.Options(sessions.Options{MaxAge: sessionExpirationTime})
	router.Use(sessions.Sessions(sessionCookieName, cookieStore))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/album/access/photo"})))
	}
	router.Use((&utils.CacheRouter{CacheTime: utils.CacheNoCache}).Handler()) // No cache by default, individual end-points can override that
	// Custom Auth Router
	authRouter := &auth.Router{Base: router}
	// User handlers
	router.POST("/user/register", handlers.UserRegister)
	router.POST("/user/login", handlers.UserLogin)
	authRouter.POST("/user/logout", handlers.UserLogout)
	router.GET("/user/status", handlers.UserGetStatus)
	// Album handlers
	authRouter.POST("/album/create", handlers.AlbumCreate)
	authRouter.GET("/album/list", handlers.AlbumList)
	authRouter.GET("/album/get", handlers.AlbumGet)
	// Platform review
	authRouter.GET("/admin/album/pending", handlers.AdminAlbumsPending, models.PermissionAdmin)
	authRouter.POST("/admin/album/review", handlers.AdminAlbumReview, models.PermissionAdmin)
	// Class handlers
	authRouter.POST("/album/class/create", handlers.ClassCreate)
	authRouter.GET("/album/class/list", handlers.ClassList)
	authRouter.POST("/album/class/delete", handlers.ClassDelete)
	// Class access workflow
	authRouter.GET("/album/access/status", handlers.AccessStatus)
	authRouter.POST("/album/access/request", handlers.AccessRequest)
	authRouter.POST("/album/access/edit", handlers.AccessEdit)
	authRouter.POST("/album/access/withdraw", handlers.AccessWithdraw)
	authRouter.POST("/album/access/remove", handlers.AccessRemove)
	authRouter.POST("/album/access/add", handlers.AccessAdd)
	authRouter.GET("/album/access/list", handlers.AccessList)
	authRouter.PUT("/album/access/photo", handlers.AccessPhotoUpload)
	authRouter.GET("/album/access/photo", handlers.AccessPhotoFetch)
	// Join requests
	authRouter.GET("/album/requests", handlers.RequestList)
	authRouter.POST("/album/requests/approve", handlers.RequestApprove)
	authRouter.POST("/album/requests/reject", handlers.RequestReject)
	// Team
	authRouter.GET("/album/members", handlers.MemberList)
	authRouter.POST("/album/members/save", handlers.MemberSave)
	authRouter.POST("/album/members/remove", handlers.MemberRemove)
	// Invites
	authRouter.POST("/album/invite/create", handlers.InviteCreate)
	authRouter.GET("/album/invite/list", handlers.InviteList)
	authRouter.POST("/album/invite/revoke", handlers.InviteRevoke)
	authRouter.POST("/invite/redeem", handlers.InviteRedeem)

	/*
	 *	Web interface
	 */
	router.GET("/w/invite/:token/", web.InviteView)
	router.GET("/robots.txt", web.DisallowRobots)

	var err error
	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	log.Fatalf("Server stopped: %v", err)
}
