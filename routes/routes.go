package routes

import (
	"dispatchboard/controllers"
	"dispatchboard/middlewares"
	"dispatchboard/ws"

	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Auth     *controllers.AuthController
	Board    *controllers.BoardController
	Settings *controllers.SettingsController
	Mail     *controllers.MailController
	Hub      *ws.BoardHub
}

func SetupRoutes(r *gin.Engine, ctl Controllers, jwtSecret string) {
	r.Use(middlewares.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.POST("/auth/login", ctl.Auth.Login)

	authed := r.Group("/")
	authed.Use(middlewares.AuthMiddleware(jwtSecret))
	{
		authed.GET("/board", ctl.Board.GetBoard)
		authed.POST("/board/place", ctl.Board.Place)
		authed.DELETE("/board/completed", ctl.Board.ClearCompleted)

		authed.GET("/settings/yards", ctl.Settings.GetYards)
		authed.PUT("/settings/yards", ctl.Settings.UpdateYards)
		authed.GET("/settings/driver-groups", ctl.Settings.GetDriverGroups)
		authed.PUT("/settings/driver-groups", ctl.Settings.UpdateDriverGroups)

		authed.POST("/notify/driver", ctl.Mail.NotifyDriver)

		authed.GET("/ws/board", ctl.Hub.HandleWebSocket)
	}
}
