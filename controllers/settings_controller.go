package controllers

import (
	"dispatchboard/entity"
	"dispatchboard/pkg/resp"
	"dispatchboard/services"

	"github.com/gin-gonic/gin"
)

type SettingsController struct {
	board *services.BoardService
}

func NewSettingsController(board *services.BoardService) *SettingsController {
	return &SettingsController{board: board}
}

// GET /settings/yards
func (ctl *SettingsController) GetYards(c *gin.Context) {
	resp.OK(c, ctl.board.Snapshot().Yards)
}

// PUT /settings/yards
func (ctl *SettingsController) UpdateYards(c *gin.Context) {
	var yards []entity.YardConfig
	if err := c.ShouldBindJSON(&yards); err != nil {
		resp.BadRequest(c, "invalid yard config")
		return
	}
	ctl.board.UpdateYards(yards)
	resp.OK(c, ctl.board.Snapshot().Yards)
}

// GET /settings/driver-groups
func (ctl *SettingsController) GetDriverGroups(c *gin.Context) {
	resp.OK(c, ctl.board.Snapshot().DriverGroups)
}

// PUT /settings/driver-groups
func (ctl *SettingsController) UpdateDriverGroups(c *gin.Context) {
	var cfg entity.DriverGroupConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		resp.BadRequest(c, "invalid driver group config")
		return
	}
	ctl.board.UpdateDriverGroups(cfg)
	resp.OK(c, ctl.board.Snapshot().DriverGroups)
}
