package controllers

import (
	"dispatchboard/pkg/resp"
	"dispatchboard/services"

	"github.com/gin-gonic/gin"
)

type MailController struct {
	board *services.BoardService
	mail  *services.MailService
}

func NewMailController(board *services.BoardService, mail *services.MailService) *MailController {
	return &MailController{board: board, mail: mail}
}

type notifyRequest struct {
	DriverID string `json:"driverId" binding:"required"`
	Mode     string `json:"mode" binding:"required,oneof=pickup delivery"`
}

// POST /notify/driver
// Sends the pickup or delivery mail for the container currently loaded on the
// driver's chassis. Send failures surface here so the operator can retry.
func (ctl *MailController) NotifyDriver(c *gin.Context) {
	var req notifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "driverId and mode (pickup|delivery) are required")
		return
	}

	driver, container, ok := ctl.board.LoadedContainerForDriver(req.DriverID)
	if !ok {
		resp.NotFound(c, "driver has no loaded container")
		return
	}
	if driver.Email == "" {
		resp.BadRequest(c, "driver has no email address")
		return
	}

	var mail services.Mail
	if req.Mode == "pickup" {
		mail = services.BuildPickupMail(container, driver)
	} else {
		mail = services.BuildDeliveryMail(container, driver)
	}

	if err := ctl.mail.Send(driver.Email, mail); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"sent": true, "subject": mail.Subject})
}
