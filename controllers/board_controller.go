package controllers

import (
	"dispatchboard/entity"
	"dispatchboard/pkg/resp"
	"dispatchboard/services"

	"github.com/gin-gonic/gin"
)

type BoardController struct {
	board *services.BoardService
}

func NewBoardController(board *services.BoardService) *BoardController {
	return &BoardController{board: board}
}

// GET /board
func (ctl *BoardController) GetBoard(c *gin.Context) {
	resp.OK(c, ctl.board.Snapshot())
}

type placeRequest struct {
	Entity entity.EntityRef `json:"entity" binding:"required"`
	Target entity.Slot      `json:"target" binding:"required"`
}

// POST /board/place
func (ctl *BoardController) Place(c *gin.Context) {
	var req placeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "entity and target are required")
		return
	}
	if req.Entity.ID == "" {
		resp.BadRequest(c, "entity id is required")
		return
	}
	if err := req.Target.Validate(); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if !ctl.board.Place(req.Entity, req.Target) {
		resp.OK(c, gin.H{"placed": false})
		return
	}
	resp.OK(c, gin.H{"placed": true})
}

// DELETE /board/completed
func (ctl *BoardController) ClearCompleted(c *gin.Context) {
	ctl.board.ClearCompleted()
	resp.OK(c, gin.H{"cleared": true})
}
