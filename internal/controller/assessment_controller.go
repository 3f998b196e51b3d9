package controller

import (
	"career_advisor_backend/internal/service"
	"career_advisor_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	Service *service.AssessmentService
}

func NewAssessmentController(svc *service.AssessmentService) *AssessmentController {
	return &AssessmentController{Service: svc}
}

// AssessRequest 职业测评请求
// swagger:model AssessRequest
type AssessRequest struct {
	UserID uint `json:"user_id"`
}

// Assess godoc
// @Summary 职业匹配测评
// @Description 对档案与全部职业逐一打分，返回前五名推荐与概要
// @Tags 职业测评
// @Accept json
// @Produce json
// @Param body body AssessRequest true "用户ID"
// @Success 200 {object} util.Response{data=service.AssessmentResponse}
// @Failure 400 {object} util.Response "缺少用户ID"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/assess [post]
func (c *AssessmentController) Assess(ctx *gin.Context) {
	var req AssessRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.Service.Assess(ctx.Request.Context(), req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrUserIDRequired):
			util.BadRequest(ctx, "User ID required")
		case errors.Is(err, util.ErrUserNotFound):
			util.NotFound(ctx, "User not found")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, resp)
}
