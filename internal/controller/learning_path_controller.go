package controller

import (
	"career_advisor_backend/internal/service"
	"career_advisor_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type LearningPathController struct {
	Service *service.LearningPathService
}

func NewLearningPathController(svc *service.LearningPathService) *LearningPathController {
	return &LearningPathController{Service: svc}
}

// LearningPathRequest user_id 可选
// swagger:model LearningPathRequest
type LearningPathRequest struct {
	CareerID uint `json:"career_id"`
	UserID   uint `json:"user_id"`
}

// Generate godoc
// @Summary 生成学习路径
// @Description 按技能缺口与难度分为 Foundation / Core Skills / Advanced 三个阶段
// @Tags 学习路径
// @Accept json
// @Produce json
// @Param body body LearningPathRequest true "职业ID与可选的用户ID"
// @Success 200 {object} util.Response{data=service.LearningPath}
// @Failure 400 {object} util.Response "缺少职业ID"
// @Failure 404 {object} util.Response "职业或用户不存在"
// @Router /api/learning-path [post]
func (c *LearningPathController) Generate(ctx *gin.Context) {
	var req LearningPathRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	path, err := c.Service.Generate(ctx.Request.Context(), req.CareerID, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCareerIDRequired):
			util.BadRequest(ctx, "Career ID required")
		case errors.Is(err, util.ErrCareerNotFound):
			util.NotFound(ctx, "Career not found")
		case errors.Is(err, util.ErrUserNotFound):
			util.NotFound(ctx, "User not found")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, path)
}
