package controller

import (
	"career_advisor_backend/internal/service"
	"career_advisor_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

// UserController 学生档案相关的HTTP请求
type UserController struct {
	UserService       *service.UserService
	AssessmentService *service.AssessmentService
}

func NewUserController(userService *service.UserService, assessmentService *service.AssessmentService) *UserController {
	return &UserController{
		UserService:       userService,
		AssessmentService: assessmentService,
	}
}

// UpdateSkillsRequest 整体替换当前技能
// swagger:model UpdateSkillsRequest
type UpdateSkillsRequest struct {
	CurrentSkills []string `json:"current_skills"`
}

// Register godoc
// @Summary 注册学生档案
// @Description 提交基本信息、兴趣与当前技能，返回档案ID
// @Tags 学生档案
// @Accept  json
// @Produce  json
// @Param   body body service.RegisterRequest true "档案信息"
// @Success 201 {object} util.Response{data=object} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "邮箱已被注册"
// @Router /api/register [post]
func (c *UserController) Register(ctx *gin.Context) {
	var req service.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.Register(req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNameRequired):
			util.BadRequest(ctx, "Name and email are required")
		case errors.Is(err, util.ErrEmailRegistered):
			util.Conflict(ctx, "Email already exists")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{
		"user_id": user.ID,
		"message": "User registered successfully",
	})
}

// GetProfile godoc
// @Summary 获取学生档案
// @Tags 学生档案
// @Produce  json
// @Param   id path int true "用户ID"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/profiles/{id} [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	user, err := c.UserService.GetProfile(id)
	if err != nil {
		c.handleProfileError(ctx, err)
		return
	}

	completed, err := c.AssessmentService.History(user.ID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"profile":               user,
		"assessments_completed": completed,
	})
}

// UpdateSkills godoc
// @Summary 更新当前技能
// @Tags 学生档案
// @Accept  json
// @Produce  json
// @Param   id path int true "用户ID"
// @Param   body body UpdateSkillsRequest true "技能列表"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/profiles/{id}/skills [put]
func (c *UserController) UpdateSkills(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var req UpdateSkillsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateSkills(id, req.CurrentSkills)
	if err != nil {
		c.handleProfileError(ctx, err)
		return
	}

	util.Success(ctx, user)
}

func (c *UserController) handleProfileError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrUserIDRequired):
		util.BadRequest(ctx, "invalid id")
	case errors.Is(err, util.ErrUserNotFound):
		util.NotFound(ctx, "User not found")
	default:
		util.LogInternalError(ctx, err)
	}
}
