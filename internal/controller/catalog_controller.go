package controller

import (
	"career_advisor_backend/internal/service"
	"career_advisor_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	Service *service.CatalogService
}

func NewCatalogController(svc *service.CatalogService) *CatalogController {
	return &CatalogController{Service: svc}
}

// @Summary 获取全部职业
// @Tags 职业目录
// @Produce json
// @Success 200 {object} util.Response{data=[]model.CareerPath}
// @Router /api/careers [get]
func (c *CatalogController) ListCareers(ctx *gin.Context) {
	careers, err := c.Service.ListCareers()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, careers)
}

// @Summary 获取职业详情
// @Tags 职业目录
// @Produce json
// @Param id path int true "职业ID"
// @Success 200 {object} util.Response{data=model.CareerPath}
// @Failure 404 {object} util.Response
// @Router /api/careers/{id} [get]
func (c *CatalogController) GetCareer(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}

	career, err := c.Service.GetCareer(id)
	if err != nil {
		if errors.Is(err, util.ErrCareerNotFound) {
			util.NotFound(ctx, "Career not found")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, career)
}

// @Summary 获取全部技能
// @Tags 职业目录
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Skill}
// @Router /api/skills [get]
func (c *CatalogController) ListSkills(ctx *gin.Context) {
	skills, err := c.Service.ListSkills()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, skills)
}
