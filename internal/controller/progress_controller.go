package controller

import (
	"signlearn_backend/internal/service"
	"signlearn_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

func currentLearner(ctx *gin.Context) (string, bool) {
	id, ok := util.CurrentLearnerID(ctx)
	if !ok {
		util.RespondError(ctx, util.NewError("identity.Current", util.ErrNotAuthenticated, "not signed in"))
	}
	return id, ok
}

func (c *ProgressController) limit(ctx *gin.Context) (int, bool) {
	limit, err := util.ParseLimit(ctx.Query("limit"), c.ProgressService.DefaultLimit())
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return 0, false
	}
	return limit, true
}

// GetOverview godoc
// @Summary Learner progress overview
// @Description Stats, completed/remaining courses and recommendations in one snapshot
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "number of recommendations"
// @Success 200 {object} util.Response{data=model.ProgressOverview}
// @Failure 401 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /progress/overview [get]
func (c *ProgressController) GetOverview(ctx *gin.Context) {
	learnerID, ok := currentLearner(ctx)
	if !ok {
		return
	}
	limit, ok := c.limit(ctx)
	if !ok {
		return
	}

	overview, err := c.ProgressService.Overview(ctx.Request.Context(), learnerID, limit)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, overview)
}

// GetStats godoc
// @Summary Learner statistics
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.Stats}
// @Failure 401 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /progress/stats [get]
func (c *ProgressController) GetStats(ctx *gin.Context) {
	learnerID, ok := currentLearner(ctx)
	if !ok {
		return
	}

	stats, err := c.ProgressService.Stats(ctx.Request.Context(), learnerID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// GetCourses godoc
// @Summary Catalog split into completed and remaining courses
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.CourseSplit}
// @Router /progress/courses [get]
func (c *ProgressController) GetCourses(ctx *gin.Context) {
	learnerID, ok := currentLearner(ctx)
	if !ok {
		return
	}

	split, err := c.ProgressService.Split(ctx.Request.Context(), learnerID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, split)
}

// GetRecommendations godoc
// @Summary Courses to continue with
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "number of recommendations"
// @Success 200 {object} util.Response{data=[]model.Course}
// @Failure 400 {object} util.Response
// @Router /progress/recommendations [get]
func (c *ProgressController) GetRecommendations(ctx *gin.Context) {
	learnerID, ok := currentLearner(ctx)
	if !ok {
		return
	}
	limit, ok := c.limit(ctx)
	if !ok {
		return
	}

	courses, err := c.ProgressService.Recommendations(ctx.Request.Context(), learnerID, limit)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// GetCompleted godoc
// @Summary Completed courses
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /progress/completed [get]
func (c *ProgressController) GetCompleted(ctx *gin.Context) {
	learnerID, ok := currentLearner(ctx)
	if !ok {
		return
	}

	courses, err := c.ProgressService.CompletedCourses(ctx.Request.Context(), learnerID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}
