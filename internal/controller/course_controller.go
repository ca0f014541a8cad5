package controller

import (
	"strconv"

	"signlearn_backend/internal/service"
	"signlearn_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// ListCourses godoc
// @Summary List the course catalog
// @Description Ordered by id; search filters by case-insensitive name match
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param search query string false "name filter"
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.CourseService.List(ctx.Request.Context(), ctx.Query("search"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// GetCourse godoc
// @Summary Get one course
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "course id"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, ok := courseID(ctx)
	if !ok {
		return
	}

	course, err := c.CourseService.Get(ctx.Request.Context(), id)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// GetCourseQuestions godoc
// @Summary Get the quiz questions of a course
// @Description Questions are ordered by id; a course without questions returns an empty list
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "course id"
// @Success 200 {object} util.Response{data=model.CourseQuiz}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /courses/{id}/questions [get]
func (c *CourseController) GetCourseQuestions(ctx *gin.Context) {
	id, ok := courseID(ctx)
	if !ok {
		return
	}

	quiz, err := c.CourseService.Quiz(ctx.Request.Context(), id)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

func courseID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		util.BadRequest(ctx, "invalid course id")
		return 0, false
	}
	return id, true
}
