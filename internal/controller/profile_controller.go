package controller

import (
	"fmt"
	"io"
	"net/http"

	"signlearn_backend/internal/service"
	"signlearn_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	ProfileService *service.ProfileService
}

func NewProfileController(profileService *service.ProfileService) *ProfileController {
	return &ProfileController{ProfileService: profileService}
}

// RenameRequest carries a new display name.
// swagger:model RenameRequest
type RenameRequest struct {
	Name string `json:"name"`
}

// AttachAvatarRequest points the profile at an uploaded image.
// swagger:model AttachAvatarRequest
type AttachAvatarRequest struct {
	URL string `json:"url" binding:"required"`
}

// GetProfile godoc
// @Summary Current learner profile
// @Tags profile
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.Learner}
// @Failure 401 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /profile [get]
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	learnerID, ok := currentLearner(ctx)
	if !ok {
		return
	}

	learner, err := c.ProfileService.Profile(ctx.Request.Context(), learnerID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, learner)
}

// Rename godoc
// @Summary Change the display name
// @Tags profile
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body RenameRequest true "new name"
// @Success 200 {object} util.Response{data=model.Learner}
// @Failure 400 {object} util.Response
// @Router /profile/name [put]
func (c *ProfileController) Rename(ctx *gin.Context) {
	learnerID, ok := currentLearner(ctx)
	if !ok {
		return
	}

	var req RenameRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	learner, err := c.ProfileService.RenameLearner(ctx.Request.Context(), learnerID, req.Name)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, learner)
}

// UploadAvatar godoc
// @Summary Upload a new profile picture
// @Description Stores the image, then records its URL. When only the record update fails
// @Description the response still carries the stored URL for PUT /profile/avatar.
// @Tags profile
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "image"
// @Success 200 {object} util.Response{data=model.Learner}
// @Failure 400 {object} util.Response
// @Failure 502 {object} util.Response
// @Router /profile/avatar [post]
func (c *ProfileController) UploadAvatar(ctx *gin.Context) {
	learnerID, ok := currentLearner(ctx)
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing file")
		return
	}
	maxBytes := c.ProfileService.AvatarMaxBytes()
	if maxBytes > 0 && fileHeader.Size > maxBytes {
		util.BadRequest(ctx, fmt.Sprintf("image must be at most %d bytes", maxBytes))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	avatarURL, learner, err := c.ProfileService.UpdateAvatar(ctx.Request.Context(), learnerID, data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		if avatarURL != "" {
			status := util.StatusFor(err)
			ctx.JSON(status, util.Response{
				Code:    status,
				Message: util.Message(err),
				Data:    gin.H{"url": avatarURL},
			})
			return
		}
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, learner)
}

// AttachAvatar godoc
// @Summary Record an already uploaded profile picture
// @Tags profile
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body AttachAvatarRequest true "stored image URL"
// @Success 200 {object} util.Response{data=model.Learner}
// @Failure 400 {object} util.Response
// @Router /profile/avatar [put]
func (c *ProfileController) AttachAvatar(ctx *gin.Context) {
	learnerID, ok := currentLearner(ctx)
	if !ok {
		return
	}

	var req AttachAvatarRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.Error(ctx, http.StatusBadRequest, err.Error())
		return
	}

	learner, err := c.ProfileService.AttachAvatar(ctx.Request.Context(), learnerID, req.URL)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, learner)
}
