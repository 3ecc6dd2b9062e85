package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	profileUC "github.com/khanhvu/devconnect/internal/application/usecase/profile"
	"github.com/khanhvu/devconnect/pkg/apperror"
	"github.com/khanhvu/devconnect/pkg/logger"
)

type ProfileHandler struct {
	profileUseCase *profileUC.ProfileUseCase
	logger         logger.Logger
}

func NewProfileHandler(uc *profileUC.ProfileUseCase, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: uc,
		logger:         log,
	}
}

func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	out, err := h.profileUseCase.GetOwn(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProfileWithOwnerDTO(out))
}

func (h *ProfileHandler) GetProfileByHandle(c *gin.Context) {
	out, err := h.profileUseCase.GetByHandle(c.Request.Context(), c.Param("handle"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProfileWithOwnerDTO(out))
}

func (h *ProfileHandler) GetProfileByUser(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.Error(apperror.NewNotFound("profile", c.Param("userId")))
		return
	}

	out, err := h.profileUseCase.GetByUserID(c.Request.Context(), targetID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProfileWithOwnerDTO(out))
}

func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	out, err := h.profileUseCase.ListAll(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	dtos := make([]ProfileDTO, len(out))
	for i, pw := range out {
		dtos[i] = ToProfileWithOwnerDTO(pw)
	}
	c.JSON(http.StatusOK, dtos)
}

func (h *ProfileHandler) UpsertProfile(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	var req UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for profile upsert", err))
		return
	}

	p, err := h.profileUseCase.Upsert(c.Request.Context(), userID, req.ToDomainPatch())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProfileDTO(p))
}

func (h *ProfileHandler) AddExperience(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	var req AddExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for experience", err))
		return
	}

	p, err := h.profileUseCase.AddExperience(c.Request.Context(), userID, req.ToDomainInput())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProfileDTO(p))
}

func (h *ProfileHandler) DeleteExperience(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	expID, err := uuid.Parse(c.Param("expId"))
	if err != nil {
		c.Error(apperror.NewNotFound("experience entry", c.Param("expId")))
		return
	}

	p, err := h.profileUseCase.RemoveExperience(c.Request.Context(), userID, expID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProfileDTO(p))
}

func (h *ProfileHandler) AddEducation(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	var req AddEducationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for education", err))
		return
	}

	p, err := h.profileUseCase.AddEducation(c.Request.Context(), userID, req.ToDomainInput())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProfileDTO(p))
}

func (h *ProfileHandler) DeleteEducation(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	eduID, err := uuid.Parse(c.Param("eduId"))
	if err != nil {
		c.Error(apperror.NewNotFound("education entry", c.Param("eduId")))
		return
	}

	p, err := h.profileUseCase.RemoveEducation(c.Request.Context(), userID, eduID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProfileDTO(p))
}

func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	if err := h.profileUseCase.DeleteOwn(c.Request.Context(), userID); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
