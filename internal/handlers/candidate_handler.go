package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"growcoach_backend/internal/middleware"
	"growcoach_backend/internal/models"
	"growcoach_backend/internal/services"
	"growcoach_backend/internal/services/dto"
)

type CandidateHandler struct {
	*BaseHandler
	candidateService services.CandidateService
	jobService       services.JobService
	uploadService    services.UploadService
}

func NewCandidateHandler(
	base *BaseHandler,
	candidateService services.CandidateService,
	jobService services.JobService,
	uploadService services.UploadService,
) *CandidateHandler {
	return &CandidateHandler{
		BaseHandler:      base,
		candidateService: candidateService,
		jobService:       jobService,
		uploadService:    uploadService,
	}
}

func (h *CandidateHandler) RegisterRoutes(rg *gin.RouterGroup, authMW *middleware.AuthMiddleware) {
	candidate := rg.Group("/candidate")
	candidate.Use(authMW.RequireAuth(), authMW.RequireRole(models.UserRoleCandidate))
	{
		candidate.GET("/dashboard", h.Dashboard)
		candidate.GET("/profile", h.GetProfile)
		candidate.PUT("/profile", h.UpdateProfile)
		candidate.POST("/avatar", h.UploadAvatar)
		candidate.POST("/resume", h.UploadResume)
		candidate.GET("/applications", h.MyApplications)
		candidate.GET("/saved-jobs", h.SavedJobs)
		candidate.POST("/saved-jobs/:job_id", h.SaveJob)
		candidate.DELETE("/saved-jobs/:job_id", h.UnsaveJob)
	}
}

func (h *CandidateHandler) Dashboard(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	dashboard, err := h.candidateService.Dashboard(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondSuccess(c, http.StatusOK, "", dashboard)
}

func (h *CandidateHandler) GetProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	profile, err := h.candidateService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondSuccess(c, http.StatusOK, "", profile)
}

func (h *CandidateHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCandidateProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	profile, err := h.candidateService.UpdateProfile(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondSuccess(c, http.StatusOK, "Profil mis à jour.", profile)
}

func (h *CandidateHandler) UploadAvatar(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	key, err := h.uploadService.UploadAvatar(c.Request.Context(), userID, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondSuccess(c, http.StatusOK, "Photo de profil mise à jour.", gin.H{
		"key": key,
		"url": h.uploadService.FileURL(c.Request.Context(), key),
	})
}

func (h *CandidateHandler) UploadResume(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("resume")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	key, err := h.uploadService.UploadResume(c.Request.Context(), userID, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondSuccess(c, http.StatusOK, "CV mis à jour.", gin.H{
		"key": key,
		"url": h.uploadService.FileURL(c.Request.Context(), key),
	})
}

func (h *CandidateHandler) MyApplications(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	apps, err := h.jobService.MyApplications(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondSuccess(c, http.StatusOK, "", apps)
}

func (h *CandidateHandler) SavedJobs(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	ids, err := h.candidateService.SavedJobIDs(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondSuccess(c, http.StatusOK, "", gin.H{"saved_jobs": ids})
}

func (h *CandidateHandler) SaveJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	jobID, ok := h.RequireParam(c, "job_id")
	if !ok {
		return
	}

	if err := h.candidateService.SaveJob(userID, jobID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondSuccess(c, http.StatusOK, "Offre sauvegardée.", nil)
}

func (h *CandidateHandler) UnsaveJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	jobID, ok := h.RequireParam(c, "job_id")
	if !ok {
		return
	}

	if err := h.candidateService.UnsaveJob(userID, jobID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondSuccess(c, http.StatusOK, "Offre retirée des favoris.", nil)
}
