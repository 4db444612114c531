package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"growcoach_backend/internal/middleware"
	"growcoach_backend/internal/models"
	"growcoach_backend/internal/services"
	"growcoach_backend/internal/services/dto"
)

type JobHandler struct {
	*BaseHandler
	jobService services.JobService
}

func NewJobHandler(base *BaseHandler, jobService services.JobService) *JobHandler {
	return &JobHandler{BaseHandler: base, jobService: jobService}
}

func (h *JobHandler) RegisterRoutes(rg *gin.RouterGroup, authMW *middleware.AuthMiddleware) {
	jobs := rg.Group("/jobs")
	{
		jobs.GET("", authMW.OptionalAuth(), h.List)
		jobs.GET("/:id", authMW.OptionalAuth(), h.Get)

		jobs.POST("", authMW.RequireAuth(), authMW.RequireRole(models.UserRoleCompany), h.Create)
		jobs.PUT("/:id", authMW.RequireAuth(), authMW.RequireRole(models.UserRoleCompany), h.Update)
		jobs.DELETE("/:id", authMW.RequireAuth(), authMW.RequireRole(models.UserRoleCompany), h.Delete)
		jobs.GET("/:id/applications", authMW.RequireAuth(), authMW.RequireRole(models.UserRoleCompany), h.Applications)

		jobs.POST("/:id/apply", authMW.RequireAuth(), authMW.RequireRole(models.UserRoleCandidate), h.Apply)
	}

	applications := rg.Group("/applications")
	applications.Use(authMW.RequireAuth(), authMW.RequireRole(models.UserRoleCompany))
	{
		applications.PATCH("/:id/status", h.UpdateApplicationStatus)
	}
}

func (h *JobHandler) viewerID(c *gin.Context) string {
	if val, exists := c.Get("userID"); exists {
		if id, ok := val.(string); ok {
			return id
		}
	}
	return ""
}

func (h *JobHandler) List(c *gin.Context) {
	var filter dto.JobListFilter
	if !h.BindAndValidateQuery(c, &filter) {
		return
	}
	if filter.PageSize <= 0 {
		filter.Page, filter.PageSize = ParsePagination(c)
	}

	resp, err := h.jobService.List(c.Request.Context(), &filter, h.viewerID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondSuccess(c, http.StatusOK, "", resp)
}

func (h *JobHandler) Get(c *gin.Context) {
	jobID, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.jobService.Get(c.Request.Context(), jobID, h.viewerID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondSuccess(c, http.StatusOK, "", resp)
}

func (h *JobHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	job, err := h.jobService.Create(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondSuccess(c, http.StatusCreated, "Offre publiée.", job)
}

func (h *JobHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	jobID, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	job, err := h.jobService.Update(userID, jobID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondSuccess(c, http.StatusOK, "Offre mise à jour.", job)
}

func (h *JobHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	jobID, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}

	if err := h.jobService.Delete(userID, jobID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondSuccess(c, http.StatusOK, "Offre supprimée.", nil)
}

func (h *JobHandler) Apply(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	jobID, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}

	app, err := h.jobService.Apply(userID, jobID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondSuccess(c, http.StatusCreated, "Candidature envoyée.", app)
}

func (h *JobHandler) Applications(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	jobID, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}

	apps, err := h.jobService.ApplicationsForJob(c.Request.Context(), userID, jobID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondSuccess(c, http.StatusOK, "", apps)
}

func (h *JobHandler) UpdateApplicationStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	appID, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.jobService.UpdateApplicationStatus(userID, appID, req.Status); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondSuccess(c, http.StatusOK, "Statut de la candidature mis à jour.", nil)
}
