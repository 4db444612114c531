package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"growcoach_backend/internal/middleware"
	"growcoach_backend/internal/models"
	"growcoach_backend/internal/services"
	"growcoach_backend/internal/services/dto"
)

type CompanyHandler struct {
	*BaseHandler
	companyService services.CompanyService
	jobService     services.JobService
	uploadService  services.UploadService
}

func NewCompanyHandler(
	base *BaseHandler,
	companyService services.CompanyService,
	jobService services.JobService,
	uploadService services.UploadService,
) *CompanyHandler {
	return &CompanyHandler{
		BaseHandler:    base,
		companyService: companyService,
		jobService:     jobService,
		uploadService:  uploadService,
	}
}

func (h *CompanyHandler) RegisterRoutes(rg *gin.RouterGroup, authMW *middleware.AuthMiddleware) {
	company := rg.Group("/company")
	company.Use(authMW.RequireAuth(), authMW.RequireRole(models.UserRoleCompany))
	{
		company.GET("/profile", h.GetProfile)
		company.PUT("/profile", h.UpdateProfile)
		company.POST("/logo", h.UploadLogo)
		company.POST("/request-verification", h.RequestVerification)
		company.GET("/verification-status", h.VerificationStatus)
		company.GET("/candidates", h.BrowseCandidates)
		company.GET("/jobs", h.MyJobs)
	}
}

func (h *CompanyHandler) GetProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	profile, err := h.companyService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondSuccess(c, http.StatusOK, "", profile)
}

func (h *CompanyHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCompanyProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	profile, err := h.companyService.UpdateProfile(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondSuccess(c, http.StatusOK, "Profil mis à jour.", profile)
}

func (h *CompanyHandler) UploadLogo(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("logo")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	key, err := h.uploadService.UploadLogo(c.Request.Context(), userID, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondSuccess(c, http.StatusOK, "Logo mis à jour.", gin.H{
		"key": key,
		"url": h.uploadService.FileURL(c.Request.Context(), key),
	})
}

func (h *CompanyHandler) RequestVerification(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.companyService.RequestVerification(userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondSuccess(c, http.StatusOK, "Demande de vérification envoyée.", nil)
}

func (h *CompanyHandler) VerificationStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	status, err := h.companyService.VerificationStatus(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondSuccess(c, http.StatusOK, "", status)
}

func (h *CompanyHandler) BrowseCandidates(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	page, pageSize := ParsePagination(c)
	resp, err := h.companyService.BrowseCandidates(c.Request.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondSuccess(c, http.StatusOK, "", resp)
}

func (h *CompanyHandler) MyJobs(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	jobs, err := h.jobService.ListByCompany(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondSuccess(c, http.StatusOK, "", jobs)
}
