package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"growcoach_backend/internal/middleware"
	"growcoach_backend/internal/models"
	"growcoach_backend/internal/services"
	"growcoach_backend/internal/services/dto"
)

type AdminHandler struct {
	*BaseHandler
	adminService        services.AdminService
	notificationService services.NotificationService
	candidateService    services.CandidateService
	uploadService       services.UploadService
}

func NewAdminHandler(
	base *BaseHandler,
	adminService services.AdminService,
	notificationService services.NotificationService,
	candidateService services.CandidateService,
	uploadService services.UploadService,
) *AdminHandler {
	return &AdminHandler{
		BaseHandler:         base,
		adminService:        adminService,
		notificationService: notificationService,
		candidateService:    candidateService,
		uploadService:       uploadService,
	}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup, authMW *middleware.AuthMiddleware) {
	admin := rg.Group("/admin")
	admin.Use(authMW.RequireAuth(), authMW.RequireRole(models.UserRoleAdmin))
	{
		admin.GET("/users", h.ListUsers)
		admin.POST("/users/:id/approve", h.ApproveUser)
		admin.POST("/users/:id/reject", h.RejectUser)
		admin.POST("/users/:id/block", h.BlockUser)
		admin.POST("/users/:id/unblock", h.UnblockUser)
		admin.POST("/users/:id/verify", h.VerifyCompany)
		admin.POST("/users/:id/unverify", h.UnverifyCompany)
		admin.POST("/users/bulk-moderate", h.BulkModerate)
		admin.DELETE("/users/:id", h.DeleteUser)

		admin.GET("/stats", h.Stats)

		admin.GET("/notifications", h.ListNotifications)
		admin.PUT("/notifications/:id/approve", h.ApproveNotification)
		admin.PUT("/notifications/:id/reject", h.RejectNotification)
		admin.POST("/notifications/:id/read", h.MarkNotificationRead)
		admin.POST("/notifications/read-all", h.MarkAllNotificationsRead)
		admin.DELETE("/notifications/:id", h.DeleteNotification)
		admin.DELETE("/notifications", h.ClearNotifications)

		admin.GET("/candidates/:id/profile", h.CandidateProfile)
		admin.POST("/candidates/:id/cv", h.UploadAdminResume)
		admin.GET("/candidates/:id/cv", h.AdminResumeURL)
	}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	var filter dto.AdminUserFilter
	if !h.BindAndValidateQuery(c, &filter) {
		return
	}
	if filter.PageSize <= 0 {
		filter.Page, filter.PageSize = ParsePagination(c)
	}

	resp, err := h.adminService.ListUsers(&filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondSuccess(c, http.StatusOK, "", resp)
}

func (h *AdminHandler) userAction(c *gin.Context, action func(string) error, message string) {
	userID, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}
	if err := action(userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondSuccess(c, http.StatusOK, message, nil)
}

func (h *AdminHandler) ApproveUser(c *gin.Context) {
	h.userAction(c, h.adminService.ApproveUser, "Compte approuvé.")
}

func (h *AdminHandler) RejectUser(c *gin.Context) {
	h.userAction(c, h.adminService.RejectUser, "Compte rejeté.")
}

func (h *AdminHandler) BlockUser(c *gin.Context) {
	h.userAction(c, h.adminService.BlockUser, "Compte bloqué.")
}

func (h *AdminHandler) UnblockUser(c *gin.Context) {
	h.userAction(c, h.adminService.UnblockUser, "Compte débloqué.")
}

func (h *AdminHandler) VerifyCompany(c *gin.Context) {
	h.userAction(c, h.adminService.VerifyCompany, "Entreprise vérifiée.")
}

func (h *AdminHandler) UnverifyCompany(c *gin.Context) {
	h.userAction(c, h.adminService.UnverifyCompany, "Vérification retirée.")
}

func (h *AdminHandler) BulkModerate(c *gin.Context) {
	var req dto.BulkModerateRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.adminService.BulkModerate(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondSuccess(c, http.StatusOK, "", resp)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	userID, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}
	if err := h.adminService.DeleteUser(c.Request.Context(), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondSuccess(c, http.StatusOK, "Compte supprimé.", nil)
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminService.Stats()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondSuccess(c, http.StatusOK, "", stats)
}

func (h *AdminHandler) ListNotifications(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	resp, err := h.notificationService.List(pageSize, (page-1)*pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondSuccess(c, http.StatusOK, "", resp)
}

func (h *AdminHandler) MarkNotificationRead(c *gin.Context) {
	id, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}
	if err := h.notificationService.MarkRead(id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondSuccess(c, http.StatusOK, "Notification marquée comme lue.", nil)
}

func (h *AdminHandler) MarkAllNotificationsRead(c *gin.Context) {
	if err := h.notificationService.MarkAllRead(); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondSuccess(c, http.StatusOK, "Toutes les notifications marquées comme lues.", nil)
}

func (h *AdminHandler) DeleteNotification(c *gin.Context) {
	id, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}
	if err := h.notificationService.Delete(id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondSuccess(c, http.StatusOK, "Notification supprimée.", nil)
}

func (h *AdminHandler) ApproveNotification(c *gin.Context) {
	id, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}
	if err := h.adminService.ApproveNotification(id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondSuccess(c, http.StatusOK, "Demande approuvée.", nil)
}

func (h *AdminHandler) RejectNotification(c *gin.Context) {
	id, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}
	if err := h.adminService.RejectNotification(id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondSuccess(c, http.StatusOK, "Demande rejetée.", nil)
}

func (h *AdminHandler) ClearNotifications(c *gin.Context) {
	if err := h.notificationService.Clear(); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondSuccess(c, http.StatusOK, "Toutes les notifications supprimées.", nil)
}

func (h *AdminHandler) CandidateProfile(c *gin.Context) {
	userID, ok := h.RequireParam(c, "id")
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

func (h *AdminHandler) UploadAdminResume(c *gin.Context) {
	userID, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}

	file, err := c.FormFile("cv")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	key, err := h.uploadService.UploadAdminResume(c.Request.Context(), userID, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondSuccess(c, http.StatusOK, "CV administrateur enregistré.", gin.H{"key": key})
}

func (h *AdminHandler) AdminResumeURL(c *gin.Context) {
	userID, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}

	profile, err := h.candidateService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	url, err := h.uploadService.SignedResumeURL(c.Request.Context(), profile.AdminResume)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondSuccess(c, http.StatusOK, "", gin.H{"url": url})
}
