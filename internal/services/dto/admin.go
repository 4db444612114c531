package dto

import (
	"growcoach_backend/internal/models"
	"growcoach_backend/internal/repositories"
)

type AdminUserFilter struct {
	Role     string `form:"role" validate:"omitempty,is-user-role"`
	Status   string `form:"status"`
	Verified *bool  `form:"verified"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type AdminUserRow struct {
	ID        string            `json:"id"`
	Email     string            `json:"email"`
	Name      string            `json:"name"`
	Role      models.UserRole   `json:"role"`
	Status    models.UserStatus `json:"status"`
	Verified  bool              `json:"verified"`
	CreatedAt string            `json:"created_at"`
}

type AdminUserListResponse struct {
	Users []AdminUserRow `json:"users"`
	Total int64          `json:"total"`
}

type BulkModerateRequest struct {
	Action  string   `json:"action" validate:"required,oneof=approve reject"`
	UserIDs []string `json:"user_ids" validate:"required,min=1,dive,uuid"`
}

type BulkModerateResult struct {
	UserID string `json:"user_id"`
	Error  string `json:"error,omitempty"`
}

type BulkModerateResponse struct {
	Processed int                  `json:"processed"`
	Failed    int                  `json:"failed"`
	Results   []BulkModerateResult `json:"results"`
}

type AdminStatsResponse struct {
	*repositories.UserStats
	UnreadNotifications int64 `json:"unread_notifications"`
}

type NotificationListResponse struct {
	Notifications []models.Notification `json:"notifications"`
	Total         int64                 `json:"total"`
	Unread        int64                 `json:"unread"`
}
