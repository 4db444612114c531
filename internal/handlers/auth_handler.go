package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"growcoach_backend/internal/auth"
	"growcoach_backend/internal/middleware"
	"growcoach_backend/internal/services"
	"growcoach_backend/internal/services/dto"
	"growcoach_backend/pkg/apperrors"
)

type AuthHandler struct {
	*BaseHandler
	authService  services.AuthService
	resetService services.PasswordResetService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService, resetService services.PasswordResetService) *AuthHandler {
	return &AuthHandler{
		BaseHandler:  base,
		authService:  authService,
		resetService: resetService,
	}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup, authMW *middleware.AuthMiddleware, limiter *middleware.RateLimiter) {
	authGroup := rg.Group("/auth")
	authGroup.Use(limiter.Handler())
	{
		authGroup.POST("/signup", h.SignupCandidate)
		authGroup.POST("/company-signup", h.SignupCompany)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/forgot-password", h.ForgotPassword)
		authGroup.POST("/verify-reset-code", h.VerifyResetCode)
		authGroup.POST("/reset-password", h.ResetPassword)

		authGroup.POST("/logout", authMW.RequireAuth(), h.Logout)
		authGroup.GET("/verify-token", authMW.RequireAuth(), h.VerifyToken)
		authGroup.GET("/check-auth", authMW.RequireAuth(), h.CheckAuth)
	}
}

func (h *AuthHandler) SignupCandidate(c *gin.Context) {
	var req dto.RegisterCandidateRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	info, err := h.authService.RegisterCandidate(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondSuccess(c, http.StatusCreated,
		"Inscription réussie. Votre compte est en attente d'approbation.", info)
}

func (h *AuthHandler) SignupCompany(c *gin.Context) {
	var req dto.RegisterCompanyRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	info, err := h.authService.RegisterCompany(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondSuccess(c, http.StatusCreated,
		"Inscription réussie. Votre compte est en attente d'approbation.", info)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondSuccess(c, http.StatusOK, "Connexion réussie.", resp)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	claimsVal, exists := c.Get("tokenClaims")
	if !exists {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authentification requise."))
		return
	}
	claims, ok := claimsVal.(*auth.Claims)
	if !ok {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authentification requise."))
		return
	}

	if err := h.authService.Logout(claims.ID, claims.ExpiresAt.Time); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondSuccess(c, http.StatusOK, "Déconnexion réussie.", nil)
}

// VerifyToken confirms the bearer token is still valid and echoes its
// identity claims. Unlike CheckAuth it never touches the database.
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	claimsVal, exists := c.Get("tokenClaims")
	if !exists {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authentification requise."))
		return
	}
	claims, ok := claimsVal.(*auth.Claims)
	if !ok {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authentification requise."))
		return
	}

	h.RespondSuccess(c, http.StatusOK, "", gin.H{
		"valid":   true,
		"user_id": claims.UserID,
		"role":    claims.Role,
	})
}

func (h *AuthHandler) CheckAuth(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	info, err := h.authService.CheckAuth(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondSuccess(c, http.StatusOK, "", info)
}

// ForgotPassword always responds with the same message so the endpoint
// cannot confirm whether an address is registered.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.resetService.RequestReset(c.Request.Context(), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondSuccess(c, http.StatusOK, services.ResetRequestedMessage, nil)
}

func (h *AuthHandler) VerifyResetCode(c *gin.Context) {
	var req dto.VerifyResetCodeRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.resetService.VerifyCode(&req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondSuccess(c, http.StatusOK, "Code vérifié avec succès.", nil)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.resetService.ResetPassword(&req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondSuccess(c, http.StatusOK, "Mot de passe réinitialisé avec succès.", nil)
}
