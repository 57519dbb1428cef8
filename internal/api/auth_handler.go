package api

import (
	"errors"
	"net/http"

	"staffhub/internal/dto/req"
	"staffhub/internal/metrics"
	"staffhub/internal/middleware"
	"staffhub/internal/service"

	"github.com/gin-gonic/gin"
)

// RefreshTokenCookie carries the long-lived refresh token. It is only ever
// read by the refresh endpoint, never by protected resource routes.
const RefreshTokenCookie = "refreshToken"

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// setAuthCookie writes an HTTP-only, secure, cross-site-capable cookie so
// the browser client on another origin can send it back.
func setAuthCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(name, value, maxAge, "/", "", true, true)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var body req.LoginReq
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tokens, err := h.svc.Login(c.Request.Context(), body)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	setAuthCookie(c, middleware.AccessTokenCookie, tokens.AccessToken, int(h.svc.AccessTokenTTL().Seconds()))
	setAuthCookie(c, RefreshTokenCookie, tokens.RefreshToken, int(h.svc.RefreshTokenTTL().Seconds()))

	metrics.RecordLogin()
	c.JSON(http.StatusOK, tokens)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(RefreshTokenCookie)
	if err != nil || refreshToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "refresh token is required"})
		return
	}

	renewed, err := h.svc.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenExpired):
			// Distinguishable from a tampered token: the client should
			// force a re-login instead of retrying.
			c.JSON(http.StatusForbidden, gin.H{"error": "refresh token expired"})
		case errors.Is(err, service.ErrTokenInvalid):
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid refresh token"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token refresh failed"})
		}
		return
	}

	setAuthCookie(c, middleware.AccessTokenCookie, renewed.AccessToken, int(h.svc.AccessTokenTTL().Seconds()))

	metrics.RecordRefresh()
	c.JSON(http.StatusOK, renewed)
}

// Logout clears both cookies unconditionally. Idempotent, no verification,
// never fails.
func (h *AuthHandler) Logout(c *gin.Context) {
	setAuthCookie(c, middleware.AccessTokenCookie, "", -1)
	setAuthCookie(c, RefreshTokenCookie, "", -1)

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
