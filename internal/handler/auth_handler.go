package handler

import (
	"errors"
	"net/http"

	"ansxtra/internal/middleware"
	"ansxtra/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc *service.AuthService
}

// LoginReq 登录请求体，只有邮箱，没有口令
type LoginReq struct {
	Email string `json:"email"`
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login 登录接口：域名闸门 + 名册查询，失败都走消息返回
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	res, err := h.svc.Login(c.Request.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailRequired), errors.Is(err, service.ErrInvalidDomain):
			c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		case errors.Is(err, service.ErrStudentNotFound):
			c.JSON(http.StatusUnauthorized, gin.H{"msg": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "login failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session":      res.Session,
		"AccessToken":  res.Tokens.AccessToken,
		"RefreshToken": res.Tokens.RefreshToken,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	studentID := c.GetString(middleware.ContextStudentIDKey)
	email := c.GetString(middleware.ContextEmailKey)

	if err := h.svc.Logout(c.Request.Context(), studentID, email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "logout failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// Session 恢复会话；记录缺失或损坏都按未登录处理
func (h *AuthHandler) Session(c *gin.Context) {
	email := c.GetString(middleware.ContextEmailKey)

	sess, err := h.svc.Restore(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "restore failed"})
		return
	}
	if sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "no active session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": sess})
}

// TokenRefresh 用 refresh 换新 access
func (h *AuthHandler) TokenRefresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	tokens, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"AccessToken": tokens.AccessToken, "RefreshToken": tokens.RefreshToken})
}
