package handler

import (
	"errors"
	"net/http"

	"ansxtra/internal/middleware"
	"ansxtra/internal/model"
	"ansxtra/internal/repository"
	"ansxtra/internal/service"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	svc  *service.ApplicationService
	auth *service.AuthService
}

// SubmitReq 申请表单
type SubmitReq struct {
	ClubID       string `json:"clubId"`
	Motivation   string `json:"motivation"`
	Experience   string `json:"experience"`
	Availability string `json:"availability"`
}

type SetStatusReq struct {
	Status string `json:"status"`
}

func NewApplicationHandler(svc *service.ApplicationService, auth *service.AuthService) *ApplicationHandler {
	return &ApplicationHandler{svc: svc, auth: auth}
}

// Submit 提交申请：要求持久化会话仍然有效，社团开放
func (h *ApplicationHandler) Submit(c *gin.Context) {
	var req SubmitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	email := c.GetString(middleware.ContextEmailKey)
	sess, err := h.auth.Restore(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "restore failed"})
		return
	}
	if sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "no active session"})
		return
	}

	app, err := h.svc.Submit(c.Request.Context(), sess, service.SubmitPayload{
		ClubID:       req.ClubID,
		Motivation:   req.Motivation,
		Experience:   req.Experience,
		Availability: req.Availability,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClubNotFound):
			c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
		case errors.Is(err, service.ErrClubClosed),
			errors.Is(err, service.ErrMotivationRequired),
			errors.Is(err, service.ErrAvailabilityRequired):
			c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "submit failed"})
		}
		return
	}

	c.JSON(http.StatusOK, app)
}

// List 当前学生的全部申请
func (h *ApplicationHandler) List(c *gin.Context) {
	email := c.GetString(middleware.ContextEmailKey)

	list, err := h.svc.List(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"list": list})
}

// Existing 申请页查重：没有返回 found=false 而不是 404
func (h *ApplicationHandler) Existing(c *gin.Context) {
	clubID := c.Query("clubId")
	if clubID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "clubId required"})
		return
	}
	email := c.GetString(middleware.ContextEmailKey)

	app, err := h.svc.FindExisting(c.Request.Context(), clubID, email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "lookup failed"})
		return
	}
	if app == nil {
		c.JSON(http.StatusOK, gin.H{"found": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"found": true, "application": app})
}

// Advance 演示操作：状态沿闭环推进一格
func (h *ApplicationHandler) Advance(c *gin.Context) {
	app, err := h.svc.Advance(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "advance failed"})
		return
	}

	c.JSON(http.StatusOK, app)
}

// Withdraw 幂等撤回，返回这次是否真的删了
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	removed, err := h.svc.Withdraw(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "withdraw failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// ListByClub 干部/顾问视图：某社团收到的全部申请
func (h *ApplicationHandler) ListByClub(c *gin.Context) {
	list, err := h.svc.ListByClubSlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrClubNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"list": list})
}

// SetStatus 评审动作：直接指定状态
func (h *ApplicationHandler) SetStatus(c *gin.Context) {
	var req SetStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	app, err := h.svc.SetStatus(c.Request.Context(), c.Param("id"), model.Status(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		case errors.Is(err, repository.ErrApplicationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "update failed"})
		}
		return
	}

	c.JSON(http.StatusOK, app)
}
