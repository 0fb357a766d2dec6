package handler

import (
	"errors"
	"net/http"

	"ansxtra/internal/middleware"
	"ansxtra/internal/service"

	"github.com/gin-gonic/gin"
)

type ClubHandler struct {
	svc *service.ClubService
}

func NewClubHandler(svc *service.ClubService) *ClubHandler {
	return &ClubHandler{svc: svc}
}

// List 目录列表，支持 search / status / category 过滤
func (h *ClubHandler) List(c *gin.Context) {
	list := h.svc.List(service.ClubFilter{
		Search:   c.Query("search"),
		Status:   c.DefaultQuery("status", "all"),
		Category: c.DefaultQuery("category", "all"),
	})
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *ClubHandler) Detail(c *gin.Context) {
	club, err := h.svc.BySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrClubNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, club)
}

func (h *ClubHandler) Tags(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tags": h.svc.Tags()})
}

// Memberships 当前登录学生的成员关系（fixture 播种，只读）
func (h *ClubHandler) Memberships(c *gin.Context) {
	email := c.GetString(middleware.ContextEmailKey)
	c.JSON(http.StatusOK, gin.H{"list": h.svc.Memberships(email)})
}
