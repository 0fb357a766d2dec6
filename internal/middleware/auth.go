package middleware

import (
	"net/http"
	"strings"

	"ansxtra/internal/pkg"
	"ansxtra/internal/repository"

	"github.com/gin-gonic/gin"
)

const (
	ContextStudentIDKey = "student_id"
	ContextEmailKey     = "email"
)

func AuthMiddleware(sessions *repository.SessionRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid authorization format"})
			c.Abort()
			return
		}

		tokenStr := parts[1]
		claims, err := pkg.ParseAccess(tokenStr)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid or expired token"})
			c.Abort()
			return
		}

		// 与存储中的 token 比对，保证单一登录态
		originToken, err := sessions.GetToken(c.Request.Context(), claims.StudentID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "session expired, please log in again"})
			c.Abort()
			return
		}
		if originToken != tokenStr {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "account has been logged in elsewhere"})
			c.Abort()
			return
		}

		// 校验通过后续期
		if err := sessions.ExtendToken(c.Request.Context(), claims.StudentID); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
			return
		}

		c.Set(ContextStudentIDKey, claims.StudentID)
		c.Set(ContextEmailKey, claims.Email)
		c.Next()
	}
}
