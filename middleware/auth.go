package middleware

import (
	"Storefront/jwt"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"net/http"
	"strings"
)

// 驗證Bearer Token，失敗則中止請求
func AuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		token := strings.TrimPrefix(authHeader, "Bearer ")

		if authHeader == "" || token == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "未提供Token，請先登入",
			})
			c.Abort()
			return
		}

		userID, name, email, err := jwt.VerifyToken(&token, db)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "無效或過期的Token",
			})
			c.Abort()
			return
		}

		c.Set("Token", token)
		c.Set("UserID", userID)
		c.Set("UserName", name)
		c.Set("UserEmail", email)
		c.Next()
	}
}
