package middleware

import (
    "net/http"
    "strings"

    "github.com/gin-gonic/gin"
    "github.com/golang-jwt/jwt/v5"
    "gorm.io/gorm"

    "github.com/Metatavu/muisti-api/internal/models"
)

type AuthConfig struct {
    JWTSecret string
}

type Claims struct {
    UserID string `json:"user_id"`
    Role   string `json:"role"`
    Email  string `json:"email"`
    jwt.RegisteredClaims
}

// AuthMiddleware resolves the authenticated actor for every request.
// Mutating handlers stamp the actor's id as creator/last-modifier.
func AuthMiddleware(db *gorm.DB, cfg AuthConfig) gin.HandlerFunc {
    return func(c *gin.Context) {
        auth := c.GetHeader("Authorization")
        if auth == "" || !strings.HasPrefix(strings.ToLower(auth), "bearer ") {
            c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid authorization header"})
            return
        }
        tokenStr := strings.TrimSpace(auth[len("Bearer "):])

        claims := &Claims{}
        token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
            return []byte(cfg.JWTSecret), nil
        })
        if err != nil || !token.Valid {
            c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
            return
        }

        var user models.User
        if err := db.Where("id = ? AND active = ?", claims.UserID, true).First(&user).Error; err != nil {
            c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found or inactive"})
            return
        }

        c.Set("user", user)
        c.Next()
    }
}
