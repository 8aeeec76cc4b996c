package controllers

import (
    "net/http"
    "strconv"
    "time"

    "github.com/gin-gonic/gin"
    "github.com/golang-jwt/jwt/v5"
    "gorm.io/gorm"

    "github.com/Metatavu/muisti-api/internal/middleware"
    "github.com/Metatavu/muisti-api/internal/models"
    "github.com/Metatavu/muisti-api/internal/utils"
)

type AuthController struct {
    DB           *gorm.DB
    JWTSecret    string
    JWTExpiresIn string // minutes
}

type loginRequest struct {
    Email    string `json:"email" binding:"required,email"`
    Password string `json:"password" binding:"required"`
}

func (a *AuthController) Login(c *gin.Context) {
    var req loginRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }

    var user models.User
    if err := a.DB.Where("email = ? AND active = ?", req.Email, true).First(&user).Error; err != nil {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
        return
    }
    if !utils.CheckPassword(user.Password, req.Password) {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
        return
    }

    expiresIn, err := strconv.Atoi(a.JWTExpiresIn)
    if err != nil || expiresIn <= 0 {
        expiresIn = 60
    }
    now := time.Now()
    claims := middleware.Claims{
        UserID: user.ID,
        Role:   user.Role,
        Email:  user.Email,
        RegisteredClaims: jwt.RegisteredClaims{
            IssuedAt:  jwt.NewNumericDate(now),
            ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expiresIn) * time.Minute)),
        },
    }
    token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := token.SignedString([]byte(a.JWTSecret))
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign token"})
        return
    }

    c.JSON(http.StatusOK, gin.H{
        "token":      signed,
        "expires_in": expiresIn * 60,
        "user":       user,
    })
}

func (a *AuthController) Me(c *gin.Context) {
    user, ok := actor(c)
    if !ok {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
        return
    }
    c.JSON(http.StatusOK, user)
}
