package controllers

import (
    "net/http"
    "strings"

    "github.com/gin-gonic/gin"
    "gorm.io/gorm"

    "github.com/Metatavu/muisti-api/internal/models"
)

type ExhibitionController struct {
    DB *gorm.DB
}

type exhibitionRequest struct {
    Name string `json:"name"`
}

func (ec *ExhibitionController) Create(c *gin.Context) {
    var req exhibitionRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing request body"})
        return
    }
    if strings.TrimSpace(req.Name) == "" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing exhibition name"})
        return
    }
    user, ok := actor(c)
    if !ok {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
        return
    }

    exhibition := models.Exhibition{Name: req.Name, CreatorID: user.ID, LastModifierID: user.ID}
    if err := ec.DB.Create(&exhibition).Error; err != nil {
        writeError(c, err)
        return
    }
    c.JSON(http.StatusCreated, exhibition)
}

func (ec *ExhibitionController) Find(c *gin.Context) {
    exhibition, ok := requireExhibition(c, ec.DB)
    if !ok {
        return
    }
    c.JSON(http.StatusOK, exhibition)
}

func (ec *ExhibitionController) List(c *gin.Context) {
    exhibitions := []models.Exhibition{}
    if err := ec.DB.Find(&exhibitions).Error; err != nil {
        writeError(c, err)
        return
    }
    c.JSON(http.StatusOK, exhibitions)
}

func (ec *ExhibitionController) Update(c *gin.Context) {
    var req exhibitionRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing request body"})
        return
    }
    if strings.TrimSpace(req.Name) == "" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing exhibition name"})
        return
    }
    user, ok := actor(c)
    if !ok {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
        return
    }
    exhibition, ok := requireExhibition(c, ec.DB)
    if !ok {
        return
    }

    exhibition.Name = req.Name
    exhibition.LastModifierID = user.ID
    if err := ec.DB.Save(exhibition).Error; err != nil {
        writeError(c, err)
        return
    }
    c.JSON(http.StatusOK, exhibition)
}

func (ec *ExhibitionController) Delete(c *gin.Context) {
    exhibition, ok := requireExhibition(c, ec.DB)
    if !ok {
        return
    }
    if err := ec.DB.Delete(&models.Exhibition{}, "id = ?", exhibition.ID).Error; err != nil {
        writeError(c, err)
        return
    }
    c.Status(http.StatusNoContent)
}
