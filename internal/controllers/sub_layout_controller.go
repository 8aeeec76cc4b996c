package controllers

import (
    "net/http"
    "strings"

    "github.com/gin-gonic/gin"
    "gorm.io/datatypes"
    "gorm.io/gorm"

    "github.com/Metatavu/muisti-api/internal/models"
)

// SubLayoutController serves the sub layout library, global like the
// page layouts.
type SubLayoutController struct {
    DB *gorm.DB
}

type subLayoutRequest struct {
    Name string         `json:"name"`
    Data datatypes.JSON `json:"data"`
}

func (sc *SubLayoutController) find(c *gin.Context) (*models.SubLayout, bool) {
    subLayoutID := c.Param("subLayoutId")
    var subLayout models.SubLayout
    if err := sc.DB.Where("id = ?", subLayoutID).First(&subLayout).Error; err != nil {
        c.JSON(http.StatusNotFound, gin.H{"error": "sub layout " + subLayoutID + " not found"})
        return nil, false
    }
    return &subLayout, true
}

func (sc *SubLayoutController) Create(c *gin.Context) {
    var req subLayoutRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing request body"})
        return
    }
    if strings.TrimSpace(req.Name) == "" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing sub layout name"})
        return
    }
    user, ok := actor(c)
    if !ok {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
        return
    }

    subLayout := models.SubLayout{
        Name:           req.Name,
        Data:           req.Data,
        CreatorID:      user.ID,
        LastModifierID: user.ID,
    }
    if err := sc.DB.Create(&subLayout).Error; err != nil {
        writeError(c, err)
        return
    }
    c.JSON(http.StatusCreated, subLayout)
}

func (sc *SubLayoutController) Find(c *gin.Context) {
    subLayout, ok := sc.find(c)
    if !ok {
        return
    }
    c.JSON(http.StatusOK, subLayout)
}

func (sc *SubLayoutController) List(c *gin.Context) {
    subLayouts := []models.SubLayout{}
    if err := sc.DB.Find(&subLayouts).Error; err != nil {
        writeError(c, err)
        return
    }
    c.JSON(http.StatusOK, subLayouts)
}

func (sc *SubLayoutController) Update(c *gin.Context) {
    var req subLayoutRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing request body"})
        return
    }
    if strings.TrimSpace(req.Name) == "" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing sub layout name"})
        return
    }
    user, ok := actor(c)
    if !ok {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
        return
    }
    subLayout, ok := sc.find(c)
    if !ok {
        return
    }

    subLayout.Name = req.Name
    subLayout.Data = req.Data
    subLayout.LastModifierID = user.ID
    if err := sc.DB.Save(subLayout).Error; err != nil {
        writeError(c, err)
        return
    }
    c.JSON(http.StatusOK, subLayout)
}

func (sc *SubLayoutController) Delete(c *gin.Context) {
    subLayout, ok := sc.find(c)
    if !ok {
        return
    }
    if err := sc.DB.Delete(&models.SubLayout{}, "id = ?", subLayout.ID).Error; err != nil {
        writeError(c, err)
        return
    }
    c.Status(http.StatusNoContent)
}
