package controllers

import (
    "net/http"
    "strings"

    "github.com/gin-gonic/gin"
    "gorm.io/datatypes"
    "gorm.io/gorm"

    "github.com/Metatavu/muisti-api/internal/models"
)

type FloorController struct {
    DB *gorm.DB
}

type floorRequest struct {
    Name            string         `json:"name"`
    FloorPlanURL    string         `json:"floorPlanUrl"`
    FloorPlanBounds datatypes.JSON `json:"floorPlanBounds"`
}

func (fc *FloorController) Create(c *gin.Context) {
    var req floorRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing request body"})
        return
    }
    if strings.TrimSpace(req.Name) == "" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing floor name"})
        return
    }
    exhibition, ok := requireExhibition(c, fc.DB)
    if !ok {
        return
    }
    user, ok := actor(c)
    if !ok {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
        return
    }

    floor := models.ExhibitionFloor{
        ExhibitionID:    exhibition.ID,
        Name:            req.Name,
        FloorPlanURL:    req.FloorPlanURL,
        FloorPlanBounds: req.FloorPlanBounds,
        CreatorID:       user.ID,
        LastModifierID:  user.ID,
    }
    if err := fc.DB.Create(&floor).Error; err != nil {
        writeError(c, err)
        return
    }
    c.JSON(http.StatusCreated, floor)
}

func (fc *FloorController) Find(c *gin.Context) {
    exhibition, ok := requireExhibition(c, fc.DB)
    if !ok {
        return
    }
    floorID := c.Param("floorId")
    var floor models.ExhibitionFloor
    if err := fc.DB.Where("id = ?", floorID).First(&floor).Error; err != nil {
        c.JSON(http.StatusNotFound, gin.H{"error": "floor " + floorID + " not found"})
        return
    }
    if !belongsToExhibition(floor.ExhibitionID, exhibition.ID) {
        c.JSON(http.StatusNotFound, gin.H{"error": "floor " + floorID + " not found"})
        return
    }
    c.JSON(http.StatusOK, floor)
}

func (fc *FloorController) List(c *gin.Context) {
    exhibition, ok := requireExhibition(c, fc.DB)
    if !ok {
        return
    }
    floors := []models.ExhibitionFloor{}
    if err := fc.DB.Where("exhibition_id = ?", exhibition.ID).Find(&floors).Error; err != nil {
        writeError(c, err)
        return
    }
    c.JSON(http.StatusOK, floors)
}

func (fc *FloorController) Update(c *gin.Context) {
    var req floorRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing request body"})
        return
    }
    if strings.TrimSpace(req.Name) == "" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing floor name"})
        return
    }
    exhibition, ok := requireExhibition(c, fc.DB)
    if !ok {
        return
    }
    user, ok := actor(c)
    if !ok {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
        return
    }
    floorID := c.Param("floorId")
    var floor models.ExhibitionFloor
    if err := fc.DB.Where("id = ?", floorID).First(&floor).Error; err != nil {
        c.JSON(http.StatusNotFound, gin.H{"error": "floor " + floorID + " not found"})
        return
    }
    if !belongsToExhibition(floor.ExhibitionID, exhibition.ID) {
        c.JSON(http.StatusNotFound, gin.H{"error": "floor " + floorID + " not found"})
        return
    }

    floor.Name = req.Name
    floor.FloorPlanURL = req.FloorPlanURL
    floor.FloorPlanBounds = req.FloorPlanBounds
    floor.LastModifierID = user.ID
    if err := fc.DB.Save(&floor).Error; err != nil {
        writeError(c, err)
        return
    }
    c.JSON(http.StatusOK, floor)
}

func (fc *FloorController) Delete(c *gin.Context) {
    exhibition, ok := requireExhibition(c, fc.DB)
    if !ok {
        return
    }
    floorID := c.Param("floorId")
    var floor models.ExhibitionFloor
    if err := fc.DB.Where("id = ?", floorID).First(&floor).Error; err != nil {
        c.JSON(http.StatusNotFound, gin.H{"error": "floor " + floorID + " not found"})
        return
    }
    if !belongsToExhibition(floor.ExhibitionID, exhibition.ID) {
        c.JSON(http.StatusNotFound, gin.H{"error": "floor " + floorID + " not found"})
        return
    }
    if err := fc.DB.Delete(&models.ExhibitionFloor{}, "id = ?", floor.ID).Error; err != nil {
        writeError(c, err)
        return
    }
    c.Status(http.StatusNoContent)
}
