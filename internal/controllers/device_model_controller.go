package controllers

import (
    "net/http"
    "strings"

    "github.com/gin-gonic/gin"
    "gorm.io/gorm"

    "github.com/Metatavu/muisti-api/internal/models"
)

type DeviceModelController struct {
    DB *gorm.DB
}

type deviceModelRequest struct {
    Manufacturer    string `json:"manufacturer"`
    Model           string `json:"model"`
    ScreenWidth     int    `json:"screenWidth"`
    ScreenHeight    int    `json:"screenHeight"`
    CapabilityTouch bool   `json:"capabilityTouch"`
}

func (mc *DeviceModelController) find(c *gin.Context, exhibitionID string) (*models.DeviceModel, bool) {
    modelID := c.Param("deviceModelId")
    var model models.DeviceModel
    if err := mc.DB.Where("id = ?", modelID).First(&model).Error; err != nil {
        c.JSON(http.StatusNotFound, gin.H{"error": "device model " + modelID + " not found"})
        return nil, false
    }
    if !belongsToExhibition(model.ExhibitionID, exhibitionID) {
        c.JSON(http.StatusNotFound, gin.H{"error": "device model " + modelID + " not found"})
        return nil, false
    }
    return &model, true
}

func (mc *DeviceModelController) Create(c *gin.Context) {
    var req deviceModelRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing request body"})
        return
    }
    if strings.TrimSpace(req.Manufacturer) == "" || strings.TrimSpace(req.Model) == "" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing device model manufacturer or model"})
        return
    }
    exhibition, ok := requireExhibition(c, mc.DB)
    if !ok {
        return
    }
    user, ok := actor(c)
    if !ok {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
        return
    }

    model := models.DeviceModel{
        ExhibitionID:    exhibition.ID,
        Manufacturer:    req.Manufacturer,
        Model:           req.Model,
        ScreenWidth:     req.ScreenWidth,
        ScreenHeight:    req.ScreenHeight,
        CapabilityTouch: req.CapabilityTouch,
        CreatorID:       user.ID,
        LastModifierID:  user.ID,
    }
    if err := mc.DB.Create(&model).Error; err != nil {
        writeError(c, err)
        return
    }
    c.JSON(http.StatusCreated, model)
}

func (mc *DeviceModelController) Find(c *gin.Context) {
    exhibition, ok := requireExhibition(c, mc.DB)
    if !ok {
        return
    }
    model, ok := mc.find(c, exhibition.ID)
    if !ok {
        return
    }
    c.JSON(http.StatusOK, model)
}

func (mc *DeviceModelController) List(c *gin.Context) {
    exhibition, ok := requireExhibition(c, mc.DB)
    if !ok {
        return
    }
    deviceModels := []models.DeviceModel{}
    if err := mc.DB.Where("exhibition_id = ?", exhibition.ID).Find(&deviceModels).Error; err != nil {
        writeError(c, err)
        return
    }
    c.JSON(http.StatusOK, deviceModels)
}

func (mc *DeviceModelController) Update(c *gin.Context) {
    var req deviceModelRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing request body"})
        return
    }
    if strings.TrimSpace(req.Manufacturer) == "" || strings.TrimSpace(req.Model) == "" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing device model manufacturer or model"})
        return
    }
    exhibition, ok := requireExhibition(c, mc.DB)
    if !ok {
        return
    }
    user, ok := actor(c)
    if !ok {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
        return
    }
    model, ok := mc.find(c, exhibition.ID)
    if !ok {
        return
    }

    model.Manufacturer = req.Manufacturer
    model.Model = req.Model
    model.ScreenWidth = req.ScreenWidth
    model.ScreenHeight = req.ScreenHeight
    model.CapabilityTouch = req.CapabilityTouch
    model.LastModifierID = user.ID
    if err := mc.DB.Save(model).Error; err != nil {
        writeError(c, err)
        return
    }
    c.JSON(http.StatusOK, model)
}

func (mc *DeviceModelController) Delete(c *gin.Context) {
    exhibition, ok := requireExhibition(c, mc.DB)
    if !ok {
        return
    }
    model, ok := mc.find(c, exhibition.ID)
    if !ok {
        return
    }
    if err := mc.DB.Delete(&models.DeviceModel{}, "id = ?", model.ID).Error; err != nil {
        writeError(c, err)
        return
    }
    c.Status(http.StatusNoContent)
}
