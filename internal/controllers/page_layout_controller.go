package controllers

import (
    "net/http"
    "strings"

    "github.com/gin-gonic/gin"
    "gorm.io/datatypes"
    "gorm.io/gorm"

    "github.com/Metatavu/muisti-api/internal/models"
)

// PageLayoutController serves the layout library. Layouts are global,
// not nested under an exhibition.
type PageLayoutController struct {
    DB *gorm.DB
}

type pageLayoutRequest struct {
    Name              string         `json:"name"`
    Data              datatypes.JSON `json:"data"`
    ThumbnailURL      string         `json:"thumbnailUrl"`
    ScreenOrientation string         `json:"screenOrientation"`
    ModelID           *string        `json:"modelId"`
}

func (lc *PageLayoutController) find(c *gin.Context) (*models.PageLayout, bool) {
    layoutID := c.Param("pageLayoutId")
    var layout models.PageLayout
    if err := lc.DB.Where("id = ?", layoutID).First(&layout).Error; err != nil {
        c.JSON(http.StatusNotFound, gin.H{"error": "page layout " + layoutID + " not found"})
        return nil, false
    }
    return &layout, true
}

func (lc *PageLayoutController) resolveModel(c *gin.Context, modelID *string) bool {
    if modelID == nil || *modelID == "" {
        return true
    }
    var model models.DeviceModel
    if err := lc.DB.Where("id = ?", *modelID).First(&model).Error; err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid device model id " + *modelID})
        return false
    }
    return true
}

func (lc *PageLayoutController) Create(c *gin.Context) {
    var req pageLayoutRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing request body"})
        return
    }
    if strings.TrimSpace(req.Name) == "" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing page layout name"})
        return
    }
    if !validScreenOrientation(req.ScreenOrientation) {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid screen orientation " + req.ScreenOrientation})
        return
    }
    if !lc.resolveModel(c, req.ModelID) {
        return
    }
    user, ok := actor(c)
    if !ok {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
        return
    }

    layout := models.PageLayout{
        Name:              req.Name,
        Data:              req.Data,
        ThumbnailURL:      req.ThumbnailURL,
        ScreenOrientation: req.ScreenOrientation,
        ModelID:           req.ModelID,
        CreatorID:         user.ID,
        LastModifierID:    user.ID,
    }
    if err := lc.DB.Create(&layout).Error; err != nil {
        writeError(c, err)
        return
    }
    c.JSON(http.StatusCreated, layout)
}

func (lc *PageLayoutController) Find(c *gin.Context) {
    layout, ok := lc.find(c)
    if !ok {
        return
    }
    c.JSON(http.StatusOK, layout)
}

func (lc *PageLayoutController) List(c *gin.Context) {
    q := lc.DB.Session(&gorm.Session{})
    if modelID := c.Query("deviceModelId"); modelID != "" {
        q = q.Where("model_id = ?", modelID)
    }
    if orientation := c.Query("screenOrientation"); orientation != "" {
        q = q.Where("screen_orientation = ?", orientation)
    }
    layouts := []models.PageLayout{}
    if err := q.Find(&layouts).Error; err != nil {
        writeError(c, err)
        return
    }
    c.JSON(http.StatusOK, layouts)
}

func (lc *PageLayoutController) Update(c *gin.Context) {
    var req pageLayoutRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing request body"})
        return
    }
    if strings.TrimSpace(req.Name) == "" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing page layout name"})
        return
    }
    if !validScreenOrientation(req.ScreenOrientation) {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid screen orientation " + req.ScreenOrientation})
        return
    }
    if !lc.resolveModel(c, req.ModelID) {
        return
    }
    user, ok := actor(c)
    if !ok {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
        return
    }
    layout, ok := lc.find(c)
    if !ok {
        return
    }

    layout.Name = req.Name
    layout.Data = req.Data
    layout.ThumbnailURL = req.ThumbnailURL
    layout.ScreenOrientation = req.ScreenOrientation
    layout.ModelID = req.ModelID
    layout.LastModifierID = user.ID
    if err := lc.DB.Save(layout).Error; err != nil {
        writeError(c, err)
        return
    }
    c.JSON(http.StatusOK, layout)
}

func (lc *PageLayoutController) Delete(c *gin.Context) {
    layout, ok := lc.find(c)
    if !ok {
        return
    }
    if err := lc.DB.Delete(&models.PageLayout{}, "id = ?", layout.ID).Error; err != nil {
        writeError(c, err)
        return
    }
    c.Status(http.StatusNoContent)
}
