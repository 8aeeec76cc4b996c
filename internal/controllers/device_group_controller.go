package controllers

import (
    "net/http"
    "strings"

    "github.com/gin-gonic/gin"
    "gorm.io/gorm"

    "github.com/Metatavu/muisti-api/internal/models"
    "github.com/Metatavu/muisti-api/internal/service"
)

// copyNamePrefix is prepended to the names of copied device groups,
// content versions and group content versions.
const copyNamePrefix = "Copy of "

type DeviceGroupController struct {
    DB     *gorm.DB
    Groups *service.DeviceGroupService
}

type deviceGroupRequest struct {
    Name                        string `json:"name"`
    RoomID                      string `json:"roomId"`
    AllowVisitorSessionCreation bool   `json:"allowVisitorSessionCreation"`
    VisitorSessionEndTimeout    int64  `json:"visitorSessionEndTimeout"`
    VisitorSessionStartStrategy string `json:"visitorSessionStartStrategy"`
    IndexPageTimeout            *int64 `json:"indexPageTimeout"`
}

func validSessionStartStrategy(strategy string) bool {
    return strategy == models.SessionStartStrategyOthersBlock || strategy == models.SessionStartStrategyEndOthers
}

func (gc *DeviceGroupController) find(c *gin.Context, exhibitionID string) (*models.DeviceGroup, bool) {
    groupID := c.Param("deviceGroupId")
    var group models.DeviceGroup
    if err := gc.DB.Where("id = ?", groupID).First(&group).Error; err != nil {
        c.JSON(http.StatusNotFound, gin.H{"error": "device group " + groupID + " not found"})
        return nil, false
    }
    if !belongsToExhibition(group.ExhibitionID, exhibitionID) {
        c.JSON(http.StatusNotFound, gin.H{"error": "device group " + groupID + " not found"})
        return nil, false
    }
    return &group, true
}

// Create creates a device group, or, when sourceDeviceGroupId is
// given, deep-copies an existing group with its devices, content
// versions, group content versions and pages.
func (gc *DeviceGroupController) Create(c *gin.Context) {
    if sourceID := c.Query("sourceDeviceGroupId"); sourceID != "" {
        gc.copy(c, sourceID)
        return
    }

    var req deviceGroupRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing request body"})
        return
    }
    if strings.TrimSpace(req.Name) == "" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing device group name"})
        return
    }
    if req.VisitorSessionStartStrategy == "" {
        req.VisitorSessionStartStrategy = models.SessionStartStrategyOthersBlock
    }
    if !validSessionStartStrategy(req.VisitorSessionStartStrategy) {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid visitor session start strategy " + req.VisitorSessionStartStrategy})
        return
    }
    exhibition, ok := requireExhibition(c, gc.DB)
    if !ok {
        return
    }
    var room models.ExhibitionRoom
    if err := gc.DB.Where("id = ?", req.RoomID).First(&room).Error; err != nil || !belongsToExhibition(room.ExhibitionID, exhibition.ID) {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id " + req.RoomID})
        return
    }
    user, ok := actor(c)
    if !ok {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
        return
    }

    group := models.DeviceGroup{
        ExhibitionID:                exhibition.ID,
        RoomID:                      room.ID,
        Name:                        req.Name,
        AllowVisitorSessionCreation: req.AllowVisitorSessionCreation,
        VisitorSessionEndTimeout:    req.VisitorSessionEndTimeout,
        VisitorSessionStartStrategy: req.VisitorSessionStartStrategy,
        IndexPageTimeout:            req.IndexPageTimeout,
        CreatorID:                   user.ID,
        LastModifierID:              user.ID,
    }
    if err := gc.DB.Create(&group).Error; err != nil {
        writeError(c, err)
        return
    }
    c.JSON(http.StatusCreated, group)
}

func (gc *DeviceGroupController) copy(c *gin.Context, sourceID string) {
    exhibition, ok := requireExhibition(c, gc.DB)
    if !ok {
        return
    }
    var source models.DeviceGroup
    if err := gc.DB.Where("id = ?", sourceID).First(&source).Error; err != nil || !belongsToExhibition(source.ExhibitionID, exhibition.ID) {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid source device group id " + sourceID})
        return
    }
    user, ok := actor(c)
    if !ok {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
        return
    }

    group, err := gc.Groups.Copy(source.ID, copyNamePrefix, user.ID)
    if err != nil {
        writeError(c, err)
        return
    }
    c.JSON(http.StatusCreated, group)
}

func (gc *DeviceGroupController) Find(c *gin.Context) {
    exhibition, ok := requireExhibition(c, gc.DB)
    if !ok {
        return
    }
    group, ok := gc.find(c, exhibition.ID)
    if !ok {
        return
    }
    c.JSON(http.StatusOK, group)
}

func (gc *DeviceGroupController) List(c *gin.Context) {
    exhibition, ok := requireExhibition(c, gc.DB)
    if !ok {
        return
    }
    q := gc.DB.Where("exhibition_id = ?", exhibition.ID)
    if roomID := c.Query("roomId"); roomID != "" {
        q = q.Where("room_id = ?", roomID)
    }
    groups := []models.DeviceGroup{}
    if err := q.Find(&groups).Error; err != nil {
        writeError(c, err)
        return
    }
    c.JSON(http.StatusOK, groups)
}

func (gc *DeviceGroupController) Update(c *gin.Context) {
    var req deviceGroupRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing request body"})
        return
    }
    if strings.TrimSpace(req.Name) == "" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing device group name"})
        return
    }
    if !validSessionStartStrategy(req.VisitorSessionStartStrategy) {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid visitor session start strategy " + req.VisitorSessionStartStrategy})
        return
    }
    exhibition, ok := requireExhibition(c, gc.DB)
    if !ok {
        return
    }
    var room models.ExhibitionRoom
    if err := gc.DB.Where("id = ?", req.RoomID).First(&room).Error; err != nil || !belongsToExhibition(room.ExhibitionID, exhibition.ID) {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id " + req.RoomID})
        return
    }
    user, ok := actor(c)
    if !ok {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
        return
    }
    group, ok := gc.find(c, exhibition.ID)
    if !ok {
        return
    }

    group.Name = req.Name
    group.RoomID = room.ID
    group.AllowVisitorSessionCreation = req.AllowVisitorSessionCreation
    group.VisitorSessionEndTimeout = req.VisitorSessionEndTimeout
    group.VisitorSessionStartStrategy = req.VisitorSessionStartStrategy
    group.IndexPageTimeout = req.IndexPageTimeout
    group.LastModifierID = user.ID
    if err := gc.DB.Save(group).Error; err != nil {
        writeError(c, err)
        return
    }
    c.JSON(http.StatusOK, group)
}

func (gc *DeviceGroupController) Delete(c *gin.Context) {
    exhibition, ok := requireExhibition(c, gc.DB)
    if !ok {
        return
    }
    group, ok := gc.find(c, exhibition.ID)
    if !ok {
        return
    }
    if err := gc.DB.Delete(&models.DeviceGroup{}, "id = ?", group.ID).Error; err != nil {
        writeError(c, err)
        return
    }
    c.Status(http.StatusNoContent)
}
